package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	ErrCodeUnauthenticated ErrorCode = "UNAUTHENTICATED"
	ErrCodeUnauthorized    ErrorCode = "UNAUTHORIZED"
	ErrCodeNotFound        ErrorCode = "NOT_FOUND"
	ErrCodeBadRequest      ErrorCode = "BAD_REQUEST"
	ErrCodeInternal        ErrorCode = "INTERNAL_ERROR"
)

type AppError struct {
	Code       ErrorCode
	Message    string
	HTTPStatus int
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Cause:      err,
	}
}

func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeUnauthenticated, ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeBadRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func IsNotFound(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == ErrCodeNotFound
}

func IsUnauthenticated(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == ErrCodeUnauthenticated
}

func IsBadRequest(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == ErrCodeBadRequest
}

var (
	ErrInvalidCode        = New(ErrCodeUnauthenticated, "неверный или просроченный код подтверждения")
	ErrUnauthorized       = New(ErrCodeUnauthorized, "требуется авторизация")
	ErrUserNotFound       = New(ErrCodeNotFound, "пользователь не найден")
	ErrRestaurantNotFound = New(ErrCodeNotFound, "ресторан не найден")
	ErrCategoryNotFound   = New(ErrCodeNotFound, "категория не найдена")
	ErrDishNotFound       = New(ErrCodeNotFound, "блюдо не найдено")
	ErrForeignCategory    = New(ErrCodeBadRequest, "категория принадлежит другому ресторану")
)
