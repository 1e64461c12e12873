package common

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rit1708/Digital-menu/internal/http/middleware"
)

var (
	// ErrNoIdentity возвращается, когда к запросу не привязана личность.
	ErrNoIdentity = errors.New("пользователь не найден в контексте")

	// ErrInvalidUUID возвращается при некорректном UUID в пути.
	ErrInvalidUUID = errors.New("неверный формат UUID")
)

// CurrentUserID извлекает идентификатор пользователя из контекста Gin.
func CurrentUserID(c *gin.Context) (uuid.UUID, error) {
	raw, exists := c.Get(middleware.ContextUserIDKey)
	if !exists {
		return uuid.Nil, ErrNoIdentity
	}

	userID, ok := raw.(uuid.UUID)
	if !ok {
		return uuid.Nil, ErrNoIdentity
	}

	return userID, nil
}

// CurrentToken извлекает токен текущей сессии из контекста Gin.
func CurrentToken(c *gin.Context) (string, error) {
	raw, exists := c.Get(middleware.ContextTokenKey)
	if !exists {
		return "", ErrNoIdentity
	}

	token, ok := raw.(string)
	if !ok {
		return "", ErrNoIdentity
	}

	return token, nil
}

// ParseUUIDParam разбирает UUID из параметра пути.
func ParseUUIDParam(c *gin.Context, paramName string) (uuid.UUID, error) {
	param := c.Param(paramName)
	if param == "" {
		return uuid.Nil, fmt.Errorf("параметр %s отсутствует", paramName)
	}

	parsed, err := uuid.Parse(param)
	if err != nil {
		return uuid.Nil, ErrInvalidUUID
	}

	return parsed, nil
}

// ParseIntQuery читает целочисленный query-параметр с дефолтом.
func ParseIntQuery(c *gin.Context, key string, fallback int) int {
	if v := c.Query(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			return parsed
		}
	}
	return fallback
}

// RespondError отправляет стандартный ответ об ошибке.
func RespondError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"error": message})
}

// RespondUnauthorized отправляет 401.
func RespondUnauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "требуется авторизация"
	}
	RespondError(c, http.StatusUnauthorized, message)
}

// RespondBadRequest отправляет 400.
func RespondBadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "некорректный запрос"
	}
	RespondError(c, http.StatusBadRequest, message)
}
