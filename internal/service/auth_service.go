package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/rit1708/Digital-menu/internal/logger"
	"github.com/rit1708/Digital-menu/internal/mail"
	"github.com/rit1708/Digital-menu/internal/models"
	"github.com/rit1708/Digital-menu/internal/pkg/apperror"
	"github.com/rit1708/Digital-menu/internal/repository"
	"github.com/rit1708/Digital-menu/internal/validation"
)

// AuthUserStore описывает зависимости AuthService от таблицы users.
type AuthUserStore interface {
	Upsert(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// AuthSessionStore описывает зависимости AuthService от таблицы sessions.
type AuthSessionStore interface {
	Create(ctx context.Context, session *models.Session) error
	DeleteByToken(ctx context.Context, token string) error
}

// AuthCodeStore описывает зависимости AuthService от таблицы verification_codes.
// Consume обязан быть атомарным: повторное потребление того же кода должно
// вернуть repository.ErrCodeNotFound даже при конкурентных вызовах.
type AuthCodeStore interface {
	Create(ctx context.Context, vc *models.VerificationCode) error
	Consume(ctx context.Context, email, code string, now time.Time) (*models.VerificationCode, error)
}

// AuthService инкапсулирует беспарольную аутентификацию: выдачу и проверку
// одноразовых кодов, upsert пользователей, выпуск и отзыв сессий.
type AuthService struct {
	users    AuthUserStore
	sessions AuthSessionStore
	codes    AuthCodeStore
	mailer   mail.Mailer

	codeTTL    time.Duration
	sessionTTL time.Duration

	// discloseCode возвращает код в ответе API вместо отправки письма.
	// Допустимо только в development, конфигурация это контролирует.
	discloseCode bool
}

// AuthResult возвращает итог успешной проверки кода.
type AuthResult struct {
	Token string
	User  *models.User
}

// NewAuthService создаёт сервис аутентификации. mailer может быть nil,
// если отправка писем выключена (тогда discloseCode должен быть true).
func NewAuthService(users AuthUserStore, sessions AuthSessionStore, codes AuthCodeStore, mailer mail.Mailer, codeTTL, sessionTTL time.Duration, discloseCode bool) *AuthService {
	return &AuthService{
		users:        users,
		sessions:     sessions,
		codes:        codes,
		mailer:       mailer,
		codeTTL:      codeTTL,
		sessionTTL:   sessionTTL,
		discloseCode: discloseCode,
	}
}

// SendCode выдаёт одноразовый 6-значный код для email и отправляет его письмом.
// Возвращаемый код непуст только в режиме раскрытия (отправка писем выключена).
// Старые коды того же email остаются в базе: проверка берёт самый свежий.
func (s *AuthService) SendCode(ctx context.Context, email string) (string, error) {
	if err := validation.ValidateEmail(email); err != nil {
		return "", apperror.Wrap(err, apperror.ErrCodeBadRequest, err.Error())
	}

	code, err := NewVerificationCode()
	if err != nil {
		return "", apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось сгенерировать код")
	}

	vc := &models.VerificationCode{
		Email:     strings.ToLower(email),
		Code:      code,
		ExpiresAt: time.Now().Add(s.codeTTL),
	}
	if err := s.codes.Create(ctx, vc); err != nil {
		return "", apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось сохранить код")
	}

	if s.mailer != nil {
		if err := s.mailer.SendCode(ctx, vc.Email, code); err != nil {
			return "", apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось отправить письмо с кодом")
		}
	}

	if logger.Log != nil {
		logger.Log.WithFields(logrus.Fields{
			"email":     vc.Email,
			"disclosed": s.discloseCode,
		}).Info("auth service: выдан код подтверждения")
	}

	if s.discloseCode {
		return code, nil
	}
	return "", nil
}

// VerifyAndRegister проверяет код и регистрирует пользователя с переданными
// именем и страной. Для уже существующего email имя и страна перезаписываются,
// дубликат не создаётся. Возвращает токен новой сессии и пользователя.
func (s *AuthService) VerifyAndRegister(ctx context.Context, email, code, name, country string) (*AuthResult, error) {
	if err := validation.ValidateEmail(email); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeBadRequest, err.Error())
	}

	normalized := strings.ToLower(email)
	if err := s.consumeCode(ctx, normalized, code); err != nil {
		return nil, err
	}

	user := &models.User{
		Email:   normalized,
		Name:    name,
		Country: country,
	}
	if err := s.users.Upsert(ctx, user); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось сохранить пользователя")
	}

	return s.issueSession(ctx, user)
}

// VerifyAndLogin проверяет код и выпускает сессию. Если пользователя с таким
// email нет, он создаётся автоматически: имя — локальная часть email с
// заглавной буквы, страна — "Unknown". Регистрация и вход здесь сходятся
// молча, это поведение исходной системы.
func (s *AuthService) VerifyAndLogin(ctx context.Context, email, code string) (*AuthResult, error) {
	if err := validation.ValidateEmail(email); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeBadRequest, err.Error())
	}

	normalized := strings.ToLower(email)
	if err := s.consumeCode(ctx, normalized, code); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, normalized)
	if errors.Is(err, repository.ErrUserNotFound) {
		user = &models.User{
			Email:   normalized,
			Name:    deriveName(normalized),
			Country: "Unknown",
		}
		if err := s.users.Upsert(ctx, user); err != nil {
			return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось создать пользователя")
		}
	} else if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось найти пользователя")
	}

	return s.issueSession(ctx, user)
}

// Logout удаляет все сессии с данным токеном. Идемпотентен: выход с уже
// недействительным, чужим или мусорным токеном — успешный no-op.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.DeleteByToken(ctx, token); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось завершить сессию")
	}
	return nil
}

// CurrentUser возвращает пользователя по идентификатору из сессии.
func (s *AuthService) CurrentUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, apperror.ErrUserNotFound
	}
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось загрузить пользователя")
	}
	return user, nil
}

// consumeCode атомарно тратит код; любая причина отказа (нет кода, просрочен,
// уже использован) неразличимо даёт Unauthenticated.
func (s *AuthService) consumeCode(ctx context.Context, email, code string) error {
	if _, err := s.codes.Consume(ctx, email, code, time.Now()); err != nil {
		if errors.Is(err, repository.ErrCodeNotFound) {
			return apperror.ErrInvalidCode
		}
		return apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось проверить код")
	}
	return nil
}

func (s *AuthService) issueSession(ctx context.Context, user *models.User) (*AuthResult, error) {
	token, err := NewSessionToken()
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось выпустить токен")
	}

	session := &models.Session{
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: time.Now().Add(s.sessionTTL),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось сохранить сессию")
	}

	return &AuthResult{Token: token, User: user}, nil
}

// deriveName формирует имя из локальной части email с заглавной первой буквой.
func deriveName(email string) string {
	local := strings.Split(email, "@")[0]
	if local == "" {
		return "User"
	}
	runes := []rune(local)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
