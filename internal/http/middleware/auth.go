package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rit1708/Digital-menu/internal/models"
)

// Context ключи для gin.Context.
const (
	ContextUserIDKey = "userID"
	ContextTokenKey  = "sessionToken"
)

// SessionResolver находит действующую сессию по точному совпадению токена.
type SessionResolver interface {
	GetValidByToken(ctx context.Context, token string, now time.Time) (*models.Session, error)
}

// Identity разрешает bearer токен в личность пользователя и никогда не
// прерывает запрос: отсутствующий, кривой или недействительный токен просто
// оставляет запрос анонимным. Отказывать анонимным должен RequireAuth на
// защищённых маршрутах — так вопрос "кто зовёт" отделён от "можно ли ему".
func Identity(sessions SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.Next()
			return
		}

		session, err := sessions.GetValidByToken(c.Request.Context(), token, time.Now())
		if err != nil {
			// Просроченная и отозванная сессии неразличимы: обе — аноним.
			c.Next()
			return
		}

		c.Set(ContextUserIDKey, session.UserID)
		c.Set(ContextTokenKey, token)
		c.Next()
	}
}

// RequireAuth отклоняет анонимные запросы.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(ContextUserIDKey); !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "требуется авторизация"})
			return
		}
		c.Next()
	}
}

// bearerToken извлекает токен из заголовка Authorization.
// Схема сравнивается без учёта регистра, мусор даёт пустую строку.
func bearerToken(header string) string {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
