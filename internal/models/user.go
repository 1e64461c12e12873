package models

import (
	"time"

	"github.com/google/uuid"
)

// User описывает владельца ресторанов.
// Создаётся при первой успешной регистрации или автоматически при входе.
type User struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	Name      string    `db:"name" json:"name"`
	Country   string    `db:"country" json:"country"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Session представляет сохранённую сессию пользователя.
// Токен — непрозрачная случайная строка (256 бит, hex), срок жизни 30 дней.
type Session struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	Token     string    `db:"token" json:"-"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Valid сообщает, не истекла ли сессия на момент now.
func (s *Session) Valid(now time.Time) bool {
	return now.Before(s.ExpiresAt)
}
