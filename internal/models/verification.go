package models

import (
	"time"

	"github.com/google/uuid"
)

// VerificationCode — одноразовый 6-значный код, привязанный к email.
// Email на момент выдачи может ещё не принадлежать существующему пользователю.
// Код живёт 10 минут и удаляется при успешной проверке.
type VerificationCode struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	Code      string    `db:"code" json:"-"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
