package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/rit1708/Digital-menu/internal/models"
)

// ErrSessionNotFound возвращается, когда действующая сессия не найдена.
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository отвечает за работу с таблицей sessions.
type SessionRepository struct {
	db *sqlx.DB
}

// NewSessionRepository создаёт экземпляр репозитория.
func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create сохраняет новую сессию.
func (r *SessionRepository) Create(ctx context.Context, session *models.Session) error {
	query := `
		INSERT INTO sessions (user_id, token, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	if err := r.db.QueryRowxContext(
		ctx, query,
		session.UserID, session.Token, session.ExpiresAt,
	).Scan(&session.ID, &session.CreatedAt); err != nil {
		return fmt.Errorf("session repository: create %w", err)
	}

	return nil
}

// GetValidByToken возвращает непросроченную сессию по точному совпадению токена.
// Просроченная и отозванная сессии неразличимы: обе дают ErrSessionNotFound.
func (r *SessionRepository) GetValidByToken(ctx context.Context, token string, now time.Time) (*models.Session, error) {
	var session models.Session
	query := `
		SELECT id, user_id, token, expires_at, created_at
		FROM sessions
		WHERE token = $1 AND expires_at > $2
	`
	if err := r.db.GetContext(ctx, &session, query, token, now); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("session repository: get by token %w", err)
	}

	return &session, nil
}

// DeleteByToken удаляет все сессии с данным токеном.
// Дубликаты токенов при 256 битах случайности не ожидаются, но удаление
// намеренно массовое и идемпотентное: ноль удалённых строк — не ошибка.
func (r *SessionRepository) DeleteByToken(ctx context.Context, token string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = $1`, token); err != nil {
		return fmt.Errorf("session repository: delete by token %w", err)
	}
	return nil
}

// DeleteExpired удаляет сессии, истёкшие к моменту now. Возвращает число удалённых.
func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, fmt.Errorf("session repository: delete expired %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
