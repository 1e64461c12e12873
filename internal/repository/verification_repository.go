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

// ErrCodeNotFound возвращается, когда подходящий код подтверждения не найден,
// просрочен или уже использован.
var ErrCodeNotFound = errors.New("verification code not found")

// VerificationRepository отвечает за работу с таблицей verification_codes.
type VerificationRepository struct {
	db *sqlx.DB
}

// NewVerificationRepository создаёт экземпляр репозитория.
func NewVerificationRepository(db *sqlx.DB) *VerificationRepository {
	return &VerificationRepository{db: db}
}

// Create сохраняет новый код. Старые коды для того же email не трогаем:
// одновременно может существовать несколько, валидация берёт самый свежий.
func (r *VerificationRepository) Create(ctx context.Context, vc *models.VerificationCode) error {
	query := `
		INSERT INTO verification_codes (email, code, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	if err := r.db.QueryRowxContext(
		ctx, query,
		vc.Email, vc.Code, vc.ExpiresAt,
	).Scan(&vc.ID, &vc.CreatedAt); err != nil {
		return fmt.Errorf("verification repository: create %w", err)
	}

	return nil
}

// Consume атомарно удаляет самый свежий непросроченный код для пары (email, code).
// Один оператор DELETE ... RETURNING исключает двойное использование кода
// конкурентными запросами: второй вызов не найдёт строку и получит ErrCodeNotFound.
func (r *VerificationRepository) Consume(ctx context.Context, email, code string, now time.Time) (*models.VerificationCode, error) {
	var vc models.VerificationCode
	query := `
		DELETE FROM verification_codes
		WHERE id = (
			SELECT id FROM verification_codes
			WHERE email = $1 AND code = $2 AND expires_at > $3
			ORDER BY created_at DESC
			LIMIT 1
			FOR UPDATE SKIP LOCKED
		)
		RETURNING id, email, code, expires_at, created_at
	`
	if err := r.db.GetContext(ctx, &vc, query, email, code, now); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCodeNotFound
		}
		return nil, fmt.Errorf("verification repository: consume %w", err)
	}

	return &vc, nil
}

// DeleteExpired удаляет коды, истёкшие к моменту now. Возвращает число удалённых.
func (r *VerificationRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM verification_codes WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, fmt.Errorf("verification repository: delete expired %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
