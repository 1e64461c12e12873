package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/rit1708/Digital-menu/internal/models"
)

// ErrRestaurantNotFound возвращается, когда ресторан не найден.
var ErrRestaurantNotFound = errors.New("restaurant not found")

// RestaurantRepository отвечает за работу с таблицей restaurants.
type RestaurantRepository struct {
	db *sqlx.DB
}

// NewRestaurantRepository создаёт экземпляр репозитория.
func NewRestaurantRepository(db *sqlx.DB) *RestaurantRepository {
	return &RestaurantRepository{db: db}
}

// Create сохраняет новый ресторан.
func (r *RestaurantRepository) Create(ctx context.Context, rest *models.Restaurant) error {
	query := `
		INSERT INTO restaurants (user_id, name, description, address, currency)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	if err := r.db.QueryRowxContext(
		ctx, query,
		rest.UserID, rest.Name, rest.Description, rest.Address, rest.Currency,
	).Scan(&rest.ID, &rest.CreatedAt, &rest.UpdatedAt); err != nil {
		return fmt.Errorf("restaurant repository: create %w", err)
	}

	return nil
}

// GetByID возвращает ресторан по идентификатору.
func (r *RestaurantRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Restaurant, error) {
	var rest models.Restaurant
	query := `
		SELECT id, user_id, name, description, address, currency, created_at, updated_at
		FROM restaurants
		WHERE id = $1
	`
	if err := r.db.GetContext(ctx, &rest, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("restaurant repository: get by id %w", err)
	}

	return &rest, nil
}

// ListByUser возвращает рестораны пользователя со смещением и лимитом.
func (r *RestaurantRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Restaurant, error) {
	restaurants := []models.Restaurant{}
	query := `
		SELECT id, user_id, name, description, address, currency, created_at, updated_at
		FROM restaurants
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	if err := r.db.SelectContext(ctx, &restaurants, query, userID, limit, offset); err != nil {
		return nil, fmt.Errorf("restaurant repository: list by user %w", err)
	}

	return restaurants, nil
}

// Update перезаписывает изменяемые поля ресторана.
func (r *RestaurantRepository) Update(ctx context.Context, rest *models.Restaurant) error {
	query := `
		UPDATE restaurants
		SET name = $2,
			description = $3,
			address = $4,
			currency = $5,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	if err := r.db.QueryRowxContext(
		ctx, query,
		rest.ID, rest.Name, rest.Description, rest.Address, rest.Currency,
	).Scan(&rest.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrRestaurantNotFound
		}
		return fmt.Errorf("restaurant repository: update %w", err)
	}

	return nil
}

// Delete удаляет ресторан. Категории и блюда каскадируются на уровне схемы.
func (r *RestaurantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM restaurants WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("restaurant repository: delete %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRestaurantNotFound
	}
	return nil
}
