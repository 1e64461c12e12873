package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/rit1708/Digital-menu/internal/models"
)

// ErrCategoryNotFound возвращается, когда категория не найдена.
var ErrCategoryNotFound = errors.New("category not found")

// CategoryRepository отвечает за работу с таблицей categories.
type CategoryRepository struct {
	db *sqlx.DB
}

// NewCategoryRepository создаёт экземпляр репозитория.
func NewCategoryRepository(db *sqlx.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create сохраняет новую категорию.
func (r *CategoryRepository) Create(ctx context.Context, cat *models.Category) error {
	query := `
		INSERT INTO categories (restaurant_id, name, position)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	if err := r.db.QueryRowxContext(
		ctx, query,
		cat.RestaurantID, cat.Name, cat.Position,
	).Scan(&cat.ID, &cat.CreatedAt, &cat.UpdatedAt); err != nil {
		return fmt.Errorf("category repository: create %w", err)
	}

	return nil
}

// GetByID возвращает категорию по идентификатору.
func (r *CategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var cat models.Category
	query := `
		SELECT id, restaurant_id, name, position, created_at, updated_at
		FROM categories
		WHERE id = $1
	`
	if err := r.db.GetContext(ctx, &cat, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("category repository: get by id %w", err)
	}

	return &cat, nil
}

// ListByRestaurant возвращает категории ресторана в порядке position.
func (r *CategoryRepository) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]models.Category, error) {
	categories := []models.Category{}
	query := `
		SELECT id, restaurant_id, name, position, created_at, updated_at
		FROM categories
		WHERE restaurant_id = $1
		ORDER BY position, created_at
	`
	if err := r.db.SelectContext(ctx, &categories, query, restaurantID); err != nil {
		return nil, fmt.Errorf("category repository: list by restaurant %w", err)
	}

	return categories, nil
}

// CountByRestaurant возвращает число категорий, принадлежащих ресторану,
// среди переданных идентификаторов. Используется для проверки, что все
// категории блюда относятся к одному ресторану.
func (r *CategoryRepository) CountByRestaurant(ctx context.Context, restaurantID uuid.UUID, ids []uuid.UUID) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	var count int
	query := `SELECT COUNT(*) FROM categories WHERE restaurant_id = $1 AND id = ANY($2)`
	if err := r.db.GetContext(ctx, &count, query, restaurantID, pq.Array(ids)); err != nil {
		return 0, fmt.Errorf("category repository: count by restaurant %w", err)
	}

	return count, nil
}

// Update перезаписывает имя и позицию категории.
func (r *CategoryRepository) Update(ctx context.Context, cat *models.Category) error {
	query := `
		UPDATE categories
		SET name = $2,
			position = $3,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	if err := r.db.QueryRowxContext(ctx, query, cat.ID, cat.Name, cat.Position).Scan(&cat.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("category repository: update %w", err)
	}

	return nil
}

// Delete удаляет категорию. Связи с блюдами каскадируются на уровне схемы.
func (r *CategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("category repository: delete %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
