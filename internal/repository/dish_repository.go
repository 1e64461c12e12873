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

// ErrDishNotFound возвращается, когда блюдо не найдено.
var ErrDishNotFound = errors.New("dish not found")

// DishRepository отвечает за работу с таблицами dishes и dish_categories.
type DishRepository struct {
	db *sqlx.DB
}

// NewDishRepository создаёт экземпляр репозитория.
func NewDishRepository(db *sqlx.DB) *DishRepository {
	return &DishRepository{db: db}
}

// Create сохраняет блюдо и связывает его с категориями в одной транзакции.
func (r *DishRepository) Create(ctx context.Context, dish *models.Dish) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("dish repository: begin tx %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO dishes (restaurant_id, name, description, price, image_url, is_available, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	if err := tx.QueryRowxContext(
		ctx, query,
		dish.RestaurantID, dish.Name, dish.Description, dish.Price, dish.ImageURL, dish.IsAvailable, dish.Position,
	).Scan(&dish.ID, &dish.CreatedAt, &dish.UpdatedAt); err != nil {
		return fmt.Errorf("dish repository: create %w", err)
	}

	if err := replaceDishCategories(ctx, tx, dish.ID, dish.CategoryIDs); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("dish repository: commit %w", err)
	}

	return nil
}

// GetByID возвращает блюдо вместе с идентификаторами его категорий.
func (r *DishRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Dish, error) {
	var dish models.Dish
	query := `
		SELECT id, restaurant_id, name, description, price, image_url, is_available, position, created_at, updated_at
		FROM dishes
		WHERE id = $1
	`
	if err := r.db.GetContext(ctx, &dish, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDishNotFound
		}
		return nil, fmt.Errorf("dish repository: get by id %w", err)
	}

	if err := r.loadCategoryIDs(ctx, &dish); err != nil {
		return nil, err
	}

	return &dish, nil
}

// ListByRestaurant возвращает блюда ресторана со смещением и лимитом.
func (r *DishRepository) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID, limit, offset int) ([]models.Dish, error) {
	dishes := []models.Dish{}
	query := `
		SELECT id, restaurant_id, name, description, price, image_url, is_available, position, created_at, updated_at
		FROM dishes
		WHERE restaurant_id = $1
		ORDER BY position, created_at
		LIMIT $2 OFFSET $3
	`
	if err := r.db.SelectContext(ctx, &dishes, query, restaurantID, limit, offset); err != nil {
		return nil, fmt.Errorf("dish repository: list by restaurant %w", err)
	}

	for i := range dishes {
		if err := r.loadCategoryIDs(ctx, &dishes[i]); err != nil {
			return nil, err
		}
	}

	return dishes, nil
}

// ListAvailableByRestaurant возвращает доступные блюда для публичного меню.
func (r *DishRepository) ListAvailableByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]models.Dish, error) {
	dishes := []models.Dish{}
	query := `
		SELECT id, restaurant_id, name, description, price, image_url, is_available, position, created_at, updated_at
		FROM dishes
		WHERE restaurant_id = $1 AND is_available = TRUE
		ORDER BY position, created_at
	`
	if err := r.db.SelectContext(ctx, &dishes, query, restaurantID); err != nil {
		return nil, fmt.Errorf("dish repository: list available %w", err)
	}

	for i := range dishes {
		if err := r.loadCategoryIDs(ctx, &dishes[i]); err != nil {
			return nil, err
		}
	}

	return dishes, nil
}

// Update перезаписывает блюдо и его связи с категориями в одной транзакции.
func (r *DishRepository) Update(ctx context.Context, dish *models.Dish) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("dish repository: begin tx %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE dishes
		SET name = $2,
			description = $3,
			price = $4,
			image_url = $5,
			is_available = $6,
			position = $7,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	if err := tx.QueryRowxContext(
		ctx, query,
		dish.ID, dish.Name, dish.Description, dish.Price, dish.ImageURL, dish.IsAvailable, dish.Position,
	).Scan(&dish.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrDishNotFound
		}
		return fmt.Errorf("dish repository: update %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM dish_categories WHERE dish_id = $1`, dish.ID); err != nil {
		return fmt.Errorf("dish repository: clear categories %w", err)
	}

	if err := replaceDishCategories(ctx, tx, dish.ID, dish.CategoryIDs); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("dish repository: commit %w", err)
	}

	return nil
}

// Delete удаляет блюдо. Связи с категориями каскадируются на уровне схемы.
func (r *DishRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM dishes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("dish repository: delete %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrDishNotFound
	}
	return nil
}

func (r *DishRepository) loadCategoryIDs(ctx context.Context, dish *models.Dish) error {
	ids := []uuid.UUID{}
	query := `SELECT category_id FROM dish_categories WHERE dish_id = $1`
	if err := r.db.SelectContext(ctx, &ids, query, dish.ID); err != nil {
		return fmt.Errorf("dish repository: load categories %w", err)
	}
	dish.CategoryIDs = ids
	return nil
}

func replaceDishCategories(ctx context.Context, tx *sqlx.Tx, dishID uuid.UUID, categoryIDs []uuid.UUID) error {
	if len(categoryIDs) == 0 {
		return nil
	}

	query := `
		INSERT INTO dish_categories (dish_id, category_id)
		SELECT $1, unnest($2::uuid[])
		ON CONFLICT DO NOTHING
	`
	if _, err := tx.ExecContext(ctx, query, dishID, pq.Array(categoryIDs)); err != nil {
		return fmt.Errorf("dish repository: link categories %w", err)
	}

	return nil
}
