package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/rit1708/Digital-menu/internal/models"
	"github.com/rit1708/Digital-menu/internal/pkg/apperror"
	"github.com/rit1708/Digital-menu/internal/repository"
)

// MenuDishStore — зависимость публичного меню от таблицы dishes.
type MenuDishStore interface {
	ListAvailableByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]models.Dish, error)
}

// MenuCategoryStore — зависимость публичного меню от таблицы categories.
type MenuCategoryStore interface {
	ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]models.Category, error)
}

// MenuRestaurantStore — зависимость публичного меню от таблицы restaurants.
type MenuRestaurantStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Restaurant, error)
}

// MenuService собирает публичное меню ресторана по ссылке / QR-коду.
// Аутентификация не требуется, проверка владения не выполняется.
type MenuService struct {
	restaurants MenuRestaurantStore
	categories  MenuCategoryStore
	dishes      MenuDishStore
}

// NewMenuService создаёт сервис публичного меню.
func NewMenuService(restaurants MenuRestaurantStore, categories MenuCategoryStore, dishes MenuDishStore) *MenuService {
	return &MenuService{restaurants: restaurants, categories: categories, dishes: dishes}
}

// Get возвращает меню ресторана: категории по порядку со своими доступными
// блюдами, затем блюда без категории отдельной секцией. Блюдо, входящее в
// несколько категорий, присутствует в каждой из них.
func (s *MenuService) Get(ctx context.Context, restaurantID uuid.UUID) (*models.Menu, error) {
	rest, err := s.restaurants.GetByID(ctx, restaurantID)
	if errors.Is(err, repository.ErrRestaurantNotFound) {
		return nil, apperror.ErrRestaurantNotFound
	}
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось загрузить ресторан")
	}

	categories, err := s.categories.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось загрузить категории")
	}

	dishes, err := s.dishes.ListAvailableByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось загрузить блюда")
	}

	byCategory := make(map[uuid.UUID][]models.Dish)
	uncategorized := []models.Dish{}
	for _, dish := range dishes {
		if len(dish.CategoryIDs) == 0 {
			uncategorized = append(uncategorized, dish)
			continue
		}
		for _, catID := range dish.CategoryIDs {
			byCategory[catID] = append(byCategory[catID], dish)
		}
	}

	menu := &models.Menu{
		Restaurant: rest,
		Sections:   make([]models.MenuSection, 0, len(categories)+1),
	}

	for i := range categories {
		cat := categories[i]
		section := models.MenuSection{
			Category: &cat,
			Dishes:   byCategory[cat.ID],
		}
		if section.Dishes == nil {
			section.Dishes = []models.Dish{}
		}
		menu.Sections = append(menu.Sections, section)
	}

	if len(uncategorized) > 0 {
		menu.Sections = append(menu.Sections, models.MenuSection{Dishes: uncategorized})
	}

	return menu, nil
}
