package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/rit1708/Digital-menu/internal/models"
	"github.com/rit1708/Digital-menu/internal/pkg/apperror"
	"github.com/rit1708/Digital-menu/internal/repository"
	"github.com/rit1708/Digital-menu/internal/validation"
)

// DishStore описывает зависимости от таблиц dishes и dish_categories.
type DishStore interface {
	Create(ctx context.Context, dish *models.Dish) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Dish, error)
	ListByRestaurant(ctx context.Context, restaurantID uuid.UUID, limit, offset int) ([]models.Dish, error)
	Update(ctx context.Context, dish *models.Dish) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// DishInput содержит изменяемые поля блюда.
type DishInput struct {
	Name        string
	Description *string
	Price       float64
	ImageURL    *string
	IsAvailable bool
	Position    int
	CategoryIDs []uuid.UUID
}

// DishService реализует CRUD блюд. Владение проверяется через родительский
// ресторан; ссылки на категории другого ресторана отклоняются как BadRequest.
type DishService struct {
	repo        DishStore
	categories  CategoryStore
	restaurants *RestaurantService
	publisher   MenuPublisher
}

// NewDishService создаёт сервис блюд. publisher может быть nil.
func NewDishService(repo DishStore, categories CategoryStore, restaurants *RestaurantService, publisher MenuPublisher) *DishService {
	return &DishService{repo: repo, categories: categories, restaurants: restaurants, publisher: publisher}
}

// Create создаёт блюдо в ресторане пользователя.
func (s *DishService) Create(ctx context.Context, userID, restaurantID uuid.UUID, in DishInput) (*models.Dish, error) {
	if _, err := s.restaurants.Get(ctx, userID, restaurantID); err != nil {
		return nil, err
	}

	if err := s.validateInput(ctx, restaurantID, in); err != nil {
		return nil, err
	}

	dish := &models.Dish{
		RestaurantID: restaurantID,
		Name:         in.Name,
		Description:  in.Description,
		Price:        in.Price,
		ImageURL:     in.ImageURL,
		IsAvailable:  in.IsAvailable,
		Position:     in.Position,
		CategoryIDs:  dedupe(in.CategoryIDs),
	}
	if err := s.repo.Create(ctx, dish); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось создать блюдо")
	}

	s.publish(restaurantID)
	return dish, nil
}

// Get возвращает блюдо пользователя.
func (s *DishService) Get(ctx context.Context, userID, dishID uuid.UUID) (*models.Dish, error) {
	return s.owned(ctx, userID, dishID)
}

// List возвращает блюда ресторана пользователя.
func (s *DishService) List(ctx context.Context, userID, restaurantID uuid.UUID, limit, offset int) ([]models.Dish, error) {
	if _, err := s.restaurants.Get(ctx, userID, restaurantID); err != nil {
		return nil, err
	}

	dishes, err := s.repo.ListByRestaurant(ctx, restaurantID, limit, offset)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось загрузить блюда")
	}
	return dishes, nil
}

// Update перезаписывает блюдо пользователя и его категории.
func (s *DishService) Update(ctx context.Context, userID, dishID uuid.UUID, in DishInput) (*models.Dish, error) {
	dish, err := s.owned(ctx, userID, dishID)
	if err != nil {
		return nil, err
	}

	if err := s.validateInput(ctx, dish.RestaurantID, in); err != nil {
		return nil, err
	}

	dish.Name = in.Name
	dish.Description = in.Description
	dish.Price = in.Price
	dish.ImageURL = in.ImageURL
	dish.IsAvailable = in.IsAvailable
	dish.Position = in.Position
	dish.CategoryIDs = dedupe(in.CategoryIDs)

	if err := s.repo.Update(ctx, dish); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось обновить блюдо")
	}

	s.publish(dish.RestaurantID)
	return dish, nil
}

// Delete удаляет блюдо пользователя.
func (s *DishService) Delete(ctx context.Context, userID, dishID uuid.UUID) error {
	dish, err := s.owned(ctx, userID, dishID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, dishID); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось удалить блюдо")
	}

	s.publish(dish.RestaurantID)
	return nil
}

// validateInput проверяет поля блюда и принадлежность категорий ресторану.
func (s *DishService) validateInput(ctx context.Context, restaurantID uuid.UUID, in DishInput) error {
	if err := validation.ValidateName("название блюда", in.Name); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeBadRequest, err.Error())
	}
	if err := validation.ValidatePrice(in.Price); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeBadRequest, err.Error())
	}

	ids := dedupe(in.CategoryIDs)
	if len(ids) == 0 {
		return nil
	}

	count, err := s.categories.CountByRestaurant(ctx, restaurantID, ids)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось проверить категории")
	}
	if count != len(ids) {
		return apperror.ErrForeignCategory
	}

	return nil
}

func (s *DishService) owned(ctx context.Context, userID, dishID uuid.UUID) (*models.Dish, error) {
	dish, err := s.repo.GetByID(ctx, dishID)
	if errors.Is(err, repository.ErrDishNotFound) {
		return nil, apperror.ErrDishNotFound
	}
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось загрузить блюдо")
	}

	if _, err := s.restaurants.Get(ctx, userID, dish.RestaurantID); err != nil {
		// Ресторан чужой: блюдо для этого пользователя не существует.
		return nil, apperror.ErrDishNotFound
	}

	return dish, nil
}

func (s *DishService) publish(restaurantID uuid.UUID) {
	if s.publisher != nil {
		s.publisher.MenuUpdated(restaurantID)
	}
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
