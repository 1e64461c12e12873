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

// CategoryStore описывает зависимости от таблицы categories.
type CategoryStore interface {
	Create(ctx context.Context, cat *models.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]models.Category, error)
	CountByRestaurant(ctx context.Context, restaurantID uuid.UUID, ids []uuid.UUID) (int, error)
	Update(ctx context.Context, cat *models.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CategoryInput содержит изменяемые поля категории.
type CategoryInput struct {
	Name     string
	Position int
}

// CategoryService реализует CRUD категорий. Владение проверяется через
// родительский ресторан: чужая категория неотличима от несуществующей.
type CategoryService struct {
	repo        CategoryStore
	restaurants *RestaurantService
	publisher   MenuPublisher
}

// NewCategoryService создаёт сервис категорий. publisher может быть nil.
func NewCategoryService(repo CategoryStore, restaurants *RestaurantService, publisher MenuPublisher) *CategoryService {
	return &CategoryService{repo: repo, restaurants: restaurants, publisher: publisher}
}

// Create создаёт категорию в ресторане пользователя.
func (s *CategoryService) Create(ctx context.Context, userID, restaurantID uuid.UUID, in CategoryInput) (*models.Category, error) {
	if _, err := s.restaurants.Get(ctx, userID, restaurantID); err != nil {
		return nil, err
	}

	if err := validation.ValidateName("название категории", in.Name); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeBadRequest, err.Error())
	}

	cat := &models.Category{
		RestaurantID: restaurantID,
		Name:         in.Name,
		Position:     in.Position,
	}
	if err := s.repo.Create(ctx, cat); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось создать категорию")
	}

	s.publish(restaurantID)
	return cat, nil
}

// List возвращает категории ресторана пользователя.
func (s *CategoryService) List(ctx context.Context, userID, restaurantID uuid.UUID) ([]models.Category, error) {
	if _, err := s.restaurants.Get(ctx, userID, restaurantID); err != nil {
		return nil, err
	}

	categories, err := s.repo.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось загрузить категории")
	}
	return categories, nil
}

// Update перезаписывает имя и позицию категории пользователя.
func (s *CategoryService) Update(ctx context.Context, userID, categoryID uuid.UUID, in CategoryInput) (*models.Category, error) {
	cat, err := s.owned(ctx, userID, categoryID)
	if err != nil {
		return nil, err
	}

	if err := validation.ValidateName("название категории", in.Name); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeBadRequest, err.Error())
	}

	cat.Name = in.Name
	cat.Position = in.Position
	if err := s.repo.Update(ctx, cat); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось обновить категорию")
	}

	s.publish(cat.RestaurantID)
	return cat, nil
}

// Delete удаляет категорию пользователя. Блюда остаются, связи каскадируются.
func (s *CategoryService) Delete(ctx context.Context, userID, categoryID uuid.UUID) error {
	cat, err := s.owned(ctx, userID, categoryID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, categoryID); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось удалить категорию")
	}

	s.publish(cat.RestaurantID)
	return nil
}

func (s *CategoryService) owned(ctx context.Context, userID, categoryID uuid.UUID) (*models.Category, error) {
	cat, err := s.repo.GetByID(ctx, categoryID)
	if errors.Is(err, repository.ErrCategoryNotFound) {
		return nil, apperror.ErrCategoryNotFound
	}
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось загрузить категорию")
	}

	if _, err := s.restaurants.Get(ctx, userID, cat.RestaurantID); err != nil {
		// Ресторан чужой: категория для этого пользователя не существует.
		return nil, apperror.ErrCategoryNotFound
	}

	return cat, nil
}

func (s *CategoryService) publish(restaurantID uuid.UUID) {
	if s.publisher != nil {
		s.publisher.MenuUpdated(restaurantID)
	}
}
