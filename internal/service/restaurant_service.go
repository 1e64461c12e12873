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

// MenuPublisher уведомляет открытые публичные меню об изменениях.
type MenuPublisher interface {
	MenuUpdated(restaurantID uuid.UUID)
}

// RestaurantStore описывает зависимости от таблицы restaurants.
type RestaurantStore interface {
	Create(ctx context.Context, rest *models.Restaurant) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Restaurant, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Restaurant, error)
	Update(ctx context.Context, rest *models.Restaurant) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// RestaurantInput содержит изменяемые поля ресторана.
type RestaurantInput struct {
	Name        string
	Description *string
	Address     *string
	Currency    string
}

// RestaurantService реализует CRUD ресторанов с проверкой владения.
type RestaurantService struct {
	repo      RestaurantStore
	publisher MenuPublisher
}

// NewRestaurantService создаёт сервис ресторанов. publisher может быть nil.
func NewRestaurantService(repo RestaurantStore, publisher MenuPublisher) *RestaurantService {
	return &RestaurantService{repo: repo, publisher: publisher}
}

// Create создаёт ресторан для пользователя.
func (s *RestaurantService) Create(ctx context.Context, userID uuid.UUID, in RestaurantInput) (*models.Restaurant, error) {
	if err := validation.ValidateName("название ресторана", in.Name); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeBadRequest, err.Error())
	}

	currency := in.Currency
	if currency == "" {
		currency = "INR"
	}

	rest := &models.Restaurant{
		UserID:      userID,
		Name:        in.Name,
		Description: in.Description,
		Address:     in.Address,
		Currency:    currency,
	}
	if err := s.repo.Create(ctx, rest); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось создать ресторан")
	}

	return rest, nil
}

// List возвращает рестораны пользователя.
func (s *RestaurantService) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Restaurant, error) {
	restaurants, err := s.repo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось загрузить рестораны")
	}
	return restaurants, nil
}

// Get возвращает ресторан пользователя. Чужой ресторан неотличим от
// несуществующего: в обоих случаях NotFound.
func (s *RestaurantService) Get(ctx context.Context, userID, restaurantID uuid.UUID) (*models.Restaurant, error) {
	return s.owned(ctx, userID, restaurantID)
}

// Update перезаписывает изменяемые поля ресторана пользователя.
func (s *RestaurantService) Update(ctx context.Context, userID, restaurantID uuid.UUID, in RestaurantInput) (*models.Restaurant, error) {
	rest, err := s.owned(ctx, userID, restaurantID)
	if err != nil {
		return nil, err
	}

	if err := validation.ValidateName("название ресторана", in.Name); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeBadRequest, err.Error())
	}

	rest.Name = in.Name
	rest.Description = in.Description
	rest.Address = in.Address
	if in.Currency != "" {
		rest.Currency = in.Currency
	}

	if err := s.repo.Update(ctx, rest); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось обновить ресторан")
	}

	s.publish(restaurantID)
	return rest, nil
}

// Delete удаляет ресторан пользователя вместе с категориями и блюдами.
func (s *RestaurantService) Delete(ctx context.Context, userID, restaurantID uuid.UUID) error {
	if _, err := s.owned(ctx, userID, restaurantID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, restaurantID); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось удалить ресторан")
	}

	s.publish(restaurantID)
	return nil
}

// owned загружает ресторан и проверяет владение.
func (s *RestaurantService) owned(ctx context.Context, userID, restaurantID uuid.UUID) (*models.Restaurant, error) {
	rest, err := s.repo.GetByID(ctx, restaurantID)
	if errors.Is(err, repository.ErrRestaurantNotFound) {
		return nil, apperror.ErrRestaurantNotFound
	}
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось загрузить ресторан")
	}
	if rest.UserID != userID {
		return nil, apperror.ErrRestaurantNotFound
	}
	return rest, nil
}

func (s *RestaurantService) publish(restaurantID uuid.UUID) {
	if s.publisher != nil {
		s.publisher.MenuUpdated(restaurantID)
	}
}
