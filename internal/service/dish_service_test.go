package service

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/rit1708/Digital-menu/internal/pkg/apperror"
)

type crudFixture struct {
	restaurants *RestaurantService
	categories  *CategoryService
	dishes      *DishService
}

func newCRUDFixture() crudFixture {
	restStore := newMockRestaurantStore()
	catStore := newMockCategoryStore()
	dishStore := newMockDishStore()

	restaurants := NewRestaurantService(restStore, nil)
	return crudFixture{
		restaurants: restaurants,
		categories:  NewCategoryService(catStore, restaurants, nil),
		dishes:      NewDishService(dishStore, catStore, restaurants, nil),
	}
}

func TestDishService_CreateWithCategories(t *testing.T) {
	f := newCRUDFixture()
	ctx := context.Background()
	owner := uuid.New()

	rest, err := f.restaurants.Create(ctx, owner, RestaurantInput{Name: "Spice Route"})
	if err != nil {
		t.Fatalf("create restaurant вернул ошибку: %v", err)
	}
	starters, err := f.categories.Create(ctx, owner, rest.ID, CategoryInput{Name: "Закуски", Position: 1})
	if err != nil {
		t.Fatalf("create category вернул ошибку: %v", err)
	}

	dish, err := f.dishes.Create(ctx, owner, rest.ID, DishInput{
		Name:        "Samosa",
		Price:       120,
		IsAvailable: true,
		CategoryIDs: []uuid.UUID{starters.ID, starters.ID},
	})
	if err != nil {
		t.Fatalf("create dish вернул ошибку: %v", err)
	}
	if len(dish.CategoryIDs) != 1 {
		t.Fatalf("дубликаты категорий должны схлопываться, получили %d", len(dish.CategoryIDs))
	}
}

func TestDishService_RejectsForeignCategory(t *testing.T) {
	f := newCRUDFixture()
	ctx := context.Background()
	owner := uuid.New()

	mine, err := f.restaurants.Create(ctx, owner, RestaurantInput{Name: "Mine"})
	if err != nil {
		t.Fatalf("create restaurant вернул ошибку: %v", err)
	}
	other, err := f.restaurants.Create(ctx, owner, RestaurantInput{Name: "Other"})
	if err != nil {
		t.Fatalf("create restaurant вернул ошибку: %v", err)
	}
	foreign, err := f.categories.Create(ctx, owner, other.ID, CategoryInput{Name: "Десерты"})
	if err != nil {
		t.Fatalf("create category вернул ошибку: %v", err)
	}

	// Категория другого ресторана, даже своего, отклоняется как BadRequest.
	_, err = f.dishes.Create(ctx, owner, mine.ID, DishInput{
		Name:        "Gulab Jamun",
		Price:       90,
		IsAvailable: true,
		CategoryIDs: []uuid.UUID{foreign.ID},
	})
	if !apperror.IsBadRequest(err) {
		t.Fatalf("чужая категория должна давать BadRequest, получили %v", err)
	}
	_, err = f.dishes.Create(ctx, owner, mine.ID, DishInput{
		Name:        "Kheer",
		Price:       80,
		IsAvailable: true,
		CategoryIDs: []uuid.UUID{uuid.New()},
	})
	if !apperror.IsBadRequest(err) {
		t.Fatalf("несуществующая категория должна давать BadRequest, получили %v", err)
	}
}

func TestDishService_OwnershipHidesForeign(t *testing.T) {
	f := newCRUDFixture()
	ctx := context.Background()
	owner := uuid.New()
	stranger := uuid.New()

	rest, _ := f.restaurants.Create(ctx, owner, RestaurantInput{Name: "Hidden"})
	dish, err := f.dishes.Create(ctx, owner, rest.ID, DishInput{Name: "Thali", Price: 250, IsAvailable: true})
	if err != nil {
		t.Fatalf("create dish вернул ошибку: %v", err)
	}

	if _, err := f.dishes.Get(ctx, stranger, dish.ID); !apperror.IsNotFound(err) {
		t.Fatalf("чужое блюдо должно давать NotFound, получили %v", err)
	}
	if _, err := f.dishes.Update(ctx, stranger, dish.ID, DishInput{Name: "Stolen", Price: 1, IsAvailable: true}); !apperror.IsNotFound(err) {
		t.Fatalf("update чужого блюда должен давать NotFound, получили %v", err)
	}
	if err := f.dishes.Delete(ctx, stranger, dish.ID); !apperror.IsNotFound(err) {
		t.Fatalf("delete чужого блюда должен давать NotFound, получили %v", err)
	}
	if _, err := f.dishes.List(ctx, stranger, rest.ID, 20, 0); !apperror.IsNotFound(err) {
		t.Fatalf("list блюд чужого ресторана должен давать NotFound, получили %v", err)
	}
}

func TestDishService_ValidatesPrice(t *testing.T) {
	f := newCRUDFixture()
	ctx := context.Background()
	owner := uuid.New()

	rest, _ := f.restaurants.Create(ctx, owner, RestaurantInput{Name: "Cheap"})
	if _, err := f.dishes.Create(ctx, owner, rest.ID, DishInput{Name: "Free Lunch", Price: -1, IsAvailable: true}); !apperror.IsBadRequest(err) {
		t.Fatalf("отрицательная цена должна давать BadRequest, получили %v", err)
	}
}

func TestCategoryService_OwnershipHidesForeign(t *testing.T) {
	f := newCRUDFixture()
	ctx := context.Background()
	owner := uuid.New()
	stranger := uuid.New()

	rest, _ := f.restaurants.Create(ctx, owner, RestaurantInput{Name: "Walled Garden"})
	cat, err := f.categories.Create(ctx, owner, rest.ID, CategoryInput{Name: "Супы"})
	if err != nil {
		t.Fatalf("create category вернул ошибку: %v", err)
	}

	if _, err := f.categories.Create(ctx, stranger, rest.ID, CategoryInput{Name: "Взлом"}); !apperror.IsNotFound(err) {
		t.Fatalf("create в чужом ресторане должен давать NotFound, получили %v", err)
	}
	if _, err := f.categories.Update(ctx, stranger, cat.ID, CategoryInput{Name: "Hijacked"}); !apperror.IsNotFound(err) {
		t.Fatalf("update чужой категории должен давать NotFound, получили %v", err)
	}
	if err := f.categories.Delete(ctx, stranger, cat.ID); !apperror.IsNotFound(err) {
		t.Fatalf("delete чужой категории должен давать NotFound, получили %v", err)
	}
}
