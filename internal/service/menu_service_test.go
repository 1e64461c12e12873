package service

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/rit1708/Digital-menu/internal/pkg/apperror"
)

func TestMenuService_Get(t *testing.T) {
	restStore := newMockRestaurantStore()
	catStore := newMockCategoryStore()
	dishStore := newMockDishStore()

	restaurants := NewRestaurantService(restStore, nil)
	categories := NewCategoryService(catStore, restaurants, nil)
	dishes := NewDishService(dishStore, catStore, restaurants, nil)
	menu := NewMenuService(restStore, catStore, dishStore)

	ctx := context.Background()
	owner := uuid.New()

	rest, err := restaurants.Create(ctx, owner, RestaurantInput{Name: "Tandoor"})
	if err != nil {
		t.Fatalf("create restaurant вернул ошибку: %v", err)
	}
	starters, _ := categories.Create(ctx, owner, rest.ID, CategoryInput{Name: "Закуски", Position: 1})
	mains, _ := categories.Create(ctx, owner, rest.ID, CategoryInput{Name: "Горячее", Position: 2})

	// Блюдо в двух категориях, доступное.
	if _, err := dishes.Create(ctx, owner, rest.ID, DishInput{
		Name: "Paneer Tikka", Price: 220, IsAvailable: true,
		CategoryIDs: []uuid.UUID{starters.ID, mains.ID},
	}); err != nil {
		t.Fatalf("create dish вернул ошибку: %v", err)
	}
	// Блюдо без категории.
	if _, err := dishes.Create(ctx, owner, rest.ID, DishInput{
		Name: "Lassi", Price: 80, IsAvailable: true,
	}); err != nil {
		t.Fatalf("create dish вернул ошибку: %v", err)
	}
	// Недоступное блюдо в публичное меню не попадает.
	if _, err := dishes.Create(ctx, owner, rest.ID, DishInput{
		Name: "Seasonal Special", Price: 400, IsAvailable: false,
		CategoryIDs: []uuid.UUID{mains.ID},
	}); err != nil {
		t.Fatalf("create dish вернул ошибку: %v", err)
	}

	got, err := menu.Get(ctx, rest.ID)
	if err != nil {
		t.Fatalf("get menu вернул ошибку: %v", err)
	}
	if got.Restaurant.ID != rest.ID {
		t.Fatalf("меню должно содержать ресторан")
	}

	// Две категории по порядку плюс секция без категории.
	if len(got.Sections) != 3 {
		t.Fatalf("ожидались 3 секции, получили %d", len(got.Sections))
	}
	if got.Sections[0].Category == nil || got.Sections[0].Category.ID != starters.ID {
		t.Fatalf("первая секция должна быть категорией с наименьшей позицией")
	}
	if got.Sections[1].Category == nil || got.Sections[1].Category.ID != mains.ID {
		t.Fatalf("вторая секция должна быть второй категорией")
	}
	if got.Sections[2].Category != nil {
		t.Fatalf("последняя секция должна быть без категории")
	}

	// Блюдо из двух категорий присутствует в обеих; недоступное скрыто.
	if len(got.Sections[0].Dishes) != 1 || got.Sections[0].Dishes[0].Name != "Paneer Tikka" {
		t.Fatalf("закуски должны содержать Paneer Tikka: %+v", got.Sections[0].Dishes)
	}
	if len(got.Sections[1].Dishes) != 1 || got.Sections[1].Dishes[0].Name != "Paneer Tikka" {
		t.Fatalf("горячее должно содержать только доступное блюдо: %+v", got.Sections[1].Dishes)
	}
	if len(got.Sections[2].Dishes) != 1 || got.Sections[2].Dishes[0].Name != "Lassi" {
		t.Fatalf("секция без категории должна содержать Lassi: %+v", got.Sections[2].Dishes)
	}
}

func TestMenuService_EmptyCategoryKept(t *testing.T) {
	restStore := newMockRestaurantStore()
	catStore := newMockCategoryStore()
	dishStore := newMockDishStore()

	restaurants := NewRestaurantService(restStore, nil)
	categories := NewCategoryService(catStore, restaurants, nil)
	menu := NewMenuService(restStore, catStore, dishStore)

	ctx := context.Background()
	owner := uuid.New()
	rest, _ := restaurants.Create(ctx, owner, RestaurantInput{Name: "Empty"})
	if _, err := categories.Create(ctx, owner, rest.ID, CategoryInput{Name: "Пустая"}); err != nil {
		t.Fatalf("create category вернул ошибку: %v", err)
	}

	got, err := menu.Get(ctx, rest.ID)
	if err != nil {
		t.Fatalf("get menu вернул ошибку: %v", err)
	}
	if len(got.Sections) != 1 {
		t.Fatalf("пустая категория должна остаться секцией, получили %d", len(got.Sections))
	}
	if got.Sections[0].Dishes == nil || len(got.Sections[0].Dishes) != 0 {
		t.Fatalf("секция пустой категории должна содержать пустой срез")
	}
}

func TestMenuService_UnknownRestaurant(t *testing.T) {
	menu := NewMenuService(newMockRestaurantStore(), newMockCategoryStore(), newMockDishStore())

	if _, err := menu.Get(context.Background(), uuid.New()); !apperror.IsNotFound(err) {
		t.Fatalf("неизвестный ресторан должен давать NotFound, получили %v", err)
	}
}
