package models

import (
	"time"

	"github.com/google/uuid"
)

// Restaurant описывает ресторан, принадлежащий одному пользователю.
type Restaurant struct {
	ID          uuid.UUID `db:"id" json:"id"`
	UserID      uuid.UUID `db:"user_id" json:"user_id"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description,omitempty"`
	Address     *string   `db:"address" json:"address,omitempty"`
	Currency    string    `db:"currency" json:"currency"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Category — раздел меню внутри ресторана.
type Category struct {
	ID           uuid.UUID `db:"id" json:"id"`
	RestaurantID uuid.UUID `db:"restaurant_id" json:"restaurant_id"`
	Name         string    `db:"name" json:"name"`
	Position     int       `db:"position" json:"position"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Dish — блюдо ресторана. Может входить в несколько категорий.
type Dish struct {
	ID           uuid.UUID   `db:"id" json:"id"`
	RestaurantID uuid.UUID   `db:"restaurant_id" json:"restaurant_id"`
	Name         string      `db:"name" json:"name"`
	Description  *string     `db:"description" json:"description,omitempty"`
	Price        float64     `db:"price" json:"price"`
	ImageURL     *string     `db:"image_url" json:"image_url,omitempty"`
	IsAvailable  bool        `db:"is_available" json:"is_available"`
	Position     int         `db:"position" json:"position"`
	CreatedAt    time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time   `db:"updated_at" json:"updated_at"`
	CategoryIDs  []uuid.UUID `db:"-" json:"category_ids"`
}

// MenuSection — категория вместе с блюдами для публичного меню.
type MenuSection struct {
	Category *Category `json:"category,omitempty"`
	Dishes   []Dish    `json:"dishes"`
}

// Menu — публичное представление меню ресторана по ссылке / QR-коду.
type Menu struct {
	Restaurant *Restaurant   `json:"restaurant"`
	Sections   []MenuSection `json:"sections"`
}
