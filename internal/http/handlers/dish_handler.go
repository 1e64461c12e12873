package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rit1708/Digital-menu/internal/http/handlers/common"
	"github.com/rit1708/Digital-menu/internal/service"
)

// DishHandler предоставляет HTTP слой CRUD блюд.
type DishHandler struct {
	dishes *service.DishService
}

// NewDishHandler создаёт хэндлер.
func NewDishHandler(dishes *service.DishService) *DishHandler {
	return &DishHandler{dishes: dishes}
}

type dishRequest struct {
	Name        string      `json:"name" binding:"required"`
	Description *string     `json:"description"`
	Price       float64     `json:"price"`
	ImageURL    *string     `json:"image_url"`
	IsAvailable *bool       `json:"is_available"`
	Position    int         `json:"position"`
	CategoryIDs []uuid.UUID `json:"category_ids"`
}

func (r dishRequest) toInput() service.DishInput {
	available := true
	if r.IsAvailable != nil {
		available = *r.IsAvailable
	}
	return service.DishInput{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		ImageURL:    r.ImageURL,
		IsAvailable: available,
		Position:    r.Position,
		CategoryIDs: r.CategoryIDs,
	}
}

// Create обрабатывает POST /restaurants/:id/dishes.
func (h *DishHandler) Create(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	restaurantID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req dishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	dish, err := h.dishes.Create(c.Request.Context(), userID, restaurantID, req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dish)
}

// List обрабатывает GET /restaurants/:id/dishes.
func (h *DishHandler) List(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	restaurantID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	limit := common.ParseIntQuery(c, "limit", 50)
	offset := common.ParseIntQuery(c, "offset", 0)

	dishes, err := h.dishes.List(c.Request.Context(), userID, restaurantID, limit, offset)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dishes)
}

// Get обрабатывает GET /dishes/:id.
func (h *DishHandler) Get(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	dishID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	dish, err := h.dishes.Get(c.Request.Context(), userID, dishID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dish)
}

// Update обрабатывает PUT /dishes/:id.
func (h *DishHandler) Update(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	dishID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req dishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	dish, err := h.dishes.Update(c.Request.Context(), userID, dishID, req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dish)
}

// Delete обрабатывает DELETE /dishes/:id.
func (h *DishHandler) Delete(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	dishID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := h.dishes.Delete(c.Request.Context(), userID, dishID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "блюдо удалено"})
}
