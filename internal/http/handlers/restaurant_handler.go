package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rit1708/Digital-menu/internal/http/handlers/common"
	"github.com/rit1708/Digital-menu/internal/service"
)

// RestaurantHandler предоставляет HTTP слой CRUD ресторанов.
type RestaurantHandler struct {
	restaurants *service.RestaurantService
}

// NewRestaurantHandler создаёт хэндлер.
func NewRestaurantHandler(restaurants *service.RestaurantService) *RestaurantHandler {
	return &RestaurantHandler{restaurants: restaurants}
}

type restaurantRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	Address     *string `json:"address"`
	Currency    string  `json:"currency"`
}

func (r restaurantRequest) toInput() service.RestaurantInput {
	return service.RestaurantInput{
		Name:        r.Name,
		Description: r.Description,
		Address:     r.Address,
		Currency:    r.Currency,
	}
}

// Create обрабатывает POST /restaurants.
func (h *RestaurantHandler) Create(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	var req restaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	rest, err := h.restaurants.Create(c.Request.Context(), userID, req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, rest)
}

// List обрабатывает GET /restaurants.
func (h *RestaurantHandler) List(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	limit := common.ParseIntQuery(c, "limit", 20)
	offset := common.ParseIntQuery(c, "offset", 0)

	restaurants, err := h.restaurants.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, restaurants)
}

// Get обрабатывает GET /restaurants/:id.
func (h *RestaurantHandler) Get(c *gin.Context) {
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

	rest, err := h.restaurants.Get(c.Request.Context(), userID, restaurantID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, rest)
}

// Update обрабатывает PUT /restaurants/:id.
func (h *RestaurantHandler) Update(c *gin.Context) {
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

	var req restaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	rest, err := h.restaurants.Update(c.Request.Context(), userID, restaurantID, req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, rest)
}

// Delete обрабатывает DELETE /restaurants/:id.
func (h *RestaurantHandler) Delete(c *gin.Context) {
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

	if err := h.restaurants.Delete(c.Request.Context(), userID, restaurantID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "ресторан удалён"})
}
