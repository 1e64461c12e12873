package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rit1708/Digital-menu/internal/http/handlers/common"
	"github.com/rit1708/Digital-menu/internal/service"
)

// CategoryHandler предоставляет HTTP слой CRUD категорий меню.
type CategoryHandler struct {
	categories *service.CategoryService
}

// NewCategoryHandler создаёт хэндлер.
func NewCategoryHandler(categories *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

type categoryRequest struct {
	Name     string `json:"name" binding:"required"`
	Position int    `json:"position"`
}

// Create обрабатывает POST /restaurants/:id/categories.
func (h *CategoryHandler) Create(c *gin.Context) {
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

	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	cat, err := h.categories.Create(c.Request.Context(), userID, restaurantID, service.CategoryInput{
		Name:     req.Name,
		Position: req.Position,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, cat)
}

// List обрабатывает GET /restaurants/:id/categories.
func (h *CategoryHandler) List(c *gin.Context) {
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

	categories, err := h.categories.List(c.Request.Context(), userID, restaurantID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}

// Update обрабатывает PUT /categories/:id.
func (h *CategoryHandler) Update(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	categoryID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	cat, err := h.categories.Update(c.Request.Context(), userID, categoryID, service.CategoryInput{
		Name:     req.Name,
		Position: req.Position,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, cat)
}

// Delete обрабатывает DELETE /categories/:id.
func (h *CategoryHandler) Delete(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	categoryID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := h.categories.Delete(c.Request.Context(), userID, categoryID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "категория удалена"})
}
