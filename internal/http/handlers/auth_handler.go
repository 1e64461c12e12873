package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rit1708/Digital-menu/internal/http/handlers/common"
	"github.com/rit1708/Digital-menu/internal/service"
	"github.com/rit1708/Digital-menu/internal/validation"
)

// AuthHandler предоставляет HTTP слой беспарольной аутентификации.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler создаёт хэндлер.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// SendCode обрабатывает POST /auth/send-code.
// Поле code в ответе присутствует только когда отправка писем выключена.
func (h *AuthHandler) SendCode(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	code, err := h.auth.SendCode(c.Request.Context(), req.Email)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	resp := gin.H{"message": "код подтверждения отправлен"}
	if code != "" {
		resp["code"] = code
	}
	c.JSON(http.StatusOK, resp)
}

// Register обрабатывает POST /auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Email   string `json:"email" binding:"required"`
		Code    string `json:"code" binding:"required"`
		Name    string `json:"name" binding:"required"`
		Country string `json:"country" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := validation.ValidateCode(req.Code); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	result, err := h.auth.VerifyAndRegister(c.Request.Context(), req.Email, req.Code, req.Name, req.Country)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token": result.Token,
		"user":  result.User,
	})
}

// Login обрабатывает POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required"`
		Code  string `json:"code" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := validation.ValidateCode(req.Code); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	result, err := h.auth.VerifyAndLogin(c.Request.Context(), req.Email, req.Code)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": result.Token,
		"user":  result.User,
	})
}

// Me обрабатывает GET /auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	user, err := h.auth.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// Logout обрабатывает POST /auth/logout. Всегда успешен для валидной сессии;
// токен после выхода перестаёт аутентифицировать запросы.
func (h *AuthHandler) Logout(c *gin.Context) {
	token, err := common.CurrentToken(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	if err := h.auth.Logout(c.Request.Context(), token); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
