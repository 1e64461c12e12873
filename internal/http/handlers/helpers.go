package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rit1708/Digital-menu/internal/logger"
	"github.com/rit1708/Digital-menu/internal/pkg/apperror"
)

// respondServiceError переводит ошибку сервиса в HTTP ответ.
// AppError несёт свой статус и безопасное сообщение, всё прочее маскируется.
func respondServiceError(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.HTTPStatus, gin.H{"error": appErr.Message, "code": appErr.Code})
		return
	}

	if logger.Log != nil {
		logger.Log.WithError(err).Error("handler: необработанная ошибка")
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "внутренняя ошибка сервера"})
}
