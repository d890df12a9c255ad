package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/deck-api/internal/handler/dto"
	apperrors "github.com/yourusername/deck-api/internal/pkg/errors"
)

// respondError переводит ошибку сервиса в HTTP ответ:
// ошибки валидации -> 400, все остальное -> 500 с текстом ошибки бэкенда
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	status := http.StatusInternalServerError
	if errors.Is(err, apperrors.ErrValidation) {
		status = http.StatusBadRequest
	}
	c.JSON(status, dto.ErrorResponse{Error: err.Error()})
}

// respondBadRequest используется, когда тело запроса не удалось разобрать
func respondBadRequest(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request data: " + err.Error()})
}

// bindJSON разбирает тело запроса. Пустое тело не считается ошибкой:
// отсутствие обязательных полей проверяет сервис.
// Возвращает false, если ответ уже отправлен
func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		respondBadRequest(c, err)
		return false
	}
	return true
}
