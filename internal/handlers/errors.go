package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/edunexus/backend/internal/access"
	"github.com/gin-gonic/gin"
)

// respondError переводит ошибку резолвера в HTTP-статус: отсутствие узла —
// 404, отказ в доступе — 403, отменённый запрос — 503 (решение "неизвестно",
// не отказ), всё остальное — 500. Недоступность хранилища никогда не
// маскируется под 403.
func respondError(c *gin.Context, err error) {
	switch {
	case access.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case access.IsDenied(err):
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Request canceled"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
