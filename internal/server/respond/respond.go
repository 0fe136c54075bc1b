// Package respond maps usecase errors onto HTTP responses so every handler
// reports the taxonomy the same way.
package respond

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/salestracker/salestracker-server/internal/apperr"
)

// Error writes the JSON error response matching err's kind.
func Error(c *gin.Context, log *zap.Logger, err error) {
	switch {
	case apperr.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperr.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case apperr.IsInsufficientStock(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		if log != nil {
			log.Error("request failed", zap.Error(err))
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
