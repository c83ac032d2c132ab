package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/wdylt/wdylt/internal/authz"
	"github.com/wdylt/wdylt/internal/model"
)

var errBadRequest = errors.New("bad request")

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrFolderNotFound), errors.Is(err, model.ErrBookmarkNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrEmptyName), errors.Is(err, model.ErrEmptyURL), errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrCycle):
		return http.StatusConflict
	case errors.Is(err, authz.ErrUnauthenticated), errors.Is(err, authz.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, authz.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, logger *zap.Logger, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func abortError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
