package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/task-tracker/internal/domain"
	"github.com/gin-gonic/gin"
)

const (
	errInternalServer     = "Internal server error"
	errServiceUnavailable = "Service temporarily unavailable"
	errValidation         = "Invalid request"
	errUnauthorized       = "Unauthorized"
	errInvalidCredentials = "Invalid email or password"
	errEmailTaken         = "Email is already registered"
	errTaskNotFound       = "Task not found"
)

// respondError maps an error kind to a status and a fixed message. Details
// only go to the log.
func respondError(c *gin.Context, logger *slog.Logger, op string, err error) {
	ctx := c.Request.Context()

	switch {
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": errValidation})
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": errInvalidCredentials})
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": errTaskNotFound})
	case errors.Is(err, domain.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": errEmailTaken})
	case errors.Is(err, domain.ErrUnavailable):
		logger.ErrorContext(ctx, op, "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": errServiceUnavailable})
	default:
		logger.ErrorContext(ctx, op, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
	}
}

// bindError answers a request whose body failed binding or validation.
func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": errValidation, "details": err.Error()})
}
