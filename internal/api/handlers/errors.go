package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"konnection/backend/internal/services"
)

// respondServiceError maps service errors to HTTP responses.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrRoomNotFound),
		errors.Is(err, services.ErrReviewNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrAddressRequired),
		errors.Is(err, services.ErrReviewNameRequired),
		errors.Is(err, services.ErrMessageRequired),
		errors.Is(err, services.ErrLanguageRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrChatUpstream):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
