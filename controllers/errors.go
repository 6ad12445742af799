package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/princinho/tradecatalog/client"
	"github.com/princinho/tradecatalog/dto"
	"github.com/princinho/tradecatalog/store"
	"go.uber.org/zap"
)

// respondError writes the JSON error body for a store or backend error.
func respondError(c *gin.Context, err error) {
	var formErrs dto.ValidationErrors
	var apiErr *client.APIError
	switch {
	case errors.As(err, &formErrs):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form", "errors": formErrs})
	case errors.Is(err, store.ErrInvalidStatus), errors.Is(err, store.ErrMissingProduct):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	case errors.As(err, &apiErr) && (apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "admin session rejected by backend"})
	default:
		zap.S().Errorf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "backend request failed", "details": err.Error()})
	}
}
