package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/princinho/tradecatalog/dto"
	"github.com/princinho/tradecatalog/middleware"
	"github.com/princinho/tradecatalog/store"
)

func Login(auth *store.AuthStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.LoginDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ok, err := auth.Login(c.Request.Context(), body.Email, body.Password)
		if !ok {
			if errors.Is(err, store.ErrInvalidCredentials) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
				return
			}
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "login is unavailable, try again later"})
			return
		}

		c.JSON(http.StatusOK, dto.LoginResponse{Token: auth.Token()})
	}
}

// Logout ends the admin session. Mount it behind AuthMiddleware.
func Logout(auth *store.AuthStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth.Logout()
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// GetSession reports whether the caller holds the admin session. Anonymous
// callers always see false.
func GetSession(auth *store.AuthStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := middleware.BearerToken(c)
		c.JSON(http.StatusOK, gin.H{"authenticated": ok && auth.Holds(token)})
	}
}
