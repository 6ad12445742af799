package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/princinho/tradecatalog/database"
	"github.com/princinho/tradecatalog/store"
	"github.com/princinho/tradecatalog/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticAuth string

func (s staticAuth) Authenticate(context.Context, string, string) (string, error) {
	return string(s), nil
}

func serve(t *testing.T, auth *store.AuthStore, secret, header string) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var seen *gin.Context
	r := gin.New()
	r.GET("/admin", AuthMiddleware(auth, secret), func(c *gin.Context) {
		seen = c.Copy()
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w, seen
}

func TestOpaqueBackendToken(t *testing.T) {
	auth := store.NewAuthStore(staticAuth("opaque-token"), database.NewMemoryStorage())

	w, _ := serve(t, auth, "", "Bearer opaque-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	ok, err := auth.Login(context.Background(), "a@b.co", "x")
	require.NoError(t, err)
	require.True(t, ok)

	tests := []struct {
		name   string
		header string
		code   int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"not bearer", "Basic opaque-token", http.StatusUnauthorized},
		{"wrong token", "Bearer other", http.StatusUnauthorized},
		{"session token", "Bearer opaque-token", http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _ := serve(t, auth, "", tt.header)
			assert.Equal(t, tt.code, w.Code)
		})
	}
}

func TestSignedTokenSetsClaims(t *testing.T) {
	token, err := utils.GenerateAccessToken("admin@example.com", "ADMIN", "secret", time.Hour)
	require.NoError(t, err)
	auth := store.NewAuthStore(staticAuth(token), database.NewMemoryStorage())
	_, err = auth.Login(context.Background(), "admin@example.com", "x")
	require.NoError(t, err)

	w, seen := serve(t, auth, "secret", "Bearer "+token)
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "admin@example.com", seen.GetString("email"))
	assert.Equal(t, "ADMIN", seen.GetString("role"))

	w, _ = serve(t, auth, "another-secret", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
