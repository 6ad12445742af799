package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/princinho/tradecatalog/models"
	"github.com/princinho/tradecatalog/utils"
)

// LocalAuthenticator checks credentials against one configured admin and
// issues a signed access token. It is used when no backend is configured.
type LocalAuthenticator struct {
	admin  models.Admin
	secret string
	ttl    time.Duration
}

var _ Authenticator = (*LocalAuthenticator)(nil)

func NewLocalAuthenticator(admin models.Admin, secret string, ttl time.Duration) (*LocalAuthenticator, error) {
	if admin.Email == "" || admin.PasswordHash == "" {
		return nil, errors.New("local admin is not configured (ADMIN_EMAIL, ADMIN_PASSWORD)")
	}
	if secret == "" {
		return nil, errors.New("JWT_SECRET is required for local login")
	}
	return &LocalAuthenticator{admin: admin, secret: secret, ttl: ttl}, nil
}

func (a *LocalAuthenticator) Authenticate(_ context.Context, email, password string) (string, error) {
	if strings.ToLower(strings.TrimSpace(email)) != a.admin.Email {
		return "", ErrInvalidCredentials
	}
	if err := utils.CheckPassword(a.admin.PasswordHash, password); err != nil {
		return "", ErrInvalidCredentials
	}
	token, err := utils.GenerateAccessToken(a.admin.Email, string(a.admin.Role), a.secret, a.ttl)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return token, nil
}
