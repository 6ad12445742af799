package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/princinho/tradecatalog/dto"
	"github.com/princinho/tradecatalog/store"
)

var _ store.Authenticator = (*Client)(nil)

// Authenticate posts the credentials to /auth/login and returns the session token.
func (c *Client) Authenticate(ctx context.Context, email, password string) (string, error) {
	var res dto.LoginResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", dto.LoginDTO{Email: email, Password: password}, &res)

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Status {
		case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden:
			return "", store.ErrInvalidCredentials
		}
		return "", fmt.Errorf("%w: %v", store.ErrBackendUnavailable, err)
	}
	if err != nil {
		return "", err
	}
	return res.Token, nil
}
