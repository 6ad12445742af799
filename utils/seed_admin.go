package utils

import (
	"fmt"
	"strings"

	"github.com/princinho/tradecatalog/models"
)

// SeedAdmin builds the back-office identity checked by the local
// authenticator from the configured ADMIN_EMAIL / ADMIN_PASSWORD.
func SeedAdmin(email, password string) (models.Admin, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return models.Admin{}, fmt.Errorf("missing ADMIN_EMAIL or ADMIN_PASSWORD env vars")
	}

	hash, err := HashPassword(password)
	if err != nil {
		return models.Admin{}, fmt.Errorf("hash admin password: %w", err)
	}

	return models.Admin{
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	}, nil
}
