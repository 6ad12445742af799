package models

type Role string

const (
	RoleAdmin Role = "ADMIN"
)

// Admin is the single back-office identity accepted by the local authenticator.
type Admin struct {
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // never expose
	Role         Role   `json:"role"`
}
