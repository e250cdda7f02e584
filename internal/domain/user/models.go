package user

import (
	"errors"
	"time"
)

// Domain errors
var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already registered")
)

// User represents a registered account owner. The password hash never
// leaves the backend.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// CreateParams contains parameters for registering a new user
type CreateParams struct {
	Email        string
	PasswordHash string
}

// Validate validates the create parameters
func (p CreateParams) Validate() error {
	if p.Email == "" {
		return errors.New("email is required")
	}
	if p.PasswordHash == "" {
		return errors.New("password hash is required")
	}
	return nil
}
