package user

import "context"

// Repository defines the persistence contract for users.
type Repository interface {
	// Create persists a new user. Returns ErrEmailTaken when the email
	// is already registered.
	Create(ctx context.Context, params CreateParams) (*User, error)

	// GetByEmail returns the user with the given email, or ErrNotFound.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// GetByID returns the user with the given id, or ErrNotFound.
	GetByID(ctx context.Context, id int64) (*User, error)

	// ListIDs returns the ids of all registered users. Used by the
	// balance-audit scheduler and the admin CLI.
	ListIDs(ctx context.Context) ([]int64, error)
}
