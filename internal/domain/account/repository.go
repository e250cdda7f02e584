package account

import "context"

// Repository defines the persistence contract for accounts.
type Repository interface {
	// Create persists a new account and returns the stored row.
	Create(ctx context.Context, params CreateParams) (*Account, error)

	// GetForUser returns the account with the given id only when it is
	// owned by userID; otherwise ErrNotFound. Callers cannot distinguish
	// a missing account from a foreign one.
	GetForUser(ctx context.Context, id, userID int64) (*Account, error)

	// GetByID returns an account regardless of owner. Reserved for the
	// balance audit paths; request handlers must use GetForUser.
	GetByID(ctx context.Context, id int64) (*Account, error)

	// ListByUser returns all accounts owned by userID.
	ListByUser(ctx context.Context, userID int64) ([]*Account, error)

	// AddToBalance applies a signed delta to the stored balance.
	AddToBalance(ctx context.Context, id int64, delta float64) error

	// SetBalance overwrites the stored balance. Used only by the
	// audit/repair path.
	SetBalance(ctx context.Context, id int64, balance float64) error
}
