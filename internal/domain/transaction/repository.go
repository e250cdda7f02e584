package transaction

import (
	"context"

	"centavo/internal/domain/account"
)

// Repository defines the persistence contract for transactions. All
// ownership-scoped lookups join through the accounts table so that a
// transaction is reachable only via an account owned by the caller.
type Repository interface {
	Create(ctx context.Context, params CreateParams) (*Transaction, error)

	// GetForUser returns the transaction with the given id only when its
	// parent account is owned by userID; otherwise ErrNotFound.
	GetForUser(ctx context.Context, id, userID int64) (*Transaction, error)

	// ListByUser returns all transactions whose parent account is owned
	// by userID.
	ListByUser(ctx context.Context, userID int64) ([]*Transaction, error)

	Update(ctx context.Context, id int64, params UpdateParams) (*Transaction, error)

	Delete(ctx context.Context, id int64) error

	// SumSigned returns the sum of signed amounts (+income, -expense)
	// over all transactions of an account. Used by the balance audit.
	SumSigned(ctx context.Context, accountID int64) (float64, error)
}

// AccountStore is the slice of the account repository the transaction
// service needs for ownership checks and balance mutation.
type AccountStore interface {
	GetForUser(ctx context.Context, id, userID int64) (*account.Account, error)
	GetByID(ctx context.Context, id int64) (*account.Account, error)
	ListByUser(ctx context.Context, userID int64) ([]*account.Account, error)
	AddToBalance(ctx context.Context, id int64, delta float64) error
	SetBalance(ctx context.Context, id int64, balance float64) error
}

// TxRunner executes fn within a single database transaction. The
// transaction is carried in the context; repository calls made with that
// context share the session, and it is committed or rolled back exactly
// once when fn returns.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
