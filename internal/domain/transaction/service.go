package transaction

import (
	"context"
)

// Service contains the balance-mutation logic tied to transaction writes.
// Every write resolves ownership, validates input, persists the row and
// applies the signed balance delta inside one database transaction.
type Service struct {
	txns     Repository
	accounts AccountStore
	db       TxRunner
}

// NewService creates a new transaction service
func NewService(txns Repository, accounts AccountStore, db TxRunner) *Service {
	return &Service{txns: txns, accounts: accounts, db: db}
}

// Create persists a new transaction on an account owned by userID and
// applies its delta to the account balance. Validation runs before the
// insert, so an invalid amount or kind leaves no side effect.
func (s *Service) Create(ctx context.Context, userID int64, params CreateParams) (*Transaction, error) {
	var created *Transaction

	err := s.db.RunInTx(ctx, func(ctx context.Context) error {
		acct, err := s.accounts.GetForUser(ctx, params.AccountID, userID)
		if err != nil {
			return err
		}

		if err := params.Validate(); err != nil {
			return err
		}

		created, err = s.txns.Create(ctx, params)
		if err != nil {
			return err
		}

		return s.accounts.AddToBalance(ctx, acct.ID, params.Kind.Delta(params.Amount))
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// List returns all transactions reachable through accounts owned by userID.
func (s *Service) List(ctx context.Context, userID int64) ([]*Transaction, error) {
	return s.txns.ListByUser(ctx, userID)
}

// Get returns a single transaction through the ownership join.
func (s *Service) Get(ctx context.Context, id, userID int64) (*Transaction, error) {
	return s.txns.GetForUser(ctx, id, userID)
}

// Update overwrites a transaction's mutable fields and moves the account
// balance from the old delta to the new one. The new values are validated
// before the old delta is reversed, so a rejected update changes nothing.
func (s *Service) Update(ctx context.Context, id, userID int64, params UpdateParams) (*Transaction, error) {
	var updated *Transaction

	err := s.db.RunInTx(ctx, func(ctx context.Context) error {
		existing, err := s.txns.GetForUser(ctx, id, userID)
		if err != nil {
			return err
		}

		if err := params.Validate(); err != nil {
			return err
		}

		if err := s.accounts.AddToBalance(ctx, existing.AccountID, -existing.Kind.Delta(existing.Amount)); err != nil {
			return err
		}

		updated, err = s.txns.Update(ctx, id, params)
		if err != nil {
			return err
		}

		return s.accounts.AddToBalance(ctx, existing.AccountID, params.Kind.Delta(params.Amount))
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete removes a transaction and reverses exactly the delta applied at
// its creation, so a create/delete round trip leaves the balance unchanged.
func (s *Service) Delete(ctx context.Context, id, userID int64) error {
	return s.db.RunInTx(ctx, func(ctx context.Context) error {
		existing, err := s.txns.GetForUser(ctx, id, userID)
		if err != nil {
			return err
		}

		if err := s.accounts.AddToBalance(ctx, existing.AccountID, -existing.Kind.Delta(existing.Amount)); err != nil {
			return err
		}

		return s.txns.Delete(ctx, existing.ID)
	})
}
