package account

import (
	"errors"
	"time"
)

// Domain errors
var (
	ErrNotFound     = errors.New("account not found")
	ErrInvalidInput = errors.New("invalid input")
)

// Account represents a named financial container with a running balance,
// owned by one user. Balance is a stored running total; the invariant
// balance == initial_balance + sum of signed transaction amounts holds as
// long as all mutations go through the transaction service.
type Account struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	Name           string    `json:"name"`
	AccountType    string    `json:"account_type"`
	Balance        float64   `json:"balance"`
	InitialBalance float64   `json:"initial_balance"`
	PlaidAccountID *string   `json:"plaid_account_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// CreateParams contains parameters for creating a new account
type CreateParams struct {
	UserID         int64
	Name           string
	AccountType    string
	Balance        float64
	PlaidAccountID *string
}

// Validate validates the create parameters. Only field presence is
// checked; account_type carries no closed value set.
func (p CreateParams) Validate() error {
	if p.UserID <= 0 {
		return errors.New("valid user ID is required")
	}
	if p.Name == "" {
		return errors.New("account name is required")
	}
	if p.AccountType == "" {
		return errors.New("account type is required")
	}
	return nil
}
