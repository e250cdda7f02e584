package transaction

import (
	"errors"
	"strings"
	"time"
)

// Domain errors
var (
	ErrNotFound          = errors.New("transaction not found")
	ErrInvalidKind       = errors.New("invalid transaction type")
	ErrAmountNotPositive = errors.New("transaction amount must be positive")
)

// Kind is the two-variant transaction category. Any other value is
// rejected at the boundary, before anything is persisted.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// ParseKind parses a transaction kind case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(s)) {
	case KindIncome:
		return KindIncome, nil
	case KindExpense:
		return KindExpense, nil
	default:
		return "", ErrInvalidKind
	}
}

// Delta returns the signed balance effect of a transaction of this kind:
// +amount for income, -amount for expense.
func (k Kind) Delta(amount float64) float64 {
	if k == KindExpense {
		return -amount
	}
	return amount
}

// Transaction represents a single income or expense event affecting
// exactly one account's balance.
type Transaction struct {
	ID                 int64     `json:"id"`
	AccountID          int64     `json:"account_id"`
	Amount             float64   `json:"amount"`
	Kind               Kind      `json:"type"`
	Date               time.Time `json:"date"`
	Description        string    `json:"description"`
	Category           *string   `json:"category,omitempty"`
	PlaidTransactionID *string   `json:"plaid_transaction_id,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

// CreateParams contains parameters for creating a new transaction
type CreateParams struct {
	AccountID          int64
	Amount             float64
	Kind               Kind
	Date               time.Time
	Description        string
	Category           *string
	PlaidTransactionID *string
}

// Validate checks amount and kind. Runs before any row or balance is
// touched so that a rejected request leaves no persisted side effect.
func (p CreateParams) Validate() error {
	if p.Amount <= 0 {
		return ErrAmountNotPositive
	}
	if p.Kind != KindIncome && p.Kind != KindExpense {
		return ErrInvalidKind
	}
	return nil
}

// UpdateParams contains the fields overwritten by an update. Description
// is intentionally absent: updates replace amount, kind, category, date
// and the provider reference only.
type UpdateParams struct {
	Amount             float64
	Kind               Kind
	Date               time.Time
	Category           *string
	PlaidTransactionID *string
}

// Validate checks amount and kind for an update.
func (p UpdateParams) Validate() error {
	if p.Amount <= 0 {
		return ErrAmountNotPositive
	}
	if p.Kind != KindIncome && p.Kind != KindExpense {
		return ErrInvalidKind
	}
	return nil
}
