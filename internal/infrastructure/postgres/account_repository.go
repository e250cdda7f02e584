package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"centavo/internal/domain/account"
)

type AccountRepository struct {
	db *DB
}

func NewAccountRepository(db *DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, params account.CreateParams) (*account.Account, error) {
	query := `
		INSERT INTO accounts (user_id, name, account_type, balance, initial_balance, plaid_account_id)
		VALUES ($1, $2, $3, $4, $4, $5)
		RETURNING id, user_id, name, account_type, balance, initial_balance, plaid_account_id, created_at
	`

	var acct account.Account
	err := r.db.QueryRowContext(
		ctx, query,
		params.UserID, params.Name, params.AccountType, params.Balance, params.PlaidAccountID,
	).Scan(
		&acct.ID, &acct.UserID, &acct.Name, &acct.AccountType,
		&acct.Balance, &acct.InitialBalance, &acct.PlaidAccountID, &acct.CreatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return &acct, nil
}

func (r *AccountRepository) GetForUser(ctx context.Context, id, userID int64) (*account.Account, error) {
	query := `
		SELECT id, user_id, name, account_type, balance, initial_balance, plaid_account_id, created_at
		FROM accounts
		WHERE id = $1 AND user_id = $2
	`

	var acct account.Account
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&acct.ID, &acct.UserID, &acct.Name, &acct.AccountType,
		&acct.Balance, &acct.InitialBalance, &acct.PlaidAccountID, &acct.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, account.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return &acct, nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*account.Account, error) {
	query := `
		SELECT id, user_id, name, account_type, balance, initial_balance, plaid_account_id, created_at
		FROM accounts
		WHERE id = $1
	`

	var acct account.Account
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&acct.ID, &acct.UserID, &acct.Name, &acct.AccountType,
		&acct.Balance, &acct.InitialBalance, &acct.PlaidAccountID, &acct.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, account.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return &acct, nil
}

func (r *AccountRepository) ListByUser(ctx context.Context, userID int64) ([]*account.Account, error) {
	query := `
		SELECT id, user_id, name, account_type, balance, initial_balance, plaid_account_id, created_at
		FROM accounts
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*account.Account
	for rows.Next() {
		var acct account.Account
		err := rows.Scan(
			&acct.ID, &acct.UserID, &acct.Name, &acct.AccountType,
			&acct.Balance, &acct.InitialBalance, &acct.PlaidAccountID, &acct.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, &acct)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating accounts: %w", err)
	}

	return accounts, nil
}

func (r *AccountRepository) AddToBalance(ctx context.Context, id int64, delta float64) error {
	query := `
		UPDATE accounts
		SET balance = balance + $1
		WHERE id = $2
	`

	result, err := r.db.ExecContext(ctx, query, delta, id)
	if err != nil {
		return fmt.Errorf("failed to update account balance: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return account.ErrNotFound
	}

	return nil
}

func (r *AccountRepository) SetBalance(ctx context.Context, id int64, balance float64) error {
	query := `
		UPDATE accounts
		SET balance = $1
		WHERE id = $2
	`

	result, err := r.db.ExecContext(ctx, query, balance, id)
	if err != nil {
		return fmt.Errorf("failed to set account balance: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return account.ErrNotFound
	}

	return nil
}
