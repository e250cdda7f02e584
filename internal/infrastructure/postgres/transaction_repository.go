package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"centavo/internal/domain/transaction"
)

type TransactionRepository struct {
	db *DB
}

func NewTransactionRepository(db *DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(ctx context.Context, params transaction.CreateParams) (*transaction.Transaction, error) {
	query := `
		INSERT INTO transactions (account_id, amount, type, transaction_date, description, category, plaid_transaction_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, account_id, amount, type, transaction_date, description, category, plaid_transaction_id, created_at
	`

	var txn transaction.Transaction
	err := r.db.QueryRowContext(
		ctx, query,
		params.AccountID, params.Amount, params.Kind, params.Date,
		params.Description, params.Category, params.PlaidTransactionID,
	).Scan(
		&txn.ID, &txn.AccountID, &txn.Amount, &txn.Kind, &txn.Date,
		&txn.Description, &txn.Category, &txn.PlaidTransactionID, &txn.CreatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return &txn, nil
}

func (r *TransactionRepository) GetForUser(ctx context.Context, id, userID int64) (*transaction.Transaction, error) {
	query := `
		SELECT t.id, t.account_id, t.amount, t.type, t.transaction_date,
		       t.description, t.category, t.plaid_transaction_id, t.created_at
		FROM transactions t
		JOIN accounts a ON a.id = t.account_id
		WHERE t.id = $1 AND a.user_id = $2
	`

	var txn transaction.Transaction
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&txn.ID, &txn.AccountID, &txn.Amount, &txn.Kind, &txn.Date,
		&txn.Description, &txn.Category, &txn.PlaidTransactionID, &txn.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, transaction.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	return &txn, nil
}

func (r *TransactionRepository) ListByUser(ctx context.Context, userID int64) ([]*transaction.Transaction, error) {
	query := `
		SELECT t.id, t.account_id, t.amount, t.type, t.transaction_date,
		       t.description, t.category, t.plaid_transaction_id, t.created_at
		FROM transactions t
		JOIN accounts a ON a.id = t.account_id
		WHERE a.user_id = $1
		ORDER BY t.transaction_date DESC, t.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var transactions []*transaction.Transaction
	for rows.Next() {
		var txn transaction.Transaction
		err := rows.Scan(
			&txn.ID, &txn.AccountID, &txn.Amount, &txn.Kind, &txn.Date,
			&txn.Description, &txn.Category, &txn.PlaidTransactionID, &txn.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, &txn)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return transactions, nil
}

func (r *TransactionRepository) Update(ctx context.Context, id int64, params transaction.UpdateParams) (*transaction.Transaction, error) {
	query := `
		UPDATE transactions
		SET amount = $1,
		    type = $2,
		    transaction_date = $3,
		    category = $4,
		    plaid_transaction_id = $5
		WHERE id = $6
		RETURNING id, account_id, amount, type, transaction_date, description, category, plaid_transaction_id, created_at
	`

	var txn transaction.Transaction
	err := r.db.QueryRowContext(
		ctx, query,
		params.Amount, params.Kind, params.Date, params.Category, params.PlaidTransactionID, id,
	).Scan(
		&txn.ID, &txn.AccountID, &txn.Amount, &txn.Kind, &txn.Date,
		&txn.Description, &txn.Category, &txn.PlaidTransactionID, &txn.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, transaction.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	return &txn, nil
}

func (r *TransactionRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return transaction.ErrNotFound
	}

	return nil
}

func (r *TransactionRepository) SumSigned(ctx context.Context, accountID int64) (float64, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN type = 'income' THEN amount ELSE -amount END), 0)
		FROM transactions
		WHERE account_id = $1
	`

	var sum float64
	if err := r.db.QueryRowContext(ctx, query, accountID).Scan(&sum); err != nil {
		return 0, fmt.Errorf("failed to sum transactions: %w", err)
	}

	return sum, nil
}
