package postgres

import (
	"context"
	"fmt"
)

// migrations run in order on startup. Statements are idempotent; the
// plaid column additions mirror the schema's post-release evolution and
// stay separate from the initial CREATE statements.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGSERIAL PRIMARY KEY,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS accounts (
		id              BIGSERIAL PRIMARY KEY,
		user_id         BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		name            TEXT NOT NULL,
		account_type    TEXT NOT NULL,
		balance         DOUBLE PRECISION NOT NULL DEFAULT 0,
		initial_balance DOUBLE PRECISION NOT NULL DEFAULT 0,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		id               BIGSERIAL PRIMARY KEY,
		account_id       BIGINT NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
		amount           DOUBLE PRECISION NOT NULL,
		type             TEXT NOT NULL,
		transaction_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		description      TEXT NOT NULL DEFAULT '',
		category         TEXT,
		created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_accounts_user_id ON accounts(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_account_id ON transactions(account_id)`,
	`ALTER TABLE accounts ADD COLUMN IF NOT EXISTS plaid_account_id TEXT`,
	`ALTER TABLE transactions ADD COLUMN IF NOT EXISTS plaid_transaction_id TEXT`,
}

// Migrate applies the schema statements in order.
func (db *DB) Migrate(ctx context.Context) error {
	for _, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}
