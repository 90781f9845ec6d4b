package ledger

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresLedger persists balances in PostgreSQL. A debit is a single
// conditional UPDATE guarded by the balance check, so concurrent wagers
// against the same principal serialize on the row without a lost update or
// a negative balance.
type PostgresLedger struct {
	db *pgxpool.Pool
}

// NewPostgresLedger constructs a Postgres-backed ledger implementation.
func NewPostgresLedger(db *pgxpool.Pool) *PostgresLedger {
	return &PostgresLedger{db: db}
}

// EnsureAccount guarantees a balance row exists for the provided code.
func (l *PostgresLedger) EnsureAccount(ctx context.Context, code string) error {
	_, err := l.db.Exec(ctx, `INSERT INTO balances (code, balance) VALUES ($1, 0)
        ON CONFLICT (code) DO NOTHING`, code)
	return err
}

// Balance returns the current balance for the specified account code.
func (l *PostgresLedger) Balance(ctx context.Context, code string) (int64, error) {
	var balance int64
	err := l.db.QueryRow(ctx, `SELECT balance FROM balances WHERE code = $1`, code).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrUnknownAccount
		}
		return 0, err
	}
	return balance, nil
}

// Debit subtracts amount atomically. The WHERE clause enforces the
// never-negative invariant; zero rows affected means insufficient funds or
// an unknown account, distinguished by a follow-up lookup.
func (l *PostgresLedger) Debit(ctx context.Context, code string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}

	var balance int64
	err := l.db.QueryRow(ctx, `UPDATE balances SET balance = balance - $2
        WHERE code = $1 AND balance >= $2
        RETURNING balance`, code, amount).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if _, lookupErr := l.Balance(ctx, code); lookupErr != nil {
				return 0, lookupErr
			}
			return 0, ErrInsufficientFunds
		}
		return 0, err
	}
	return balance, nil
}

// Credit adds amount atomically.
func (l *PostgresLedger) Credit(ctx context.Context, code string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}

	var balance int64
	err := l.db.QueryRow(ctx, `UPDATE balances SET balance = balance + $2
        WHERE code = $1
        RETURNING balance`, code, amount).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrUnknownAccount
		}
		return 0, err
	}
	return balance, nil
}
