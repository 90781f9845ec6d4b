package ledger

import (
	"context"
	"errors"
)

var (
	// ErrInsufficientFunds occurs when an account lacks available balance to
	// cover a requested debit. The debit has no effect.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrUnknownAccount indicates the account has never been provisioned.
	ErrUnknownAccount = errors.New("unknown account")

	// ErrInvalidAmount indicates a non-positive debit or credit amount.
	ErrInvalidAmount = errors.New("amount must be positive")
)

// Ledger is the authoritative balance store for all principals. It exposes
// only relative mutations; no operation accepts an absolute balance value.
// Implementations guarantee that a balance never goes negative and that each
// debit or credit is atomic with respect to concurrent operations on the
// same account.
type Ledger interface {
	EnsureAccount(ctx context.Context, code string) error
	Balance(ctx context.Context, code string) (int64, error)
	// Debit subtracts amount and returns the new balance. A debit that would
	// make the balance negative fails with ErrInsufficientFunds and leaves
	// the balance unchanged.
	Debit(ctx context.Context, code string, amount int64) (int64, error)
	// Credit adds amount and returns the new balance.
	Credit(ctx context.Context, code string, amount int64) (int64, error)
}
