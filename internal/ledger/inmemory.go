package ledger

import (
	"context"
	"sync"
)

type inMemoryLedger struct {
	mu       sync.Mutex
	balances map[string]int64
}

// NewInMemory creates a concurrency-safe in-memory ledger. It backs unit
// tests, development without a database, and guest principals whose balances
// are ephemeral by design.
func NewInMemory() Ledger {
	return &inMemoryLedger{balances: make(map[string]int64)}
}

func (l *inMemoryLedger) EnsureAccount(_ context.Context, code string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, exists := l.balances[code]; !exists {
		l.balances[code] = 0
	}
	return nil
}

func (l *inMemoryLedger) Balance(_ context.Context, code string) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	balance, exists := l.balances[code]
	if !exists {
		return 0, ErrUnknownAccount
	}
	return balance, nil
}

func (l *inMemoryLedger) Debit(_ context.Context, code string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	balance, exists := l.balances[code]
	if !exists {
		return 0, ErrUnknownAccount
	}
	if balance < amount {
		return 0, ErrInsufficientFunds
	}

	balance -= amount
	l.balances[code] = balance
	return balance, nil
}

func (l *inMemoryLedger) Credit(_ context.Context, code string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	balance, exists := l.balances[code]
	if !exists {
		return 0, ErrUnknownAccount
	}

	balance += amount
	l.balances[code] = balance
	return balance, nil
}
