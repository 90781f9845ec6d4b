package ledger

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func TestInMemoryDebitCredit(t *testing.T) {
	l := NewInMemory()
	ctx := context.Background()

	if err := l.EnsureAccount(ctx, "user:a"); err != nil {
		t.Fatalf("ensure account: %v", err)
	}
	SeedBalance(l, "user:a", 1_000)

	newBal, err := l.Debit(ctx, "user:a", 300)
	if err != nil {
		t.Fatalf("debit failed: %v", err)
	}
	if newBal != 700 {
		t.Fatalf("expected balance 700, got %d", newBal)
	}

	newBal, err = l.Credit(ctx, "user:a", 150)
	if err != nil {
		t.Fatalf("credit failed: %v", err)
	}
	if newBal != 850 {
		t.Fatalf("expected balance 850, got %d", newBal)
	}
}

func TestInMemoryDebitNeverGoesNegative(t *testing.T) {
	l := NewInMemory()
	ctx := context.Background()
	l.EnsureAccount(ctx, "user:a")
	SeedBalance(l, "user:a", 100)

	if _, err := l.Debit(ctx, "user:a", 101); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	bal, err := l.Balance(ctx, "user:a")
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if bal != 100 {
		t.Fatalf("failed debit mutated balance: got %d", bal)
	}
}

func TestInMemoryRejectsNonPositiveAmounts(t *testing.T) {
	l := NewInMemory()
	ctx := context.Background()
	l.EnsureAccount(ctx, "user:a")

	if _, err := l.Debit(ctx, "user:a", 0); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for zero debit, got %v", err)
	}
	if _, err := l.Credit(ctx, "user:a", -5); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for negative credit, got %v", err)
	}
}

func TestInMemoryUnknownAccount(t *testing.T) {
	l := NewInMemory()
	ctx := context.Background()

	if _, err := l.Balance(ctx, "nobody"); !errors.Is(err, ErrUnknownAccount) {
		t.Fatalf("expected ErrUnknownAccount, got %v", err)
	}
	if _, err := l.Credit(ctx, "nobody", 10); !errors.Is(err, ErrUnknownAccount) {
		t.Fatalf("expected ErrUnknownAccount, got %v", err)
	}
}

func TestInMemoryConcurrentWagers(t *testing.T) {
	l := NewInMemory()
	ctx := context.Background()
	l.EnsureAccount(ctx, "user:a")
	SeedBalance(l, "user:a", 10_000)

	const workers = 20
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := l.Debit(ctx, "user:a", 100); err != nil {
				t.Errorf("debit failed: %v", err)
			}
			if _, err := l.Credit(ctx, "user:a", 50); err != nil {
				t.Errorf("credit failed: %v", err)
			}
		}()
	}
	wg.Wait()

	bal, err := l.Balance(ctx, "user:a")
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if bal != 10_000-workers*100+workers*50 {
		t.Fatalf("lost update detected, balance=%d", bal)
	}
}

func TestInMemoryDrainToZeroThenFail(t *testing.T) {
	l := NewInMemory()
	ctx := context.Background()
	l.EnsureAccount(ctx, "user:a")
	SeedBalance(l, "user:a", 500)

	for i := 0; i < 5; i++ {
		if _, err := l.Debit(ctx, "user:a", 100); err != nil {
			t.Fatalf("debit %d failed: %v", i, err)
		}
	}
	if _, err := l.Debit(ctx, "user:a", 1); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds at zero, got %v", err)
	}
	bal, _ := l.Balance(ctx, "user:a")
	if bal != 0 {
		t.Fatalf("expected exactly zero, got %d", bal)
	}
}
