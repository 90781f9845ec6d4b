package custody

import (
	"context"
	"errors"
	"testing"

	"github.com/Zsw0rd/Gambo-web/internal/ledger"
	"github.com/Zsw0rd/Gambo-web/internal/session"
)

func TestOpenWagerAndSettle(t *testing.T) {
	g := NewGateway(ledger.NewInMemory(), false)
	ctx := context.Background()
	p := Principal{ID: "u1", Kind: session.KindUser}

	if err := g.Provision(ctx, p, 1_000); err != nil {
		t.Fatalf("provision: %v", err)
	}

	bal, err := g.OpenWager(ctx, p, "slots", 100)
	if err != nil {
		t.Fatalf("open wager: %v", err)
	}
	if bal != 900 {
		t.Fatalf("expected 900 after stake, got %d", bal)
	}

	bal, err = g.Settle(ctx, p, "slots", "win", 250)
	if err != nil {
		t.Fatalf("settle: %v", err)
	}
	if bal != 1_150 {
		t.Fatalf("expected 1150 after payout, got %d", bal)
	}
}

func TestOpenWagerInsufficientFunds(t *testing.T) {
	g := NewGateway(ledger.NewInMemory(), false)
	ctx := context.Background()
	p := Principal{ID: "u1", Kind: session.KindUser}
	if err := g.Provision(ctx, p, 50); err != nil {
		t.Fatalf("provision: %v", err)
	}

	if _, err := g.OpenWager(ctx, p, "dice", 51); !errors.Is(err, ledger.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	bal, err := g.Balance(ctx, p)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if bal != 50 {
		t.Fatalf("failed wager mutated balance: %d", bal)
	}
}

func TestLossSettlesWithoutCredit(t *testing.T) {
	g := NewGateway(ledger.NewInMemory(), false)
	ctx := context.Background()
	p := Principal{ID: "u1", Kind: session.KindUser}
	g.Provision(ctx, p, 500)
	g.OpenWager(ctx, p, "roulette", 200)

	bal, err := g.Settle(ctx, p, "roulette", "loss", 0)
	if err != nil {
		t.Fatalf("settle loss: %v", err)
	}
	if bal != 300 {
		t.Fatalf("expected 300, got %d", bal)
	}
}

func TestVerifiedGate(t *testing.T) {
	g := NewGateway(ledger.NewInMemory(), true)
	ctx := context.Background()

	unverified := Principal{ID: "u1", Kind: session.KindUser}
	g.Provision(ctx, unverified, 1_000)
	if _, err := g.OpenWager(ctx, unverified, "slots", 10); !errors.Is(err, ErrUnverified) {
		t.Fatalf("expected ErrUnverified, got %v", err)
	}

	verified := Principal{ID: "u2", Kind: session.KindUser, Verified: true}
	g.Provision(ctx, verified, 1_000)
	if _, err := g.OpenWager(ctx, verified, "slots", 10); err != nil {
		t.Fatalf("verified wager failed: %v", err)
	}

	// guests are exempt from the verification gate
	guest := Principal{ID: "g1", Kind: session.KindGuest}
	g.Provision(ctx, guest, 1_000)
	if _, err := g.OpenWager(ctx, guest, "slots", 10); err != nil {
		t.Fatalf("guest wager failed: %v", err)
	}
}

func TestGuestLedgerIsIsolated(t *testing.T) {
	backing := ledger.NewInMemory()
	g := NewGateway(backing, false)
	ctx := context.Background()

	guest := Principal{ID: "g1", Kind: session.KindGuest}
	if err := g.Provision(ctx, guest, 1_000); err != nil {
		t.Fatalf("provision guest: %v", err)
	}

	// the guest account must not exist in the persistent ledger
	if _, err := backing.Balance(ctx, guest.AccountCode()); !errors.Is(err, ledger.ErrUnknownAccount) {
		t.Fatalf("guest balance leaked into persistent ledger: %v", err)
	}

	bal, err := g.Balance(ctx, guest)
	if err != nil {
		t.Fatalf("guest balance: %v", err)
	}
	if bal != 1_000 {
		t.Fatalf("expected 1000, got %d", bal)
	}
}

func TestRefundAndAward(t *testing.T) {
	g := NewGateway(ledger.NewInMemory(), false)
	ctx := context.Background()
	p := Principal{ID: "u1", Kind: session.KindUser}
	g.Provision(ctx, p, 1_000)

	g.OpenWager(ctx, p, "roulette", 400)
	bal, err := g.Refund(ctx, p, 400)
	if err != nil {
		t.Fatalf("refund: %v", err)
	}
	if bal != 1_000 {
		t.Fatalf("expected refund to restore 1000, got %d", bal)
	}

	bal, err = g.Award(ctx, p, 100)
	if err != nil {
		t.Fatalf("award: %v", err)
	}
	if bal != 1_100 {
		t.Fatalf("expected 1100 after bonus, got %d", bal)
	}
}
