// Package custody is the sole authorized mutator of persisted balances.
// Every gameplay debit and credit flows through the Gateway against a
// principal resolved from a verified session credential; no caller can supply
// an absolute balance or an unchecked delta.
package custody

import (
	"context"
	"errors"
	"fmt"

	"github.com/Zsw0rd/Gambo-web/internal/ledger"
	"github.com/Zsw0rd/Gambo-web/internal/metrics"
	"github.com/Zsw0rd/Gambo-web/internal/session"
)

// ErrUnverified indicates the principal has not completed email verification
// and the deployment requires it before wagering.
var ErrUnverified = errors.New("account not verified")

// Principal identifies a wagering party resolved from a trusted session.
type Principal struct {
	ID       string
	Kind     string // session.KindUser or session.KindGuest
	Verified bool
}

// AccountCode returns the ledger account for the principal.
func (p Principal) AccountCode() string {
	return fmt.Sprintf("%s:%s", p.Kind, p.ID)
}

// Gateway serializes all ledger mutations for gameplay. Registered users live
// in the persistent ledger; guests live in an in-memory ledger whose accounts
// vanish with the process.
type Gateway struct {
	users           ledger.Ledger
	guests          ledger.Ledger
	requireVerified bool
}

// NewGateway builds the custody gateway over the persistent ledger. Guest
// balances always use a fresh in-memory ledger.
func NewGateway(users ledger.Ledger, requireVerified bool) *Gateway {
	return &Gateway{
		users:           users,
		guests:          ledger.NewInMemory(),
		requireVerified: requireVerified,
	}
}

func (g *Gateway) ledgerFor(p Principal) ledger.Ledger {
	if p.Kind == session.KindGuest {
		return g.guests
	}
	return g.users
}

// Provision creates the principal's account and credits the starting balance.
// Used at signup and at guest-session creation.
func (g *Gateway) Provision(ctx context.Context, p Principal, starting int64) error {
	l := g.ledgerFor(p)
	if err := l.EnsureAccount(ctx, p.AccountCode()); err != nil {
		return err
	}
	if starting > 0 {
		if _, err := l.Credit(ctx, p.AccountCode(), starting); err != nil {
			return err
		}
	}
	return nil
}

// Balance returns the principal's current balance.
func (g *Gateway) Balance(ctx context.Context, p Principal) (int64, error) {
	return g.ledgerFor(p).Balance(ctx, p.AccountCode())
}

// OpenWager debits the stake for a new round. The debit is atomic: a stake
// exceeding the balance fails with ledger.ErrInsufficientFunds and no effect.
func (g *Gateway) OpenWager(ctx context.Context, p Principal, game string, stake int64) (int64, error) {
	if stake <= 0 {
		return 0, ledger.ErrInvalidAmount
	}
	if err := g.authorize(p); err != nil {
		return 0, err
	}
	newBal, err := g.ledgerFor(p).Debit(ctx, p.AccountCode(), stake)
	if err != nil {
		return 0, err
	}
	metrics.RecordStake(game, stake)
	return newBal, nil
}

// Settle credits the payout computed by a gateway-verified round resolution.
// A zero payout settles the round as a loss without touching the ledger.
// result should be "win", "push" or "loss".
func (g *Gateway) Settle(ctx context.Context, p Principal, game, result string, payout int64) (int64, error) {
	if payout < 0 {
		return 0, ledger.ErrInvalidAmount
	}
	metrics.RecordSettlement(game, result, payout)
	if payout == 0 {
		return g.Balance(ctx, p)
	}
	return g.ledgerFor(p).Credit(ctx, p.AccountCode(), payout)
}

// Refund returns a stake debited for a round that never ran (e.g. roulette
// bets cleared before the spin). It is distinct from Settle so the metrics
// do not count it as a payout.
func (g *Gateway) Refund(ctx context.Context, p Principal, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, ledger.ErrInvalidAmount
	}
	return g.ledgerFor(p).Credit(ctx, p.AccountCode(), amount)
}

// Award credits a non-wager grant such as the daily login bonus.
func (g *Gateway) Award(ctx context.Context, p Principal, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, ledger.ErrInvalidAmount
	}
	return g.ledgerFor(p).Credit(ctx, p.AccountCode(), amount)
}

func (g *Gateway) authorize(p Principal) error {
	if g.requireVerified && p.Kind == session.KindUser && !p.Verified {
		return ErrUnverified
	}
	return nil
}
