package routes

import (
	"context"
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/Zsw0rd/Gambo-web/internal/custody"
	"github.com/Zsw0rd/Gambo-web/internal/games"
	"github.com/Zsw0rd/Gambo-web/internal/games/blackjack"
	"github.com/Zsw0rd/Gambo-web/internal/games/cards"
	"github.com/Zsw0rd/Gambo-web/internal/games/mines"
	"github.com/Zsw0rd/Gambo-web/internal/ledger"
	"github.com/Zsw0rd/Gambo-web/internal/logging"
	"github.com/Zsw0rd/Gambo-web/internal/middleware"
	"github.com/Zsw0rd/Gambo-web/internal/rng"
	"github.com/Zsw0rd/Gambo-web/internal/session"
)

var errCreditDown = errors.New("credit store unavailable")

// flakyLedger fails a configured number of credits before recovering.
type flakyLedger struct {
	ledger.Ledger
	failCredits int
}

func (l *flakyLedger) Credit(ctx context.Context, code string, amount int64) (int64, error) {
	if l.failCredits > 0 {
		l.failCredits--
		return 0, errCreditDown
	}
	return l.Ledger.Credit(ctx, code, amount)
}

// settleHarness wires a game handler over a ledger whose credits can be made
// to fail, with a fixed authenticated principal.
func settleHarness(t *testing.T) (*fiber.App, *gameHandler, *flakyLedger, custody.Principal) {
	t.Helper()
	fl := &flakyLedger{Ledger: ledger.NewInMemory()}
	gw := custody.NewGateway(fl, false)
	p := custody.Principal{ID: "u1", Kind: session.KindUser, Verified: true}
	if err := gw.Provision(context.Background(), p, 1000); err != nil {
		t.Fatalf("provision: %v", err)
	}

	h := &gameHandler{
		gateway: gw,
		rounds:  games.NewStore(),
		src:     rng.NewSeeded(1),
		edge:    decimal.RequireFromString("0.99"),
		logger:  logging.Discard(),
	}

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(middleware.PrincipalKey, p)
		return c.Next()
	})
	app.Post("/blackjack/stand", h.BlackjackStand)
	app.Post("/blackjack/hit", h.BlackjackHit)
	app.Post("/mines/cashout", h.MinesCashout)
	return app, h, fl, p
}

func ledgerBalance(t *testing.T, gw *custody.Gateway, p custody.Principal) int64 {
	t.Helper()
	got, err := gw.Balance(context.Background(), p)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	return got
}

func bj(r cards.Rank) cards.Card { return cards.Card{Rank: r, Suit: cards.Clubs} }

func TestBlackjackSettleFailureIsRetryable(t *testing.T) {
	app, h, fl, p := settleHarness(t)

	// A hand the player has already won: 19 against a standing 18.
	st := &blackjack.State{
		Stake:  100,
		Player: []cards.Card{bj(cards.King), bj(cards.Nine)},
		Dealer: []cards.Card{bj(cards.Ten), bj(cards.Eight)},
	}
	if _, err := h.gateway.OpenWager(context.Background(), p, games.GameBlackjack, 100); err != nil {
		t.Fatalf("open wager: %v", err)
	}
	round := h.rounds.Open(p.AccountCode(), games.GameBlackjack, 100, st)

	fl.failCredits = 1
	status, _ := doJSON(t, app, fiber.MethodPost, "/blackjack/stand", "", fiber.Map{"round_id": round.ID})
	if status != fiber.StatusInternalServerError {
		t.Fatalf("expected 500 while the credit store is down, got %d", status)
	}
	if got := ledgerBalance(t, h.gateway, p); got != 900 {
		t.Fatalf("failed settlement must not move funds, got %d", got)
	}

	// The retry must skip the already-played move and re-attempt the credit.
	status, body := doJSON(t, app, fiber.MethodPost, "/blackjack/stand", "", fiber.Map{"round_id": round.ID})
	if status != fiber.StatusOK {
		t.Fatalf("retry: expected 200, got %d (%v)", status, body)
	}
	hand := body["hand"].(map[string]any)
	if got := int64(hand["payout"].(float64)); got != 200 {
		t.Fatalf("expected payout 200, got %d", got)
	}
	if got := ledgerBalance(t, h.gateway, p); got != 1100 {
		t.Fatalf("expected the win credited exactly once, got %d", got)
	}

	// Settled and gone.
	status, _ = doJSON(t, app, fiber.MethodPost, "/blackjack/hit", "", fiber.Map{"round_id": round.ID})
	if status != fiber.StatusNotFound {
		t.Fatalf("expected 404 after settlement, got %d", status)
	}
}

func TestMinesSettleFailureIsRetryable(t *testing.T) {
	app, h, fl, p := settleHarness(t)

	st := &mines.State{
		Stake:    100,
		Bombs:    map[int]bool{22: true, 23: true, 24: true},
		Revealed: map[int]bool{},
	}
	if err := st.Reveal(0); err != nil {
		t.Fatalf("reveal: %v", err)
	}
	if _, err := h.gateway.OpenWager(context.Background(), p, games.GameMines, 100); err != nil {
		t.Fatalf("open wager: %v", err)
	}
	round := h.rounds.Open(p.AccountCode(), games.GameMines, 100, st)

	fl.failCredits = 1
	status, _ := doJSON(t, app, fiber.MethodPost, "/mines/cashout", "", fiber.Map{"round_id": round.ID})
	if status != fiber.StatusInternalServerError {
		t.Fatalf("expected 500 while the credit store is down, got %d", status)
	}
	if got := ledgerBalance(t, h.gateway, p); got != 900 {
		t.Fatalf("failed settlement must not move funds, got %d", got)
	}

	status, body := doJSON(t, app, fiber.MethodPost, "/mines/cashout", "", fiber.Map{"round_id": round.ID})
	if status != fiber.StatusOK {
		t.Fatalf("retry: expected 200, got %d (%v)", status, body)
	}
	// One safe reveal at 3 bombs pays 1.25x.
	if got := int64(body["payout"].(float64)); got != 125 {
		t.Fatalf("expected payout 125, got %d", got)
	}
	if got := ledgerBalance(t, h.gateway, p); got != 1025 {
		t.Fatalf("expected the cashout credited exactly once, got %d", got)
	}
}
