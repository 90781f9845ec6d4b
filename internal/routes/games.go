package routes

import (
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/Zsw0rd/Gambo-web/internal/custody"
	"github.com/Zsw0rd/Gambo-web/internal/games"
	"github.com/Zsw0rd/Gambo-web/internal/games/blackjack"
	"github.com/Zsw0rd/Gambo-web/internal/games/cards"
	"github.com/Zsw0rd/Gambo-web/internal/games/dice"
	"github.com/Zsw0rd/Gambo-web/internal/games/mines"
	"github.com/Zsw0rd/Gambo-web/internal/games/poker"
	"github.com/Zsw0rd/Gambo-web/internal/games/roulette"
	"github.com/Zsw0rd/Gambo-web/internal/games/slots"
	"github.com/Zsw0rd/Gambo-web/internal/rng"
)

// gameHandler serves every wager endpoint. Outcomes are always drawn before
// the stake is debited, so an entropy failure leaves balances untouched.
type gameHandler struct {
	gateway *custody.Gateway
	rounds  *games.Store
	src     rng.Source
	edge    decimal.Decimal
	logger  *slog.Logger
}

func result(payout int64) string {
	if payout > 0 {
		return "win"
	}
	return "loss"
}

// SlotsSpin plays one single-step slots round.
func (h *gameHandler) SlotsSpin(c *fiber.Ctx) error {
	var req struct {
		Stake int64 `json:"stake"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid request body")
	}
	if err := requireStake(req.Stake); err != nil {
		return err
	}
	p, err := mustPrincipal(c)
	if err != nil {
		return err
	}

	res, err := slots.Spin(h.src, req.Stake)
	if err != nil {
		return httpError(err)
	}
	if _, err := h.gateway.OpenWager(c.UserContext(), p, games.GameSlots, req.Stake); err != nil {
		return httpError(err)
	}
	balance, err := h.gateway.Settle(c.UserContext(), p, games.GameSlots, result(res.Payout), res.Payout)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(fiber.Map{
		"reels":      res.Reels,
		"multiplier": res.Multiplier,
		"payout":     res.Payout,
		"balance":    balance,
	})
}

// DiceRoll plays one under/over dice round.
func (h *gameHandler) DiceRoll(c *fiber.Ctx) error {
	var req struct {
		Stake     int64  `json:"stake"`
		Threshold int    `json:"threshold"`
		Direction string `json:"direction"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid request body")
	}
	if err := requireStake(req.Stake); err != nil {
		return err
	}
	p, err := mustPrincipal(c)
	if err != nil {
		return err
	}

	res, err := dice.Roll(h.src, req.Stake, req.Threshold, dice.Direction(req.Direction), h.edge)
	if err != nil {
		return httpError(err)
	}
	if _, err := h.gateway.OpenWager(c.UserContext(), p, games.GameDice, req.Stake); err != nil {
		return httpError(err)
	}
	balance, err := h.gateway.Settle(c.UserContext(), p, games.GameDice, result(res.Payout), res.Payout)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(fiber.Map{
		"roll":       res.Roll,
		"win":        res.Win,
		"multiplier": res.Multiplier,
		"payout":     res.Payout,
		"balance":    balance,
	})
}

// RouletteSpin settles a whole board of bets against one spin.
func (h *gameHandler) RouletteSpin(c *fiber.Ctx) error {
	var req struct {
		Bets map[string]int64 `json:"bets"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid request body")
	}
	if len(req.Bets) == 0 {
		return fiber.NewError(http.StatusBadRequest, "no bets placed")
	}

	bets := make(map[roulette.Spot]int64, len(req.Bets))
	var total int64
	for spot, amount := range req.Bets {
		s := roulette.Spot(spot)
		if err := roulette.Validate(s); err != nil {
			return httpError(err)
		}
		if err := requireStake(amount); err != nil {
			return err
		}
		bets[s] = amount
		total += amount
	}

	p, err := mustPrincipal(c)
	if err != nil {
		return err
	}

	winning, err := roulette.Spin(h.src)
	if err != nil {
		return httpError(err)
	}
	if _, err := h.gateway.OpenWager(c.UserContext(), p, games.GameRoulette, total); err != nil {
		return httpError(err)
	}
	res := roulette.Settle(bets, winning)
	balance, err := h.gateway.Settle(c.UserContext(), p, games.GameRoulette, result(res.Payout), res.Payout)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(fiber.Map{
		"winning": res.Winning,
		"wins":    res.Wins,
		"payout":  res.Payout,
		"balance": balance,
	})
}

// BlackjackDeal opens a hand and debits the stake.
func (h *gameHandler) BlackjackDeal(c *fiber.Ctx) error {
	var req struct {
		Stake int64 `json:"stake"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid request body")
	}
	if err := requireStake(req.Stake); err != nil {
		return err
	}
	p, err := mustPrincipal(c)
	if err != nil {
		return err
	}

	st, err := blackjack.Deal(h.src, req.Stake)
	if err != nil {
		return httpError(err)
	}
	if _, err := h.gateway.OpenWager(c.UserContext(), p, games.GameBlackjack, req.Stake); err != nil {
		return httpError(err)
	}
	round := h.rounds.Open(p.AccountCode(), games.GameBlackjack, req.Stake, st)

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"round_id": round.ID,
		"hand":     blackjackView(st, nil),
	})
}

// BlackjackHit deals the player one more card.
func (h *gameHandler) BlackjackHit(c *fiber.Ctx) error {
	return h.blackjackMove(c, func(st *blackjack.State) error { return st.Hit() })
}

// BlackjackStand runs the dealer out and resolves the hand.
func (h *gameHandler) BlackjackStand(c *fiber.Ctx) error {
	return h.blackjackMove(c, func(st *blackjack.State) error { return st.Stand() })
}

func (h *gameHandler) blackjackMove(c *fiber.Ctx, move func(*blackjack.State) error) error {
	var req struct {
		RoundID string `json:"round_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid request body")
	}
	p, err := mustPrincipal(c)
	if err != nil {
		return err
	}

	var view fiber.Map
	err = h.rounds.Update(req.RoundID, p.AccountCode(), func(r *games.Round) error {
		st, ok := r.State.(*blackjack.State)
		if !ok {
			return games.ErrRoundNotFound
		}
		// A resolved round means an earlier settlement attempt failed; skip
		// the move and retry only the credit.
		if r.Status != games.StatusResolved {
			if err := move(st); err != nil {
				return err
			}
			if !st.Done {
				view = fiber.Map{"round_id": r.ID, "hand": blackjackView(st, nil)}
				return nil
			}
			r.Status = games.StatusResolved
		}
		balance, err := h.gateway.Settle(c.UserContext(), p, games.GameBlackjack, string(st.Outcome), st.Payout())
		if err != nil {
			return err
		}
		r.Status = games.StatusSettled
		view = fiber.Map{"round_id": r.ID, "hand": blackjackView(st, &balance)}
		return nil
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(view)
}

func blackjackView(st *blackjack.State, balance *int64) fiber.Map {
	view := fiber.Map{
		"player":       st.Player,
		"player_value": blackjack.Value(st.Player),
		"done":         st.Done,
	}
	if st.Done {
		view["dealer"] = st.Dealer
		view["dealer_value"] = blackjack.Value(st.Dealer)
		view["outcome"] = st.Outcome
		view["payout"] = st.Payout()
	} else {
		// Only the dealer's first card shows while the hand is live.
		view["dealer"] = st.Dealer[:1]
	}
	if balance != nil {
		view["balance"] = *balance
	}
	return view
}

// MinesStart opens a minefield round and debits the stake.
func (h *gameHandler) MinesStart(c *fiber.Ctx) error {
	var req struct {
		Stake int64 `json:"stake"`
		Bombs int   `json:"bombs"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid request body")
	}
	if err := requireStake(req.Stake); err != nil {
		return err
	}
	p, err := mustPrincipal(c)
	if err != nil {
		return err
	}

	st, err := mines.Start(h.src, req.Stake, req.Bombs)
	if err != nil {
		return httpError(err)
	}
	if _, err := h.gateway.OpenWager(c.UserContext(), p, games.GameMines, req.Stake); err != nil {
		return httpError(err)
	}
	round := h.rounds.Open(p.AccountCode(), games.GameMines, req.Stake, st)

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"round_id":   round.ID,
		"bombs":      req.Bombs,
		"multiplier": st.Multiplier(),
	})
}

// MinesReveal opens one cell.
func (h *gameHandler) MinesReveal(c *fiber.Ctx) error {
	var req struct {
		RoundID string `json:"round_id"`
		Cell    int    `json:"cell"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid request body")
	}
	p, err := mustPrincipal(c)
	if err != nil {
		return err
	}

	var view fiber.Map
	err = h.rounds.Update(req.RoundID, p.AccountCode(), func(r *games.Round) error {
		st, ok := r.State.(*mines.State)
		if !ok {
			return games.ErrRoundNotFound
		}
		// A resolved round retries only the unsettled credit.
		if r.Status != games.StatusResolved {
			if err := st.Reveal(req.Cell); err != nil {
				return err
			}
			if !st.Done {
				view = fiber.Map{
					"round_id":   r.ID,
					"cell":       req.Cell,
					"safe":       true,
					"revealed":   len(st.Revealed),
					"multiplier": st.Multiplier(),
				}
				return nil
			}
			r.Status = games.StatusResolved
		}
		payout := st.Payout()
		balance, err := h.gateway.Settle(c.UserContext(), p, games.GameMines, result(payout), payout)
		if err != nil {
			return err
		}
		r.Status = games.StatusSettled
		view = fiber.Map{
			"round_id":   r.ID,
			"cell":       req.Cell,
			"safe":       !st.Busted,
			"bomb_cells": st.BombCells(),
			"payout":     payout,
			"balance":    balance,
		}
		return nil
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(view)
}

// MinesCashout banks the current multiplier and ends the round.
func (h *gameHandler) MinesCashout(c *fiber.Ctx) error {
	var req struct {
		RoundID string `json:"round_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid request body")
	}
	p, err := mustPrincipal(c)
	if err != nil {
		return err
	}

	var view fiber.Map
	err = h.rounds.Update(req.RoundID, p.AccountCode(), func(r *games.Round) error {
		st, ok := r.State.(*mines.State)
		if !ok {
			return games.ErrRoundNotFound
		}
		// A resolved round retries only the unsettled credit.
		if r.Status != games.StatusResolved {
			if _, err := st.Cashout(); err != nil {
				return err
			}
			r.Status = games.StatusResolved
		}
		payout := st.Payout()
		balance, err := h.gateway.Settle(c.UserContext(), p, games.GameMines, result(payout), payout)
		if err != nil {
			return err
		}
		r.Status = games.StatusSettled
		view = fiber.Map{
			"round_id":   r.ID,
			"payout":     payout,
			"bomb_cells": st.BombCells(),
			"balance":    balance,
		}
		return nil
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(view)
}

// PokerNew deals a fresh three-handed hold'em hand. Money only moves on
// player actions.
func (h *gameHandler) PokerNew(c *fiber.Ctx) error {
	p, err := mustPrincipal(c)
	if err != nil {
		return err
	}

	st, err := poker.New(h.src)
	if err != nil {
		return httpError(err)
	}
	round := h.rounds.Open(p.AccountCode(), games.GamePoker, 0, st)

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"round_id": round.ID,
		"hand":     pokerView(st),
	})
}

// PokerAction plays one player action and runs the bots.
func (h *gameHandler) PokerAction(c *fiber.Ctx) error {
	var req struct {
		RoundID string `json:"round_id"`
		Action  string `json:"action"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid request body")
	}
	p, err := mustPrincipal(c)
	if err != nil {
		return err
	}

	var view fiber.Map
	err = h.rounds.Update(req.RoundID, p.AccountCode(), func(r *games.Round) error {
		st, ok := r.State.(*poker.State)
		if !ok {
			return games.ErrRoundNotFound
		}
		// A resolved round retries only the unsettled credit.
		if r.Status != games.StatusResolved {
			action := poker.Action(req.Action)
			cost, err := st.Cost(action)
			if err != nil {
				return err
			}
			if cost > 0 {
				if _, err := h.gateway.OpenWager(c.UserContext(), p, games.GamePoker, cost); err != nil {
					return err
				}
				r.Stake += cost
			}
			if err := st.Apply(h.src, action); err != nil {
				// The stake is already committed; hand it back rather than
				// leaving the round wedged.
				if cost > 0 {
					if _, refundErr := h.gateway.Refund(c.UserContext(), p, cost); refundErr != nil {
						h.logger.Error("poker refund failed",
							slog.String("round_id", r.ID), slog.Any("error", refundErr))
					}
				}
				return err
			}
			if !st.Done {
				view = fiber.Map{"round_id": r.ID, "hand": pokerView(st)}
				return nil
			}
			r.Status = games.StatusResolved
		}
		balance, err := h.gateway.Settle(c.UserContext(), p, games.GamePoker, result(st.Payout), st.Payout)
		if err != nil {
			return err
		}
		r.Status = games.StatusSettled
		v := pokerView(st)
		v["balance"] = balance
		view = fiber.Map{"round_id": r.ID, "hand": v}
		return nil
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(view)
}

func pokerView(st *poker.State) fiber.Map {
	view := fiber.Map{
		"hole":        st.Hole[0],
		"board":       st.Board(),
		"street":      st.Street,
		"pot":         st.Pot,
		"current_bet": st.CurrentBet,
		"min_bet":     st.MinBet,
		"done":        st.Done,
	}
	if st.Done {
		view["winners"] = st.Winners
		view["player_won"] = st.PlayerWon
		view["payout"] = st.Payout
		// Bot holes only show once the hand is over.
		view["bot_holes"] = [][]cards.Card{st.Hole[1], st.Hole[2]}
	}
	return view
}
