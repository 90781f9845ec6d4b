// Package blackjack implements single-hand blackjack against the house.
// The player hits or stands; the dealer draws to seventeen. A win returns
// twice the stake, a push returns the stake.
package blackjack

import (
	"errors"

	"github.com/Zsw0rd/Gambo-web/internal/games/cards"
	"github.com/Zsw0rd/Gambo-web/internal/rng"
)

// Outcome of a resolved hand.
type Outcome string

const (
	OutcomeWin  Outcome = "win"
	OutcomePush Outcome = "push"
	OutcomeLoss Outcome = "loss"
)

var ErrHandOver = errors.New("hand already resolved")

// State is one blackjack hand. The deck is drawn from the front as cards
// are dealt.
type State struct {
	Stake   int64
	Deck    []cards.Card
	Player  []cards.Card
	Dealer  []cards.Card
	Done    bool
	Outcome Outcome
}

// Deal shuffles a deck and deals two cards each, dealer first.
func Deal(src rng.Source, stake int64) (*State, error) {
	deck, err := cards.ShuffledDeck(src)
	if err != nil {
		return nil, err
	}
	st := &State{Stake: stake, Deck: deck}
	st.Dealer = append(st.Dealer, st.draw())
	st.Player = append(st.Player, st.draw())
	st.Dealer = append(st.Dealer, st.draw())
	st.Player = append(st.Player, st.draw())
	return st, nil
}

func (s *State) draw() cards.Card {
	c := s.Deck[0]
	s.Deck = s.Deck[1:]
	return c
}

// Value scores a hand. Aces count eleven and drop to one while the hand
// would bust.
func Value(hand []cards.Card) int {
	total, aces := 0, 0
	for _, c := range hand {
		switch {
		case c.Rank == cards.Ace:
			total += 11
			aces++
		case c.Rank >= cards.Jack:
			total += 10
		default:
			total += int(c.Rank)
		}
	}
	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}
	return total
}

// Hit deals the player one card. Going over twenty-one resolves the hand
// as a loss.
func (s *State) Hit() error {
	if s.Done {
		return ErrHandOver
	}
	s.Player = append(s.Player, s.draw())
	if Value(s.Player) > 21 {
		s.Done = true
		s.Outcome = OutcomeLoss
	}
	return nil
}

// Stand runs the dealer out and resolves the hand. The dealer draws until
// reaching seventeen.
func (s *State) Stand() error {
	if s.Done {
		return ErrHandOver
	}
	for Value(s.Dealer) < 17 {
		s.Dealer = append(s.Dealer, s.draw())
	}
	player, dealer := Value(s.Player), Value(s.Dealer)
	s.Done = true
	switch {
	case dealer > 21 || player > dealer:
		s.Outcome = OutcomeWin
	case player == dealer:
		s.Outcome = OutcomePush
	default:
		s.Outcome = OutcomeLoss
	}
	return nil
}

// Payout is the amount owed once the hand is done.
func (s *State) Payout() int64 {
	switch s.Outcome {
	case OutcomeWin:
		return 2 * s.Stake
	case OutcomePush:
		return s.Stake
	}
	return 0
}
