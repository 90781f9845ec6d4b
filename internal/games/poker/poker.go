// Package poker implements three-handed Texas hold'em against two house
// bots. Betting runs one action per seat per street; the showdown is
// scored by best-five-of-seven hand ranking. Bot contributions to the pot
// are house money, only the player's actions move real funds.
package poker

import (
	"errors"

	"github.com/Zsw0rd/Gambo-web/internal/games/cards"
	"github.com/Zsw0rd/Gambo-web/internal/rng"
)

// Street of the betting round.
type Street string

const (
	Preflop  Street = "preflop"
	Flop     Street = "flop"
	Turn     Street = "turn"
	River    Street = "river"
	Showdown Street = "showdown"
)

// Action a player may take.
type Action string

const (
	// ActionBet opens the betting or calls the current bet.
	ActionBet   Action = "bet"
	ActionRaise Action = "raise"
	ActionFold  Action = "fold"
)

var (
	ErrBadAction = errors.New("unknown action")
	ErrHandOver  = errors.New("hand already resolved")
)

const (
	seatPlayer = 0
	seatBot1   = 1
	seatBot2   = 2
	seats      = 3

	openingBet = 50
)

// Bot policy thresholds on a uniform draw.
const (
	botFoldBelow = 0.2
	botCallBelow = 0.7
)

// State is one hand. Hole cards for the bots and undealt community cards
// stay server side until the hand resolves.
type State struct {
	Hole      [seats][]cards.Card
	Community []cards.Card
	dealt     int

	Street     Street
	Pot        int64
	CurrentBet int64
	MinBet     int64
	Folded     [seats]bool
	acted      [seats]bool

	Done      bool
	Winners   []int
	PlayerWon bool
	Payout    int64
}

// New shuffles and deals a fresh hand. Community cards are drawn up front
// and revealed street by street.
func New(src rng.Source) (*State, error) {
	deck, err := cards.ShuffledDeck(src)
	if err != nil {
		return nil, err
	}
	st := &State{Street: Preflop, MinBet: openingBet}
	for seat := 0; seat < seats; seat++ {
		st.Hole[seat] = []cards.Card{deck[2*seat], deck[2*seat+1]}
	}
	st.Community = deck[2*seats : 2*seats+5]
	return st, nil
}

// Board returns the community cards revealed so far.
func (s *State) Board() []cards.Card {
	return s.Community[:s.dealt]
}

// Cost returns the debit required for the player's action under the
// current bet. Fold is free, a call matches the current bet and a raise
// adds the minimum bet on top.
func (s *State) Cost(a Action) (int64, error) {
	if s.Done {
		return 0, ErrHandOver
	}
	switch a {
	case ActionFold:
		return 0, nil
	case ActionBet:
		if s.CurrentBet == 0 {
			return s.MinBet, nil
		}
		return s.CurrentBet, nil
	case ActionRaise:
		return s.CurrentBet + s.MinBet, nil
	default:
		return 0, ErrBadAction
	}
}

// Apply plays the player's action, then runs the bots until the street
// settles or the hand resolves. The caller must have debited Cost first.
func (s *State) Apply(src rng.Source, a Action) error {
	cost, err := s.Cost(a)
	if err != nil {
		return err
	}
	if a == ActionFold {
		// The player is out; the pot goes to the house.
		s.Folded[seatPlayer] = true
		s.resolveFolded()
		return nil
	}
	s.commit(seatPlayer, a, cost)
	return s.runBots(src)
}

// commit applies one seat's bet or raise to the pot.
func (s *State) commit(seat int, a Action, amount int64) {
	s.Pot += amount
	s.acted[seat] = true
	switch a {
	case ActionBet:
		if s.CurrentBet == 0 {
			s.CurrentBet = s.MinBet
		}
	case ActionRaise:
		s.CurrentBet = amount
		s.MinBet = amount
	}
}

// runBots plays each bot's single action for the street, then either
// advances to the next street or resolves the hand.
func (s *State) runBots(src rng.Source) error {
	for seat := seatBot1; seat < seats; seat++ {
		if s.Folded[seat] || s.acted[seat] {
			continue
		}
		if err := s.botAct(src, seat); err != nil {
			return err
		}
		if s.Done {
			return nil
		}
	}
	if s.Street == River {
		s.dealt = len(s.Community)
		s.showdown()
		return nil
	}
	s.nextStreet()
	// The player opens the new street.
	return nil
}

func (s *State) botAct(src rng.Source, seat int) error {
	x, err := src.Float64()
	if err != nil {
		return err
	}
	switch {
	case x < botFoldBelow:
		s.Folded[seat] = true
		if s.activeBots() == 0 {
			s.resolveLastStanding()
		}
	case x < botCallBelow:
		cost := s.CurrentBet
		if cost == 0 {
			cost = s.MinBet
		}
		s.commit(seat, ActionBet, cost)
	default:
		s.commit(seat, ActionRaise, s.CurrentBet+s.MinBet)
	}
	return nil
}

func (s *State) activeBots() int {
	n := 0
	for seat := seatBot1; seat < seats; seat++ {
		if !s.Folded[seat] {
			n++
		}
	}
	return n
}

func (s *State) nextStreet() {
	switch s.Street {
	case Preflop:
		s.Street = Flop
		s.dealt = 3
	case Flop:
		s.Street = Turn
		s.dealt = 4
	case Turn:
		s.Street = River
		s.dealt = 5
	}
	s.CurrentBet = 0
	for seat := range s.acted {
		s.acted[seat] = false
	}
}

// resolveLastStanding ends the hand with the player as the only seat left.
func (s *State) resolveLastStanding() {
	s.Done = true
	s.Street = Showdown
	s.dealt = len(s.Community)
	s.Winners = []int{seatPlayer}
	s.PlayerWon = true
	s.Payout = s.Pot
}

// resolveFolded ends the hand after the player folds.
func (s *State) resolveFolded() {
	s.Done = true
	s.Street = Showdown
	s.dealt = len(s.Community)
	s.PlayerWon = false
	s.Payout = 0
}

// showdown ranks the remaining seats' best five-card hands. Ties split the
// pot evenly, rounded down.
func (s *State) showdown() {
	s.Done = true
	s.Street = Showdown

	var best cards.HandRank
	for seat := 0; seat < seats; seat++ {
		if s.Folded[seat] {
			continue
		}
		rank := cards.EvaluateBest(append(append([]cards.Card{}, s.Hole[seat]...), s.Community...))
		switch {
		case len(s.Winners) == 0 || best.Less(rank):
			best = rank
			s.Winners = []int{seat}
		case rank.Equal(best):
			s.Winners = append(s.Winners, seat)
		}
	}
	for _, seat := range s.Winners {
		if seat == seatPlayer {
			s.PlayerWon = true
			s.Payout = s.Pot / int64(len(s.Winners))
		}
	}
}
