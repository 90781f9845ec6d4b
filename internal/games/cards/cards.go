// Package cards provides the shared 52-card deck and poker hand ranking used
// by the card games.
package cards

import (
	"fmt"

	"github.com/Zsw0rd/Gambo-web/internal/rng"
)

// Suit of a playing card.
type Suit int

// Suits in deck order.
const (
	Hearts Suit = iota
	Diamonds
	Clubs
	Spades
)

var suitNames = [...]string{"hearts", "diamonds", "clubs", "spades"}

func (s Suit) String() string { return suitNames[s] }

// Rank of a playing card. Two is 2; Ace is 14.
type Rank int

// Named ranks.
const (
	Two   Rank = 2
	Three Rank = 3
	Four  Rank = 4
	Five  Rank = 5
	Six   Rank = 6
	Seven Rank = 7
	Eight Rank = 8
	Nine  Rank = 9
	Ten   Rank = 10
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
	Ace   Rank = 14
)

func (r Rank) String() string {
	switch r {
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	default:
		return fmt.Sprintf("%d", int(r))
	}
}

// Card is a single playing card.
type Card struct {
	Rank Rank `json:"rank"`
	Suit Suit `json:"suit"`
}

func (c Card) String() string {
	return fmt.Sprintf("%s_of_%s", c.Rank, c.Suit)
}

// NewDeck returns the 52 cards in a fixed order.
func NewDeck() []Card {
	deck := make([]Card, 0, 52)
	for s := Hearts; s <= Spades; s++ {
		for r := Rank(2); r <= Ace; r++ {
			deck = append(deck, Card{Rank: r, Suit: s})
		}
	}
	return deck
}

// ShuffledDeck returns a uniformly random permutation of the full deck drawn
// from the injected source. An entropy failure yields no deck.
func ShuffledDeck(src rng.Source) ([]Card, error) {
	base := NewDeck()
	perm, err := rng.Shuffle(src, len(base))
	if err != nil {
		return nil, err
	}
	deck := make([]Card, len(base))
	for i, j := range perm {
		deck[i] = base[j]
	}
	return deck, nil
}
