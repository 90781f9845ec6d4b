package cards

import "sort"

// Category of a poker hand, ascending by strength.
type Category int

// Hand categories.
const (
	HighCard Category = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

var categoryNames = [...]string{
	"high card", "pair", "two pair", "three of a kind", "straight",
	"flush", "full house", "four of a kind", "straight flush",
}

func (c Category) String() string { return categoryNames[c] }

// HandRank orders poker hands. Compare by Category, then lexicographically by
// Tiebreak (rank values, most significant first).
type HandRank struct {
	Category Category
	Tiebreak [5]Rank
}

// Less reports whether h ranks strictly below other.
func (h HandRank) Less(other HandRank) bool {
	if h.Category != other.Category {
		return h.Category < other.Category
	}
	for i := 0; i < 5; i++ {
		if h.Tiebreak[i] != other.Tiebreak[i] {
			return h.Tiebreak[i] < other.Tiebreak[i]
		}
	}
	return false
}

// Equal reports whether two hands tie exactly.
func (h HandRank) Equal(other HandRank) bool {
	return !h.Less(other) && !other.Less(h)
}

// EvaluateBest returns the strongest 5-card rank among all 5-card subsets of
// the given cards (7 cards at showdown: 2 hole + 5 community).
func EvaluateBest(hand []Card) HandRank {
	if len(hand) == 5 {
		return evaluate5(hand)
	}

	var best HandRank
	first := true
	pick := make([]Card, 5)
	n := len(hand)
	for a := 0; a < n-4; a++ {
		for b := a + 1; b < n-3; b++ {
			for c := b + 1; c < n-2; c++ {
				for d := c + 1; d < n-1; d++ {
					for e := d + 1; e < n; e++ {
						pick[0], pick[1], pick[2], pick[3], pick[4] = hand[a], hand[b], hand[c], hand[d], hand[e]
						r := evaluate5(pick)
						if first || best.Less(r) {
							best = r
							first = false
						}
					}
				}
			}
		}
	}
	return best
}

func evaluate5(hand []Card) HandRank {
	counts := make(map[Rank]int, 5)
	flush := true
	for i, c := range hand {
		counts[c.Rank]++
		if i > 0 && c.Suit != hand[0].Suit {
			flush = false
		}
	}

	ranks := make([]Rank, 0, 5)
	for r := range counts {
		ranks = append(ranks, r)
	}
	// order by count desc, then rank desc: pairs/trips lead the tiebreak
	sort.Slice(ranks, func(i, j int) bool {
		if counts[ranks[i]] != counts[ranks[j]] {
			return counts[ranks[i]] > counts[ranks[j]]
		}
		return ranks[i] > ranks[j]
	})

	straightHigh, isStraight := straightHighCard(ranks, counts)

	var tb [5]Rank
	idx := 0
	for _, r := range ranks {
		for k := 0; k < counts[r] && idx < 5; k++ {
			tb[idx] = r
			idx++
		}
	}

	switch {
	case isStraight && flush:
		return HandRank{Category: StraightFlush, Tiebreak: [5]Rank{straightHigh}}
	case counts[ranks[0]] == 4:
		return HandRank{Category: FourOfAKind, Tiebreak: tb}
	case counts[ranks[0]] == 3 && counts[ranks[1]] == 2:
		return HandRank{Category: FullHouse, Tiebreak: tb}
	case flush:
		return HandRank{Category: Flush, Tiebreak: tb}
	case isStraight:
		return HandRank{Category: Straight, Tiebreak: [5]Rank{straightHigh}}
	case counts[ranks[0]] == 3:
		return HandRank{Category: ThreeOfAKind, Tiebreak: tb}
	case counts[ranks[0]] == 2 && counts[ranks[1]] == 2:
		return HandRank{Category: TwoPair, Tiebreak: tb}
	case counts[ranks[0]] == 2:
		return HandRank{Category: Pair, Tiebreak: tb}
	default:
		return HandRank{Category: HighCard, Tiebreak: tb}
	}
}

// straightHighCard detects a 5-card straight, including the wheel (A-2-3-4-5,
// which ranks with 5 high).
func straightHighCard(ranks []Rank, counts map[Rank]int) (Rank, bool) {
	if len(ranks) != 5 {
		return 0, false
	}
	sorted := make([]Rank, len(ranks))
	copy(sorted, ranks)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	if sorted[4]-sorted[0] == 4 {
		return sorted[4], true
	}
	// wheel: A,2,3,4,5
	if sorted[0] == 2 && sorted[1] == 3 && sorted[2] == 4 && sorted[3] == 5 && sorted[4] == Ace {
		return 5, true
	}
	return 0, false
}
