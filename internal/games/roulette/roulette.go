// Package roulette implements a single-zero wheel. Bets are placed per spot
// and settled together against a single spin.
package roulette

import (
	"errors"
	"strconv"

	"github.com/Zsw0rd/Gambo-web/internal/rng"
)

// Spot is a betting position: a straight number "0".."36" or one of the
// outside spots below.
type Spot string

const (
	Red      Spot = "red"
	Black    Spot = "black"
	Even     Spot = "even"
	Odd      Spot = "odd"
	Low      Spot = "1-18"
	High     Spot = "19-36"
	FirstDz  Spot = "1st12"
	SecondDz Spot = "2nd12"
	ThirdDz  Spot = "3rd12"
)

var ErrBadSpot = errors.New("unknown betting spot")

var redNumbers = map[int]bool{
	1: true, 3: true, 5: true, 7: true, 9: true, 12: true,
	14: true, 16: true, 18: true, 19: true, 21: true, 23: true,
	25: true, 27: true, 30: true, 32: true, 34: true, 36: true,
}

// Validate reports whether a spot is a legal betting position.
func Validate(s Spot) error {
	switch s {
	case Red, Black, Even, Odd, Low, High, FirstDz, SecondDz, ThirdDz:
		return nil
	}
	if n, err := strconv.Atoi(string(s)); err == nil && n >= 0 && n <= 36 {
		return nil
	}
	return ErrBadSpot
}

// Spin draws the winning pocket.
func Spin(src rng.Source) (int, error) {
	return src.Intn(37)
}

// Result is a settled spin across all placed bets.
type Result struct {
	Winning int            `json:"winning"`
	Payout  int64          `json:"payout"`
	Wins    map[Spot]int64 `json:"wins,omitempty"`
}

// Settle resolves every placed bet against the winning pocket. Straight
// numbers return 36x the amount, dozens 3x, even-money spots 2x; zero voids
// all outside bets. Returned payouts include the stake.
func Settle(bets map[Spot]int64, winning int) Result {
	res := Result{Winning: winning, Wins: make(map[Spot]int64)}
	for spot, amount := range bets {
		pay := spotPayout(spot, amount, winning)
		if pay > 0 {
			res.Wins[spot] = pay
			res.Payout += pay
		}
	}
	return res
}

func spotPayout(spot Spot, amount int64, winning int) int64 {
	if n, err := strconv.Atoi(string(spot)); err == nil {
		if n == winning {
			return amount * 36
		}
		return 0
	}
	if winning == 0 {
		return 0
	}
	switch spot {
	case Red:
		if redNumbers[winning] {
			return amount * 2
		}
	case Black:
		if !redNumbers[winning] {
			return amount * 2
		}
	case Even:
		if winning%2 == 0 {
			return amount * 2
		}
	case Odd:
		if winning%2 == 1 {
			return amount * 2
		}
	case Low:
		if winning <= 18 {
			return amount * 2
		}
	case High:
		if winning >= 19 {
			return amount * 2
		}
	case FirstDz:
		if winning <= 12 {
			return amount * 3
		}
	case SecondDz:
		if winning >= 13 && winning <= 24 {
			return amount * 3
		}
	case ThirdDz:
		if winning >= 25 {
			return amount * 3
		}
	}
	return 0
}
