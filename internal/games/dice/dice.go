// Package dice implements an under/over dice roll against a player-chosen
// threshold. The payout multiplier is the inverse of the win chance scaled
// by the configured house edge.
package dice

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/Zsw0rd/Gambo-web/internal/rng"
)

// Direction of the bet relative to the threshold.
type Direction string

const (
	Under Direction = "under"
	Over  Direction = "over"
)

var (
	ErrBadThreshold = errors.New("threshold must be between 2 and 98")
	ErrBadDirection = errors.New("direction must be under or over")
)

var hundred = decimal.NewFromInt(100)

// Result is a finished roll.
type Result struct {
	Roll       float64         `json:"roll"`
	Win        bool            `json:"win"`
	Multiplier decimal.Decimal `json:"multiplier"`
	Payout     int64           `json:"payout"`
}

// Multiplier returns the payout rate for a threshold and direction.
// The win chance for under is the threshold itself, for over it is the
// remaining range; edge is applied on top (0.99 means a 1% house cut).
func Multiplier(threshold int, dir Direction, edge decimal.Decimal) (decimal.Decimal, error) {
	if threshold < 2 || threshold > 98 {
		return decimal.Zero, ErrBadThreshold
	}
	var chance int64
	switch dir {
	case Under:
		chance = int64(threshold)
	case Over:
		chance = int64(100 - threshold)
	default:
		return decimal.Zero, ErrBadDirection
	}
	return hundred.Div(decimal.NewFromInt(chance)).Mul(edge), nil
}

// Roll plays one round for the given stake.
func Roll(src rng.Source, stake int64, threshold int, dir Direction, edge decimal.Decimal) (Result, error) {
	mult, err := Multiplier(threshold, dir, edge)
	if err != nil {
		return Result{}, err
	}
	roll, err := rng.Roll(src)
	if err != nil {
		return Result{}, err
	}
	res := Result{Roll: roll, Multiplier: mult}
	switch dir {
	case Under:
		res.Win = roll < float64(threshold)
	case Over:
		res.Win = roll > float64(threshold)
	}
	if res.Win {
		res.Payout = mult.Mul(decimal.NewFromInt(stake)).Floor().IntPart()
	}
	return res, nil
}
