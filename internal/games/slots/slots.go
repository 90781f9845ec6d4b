// Package slots implements a three-reel slot machine. Each reel draws one
// symbol uniformly and independently; the paytable pays on three of a kind
// and, for the low symbols, on any matching pair.
package slots

import (
	"github.com/shopspring/decimal"

	"github.com/Zsw0rd/Gambo-web/internal/rng"
)

// Symbol is one reel face with its paytable multipliers. A zero pair
// multiplier means the symbol only pays on a triple.
type Symbol struct {
	Name   string
	Triple decimal.Decimal
	Pair   decimal.Decimal
}

var paytable = []Symbol{
	{Name: "triple_diamonds", Triple: decimal.NewFromInt(50)},
	{Name: "diamond", Triple: decimal.NewFromInt(25)},
	{Name: "coins", Triple: decimal.NewFromInt(10)},
	{Name: "apple", Triple: decimal.NewFromInt(4), Pair: decimal.RequireFromString("1.5")},
	{Name: "mango", Triple: decimal.NewFromInt(2), Pair: decimal.RequireFromString("1.3")},
}

// Result is a finished spin.
type Result struct {
	Reels      [3]string       `json:"reels"`
	Multiplier decimal.Decimal `json:"multiplier"`
	Payout     int64           `json:"payout"`
}

// Spin draws three reels and resolves the payout for the given stake.
func Spin(src rng.Source, stake int64) (Result, error) {
	var idx [3]int
	var res Result
	for i := range idx {
		n, err := src.Intn(len(paytable))
		if err != nil {
			return Result{}, err
		}
		idx[i] = n
		res.Reels[i] = paytable[n].Name
	}
	res.Multiplier = multiplier(idx)
	res.Payout = res.Multiplier.Mul(decimal.NewFromInt(stake)).Floor().IntPart()
	return res, nil
}

// multiplier resolves a draw against the paytable. A triple pays its triple
// rate; otherwise the first matching pair with a nonzero pair rate pays.
func multiplier(idx [3]int) decimal.Decimal {
	if idx[0] == idx[1] && idx[1] == idx[2] {
		return paytable[idx[0]].Triple
	}
	pairs := [][2]int{{0, 1}, {1, 2}, {0, 2}}
	for _, p := range pairs {
		if idx[p[0]] == idx[p[1]] && paytable[idx[p[0]]].Pair.IsPositive() {
			return paytable[idx[p[0]]].Pair
		}
	}
	return decimal.Zero
}
