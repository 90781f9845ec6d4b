// Package mines implements the minefield game on a 5x5 grid. The player
// reveals cells one at a time; each safe reveal raises the multiplier and a
// bomb forfeits the stake. The player may cash out between reveals.
package mines

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/Zsw0rd/Gambo-web/internal/rng"
)

const gridSize = 25

var (
	ErrBadBombCount  = errors.New("bomb count must be between 1 and 24")
	ErrBadCell       = errors.New("cell out of range")
	ErrCellRevealed  = errors.New("cell already revealed")
	ErrRoundFinished = errors.New("round already finished")
	ErrNothingToTake = errors.New("nothing revealed yet")
)

var increment = decimal.RequireFromString("0.05")

// State is one minefield round. Bombs holds cell indexes; it never leaves
// the server while the round is live.
type State struct {
	Stake    int64
	Bombs    map[int]bool
	Revealed map[int]bool
	Busted   bool
	Done     bool
}

// Start deals a fresh field with the given bomb count.
func Start(src rng.Source, stake int64, bombCount int) (*State, error) {
	if bombCount < 1 || bombCount > gridSize-1 {
		return nil, ErrBadBombCount
	}
	cells, err := rng.Sample(src, bombCount, gridSize)
	if err != nil {
		return nil, err
	}
	bombs := make(map[int]bool, bombCount)
	for _, c := range cells {
		bombs[c] = true
	}
	return &State{
		Stake:    stake,
		Bombs:    bombs,
		Revealed: make(map[int]bool),
	}, nil
}

// base returns the starting multiplier for the field's bomb count.
func (s *State) base() decimal.Decimal {
	switch len(s.Bombs) {
	case 3:
		return decimal.RequireFromString("1.2")
	case 5:
		return decimal.RequireFromString("1.5")
	case 10:
		return decimal.NewFromInt(2)
	}
	return decimal.NewFromInt(1)
}

// Multiplier is the current cashout rate: the base for the bomb count plus
// a fixed increment per safe reveal.
func (s *State) Multiplier() decimal.Decimal {
	reveals := decimal.NewFromInt(int64(len(s.Revealed)))
	return s.base().Add(increment.Mul(reveals))
}

// Reveal opens one cell. Hitting a bomb ends the round with the stake lost.
// Clearing every safe cell ends the round as a win.
func (s *State) Reveal(cell int) error {
	if s.Done {
		return ErrRoundFinished
	}
	if cell < 0 || cell >= gridSize {
		return ErrBadCell
	}
	if s.Revealed[cell] {
		return ErrCellRevealed
	}
	if s.Bombs[cell] {
		s.Busted = true
		s.Done = true
		return nil
	}
	s.Revealed[cell] = true
	if len(s.Revealed) == gridSize-len(s.Bombs) {
		s.Done = true
	}
	return nil
}

// Cashout ends the round and returns the payout. At least one cell must
// have been revealed.
func (s *State) Cashout() (int64, error) {
	if s.Done {
		return 0, ErrRoundFinished
	}
	if len(s.Revealed) == 0 {
		return 0, ErrNothingToTake
	}
	s.Done = true
	return s.Payout(), nil
}

// Payout is the amount owed for the round as it stands. A busted round
// pays nothing.
func (s *State) Payout() int64 {
	if s.Busted {
		return 0
	}
	return s.Multiplier().Mul(decimal.NewFromInt(s.Stake)).Floor().IntPart()
}

// BombCells lists the bomb positions, for disclosure after the round ends.
func (s *State) BombCells() []int {
	cells := make([]int, 0, len(s.Bombs))
	for c := range s.Bombs {
		cells = append(cells, c)
	}
	return cells
}
