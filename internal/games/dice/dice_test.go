package dice

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Zsw0rd/Gambo-web/internal/rng"
)

var edge = decimal.RequireFromString("0.99")

// fixed returns one predetermined uniform draw.
type fixed struct{ f float64 }

func (s fixed) Intn(n int) (int, error)   { return 0, nil }
func (s fixed) Float64() (float64, error) { return s.f, nil }

func TestMultiplier(t *testing.T) {
	cases := []struct {
		threshold int
		dir       Direction
		want      string
	}{
		{50, Under, "1.98"},
		{50, Over, "1.98"},
		{25, Under, "3.96"},
		{25, Over, "1.32"},
		{2, Under, "49.5"},
		{98, Over, "49.5"},
	}
	for _, tc := range cases {
		got, err := Multiplier(tc.threshold, tc.dir, edge)
		if err != nil {
			t.Fatalf("%d %s: %v", tc.threshold, tc.dir, err)
		}
		if !got.Equal(decimal.RequireFromString(tc.want)) {
			t.Fatalf("%d %s: expected %s, got %s", tc.threshold, tc.dir, tc.want, got)
		}
	}
}

func TestMultiplierRejectsBadInput(t *testing.T) {
	if _, err := Multiplier(1, Under, edge); !errors.Is(err, ErrBadThreshold) {
		t.Fatalf("expected ErrBadThreshold, got %v", err)
	}
	if _, err := Multiplier(99, Over, edge); !errors.Is(err, ErrBadThreshold) {
		t.Fatalf("expected ErrBadThreshold, got %v", err)
	}
	if _, err := Multiplier(50, "sideways", edge); !errors.Is(err, ErrBadDirection) {
		t.Fatalf("expected ErrBadDirection, got %v", err)
	}
}

func TestRollUnderWins(t *testing.T) {
	res, err := Roll(fixed{f: 0.3}, 100, 50, Under, edge)
	if err != nil {
		t.Fatalf("roll failed: %v", err)
	}
	if !res.Win {
		t.Fatalf("expected roll %.2f under 50 to win", res.Roll)
	}
	if res.Payout != 198 {
		t.Fatalf("expected payout 198, got %d", res.Payout)
	}
}

func TestRollOverLosesOnExactThreshold(t *testing.T) {
	res, err := Roll(fixed{f: 0.5}, 100, 50, Over, edge)
	if err != nil {
		t.Fatalf("roll failed: %v", err)
	}
	if res.Win {
		t.Fatal("a roll equal to the threshold must lose for over")
	}
	if res.Payout != 0 {
		t.Fatalf("losing roll must pay nothing, got %d", res.Payout)
	}
}

func TestRollPayoutFloors(t *testing.T) {
	// 1.98 * 7 = 13.86 floors to 13.
	res, err := Roll(fixed{f: 0.1}, 7, 50, Under, edge)
	if err != nil {
		t.Fatalf("roll failed: %v", err)
	}
	if res.Payout != 13 {
		t.Fatalf("expected floor(13.86) = 13, got %d", res.Payout)
	}

	// 3.96 * 7 = 27.72 floors to 27.
	res2, err := Roll(fixed{f: 0.1}, 7, 25, Under, edge)
	if err != nil {
		t.Fatalf("roll failed: %v", err)
	}
	if res2.Payout != 27 {
		t.Fatalf("expected floor(27.72) = 27, got %d", res2.Payout)
	}
}

func TestRollReturnConvergesToHouseEdge(t *testing.T) {
	const (
		trials = 200_000
		stake  = int64(100)
	)
	src := rng.NewSeeded(1)
	var staked, paid int64
	for i := 0; i < trials; i++ {
		res, err := Roll(src, stake, 50, Under, edge)
		if err != nil {
			t.Fatalf("roll %d failed: %v", i, err)
		}
		staked += stake
		paid += res.Payout
	}
	// Expected return is 0.99 of the stake; the seeded sample mean must land
	// close to it.
	rate := float64(paid) / float64(staked)
	if rate < 0.97 || rate > 1.01 {
		t.Fatalf("return rate %.4f did not converge to 0.99", rate)
	}
}

func TestRollFailsClosedOnEntropyError(t *testing.T) {
	if _, err := Roll(rng.NewFailing(), 100, 50, Under, edge); !errors.Is(err, rng.ErrEntropy) {
		t.Fatalf("expected entropy error, got %v", err)
	}
}
