package roulette

import (
	"errors"
	"testing"

	"github.com/Zsw0rd/Gambo-web/internal/rng"
)

func TestValidate(t *testing.T) {
	for _, s := range []Spot{"0", "17", "36", Red, Black, Even, Odd, Low, High, FirstDz, SecondDz, ThirdDz} {
		if err := Validate(s); err != nil {
			t.Fatalf("spot %q should be valid: %v", s, err)
		}
	}
	for _, s := range []Spot{"37", "-1", "green", "", "1st13"} {
		if !errors.Is(Validate(s), ErrBadSpot) {
			t.Fatalf("spot %q should be rejected", s)
		}
	}
}

func TestSettleStraightNumber(t *testing.T) {
	res := Settle(map[Spot]int64{"17": 10, "18": 10}, 17)
	if res.Payout != 360 {
		t.Fatalf("expected 360 for a straight hit, got %d", res.Payout)
	}
	if _, ok := res.Wins["18"]; ok {
		t.Fatal("losing number must not pay")
	}
}

func TestSettleOutsideSpots(t *testing.T) {
	// 14 is red, even, low, second dozen.
	bets := map[Spot]int64{
		Red: 10, Black: 10, Even: 10, Odd: 10,
		Low: 10, High: 10, FirstDz: 10, SecondDz: 10, ThirdDz: 10,
	}
	res := Settle(bets, 14)
	want := map[Spot]int64{Red: 20, Even: 20, Low: 20, SecondDz: 30}
	if len(res.Wins) != len(want) {
		t.Fatalf("expected %d winning spots, got %v", len(want), res.Wins)
	}
	for spot, pay := range want {
		if res.Wins[spot] != pay {
			t.Fatalf("spot %s: expected %d, got %d", spot, pay, res.Wins[spot])
		}
	}
	if res.Payout != 90 {
		t.Fatalf("expected total 90, got %d", res.Payout)
	}
}

func TestSettleZeroVoidsOutsideBets(t *testing.T) {
	res := Settle(map[Spot]int64{Red: 10, Even: 10, Low: 10, FirstDz: 10, "0": 10}, 0)
	if len(res.Wins) != 1 || res.Wins["0"] != 360 {
		t.Fatalf("only the straight zero bet may pay, got %v", res.Wins)
	}
	if res.Payout != 360 {
		t.Fatalf("expected 360, got %d", res.Payout)
	}
}

func TestSpinStaysOnWheel(t *testing.T) {
	src := rng.NewCrypto()
	for i := 0; i < 100; i++ {
		n, err := Spin(src)
		if err != nil {
			t.Fatalf("spin failed: %v", err)
		}
		if n < 0 || n > 36 {
			t.Fatalf("pocket %d off the wheel", n)
		}
	}
}

func TestSpinFailsClosedOnEntropyError(t *testing.T) {
	if _, err := Spin(rng.NewFailing()); !errors.Is(err, rng.ErrEntropy) {
		t.Fatalf("expected entropy error, got %v", err)
	}
}
