package rng

import (
	"errors"
	"testing"
)

func TestShuffleIsPermutation(t *testing.T) {
	src := NewSeeded(42)
	perm, err := Shuffle(src, 52)
	if err != nil {
		t.Fatalf("shuffle: %v", err)
	}
	if len(perm) != 52 {
		t.Fatalf("expected 52 entries, got %d", len(perm))
	}
	seen := make(map[int]bool, 52)
	for _, v := range perm {
		if v < 0 || v >= 52 {
			t.Fatalf("value %d out of range", v)
		}
		if seen[v] {
			t.Fatalf("duplicate value %d", v)
		}
		seen[v] = true
	}
}

func TestSampleNoDuplicates(t *testing.T) {
	src := NewSeeded(7)
	for trial := 0; trial < 100; trial++ {
		cells, err := Sample(src, 10, 25)
		if err != nil {
			t.Fatalf("sample: %v", err)
		}
		if len(cells) != 10 {
			t.Fatalf("expected 10 cells, got %d", len(cells))
		}
		seen := make(map[int]bool)
		for _, c := range cells {
			if c < 0 || c >= 25 {
				t.Fatalf("cell %d out of range", c)
			}
			if seen[c] {
				t.Fatalf("duplicate cell %d", c)
			}
			seen[c] = true
		}
	}
}

func TestSampleRejectsBadSize(t *testing.T) {
	if _, err := Sample(NewSeeded(1), 26, 25); err == nil {
		t.Fatal("expected error for oversized sample")
	}
}

func TestRangeBounds(t *testing.T) {
	src := NewSeeded(3)
	for i := 0; i < 1000; i++ {
		v, err := Range(src, 0, 36)
		if err != nil {
			t.Fatalf("range: %v", err)
		}
		if v < 0 || v > 36 {
			t.Fatalf("value %d outside [0,36]", v)
		}
	}
}

func TestFailingSourceFailsClosed(t *testing.T) {
	src := NewFailing()
	if _, err := Shuffle(src, 52); !errors.Is(err, ErrEntropy) {
		t.Fatalf("expected ErrEntropy, got %v", err)
	}
	if _, err := Sample(src, 3, 25); !errors.Is(err, ErrEntropy) {
		t.Fatalf("expected ErrEntropy, got %v", err)
	}
	if _, err := Roll(src); !errors.Is(err, ErrEntropy) {
		t.Fatalf("expected ErrEntropy, got %v", err)
	}
}

func TestCryptoSourceBasics(t *testing.T) {
	src := NewCrypto()
	for i := 0; i < 100; i++ {
		v, err := src.Intn(37)
		if err != nil {
			t.Fatalf("intn: %v", err)
		}
		if v < 0 || v >= 37 {
			t.Fatalf("value %d outside [0,37)", v)
		}
	}
	f, err := src.Float64()
	if err != nil {
		t.Fatalf("float64: %v", err)
	}
	if f < 0 || f >= 1 {
		t.Fatalf("float %f outside [0,1)", f)
	}
}
