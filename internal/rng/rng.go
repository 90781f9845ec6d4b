package rng

import (
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"math/big"
)

// ErrEntropy indicates the underlying entropy source failed. Callers must
// fail closed: no outcome is produced and no stake may be debited.
var ErrEntropy = errors.New("entropy source unavailable")

// Source is the single randomness port injected into every game draw.
// Game logic never reaches for ambient randomness directly.
type Source interface {
	// Intn returns a uniform value in [0, n). n must be > 0.
	Intn(n int) (int, error)
	// Float64 returns a uniform value in [0, 1).
	Float64() (float64, error)
}

type cryptoSource struct{}

// NewCrypto returns a Source backed by crypto/rand.
func NewCrypto() Source {
	return cryptoSource{}
}

func (cryptoSource) Intn(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("rng: Intn bound must be positive, got %d", n)
	}
	v, err := crand.Int(crand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrEntropy, err)
	}
	return int(v.Int64()), nil
}

func (cryptoSource) Float64() (float64, error) {
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrEntropy, err)
	}
	// 53 random bits gives the full precision of a float64 mantissa.
	bits := binary.BigEndian.Uint64(buf[:]) >> 11
	return float64(bits) / (1 << 53), nil
}

// Shuffle returns a uniformly random permutation of [0, n) using
// Fisher-Yates in O(n).
func Shuffle(src Source, n int) ([]int, error) {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j, err := src.Intn(i + 1)
		if err != nil {
			return nil, err
		}
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm, nil
}

// Sample returns a uniformly random k-subset of [0, n) without replacement.
func Sample(src Source, k, n int) ([]int, error) {
	if k < 0 || k > n {
		return nil, fmt.Errorf("rng: sample size %d out of range for %d cells", k, n)
	}
	perm, err := Shuffle(src, n)
	if err != nil {
		return nil, err
	}
	return perm[:k], nil
}

// Range returns a uniform value in the closed range [min, max].
func Range(src Source, min, max int) (int, error) {
	if max < min {
		return 0, fmt.Errorf("rng: invalid range [%d, %d]", min, max)
	}
	v, err := src.Intn(max - min + 1)
	if err != nil {
		return 0, err
	}
	return min + v, nil
}

// Roll returns a uniform value in [0, 100), the dice game's draw space.
func Roll(src Source) (float64, error) {
	f, err := src.Float64()
	if err != nil {
		return 0, err
	}
	return f * 100, nil
}
