package rng

import "math/rand"

type seededSource struct {
	r *rand.Rand
}

// NewSeeded returns a deterministic Source for tests. Draws are reproducible
// for a given seed.
func NewSeeded(seed int64) Source {
	return &seededSource{r: rand.New(rand.NewSource(seed))}
}

func (s *seededSource) Intn(n int) (int, error) {
	if n <= 0 {
		return 0, ErrEntropy
	}
	return s.r.Intn(n), nil
}

func (s *seededSource) Float64() (float64, error) {
	return s.r.Float64(), nil
}

type failingSource struct{}

// NewFailing returns a Source whose every draw fails. Used to verify that
// games fail closed when entropy is unavailable.
func NewFailing() Source {
	return failingSource{}
}

func (failingSource) Intn(int) (int, error) { return 0, ErrEntropy }

func (failingSource) Float64() (float64, error) { return 0, ErrEntropy }
