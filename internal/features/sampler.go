package features

import (
	"sync"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Sampler produces the synthetic indicator values the bank falls back on
// until real indicator feeds are wired in. Implementations must satisfy the
// documented range and central-tendency contract for each feature.
type Sampler interface {
	Normal(mean, stddev float64) float64
}

// NormalSampler draws from a normal distribution. Safe for concurrent use.
type NormalSampler struct {
	mu  sync.Mutex
	src rand.Source
}

// NewNormalSampler creates a sampler seeded with the given value.
func NewNormalSampler(seed uint64) *NormalSampler {
	return &NormalSampler{src: rand.NewSource(seed)}
}

func (s *NormalSampler) Normal(mean, stddev float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return distuv.Normal{Mu: mean, Sigma: stddev, Src: s.src}.Rand()
}

// FixedSampler always returns the distribution mean. Used in tests and
// anywhere deterministic output is needed.
type FixedSampler struct{}

func (FixedSampler) Normal(mean, _ float64) float64 {
	return mean
}
