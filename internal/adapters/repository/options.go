package repository

import (
	"math/rand/v2"

	"github.com/okian/circle/pkg/metrics"
)

// Option applies a configuration option to the TreapStore.
type Option func(*TreapStore)

// WithCapacity bounds the history; the lowest-ranked attempt is dropped
// once it is exceeded. Zero keeps everything.
func WithCapacity(n int) Option {
	return func(s *TreapStore) {
		if n >= 0 {
			s.capacity = n
		}
	}
}

// WithMetrics records history size on m instead of the process-wide manager.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *TreapStore) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithSeed fixes the treap priority source.
func WithSeed(seed uint64) Option {
	return func(s *TreapStore) {
		s.rng = rand.New(rand.NewPCG(seed, seed))
	}
}
