// Package scoring rates how close a freehand stroke is to a perfect circle.
package scoring

import (
	"math"

	"github.com/okian/circle/internal/domain/geometry"
)

// Default scoring configuration constants.
const (
	DefaultMinPoints      = 10
	DefaultSampleTarget   = 50
	DefaultClosureRatio   = 0.2
	DefaultClosurePenalty = 0.8

	MinScore = 0
	MaxScore = 100
)

// Option applies a configuration option to the CircleScorer.
type Option func(*CircleScorer)

// WithMinPoints sets the largest stroke length that is rejected as too short.
func WithMinPoints(n int) Option {
	return func(s *CircleScorer) {
		if n >= 0 {
			s.minPoints = n
		}
	}
}

// WithSampleTarget sets the point count below which the score ramps down linearly.
func WithSampleTarget(n int) Option {
	return func(s *CircleScorer) {
		if n > 0 {
			s.sampleTarget = n
		}
	}
}

// WithClosure sets the closure threshold (fraction of the average radius) and
// the multiplier applied when the gap between first and last point exceeds it.
func WithClosure(ratio, penalty float64) Option {
	return func(s *CircleScorer) {
		if ratio >= 0 && penalty >= 0 && penalty <= 1 {
			s.closureRatio = ratio
			s.closurePenalty = penalty
		}
	}
}

// Scorer computes a 0..100 score from a finished stroke.
type Scorer interface {
	Score(stroke geometry.Stroke) int
}

// Analysis carries the intermediate values of one scoring pass.
type Analysis struct {
	Points      int
	Centroid    geometry.Point
	AvgRadius   float64
	StdDev      float64
	Circularity float64
	Gap         float64
	Raw         float64

	TooShort       bool
	Degenerate     bool
	SamplePenalty  bool
	ClosurePenalty bool

	Score int
}

// CircleScorer implements Scorer with the radius coefficient-of-variation heuristic.
type CircleScorer struct {
	minPoints      int
	sampleTarget   int
	closureRatio   float64
	closurePenalty float64
}

// NewCircleScorer creates a scorer with configuration options.
func NewCircleScorer(opts ...Option) *CircleScorer {
	s := &CircleScorer{
		minPoints:      DefaultMinPoints,
		sampleTarget:   DefaultSampleTarget,
		closureRatio:   DefaultClosureRatio,
		closurePenalty: DefaultClosurePenalty,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Score returns the circle score for stroke.
func (s *CircleScorer) Score(stroke geometry.Stroke) int {
	return s.Analyze(stroke).Score
}

// Analyze scores stroke and reports every intermediate value.
//
// Penalties compound multiplicatively in a fixed order: sample count first,
// then closure. Strokes whose average radius is zero or not finite score 0.
func (s *CircleScorer) Analyze(stroke geometry.Stroke) Analysis {
	n := stroke.Len()
	a := Analysis{Points: n}

	if n <= s.minPoints {
		a.TooShort = true
		a.Score = MinScore
		return a
	}

	a.Centroid = stroke.Centroid()

	radii := make([]float64, n)
	var sumRadius float64
	for i, p := range stroke {
		radii[i] = p.Distance(a.Centroid)
		sumRadius += radii[i]
	}
	a.AvgRadius = sumRadius / float64(n)

	var sumSquaredDiff float64
	for _, r := range radii {
		d := r - a.AvgRadius
		sumSquaredDiff += d * d
	}
	a.StdDev = math.Sqrt(sumSquaredDiff / float64(n))
	a.Gap = stroke.Gap()

	if a.AvgRadius == 0 || math.IsNaN(a.AvgRadius) || math.IsInf(a.AvgRadius, 0) {
		a.Degenerate = true
		a.Score = MinScore
		return a
	}

	a.Circularity = a.StdDev / a.AvgRadius
	score := MaxScore - a.Circularity*MaxScore

	if n < s.sampleTarget {
		a.SamplePenalty = true
		score *= float64(n) / float64(s.sampleTarget)
	}

	if a.Gap > a.AvgRadius*s.closureRatio {
		a.ClosurePenalty = true
		score *= s.closurePenalty
	}

	a.Raw = score
	a.Score = clamp(score)
	return a
}

func clamp(score float64) int {
	if math.IsNaN(score) {
		return MinScore
	}
	return int(math.Max(MinScore, math.Min(MaxScore, math.Round(score))))
}
