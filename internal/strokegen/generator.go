package strokegen

import (
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/okian/circle/internal/domain/geometry"
	"github.com/okian/circle/internal/domain/model"
)

// Default generator configuration constants.
const (
	defaultSeed         = 42
	defaultCanvasWidth  = 500
	defaultCanvasHeight = 500
	defaultSampleEvery  = 8 * time.Millisecond

	// Catalogue shape sizes, as fractions of the shorter canvas side.
	radiusFraction  = 0.3
	jitterAmplitude = 3.0
	wobbleAmplitude = 0.25
	catalogueCount  = 80
	squarePerSide   = 20
	shortStroke     = 8
	sparseCount     = 30
	scribbleCount   = 120
	openArcSweep    = 1.5 * math.Pi
)

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithSeed makes the generator's noise reproducible from seed.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // reproducible fixtures
	}
}

// WithCanvas sets the canvas size shapes are centred in.
func WithCanvas(width, height float64) Option {
	return func(g *Generator) {
		if width > 0 && height > 0 {
			g.width = width
			g.height = height
		}
	}
}

// WithSampleInterval sets the spacing of event timestamps produced by Events.
func WithSampleInterval(d time.Duration) Option {
	return func(g *Generator) {
		if d > 0 {
			g.sampleEvery = d
		}
	}
}

// Generator produces noisy strokes and event streams.
type Generator struct {
	rng         *rand.Rand
	width       float64
	height      float64
	sampleEvery time.Duration
}

// New creates a Generator with configuration options.
func New(opts ...Option) *Generator {
	g := &Generator{
		rng:         rand.New(rand.NewSource(defaultSeed)), //nolint:gosec // reproducible fixtures
		width:       defaultCanvasWidth,
		height:      defaultCanvasHeight,
		sampleEvery: defaultSampleEvery,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Center returns the middle of the canvas.
func (g *Generator) Center() geometry.Point {
	return geometry.Pt(g.width/2, g.height/2)
}

// Radius returns the catalogue radius for the configured canvas.
func (g *Generator) Radius() float64 {
	return math.Min(g.width, g.height) * radiusFraction
}

// Jitter returns a copy of s with every coordinate displaced uniformly
// within ±amplitude.
func (g *Generator) Jitter(s geometry.Stroke, amplitude float64) geometry.Stroke {
	out := s.Clone()
	for i := range out {
		out[i].X += (g.rng.Float64()*2 - 1) * amplitude
		out[i].Y += (g.rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Scribble returns n points whose radius wanders randomly around radius.
func (g *Generator) Scribble(center geometry.Point, radius float64, n int) geometry.Stroke {
	s := make(geometry.Stroke, n)
	r := radius
	for i := range s {
		r += (g.rng.Float64()*2 - 1) * radius * wobbleAmplitude
		r = math.Max(radius*wobbleAmplitude, math.Min(radius*2, r))
		theta := 4 * math.Pi * float64(i) / float64(n)
		s[i] = geometry.Pt(center.X+r*math.Cos(theta), center.Y+r*math.Sin(theta))
	}
	return s
}

// Events converts s into a start, move..., end sequence with timestamps
// spaced by the configured sample interval from start.
func (g *Generator) Events(s geometry.Stroke, start time.Time) []model.Event {
	if len(s) == 0 {
		return nil
	}
	events := make([]model.Event, 0, len(s)+1)
	for i, p := range s {
		ev := model.Move(p)
		if i == 0 {
			ev = model.Start(p)
		}
		ev.At = start.Add(time.Duration(i) * g.sampleEvery)
		events = append(events, ev)
	}
	end := model.End()
	end.At = start.Add(time.Duration(len(s)-1) * g.sampleEvery)
	return append(events, end)
}

// Sample is a named stroke from the catalogue.
type Sample struct {
	ID     string
	Name   string
	Stroke geometry.Stroke
}

// Catalogue returns one stroke per reference shape, from a perfect circle
// down to strokes too short to score.
func (g *Generator) Catalogue() []Sample {
	c, r := g.Center(), g.Radius()
	shapes := []struct {
		name   string
		stroke geometry.Stroke
	}{
		{"circle", Circle(c, r, catalogueCount)},
		{"jittered-circle", g.Jitter(Circle(c, r, catalogueCount), jitterAmplitude)},
		{"sparse-circle", Circle(c, r, sparseCount)},
		{"open-arc", Arc(c, r, openArcSweep, catalogueCount)},
		{"ellipse", Ellipse(c, r*1.5, r*0.6, catalogueCount)},
		{"square", Square(c, r, squarePerSide)},
		{"scribble", g.Scribble(c, r, scribbleCount)},
		{"dot", Coincident(c, catalogueCount)},
		{"tap", Circle(c, r, shortStroke)},
	}

	out := make([]Sample, len(shapes))
	for i, s := range shapes {
		out[i] = Sample{ID: uuid.NewString(), Name: s.name, Stroke: s.stroke}
	}
	return out
}
