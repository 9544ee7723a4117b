// Package model contains domain models passed between layers.
package model

import (
	"time"

	"github.com/okian/circle/internal/domain/geometry"
	"github.com/okian/circle/internal/domain/rating"
	"github.com/okian/circle/internal/domain/scoring"
)

// Kind tags a pointer event with its place in the gesture lifecycle.
type Kind string

// Gesture event kinds.
const (
	KindStart Kind = "start"
	KindMove  Kind = "move"
	KindEnd   Kind = "end"
)

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindStart, KindMove, KindEnd:
		return true
	}
	return false
}

// Event is a pointer sample delivered by the input collaborator, already in
// canvas-local coordinates. X and Y are ignored for end events.
type Event struct {
	Kind Kind      // lifecycle tag
	X    float64   // canvas x in pixels
	Y    float64   // canvas y in pixels
	At   time.Time // capture time, zero when unknown
}

// Point returns the event position.
func (e Event) Point() geometry.Point { return geometry.Pt(e.X, e.Y) }

// Start, Move and End build events at p.
func Start(p geometry.Point) Event { return Event{Kind: KindStart, X: p.X, Y: p.Y} }
func Move(p geometry.Point) Event  { return Event{Kind: KindMove, X: p.X, Y: p.Y} }
func End() Event                   { return Event{Kind: KindEnd} }

// Result is produced once per finished gesture.
type Result struct {
	GestureID string
	Points    int
	Score     int
	Rating    rating.Rating
	Analysis  scoring.Analysis
	Duration  time.Duration // first to last sample, zero without timestamps
}
