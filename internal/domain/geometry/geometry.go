// Package geometry contains the point and stroke value types shared by the
// input session and the scorer.
package geometry

import "math"

// Point is a canvas-local coordinate in pixels, origin top-left.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// IsFinite reports whether both coordinates are finite numbers.
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Stroke is the ordered sequence of points captured for one gesture.
// Insertion order is capture order; points are never reordered or deduplicated.
type Stroke []Point

// Len returns the number of points.
func (s Stroke) Len() int { return len(s) }

// Empty reports whether the stroke has no points.
func (s Stroke) Empty() bool { return len(s) == 0 }

// First returns the first point, or the zero Point for an empty stroke.
func (s Stroke) First() Point {
	if len(s) == 0 {
		return Point{}
	}
	return s[0]
}

// Last returns the last point, or the zero Point for an empty stroke.
func (s Stroke) Last() Point {
	if len(s) == 0 {
		return Point{}
	}
	return s[len(s)-1]
}

// Clone returns a copy that shares no backing array with s.
func (s Stroke) Clone() Stroke {
	if s == nil {
		return Stroke{}
	}
	out := make(Stroke, len(s))
	copy(out, s)
	return out
}

// Centroid returns the arithmetic mean of all points.
// The centroid of an empty stroke is the origin.
func (s Stroke) Centroid() Point {
	if len(s) == 0 {
		return Point{}
	}
	var sumX, sumY float64
	for _, p := range s {
		sumX += p.X
		sumY += p.Y
	}
	n := float64(len(s))
	return Point{X: sumX / n, Y: sumY / n}
}

// Gap returns the distance between the first and last point.
func (s Stroke) Gap() float64 {
	return s.First().Distance(s.Last())
}
