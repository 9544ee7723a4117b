// Package strokegen builds synthetic strokes and pointer event streams for
// tests, demos and replay fixtures.
package strokegen

import (
	"math"

	"github.com/okian/circle/internal/domain/geometry"
)

// Circle returns n points evenly spaced on a circle, starting at angle 0 and
// running counter-clockwise in canvas angle terms. The last point sits one
// step before the first, so the stroke reads as closed.
func Circle(center geometry.Point, radius float64, n int) geometry.Stroke {
	return Ellipse(center, radius, radius, n)
}

// Ellipse returns n points evenly spaced in angle on an axis-aligned ellipse.
func Ellipse(center geometry.Point, rx, ry float64, n int) geometry.Stroke {
	if n <= 0 {
		return geometry.Stroke{}
	}
	s := make(geometry.Stroke, n)
	for i := range s {
		theta := 2 * math.Pi * float64(i) / float64(n)
		s[i] = geometry.Pt(center.X+rx*math.Cos(theta), center.Y+ry*math.Sin(theta))
	}
	return s
}

// Arc returns n points from angle 0 through sweep (radians) inclusive.
func Arc(center geometry.Point, radius, sweep float64, n int) geometry.Stroke {
	if n <= 0 {
		return geometry.Stroke{}
	}
	if n == 1 {
		return geometry.Stroke{geometry.Pt(center.X+radius, center.Y)}
	}
	s := make(geometry.Stroke, n)
	for i := range s {
		theta := sweep * float64(i) / float64(n-1)
		s[i] = geometry.Pt(center.X+radius*math.Cos(theta), center.Y+radius*math.Sin(theta))
	}
	return s
}

// Square returns the outline of an axis-aligned square with half-width half,
// sampled perSide points per edge, starting at the top-left corner.
func Square(center geometry.Point, half float64, perSide int) geometry.Stroke {
	if perSide <= 0 {
		return geometry.Stroke{}
	}
	corners := [4]geometry.Point{
		geometry.Pt(center.X-half, center.Y-half),
		geometry.Pt(center.X+half, center.Y-half),
		geometry.Pt(center.X+half, center.Y+half),
		geometry.Pt(center.X-half, center.Y+half),
	}
	s := make(geometry.Stroke, 0, 4*perSide)
	for k := range corners {
		from, to := corners[k], corners[(k+1)%4]
		for i := 0; i < perSide; i++ {
			t := float64(i) / float64(perSide)
			s = append(s, geometry.Pt(from.X+(to.X-from.X)*t, from.Y+(to.Y-from.Y)*t))
		}
	}
	return s
}

// Coincident returns n copies of p.
func Coincident(p geometry.Point, n int) geometry.Stroke {
	if n < 0 {
		n = 0
	}
	s := make(geometry.Stroke, n)
	for i := range s {
		s[i] = p
	}
	return s
}

// Closed returns a copy of s with its first point repeated at the end.
func Closed(s geometry.Stroke) geometry.Stroke {
	out := s.Clone()
	if len(out) == 0 {
		return out
	}
	return append(out, out[0])
}

// MoveToEnd returns a copy of s with the point at index i moved to the end.
// Out-of-range indexes return an unchanged copy.
func MoveToEnd(s geometry.Stroke, i int) geometry.Stroke {
	out := s.Clone()
	if i < 0 || i >= len(out) {
		return out
	}
	p := out[i]
	out = append(out[:i], out[i+1:]...)
	return append(out, p)
}
