// Package session tracks the point sequence of one drawing gesture.
//
// A Session is a two-state machine: Begin is the only way into the active
// state and End is the only way back to idle. Extend outside an active
// gesture is ignored. A Session is not safe for concurrent use.
package session

import "github.com/okian/circle/internal/domain/geometry"

// State is the lifecycle state of a Session.
type State int

// Session states.
const (
	Idle State = iota
	Active
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Active:
		return "active"
	default:
		return "unknown"
	}
}

// Session accumulates the stroke of the current gesture.
type Session struct {
	state  State
	stroke geometry.Stroke
}

// New returns an idle session.
func New() *Session {
	return &Session{}
}

// Begin discards any prior stroke and starts a new one containing exactly p.
func (s *Session) Begin(p geometry.Point) {
	s.stroke = geometry.Stroke{p}
	s.state = Active
}

// Extend appends p to the active stroke. It reports false, leaving the
// session untouched, when no gesture is active.
func (s *Session) Extend(p geometry.Point) bool {
	if s.state != Active {
		return false
	}
	s.stroke = append(s.stroke, p)
	return true
}

// End freezes the active stroke, returns it, and moves the session to idle.
// Ending an idle session returns an empty stroke.
func (s *Session) End() geometry.Stroke {
	if s.state != Active {
		return geometry.Stroke{}
	}
	out := s.stroke
	s.stroke = nil
	s.state = Idle
	return out
}

// Clear drops the active stroke without producing one and returns to idle.
func (s *Session) Clear() {
	s.stroke = nil
	s.state = Idle
}

// State returns the current lifecycle state.
func (s *Session) State() State { return s.state }

// Active reports whether a gesture is in progress.
func (s *Session) Active() bool { return s.state == Active }

// Len returns the number of points captured so far.
func (s *Session) Len() int { return len(s.stroke) }

// Points returns a copy of the points captured so far.
func (s *Session) Points() geometry.Stroke { return s.stroke.Clone() }
