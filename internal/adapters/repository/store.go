// Package repository keeps the attempt history: every finished gesture of
// the current run, ranked best first.
package repository

import (
	"context"

	"github.com/okian/circle/internal/domain/model"
)

// Entry represents one ranked attempt.
type Entry struct {
	Rank      int
	Seq       uint64 // 1-based arrival order
	GestureID string
	Score     int
	Points    int
	Message   string
}

// Store provides read/write access to the attempt history.
type Store interface {
	// Add records a finished gesture and returns its entry. The bool is false
	// when the history was full and the gesture ranked below everything kept.
	Add(ctx context.Context, r model.Result) (Entry, bool)

	// Rank returns the current rank of a gesture.
	// Returns ErrNotFound if the gesture is unknown or was evicted.
	Rank(ctx context.Context, gestureID string) (Entry, error)

	// TopN returns the top-N entries ordered by score desc, then arrival asc.
	TopN(ctx context.Context, n int) ([]Entry, error)

	// Count returns the number of attempts held.
	Count(ctx context.Context) int
}
