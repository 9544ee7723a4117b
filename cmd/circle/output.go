package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/okian/circle/internal/adapters/repository"
	"github.com/okian/circle/internal/domain/model"
)

// table writes aligned result rows.
type table struct {
	tw *tabwriter.Writer
}

func newTable(w io.Writer, header ...string) *table {
	t := &table{tw: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
	for i, h := range header {
		if i > 0 {
			fmt.Fprint(t.tw, "\t")
		}
		fmt.Fprint(t.tw, h)
	}
	fmt.Fprintln(t.tw)
	return t
}

func (t *table) row(cols ...any) {
	for i, c := range cols {
		if i > 0 {
			fmt.Fprint(t.tw, "\t")
		}
		fmt.Fprint(t.tw, c)
	}
	fmt.Fprintln(t.tw)
}

func (t *table) flush() error { return t.tw.Flush() }

var resultHeader = []string{"GESTURE", "POINTS", "SCORE", "RATING", "TIER", "DURATION"}

func (t *table) result(label string, r model.Result) {
	t.row(label, r.Points, r.Score, r.Rating.Message, r.Rating.Tier, r.Duration.Round(time.Millisecond))
}

// printTop writes the n best attempts held in history.
func printTop(ctx context.Context, w io.Writer, history repository.Store, n int) error {
	entries, err := history.TopN(ctx, n)
	if err != nil {
		return err
	}
	fmt.Fprintln(w)
	t := newTable(w, "RANK", "ATTEMPT", "POINTS", "SCORE", "RATING")
	for _, e := range entries {
		t.row(e.Rank, e.Seq, e.Points, e.Score, e.Message)
	}
	return t.flush()
}
