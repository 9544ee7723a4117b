package main

import (
	"fmt"
	"io"
	"os"

	"github.com/okian/circle/internal/adapters/replay"
	app "github.com/okian/circle/internal/app"
	"github.com/spf13/cobra"
)

func scoreCmd(rt *cli) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a JSON array of {x,y} points as one stroke",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var in io.Reader = cmd.InOrStdin()
			if file != "-" {
				f, err := os.Open(file)
				if err != nil {
					return fmt.Errorf("open stroke: %w", err)
				}
				defer f.Close()
				in = f
			}

			stroke, err := replay.ReadStroke(in)
			if err != nil {
				return err
			}

			svc := app.New(
				app.WithLogger(rt.log.Named("game")),
				app.WithScoringOptions(rt.scoringOptions()...),
			)
			r := svc.Evaluate(cmd.Context(), stroke)
			a := r.Analysis

			t := newTable(cmd.OutOrStdout(), "FIELD", "VALUE")
			t.row("points", r.Points)
			t.row("score", r.Score)
			t.row("rating", r.Rating.Message)
			t.row("tier", r.Rating.Tier)
			t.row("celebrate", r.Rating.Celebrate)
			t.row("too_short", a.TooShort)
			t.row("degenerate", a.Degenerate)
			if !a.TooShort && !a.Degenerate {
				t.row("centroid", fmt.Sprintf("(%.2f, %.2f)", a.Centroid.X, a.Centroid.Y))
				t.row("avg_radius", fmt.Sprintf("%.3f", a.AvgRadius))
				t.row("circularity", fmt.Sprintf("%.4f", a.Circularity))
				t.row("gap", fmt.Sprintf("%.3f", a.Gap))
				t.row("sample_penalty", a.SamplePenalty)
				t.row("closure_penalty", a.ClosurePenalty)
			}
			return t.flush()
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON point array file, - for stdin")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
