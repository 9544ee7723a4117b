package main

import (
	"time"

	"github.com/okian/circle/internal/adapters/replay"
	app "github.com/okian/circle/internal/app"
	"github.com/okian/circle/internal/strokegen"
	"github.com/spf13/cobra"
)

func demoCmd(rt *cli) *cobra.Command {
	var (
		seed int64
		emit bool
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Score the synthetic shape catalogue",
		Long: "Generates one stroke per reference shape and scores it through the game.\n" +
			"With --emit the strokes are written as JSON-lines events instead, ready for replay.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			gen := strokegen.New(
				strokegen.WithSeed(seed),
				strokegen.WithCanvas(rt.cfg.CanvasWidth, rt.cfg.CanvasHeight),
			)
			catalogue := gen.Catalogue()
			start := time.Now()

			if emit {
				w := replay.NewWriter(cmd.OutOrStdout())
				for _, s := range catalogue {
					if err := w.WriteAll(gen.Events(s.Stroke, start)); err != nil {
						return err
					}
				}
				return nil
			}

			svc := app.New(
				app.WithLogger(rt.log.Named("game")),
				app.WithScoringOptions(rt.scoringOptions()...),
			)
			svc.Start(ctx)

			t := newTable(cmd.OutOrStdout(), append([]string{"SHAPE"}, resultHeader[1:]...)...)
			for _, s := range catalogue {
				for _, e := range gen.Events(s.Stroke, start) {
					if r, ok := svc.Handle(ctx, e); ok {
						t.result(s.Name, r)
					}
				}
			}
			return t.flush()
		},
	}
	cmd.Flags().Int64Var(&seed, "seed", 42, "noise seed for the jittered shapes")
	cmd.Flags().BoolVar(&emit, "emit", false, "write JSON-lines events instead of scoring")
	return cmd
}
