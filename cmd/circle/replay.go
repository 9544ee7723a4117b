package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/okian/circle/internal/adapters/mq/queue"
	"github.com/okian/circle/internal/adapters/mq/worker"
	"github.com/okian/circle/internal/adapters/replay"
	"github.com/okian/circle/internal/adapters/repository"
	app "github.com/okian/circle/internal/app"
	"github.com/okian/circle/internal/domain/model"
	"github.com/okian/circle/pkg/logger"
	"github.com/spf13/cobra"
)

func replayCmd(rt *cli) *cobra.Command {
	var (
		file string
		top  int
	)

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Score gestures from recorded JSON-lines pointer events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := cmd.InOrStdin()
			if file != "" && file != "-" {
				f, err := os.Open(file)
				if err != nil {
					return fmt.Errorf("open replay: %w", err)
				}
				defer f.Close()
				in = f
			}
			return rt.replay(cmd.Context(), in, cmd.OutOrStdout(), top)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON-lines event file (default stdin)")
	cmd.Flags().IntVar(&top, "top", 0, "also print the N best attempts")
	return cmd
}

// replay streams events through queue -> worker -> game and prints one row
// per finished gesture, then the best attempts when top > 0.
func (rt *cli) replay(ctx context.Context, in io.Reader, out io.Writer, top int) error {
	history := repository.NewTreapStore(repository.WithCapacity(rt.cfg.HistorySize))
	svc := app.New(
		app.WithLogger(rt.log.Named("game")),
		app.WithScoringOptions(rt.scoringOptions()...),
		app.WithHistory(history),
	)
	svc.Start(ctx)

	q := queue.NewInMemoryQueue(queue.WithCapacity(rt.cfg.QueueSize))
	t := newTable(out, resultHeader...)
	gestures := 0
	w := worker.New(q, svc,
		worker.WithName("replay"),
		worker.WithLogger(rt.log.Named("worker")),
		worker.WithResultFunc(func(_ context.Context, r model.Result) {
			gestures++
			t.result(strconv.Itoa(gestures), r)
		}),
	)
	go w.Run(ctx)

	n, pumpErr := replay.Pump(ctx, in, q)
	if err := q.Close(); err != nil {
		return err
	}
	select {
	case <-w.Done():
	case <-ctx.Done():
		return ctx.Err()
	}
	if err := t.flush(); err != nil {
		return err
	}
	if top > 0 && history.Count(ctx) > 0 {
		if err := printTop(ctx, out, history, top); err != nil {
			return err
		}
	}

	rt.log.Info(ctx, "replay finished",
		logger.Int("events", n),
		logger.Int("gestures", gestures),
	)
	return pumpErr
}
