package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/okian/circle/internal/adapters/mq/queue"
	"github.com/okian/circle/internal/adapters/mq/worker"
	service "github.com/okian/circle/internal/app"
	"github.com/okian/circle/internal/domain/model"
	"github.com/okian/circle/internal/strokegen"
	"github.com/okian/circle/pkg/logger"
	"github.com/okian/circle/pkg/metrics"
	. "github.com/smartystreets/goconvey/convey"
)

func TestServiceIntegration(t *testing.T) {
	Convey("Given a game fed through the event queue", t, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		m := metrics.NewManager()
		svc := newService(m)
		svc.Start(ctx)

		q := queue.NewInMemoryQueue(queue.WithCapacity(64), queue.WithMetrics(m))

		var (
			mu      sync.Mutex
			results []model.Result
		)
		w := worker.New(q, svc,
			worker.WithName("game-worker"),
			worker.WithLogger(logger.Nop()),
			worker.WithResultFunc(func(_ context.Context, r model.Result) {
				mu.Lock()
				defer mu.Unlock()
				results = append(results, r)
			}),
		)
		go w.Run(ctx)

		Convey("When the whole catalogue is replayed", func() {
			gen := strokegen.New()
			catalogue := gen.Catalogue()
			total := 0
			for _, sample := range catalogue {
				for _, e := range gen.Events(sample.Stroke, time.Now()) {
					So(q.Put(ctx, e), ShouldBeNil)
					total++
				}
			}
			So(q.Close(), ShouldBeNil)

			select {
			case <-w.Done():
			case <-ctx.Done():
				t.Fatal("worker did not drain the queue")
			}

			Convey("Then every gesture is scored in order", func() {
				mu.Lock()
				defer mu.Unlock()

				So(w.Processed(), ShouldEqual, total)
				So(len(results), ShouldEqual, len(catalogue))
				for i, r := range results {
					So(r.Points, ShouldEqual, len(catalogue[i].Stroke))
					So(r.Score, ShouldBeBetweenOrEqual, 0, 100)
				}
				So(results[0].Score, ShouldEqual, 100)
			})

			Convey("Then the game holds the last gesture's score", func() {
				mu.Lock()
				last := results[len(results)-1]
				mu.Unlock()

				score, ok := svc.Score()
				So(ok, ShouldBeTrue)
				So(score, ShouldEqual, last.Score)
			})
		})
	})
}
