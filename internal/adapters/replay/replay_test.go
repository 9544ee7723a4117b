package replay_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/okian/circle/internal/adapters/mq/queue"
	"github.com/okian/circle/internal/adapters/replay"
	"github.com/okian/circle/internal/domain/geometry"
	"github.com/okian/circle/internal/domain/model"
	"github.com/okian/circle/internal/strokegen"
	"github.com/okian/circle/pkg/metrics"
	. "github.com/smartystreets/goconvey/convey"
)

func TestReader(t *testing.T) {
	Convey("Given a recorded gesture with blank lines", t, func() {
		input := strings.Join([]string{
			`{"kind":"start","x":250,"y":100,"t":"2025-01-02T15:04:05.123456789Z"}`,
			``,
			`  {"kind":"move","x":251.5,"y":-3}  `,
			`{"kind":"end"}`,
			``,
		}, "\n")

		Convey("When it is read", func() {
			events, err := replay.ReadAll(strings.NewReader(input))

			Convey("Then every event is decoded in order", func() {
				So(err, ShouldBeNil)
				So(len(events), ShouldEqual, 3)
				So(events[0].Kind, ShouldEqual, model.KindStart)
				So(events[0].Point(), ShouldResemble, geometry.Pt(250, 100))
				So(events[0].At.Equal(time.Date(2025, 1, 2, 15, 4, 5, 123456789, time.UTC)), ShouldBeTrue)
				So(events[1].Point(), ShouldResemble, geometry.Pt(251.5, -3))
				So(events[1].At.IsZero(), ShouldBeTrue)
				So(events[2].Kind, ShouldEqual, model.KindEnd)
			})
		})
	})

	Convey("Given malformed input", t, func() {
		cases := []struct {
			input string
			line  string
		}{
			{"{\"kind\":\"start\",\"x\":1,\"y\":1}\n{not json}\n", "line 2"},
			{"\n\n{\"kind\":\"hover\",\"x\":1,\"y\":1}\n", "line 3"},
			{"{\"kind\":\"move\",\"x\":1}\n", "line 1"},
			{"{\"kind\":\"end\",\"pressure\":0.5}\n", "line 1"},
			{"{\"kind\":\"start\",\"x\":1,\"y\":1,\"t\":\"yesterday\"}\n", "line 1"},
		}

		Convey("Then each is rejected with its line number", func() {
			for _, c := range cases {
				_, err := replay.ReadAll(strings.NewReader(c.input))
				So(errors.Is(err, replay.ErrDecode), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, c.line)
			}
		})
	})

	Convey("Given an empty stream", t, func() {
		events, err := replay.ReadAll(strings.NewReader("\n  \n"))

		Convey("Then it decodes to nothing", func() {
			So(err, ShouldBeNil)
			So(events, ShouldBeEmpty)
		})
	})
}

func TestWriter(t *testing.T) {
	Convey("Given events from the generator", t, func() {
		start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		events := strokegen.New().Events(strokegen.Circle(geometry.Pt(250, 250), 100, 12), start)

		Convey("When they are written and read back", func() {
			var buf bytes.Buffer
			So(replay.NewWriter(&buf).WriteAll(events), ShouldBeNil)
			back, err := replay.ReadAll(&buf)

			Convey("Then the stream is unchanged", func() {
				So(err, ShouldBeNil)
				So(len(back), ShouldEqual, len(events))
				for i := range events {
					So(back[i].Kind, ShouldEqual, events[i].Kind)
					So(back[i].At.Equal(events[i].At), ShouldBeTrue)
					if events[i].Kind != model.KindEnd {
						So(back[i].Point(), ShouldResemble, events[i].Point())
					}
				}
			})
		})

		Convey("When an end event is written", func() {
			var buf bytes.Buffer
			So(replay.NewWriter(&buf).Write(model.End()), ShouldBeNil)

			Convey("Then it carries no coordinates or time", func() {
				So(buf.String(), ShouldEqual, "{\"kind\":\"end\"}\n")
			})
		})
	})
}

func TestPump(t *testing.T) {
	Convey("Given a queue and a recorded gesture", t, func() {
		ctx := context.Background()
		q := queue.NewInMemoryQueue(queue.WithCapacity(4), queue.WithMetrics(metrics.NewManager()))
		input := "{\"kind\":\"start\",\"x\":0,\"y\":0}\n{\"kind\":\"move\",\"x\":1,\"y\":0}\n{\"kind\":\"end\"}\n"

		Convey("When it is pumped", func() {
			n, err := replay.Pump(ctx, strings.NewReader(input), q)

			Convey("Then every event is queued", func() {
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 3)
				So(q.Len(ctx), ShouldEqual, 3)
			})
		})

		Convey("When the queue is closed", func() {
			So(q.Close(), ShouldBeNil)
			n, err := replay.Pump(ctx, strings.NewReader(input), q)

			Convey("Then pumping stops at the first event", func() {
				So(n, ShouldEqual, 0)
				So(errors.Is(err, queue.ErrClosed), ShouldBeTrue)
			})
		})

		Convey("When a line is malformed", func() {
			n, err := replay.Pump(ctx, strings.NewReader(input+"oops\n"), q)

			Convey("Then the good prefix is delivered", func() {
				So(n, ShouldEqual, 3)
				So(errors.Is(err, replay.ErrDecode), ShouldBeTrue)
			})
		})
	})
}

func TestReadStroke(t *testing.T) {
	Convey("Given a JSON point array", t, func() {
		stroke, err := replay.ReadStroke(strings.NewReader(`[{"x":1,"y":2},{"x":3.5,"y":-4}]`))

		Convey("Then it decodes to a stroke", func() {
			So(err, ShouldBeNil)
			So(stroke, ShouldResemble, geometry.Stroke{geometry.Pt(1, 2), geometry.Pt(3.5, -4)})
		})
	})

	Convey("Given an empty array", t, func() {
		stroke, err := replay.ReadStroke(strings.NewReader(`[]`))

		Convey("Then it decodes to an empty stroke", func() {
			So(err, ShouldBeNil)
			So(stroke.Empty(), ShouldBeTrue)
		})
	})

	Convey("Given something that is not a point array", t, func() {
		_, err := replay.ReadStroke(strings.NewReader(`{"x":1}`))

		Convey("Then it is a decode error", func() {
			So(errors.Is(err, replay.ErrDecode), ShouldBeTrue)
		})
	})
}
