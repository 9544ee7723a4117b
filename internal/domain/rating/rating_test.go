package rating_test

import (
	"testing"

	"github.com/okian/circle/internal/domain/rating"
	"github.com/smartystreets/goconvey/convey"
)

func TestMessage(t *testing.T) {
	convey.Convey("Given scores on and around every threshold", t, func() {
		cases := []struct {
			score int
			want  string
		}{
			{100, "Perfect!"},
			{95, "Perfect!"},
			{94, "Amazing!"},
			{90, "Amazing!"},
			{89, "Great job!"},
			{80, "Great job!"},
			{79, "Pretty good!"},
			{70, "Pretty good!"},
			{69, "Not bad!"},
			{50, "Not bad!"},
			{49, "Keep practicing!"},
			{30, "Keep practicing!"},
			{29, "Try again!"},
			{0, "Try again!"},
		}

		convey.Convey("Then each maps to its message", func() {
			for _, c := range cases {
				convey.So(rating.Message(c.score), convey.ShouldEqual, c.want)
			}
		})
	})
}

func TestTier(t *testing.T) {
	convey.Convey("Given the colour tier boundaries", t, func() {
		convey.So(rating.TierOf(90), convey.ShouldEqual, rating.TierGreen)
		convey.So(rating.TierOf(89), convey.ShouldEqual, rating.TierYellow)
		convey.So(rating.TierOf(70), convey.ShouldEqual, rating.TierYellow)
		convey.So(rating.TierOf(69), convey.ShouldEqual, rating.TierOrange)
		convey.So(rating.TierOf(50), convey.ShouldEqual, rating.TierOrange)
		convey.So(rating.TierOf(49), convey.ShouldEqual, rating.TierRed)
		convey.So(rating.TierOf(0), convey.ShouldEqual, rating.TierRed)
	})
}

func TestOf(t *testing.T) {
	convey.Convey("Given a high score", t, func() {
		r := rating.Of(92)

		convey.Convey("Then it celebrates", func() {
			convey.So(r.Score, convey.ShouldEqual, 92)
			convey.So(r.Message, convey.ShouldEqual, "Amazing!")
			convey.So(r.Tier, convey.ShouldEqual, rating.TierGreen)
			convey.So(r.Celebrate, convey.ShouldBeTrue)
		})
	})

	convey.Convey("Given a score just under the celebration threshold", t, func() {
		r := rating.Of(89)

		convey.Convey("Then it does not celebrate", func() {
			convey.So(r.Celebrate, convey.ShouldBeFalse)
			convey.So(r.Message, convey.ShouldEqual, "Great job!")
		})
	})
}
