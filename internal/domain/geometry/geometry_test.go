package geometry_test

import (
	"math"
	"testing"

	"github.com/okian/circle/internal/domain/geometry"
	. "github.com/smartystreets/goconvey/convey"
)

func TestPoint(t *testing.T) {
	Convey("Given two points", t, func() {
		p := geometry.Pt(0, 0)
		q := geometry.Pt(3, 4)

		Convey("Then the distance is Euclidean and symmetric", func() {
			So(p.Distance(q), ShouldEqual, 5)
			So(q.Distance(p), ShouldEqual, 5)
		})

		Convey("Then finite coordinates are reported as finite", func() {
			So(p.IsFinite(), ShouldBeTrue)
			So(geometry.Pt(math.NaN(), 1).IsFinite(), ShouldBeFalse)
			So(geometry.Pt(1, math.Inf(-1)).IsFinite(), ShouldBeFalse)
		})
	})
}

func TestStroke(t *testing.T) {
	Convey("Given an empty stroke", t, func() {
		var s geometry.Stroke

		Convey("Then accessors fall back to zero values", func() {
			So(s.Empty(), ShouldBeTrue)
			So(s.Len(), ShouldEqual, 0)
			So(s.First(), ShouldResemble, geometry.Point{})
			So(s.Last(), ShouldResemble, geometry.Point{})
			So(s.Centroid(), ShouldResemble, geometry.Point{})
			So(s.Gap(), ShouldEqual, 0)
		})

		Convey("And cloning yields a non-nil empty stroke", func() {
			c := s.Clone()
			So(c, ShouldNotBeNil)
			So(c.Len(), ShouldEqual, 0)
		})
	})

	Convey("Given a square stroke", t, func() {
		s := geometry.Stroke{
			geometry.Pt(0, 0),
			geometry.Pt(10, 0),
			geometry.Pt(10, 10),
			geometry.Pt(0, 10),
		}

		Convey("Then the centroid is its middle", func() {
			So(s.Centroid(), ShouldResemble, geometry.Pt(5, 5))
		})

		Convey("Then the gap spans first to last", func() {
			So(s.First(), ShouldResemble, geometry.Pt(0, 0))
			So(s.Last(), ShouldResemble, geometry.Pt(0, 10))
			So(s.Gap(), ShouldEqual, 10)
		})

		Convey("When the stroke is cloned and the clone mutated", func() {
			c := s.Clone()
			c[0] = geometry.Pt(99, 99)

			Convey("Then the source stroke is untouched", func() {
				So(s[0], ShouldResemble, geometry.Pt(0, 0))
			})
		})
	})
}
