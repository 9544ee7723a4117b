package config_test

import (
	"errors"
	"testing"

	"github.com/okian/circle/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should carry the scoring defaults", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			convey.So(cfg.MinPoints, convey.ShouldEqual, 10)
			convey.So(cfg.SampleTarget, convey.ShouldEqual, 50)
			convey.So(cfg.ClosureRatio, convey.ShouldEqual, 0.2)
			convey.So(cfg.ClosurePenalty, convey.ShouldEqual, 0.8)
			convey.So(cfg.QueueSize, convey.ShouldEqual, 1024)
			convey.So(cfg.HistorySize, convey.ShouldEqual, 100)
			convey.So(cfg.CanvasWidth, convey.ShouldEqual, 500)
			convey.So(cfg.CanvasHeight, convey.ShouldEqual, 500)
			convey.So(cfg.MetricsTextfile, convey.ShouldBeEmpty)
		})

		convey.Convey("Then the defaults validate", func() {
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given configs with one invalid field each", t, func() {
		cases := []func(*config.Config){
			func(c *config.Config) { c.MinPoints = -1 },
			func(c *config.Config) { c.SampleTarget = 0 },
			func(c *config.Config) { c.ClosureRatio = -0.1 },
			func(c *config.Config) { c.ClosurePenalty = 1.5 },
			func(c *config.Config) { c.ClosurePenalty = -0.5 },
			func(c *config.Config) { c.HistorySize = -1 },
			func(c *config.Config) { c.QueueSize = 0 },
			func(c *config.Config) { c.CanvasWidth = 0 },
			func(c *config.Config) { c.CanvasHeight = -10 },
			func(c *config.Config) { c.LogFormat = "xml" },
		}

		convey.Convey("Then each is rejected as invalid", func() {
			for _, mutate := range cases {
				cfg := config.New()
				mutate(cfg)
				err := cfg.Validate()
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			}
		})
	})

	convey.Convey("Given boundary values", t, func() {
		cfg := config.New()
		cfg.MinPoints = 0
		cfg.ClosureRatio = 0
		cfg.ClosurePenalty = 1
		cfg.LogFormat = "JSON"

		convey.Convey("Then they are accepted", func() {
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}
