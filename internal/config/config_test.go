package config_test

import (
	"errors"
	"testing"

	"github.com/okian/allocscore/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.MaxScore, convey.ShouldEqual, 5)
			convey.So(cfg.Seats, convey.ShouldEqual, 0)
			convey.So(cfg.SplitBasis, convey.ShouldEqual, "score")
			convey.So(cfg.Tolerance, convey.ShouldEqual, 1e-9)
			convey.So(cfg.ReportFormat, convey.ShouldEqual, "text")
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given configs with bad values", t, func() {
		mutations := map[string]func(*config.Config){
			"max score":     func(c *config.Config) { c.MaxScore = 0 },
			"seats":         func(c *config.Config) { c.Seats = -1 },
			"tolerance":     func(c *config.Config) { c.Tolerance = -0.1 },
			"split basis":   func(c *config.Config) { c.SplitBasis = "median" },
			"report format": func(c *config.Config) { c.ReportFormat = "xml" },
			"log format":    func(c *config.Config) { c.LogFormat = "logfmt" },
		}

		convey.Convey("Then each is rejected as invalid", func() {
			for _, mutate := range mutations {
				cfg := config.New()
				mutate(cfg)
				err := cfg.Validate()
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			}
		})
	})
}
