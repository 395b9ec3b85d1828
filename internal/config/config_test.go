package config_test

import (
	"testing"

	"github.com/okian/fairway/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.RatingsPath, convey.ShouldEqual, "data/course_ratings.csv")
			convey.So(cfg.CurvePath, convey.ShouldEqual, "data/price_curve.csv")
			convey.So(cfg.OutputPath, convey.ShouldEqual, "data/course_rankings.csv")
			convey.So(cfg.MetricsTextfile, convey.ShouldBeEmpty)
			convey.So(cfg.GolfQualityWeight, convey.ShouldEqual, 0.7)
			convey.So(cfg.ValueScoreWeight, convey.ShouldEqual, 0.3)
			convey.So(cfg.RoundDecimals, convey.ShouldEqual, 3)
		})
	})
}
