package metrics_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/okian/fairway/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/smartystreets/goconvey/convey"
)

func TestGlobalMetrics(t *testing.T) {
	convey.Convey("Given the global metrics manager", t, func() {
		convey.So(metrics.GetManager(), convey.ShouldNotBeNil)

		convey.Convey("When recording a pipeline run", func() {
			metrics.RecordRun()
			metrics.AddRowsLoaded(4)
			metrics.SetCurvePoints(12)
			metrics.AddMissingPriceRows(1)
			metrics.AddMissingSubScoreRows(2)
			metrics.RecordStageDuration(metrics.StageLoad, 5*time.Millisecond)
			metrics.RecordStageDuration(metrics.StageRank, time.Millisecond)
			metrics.AddRowsRanked(4)
			metrics.SetLastRun(time.Now())

			convey.Convey("Then the textfile export should contain the metrics", func() {
				path := filepath.Join(t.TempDir(), "metrics", "fairway.prom")
				err := metrics.WriteTextfile(path)
				convey.So(err, convey.ShouldBeNil)

				data, readErr := os.ReadFile(path)
				convey.So(readErr, convey.ShouldBeNil)

				out := string(data)
				convey.So(out, convey.ShouldContainSubstring, "fairway_pipeline_runs_total")
				convey.So(out, convey.ShouldContainSubstring, "fairway_pipeline_rows_loaded_total")
				convey.So(out, convey.ShouldContainSubstring, "fairway_pipeline_curve_points")
				convey.So(out, convey.ShouldContainSubstring, "fairway_pipeline_missing_price_rows_total")
				convey.So(out, convey.ShouldContainSubstring, "fairway_pipeline_stage_duration_seconds")
				convey.So(out, convey.ShouldContainSubstring, `stage="load"`)
			})
		})

		convey.Convey("When recording a failure", func() {
			metrics.RecordFailure()

			convey.Convey("Then the failure counter should appear in the export", func() {
				path := filepath.Join(t.TempDir(), "fairway.prom")
				convey.So(metrics.WriteTextfile(path), convey.ShouldBeNil)

				data, readErr := os.ReadFile(path)
				convey.So(readErr, convey.ShouldBeNil)
				convey.So(string(data), convey.ShouldContainSubstring, "fairway_pipeline_failures_total")
			})
		})

		convey.Convey("When exporting to an empty path", func() {
			err := metrics.WriteTextfile("")

			convey.Convey("Then it should fail with the sentinel error", func() {
				convey.So(err, convey.ShouldEqual, metrics.ErrEmptyTextfilePath)
			})
		})
	})
}

func TestManagerOptions(t *testing.T) {
	convey.Convey("Given a manager with a custom registry and namespace", t, func() {
		registry := prometheus.NewRegistry()
		m := metrics.NewManager(
			metrics.WithPrometheusRegistry(registry),
			metrics.WithNamespace("golf"),
			metrics.WithSubsystem("batch"),
			metrics.WithHistogramBuckets([]float64{0.001, 0.01, 0.1}),
		)

		convey.Convey("Then the textfile export should use the custom names", func() {
			path := filepath.Join(t.TempDir(), "custom.prom")
			convey.So(m.WriteTextfile(path), convey.ShouldBeNil)

			data, err := os.ReadFile(path)
			convey.So(err, convey.ShouldBeNil)
			convey.So(string(data), convey.ShouldContainSubstring, "golf_batch_runs_total")
		})
	})

	convey.Convey("Given a disabled manager", t, func() {
		registry := prometheus.NewRegistry()
		m := metrics.NewManager(
			metrics.WithPrometheusRegistry(registry),
			metrics.WithMetricsEnabled(false),
		)

		convey.Convey("Then it should still be constructible and exportable", func() {
			convey.So(m, convey.ShouldNotBeNil)
			path := filepath.Join(t.TempDir(), "disabled.prom")
			convey.So(m.WriteTextfile(path), convey.ShouldBeNil)
		})
	})
}
