package app_test

import (
	"bytes"
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/fairway/internal/adapters/tabular"
	app "github.com/okian/fairway/internal/app"
	"github.com/okian/fairway/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func TestPipeline_Run(t *testing.T) {
	if err := logger.Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	convey.Convey("Given the single-course example inputs", t, func() {
		dir := t.TempDir()
		ratings := writeFixture(t, dir, "ratings.csv",
			"course,price,layout_score,difficulty_score,conditions_score\n"+
				"A,50,8,7,9\n")
		curvePath := writeFixture(t, dir, "curve.csv", "price,value_score\n0,10\n100,0\n")
		output := filepath.Join(dir, "out", "ranked.csv")

		pipeline := app.New(app.WithPaths(ratings, curvePath, output))

		convey.Convey("When running the pipeline", func() {
			summary, err := pipeline.Run(context.Background())

			convey.Convey("Then the run should succeed", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(summary.Rows, convey.ShouldEqual, 1)
				convey.So(summary.CurvePoints, convey.ShouldEqual, 2)
				convey.So(summary.MissingPrices, convey.ShouldEqual, 0)
				convey.So(summary.MissingSubScores, convey.ShouldEqual, 0)
			})

			convey.Convey("And the derived fields should match the worked example", func() {
				convey.So(err, convey.ShouldBeNil)
				table, readErr := tabular.ReadRanked(output)
				convey.So(readErr, convey.ShouldBeNil)
				convey.So(table.Courses, convey.ShouldHaveLength, 1)

				c := table.Courses[0]
				convey.So(c.GolfQuality, convey.ShouldAlmostEqual, 8.0, 1e-9)
				convey.So(c.ValueScore, convey.ShouldAlmostEqual, 5.0, 1e-9)
				convey.So(c.ValueQuality, convey.ShouldAlmostEqual, 7.1, 1e-9)
				convey.So(c.CompositeScore, convey.ShouldEqual, c.ValueQuality)
				convey.So(c.RankPosition, convey.ShouldEqual, 1)
			})

			convey.Convey("And running again on the same inputs should produce identical bytes", func() {
				convey.So(err, convey.ShouldBeNil)
				first, readErr := os.ReadFile(output)
				convey.So(readErr, convey.ShouldBeNil)

				_, err2 := pipeline.Run(context.Background())
				convey.So(err2, convey.ShouldBeNil)

				second, readErr := os.ReadFile(output)
				convey.So(readErr, convey.ShouldBeNil)
				convey.So(bytes.Equal(first, second), convey.ShouldBeTrue)
			})
		})
	})

	convey.Convey("Given a multi-course table with missing values", t, func() {
		dir := t.TempDir()
		ratings := writeFixture(t, dir, "ratings.csv",
			"course,region,price,layout_score,difficulty_score,conditions_score\n"+
				"Cheap,East,10,5,5,5\n"+
				"Premium,West,90,9,9,9\n"+
				"NoPrice,East,,8,8,8\n"+
				"NoScore,West,40,8,,8\n")
		curvePath := writeFixture(t, dir, "curve.csv", "price,value_score\n0,10\n100,0\n")
		output := filepath.Join(dir, "ranked.csv")

		pipeline := app.New(app.WithPaths(ratings, curvePath, output))

		convey.Convey("When running the pipeline", func() {
			summary, err := pipeline.Run(context.Background())

			convey.Convey("Then missing values should be reported but not fatal", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(summary.Rows, convey.ShouldEqual, 4)
				convey.So(summary.MissingPrices, convey.ShouldEqual, 1)
				convey.So(summary.MissingSubScores, convey.ShouldEqual, 1)
			})

			convey.Convey("And ranks should form the dense set 1..N with undefined rows last", func() {
				convey.So(err, convey.ShouldBeNil)
				table, readErr := tabular.ReadRanked(output)
				convey.So(readErr, convey.ShouldBeNil)
				convey.So(table.Courses, convey.ShouldHaveLength, 4)

				seen := make(map[int]bool)
				for _, c := range table.Courses {
					seen[c.RankPosition] = true
				}
				for i := 1; i <= 4; i++ {
					convey.So(seen[i], convey.ShouldBeTrue)
				}

				// Rows with undefined composites come after comparable rows.
				convey.So(math.IsNaN(table.Courses[2].CompositeScore), convey.ShouldBeTrue)
				convey.So(math.IsNaN(table.Courses[3].CompositeScore), convey.ShouldBeTrue)
			})
		})
	})

	convey.Convey("Given a missing ratings file", t, func() {
		dir := t.TempDir()
		curvePath := writeFixture(t, dir, "curve.csv", "price,value_score\n0,10\n100,0\n")
		output := filepath.Join(dir, "ranked.csv")

		pipeline := app.New(app.WithPaths(filepath.Join(dir, "absent.csv"), curvePath, output))

		convey.Convey("When running the pipeline", func() {
			_, err := pipeline.Run(context.Background())

			convey.Convey("Then it should fail with ErrNotFound and write nothing", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, tabular.ErrNotFound), convey.ShouldBeTrue)
				_, statErr := os.Stat(output)
				convey.So(os.IsNotExist(statErr), convey.ShouldBeTrue)
			})
		})
	})

	convey.Convey("Given a ratings table with a broken schema", t, func() {
		dir := t.TempDir()
		ratings := writeFixture(t, dir, "ratings.csv", "course,holes\nA,18\n")
		curvePath := writeFixture(t, dir, "curve.csv", "price,value_score\n0,10\n")
		output := filepath.Join(dir, "ranked.csv")

		pipeline := app.New(app.WithPaths(ratings, curvePath, output))

		convey.Convey("When running the pipeline", func() {
			_, err := pipeline.Run(context.Background())

			convey.Convey("Then it should abort before any derivation with no output", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, tabular.ErrSchema), convey.ShouldBeTrue)
				_, statErr := os.Stat(output)
				convey.So(os.IsNotExist(statErr), convey.ShouldBeTrue)
			})
		})
	})

	convey.Convey("Given an empty price curve", t, func() {
		dir := t.TempDir()
		ratings := writeFixture(t, dir, "ratings.csv",
			"course,price,layout_score,difficulty_score,conditions_score\nA,50,8,7,9\n")
		curvePath := writeFixture(t, dir, "curve.csv", "price,value_score\n")
		output := filepath.Join(dir, "ranked.csv")

		pipeline := app.New(app.WithPaths(ratings, curvePath, output))

		convey.Convey("When running the pipeline", func() {
			_, err := pipeline.Run(context.Background())

			convey.Convey("Then it should fail and write nothing", func() {
				convey.So(err, convey.ShouldNotBeNil)
				_, statErr := os.Stat(output)
				convey.So(os.IsNotExist(statErr), convey.ShouldBeTrue)
			})
		})
	})
}

func TestPipeline_Options(t *testing.T) {
	if err := logger.Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	convey.Convey("Given pipeline options", t, func() {
		convey.Convey("Then the pipeline should be creatable with defaults", func() {
			convey.So(app.New(), convey.ShouldNotBeNil)
		})

		convey.Convey("And empty option values should be ignored", func() {
			pipeline := app.New(
				app.WithPaths("", "", ""),
				app.WithRunID(""),
				app.WithLogger(nil),
				app.WithBlender(nil),
				app.WithWriter(nil),
			)
			convey.So(pipeline, convey.ShouldNotBeNil)
		})
	})
}

// Helper functions.

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}
