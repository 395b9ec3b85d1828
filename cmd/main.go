package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/fairway/internal/adapters/tabular"
	"github.com/okian/fairway/internal/app"
	"github.com/okian/fairway/internal/config"
	"github.com/okian/fairway/internal/domain/scoring"
	"github.com/okian/fairway/pkg/logger"
	"github.com/okian/fairway/pkg/metrics"

	"github.com/google/uuid"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Initialize logging
	if err := logger.Init(); err != nil {
		// Use stderr for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return 1
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			os.Stderr.WriteString("failed to sync logger: " + err.Error() + "\n")
		}
	}()

	loggerInstance := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return 1
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	runID := uuid.NewString()

	pipeline := app.New(
		app.WithLogger(loggerInstance),
		app.WithRunID(runID),
		app.WithPaths(cfg.RatingsPath, cfg.CurvePath, cfg.OutputPath),
		app.WithBlender(scoring.NewBlender(scoring.WithWeights(cfg.GolfQualityWeight, cfg.ValueScoreWeight))),
		app.WithWriter(newWriter(cfg)),
	)

	summary, err := pipeline.Run(ctx)
	if err != nil {
		loggerInstance.Error(ctx, "pipeline failed", logger.String("run_id", runID), logger.Error(err))
		writeMetrics(ctx, loggerInstance, cfg)
		return 1
	}

	loggerInstance.Info(ctx, "run complete",
		logger.String("run_id", runID),
		logger.Int("rows", summary.Rows),
		logger.Int("curve_points", summary.CurvePoints),
		logger.Int("missing_prices", summary.MissingPrices),
		logger.Int("missing_subscores", summary.MissingSubScores),
		logger.String("output", summary.OutputPath))

	writeMetrics(ctx, loggerInstance, cfg)
	return 0
}

// newWriter builds the table writer from config.
func newWriter(cfg *config.Config) *tabular.Writer {
	return tabular.NewWriter(tabular.WithRoundDecimals(cfg.RoundDecimals))
}

// writeMetrics exports the run's metrics when a textfile path is configured.
// Export failures are logged, not fatal; the ranked table is already on disk.
func writeMetrics(ctx context.Context, log logger.Logger, cfg *config.Config) {
	if cfg.MetricsTextfile == "" {
		return
	}
	if err := metrics.WriteTextfile(cfg.MetricsTextfile); err != nil {
		log.Error(ctx, "failed to write metrics textfile", logger.String("path", cfg.MetricsTextfile), logger.Error(err))
	}
}
