// Package app wires the pipeline stages into a single batch run.
package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/okian/fairway/internal/adapters/tabular"
	"github.com/okian/fairway/internal/domain/curve"
	"github.com/okian/fairway/internal/domain/model"
	"github.com/okian/fairway/internal/domain/quality"
	"github.com/okian/fairway/internal/domain/ranking"
	"github.com/okian/fairway/internal/domain/scoring"
	"github.com/okian/fairway/pkg/logger"
	"github.com/okian/fairway/pkg/metrics"
)

// Default pipeline configuration constants.
const (
	defaultRatingsPath = "data/course_ratings.csv"
	defaultCurvePath   = "data/price_curve.csv"
	defaultOutputPath  = "data/course_rankings.csv"
	maxWarnedNames     = 10
)

// Summary describes one completed run.
type Summary struct {
	Rows             int
	CurvePoints      int
	MissingPrices    int
	MissingSubScores int
	OutputPath       string
}

// Pipeline runs the ranking transform: load both tables, derive the quality,
// value and composite scores, rank, and persist. Each run is isolated; no
// state survives between runs.
type Pipeline struct {
	ratingsPath string
	curvePath   string
	outputPath  string

	blender *scoring.Blender
	writer  *tabular.Writer

	runID  string
	logger logger.Logger
}

// Option applies a configuration option to the Pipeline.
type Option func(*Pipeline)

// WithPaths sets the ratings, curve and output file locations.
func WithPaths(ratings, curvePath, output string) Option {
	return func(p *Pipeline) {
		if ratings != "" {
			p.ratingsPath = ratings
		}
		if curvePath != "" {
			p.curvePath = curvePath
		}
		if output != "" {
			p.outputPath = output
		}
	}
}

// WithBlender sets a custom composite score blender.
func WithBlender(b *scoring.Blender) Option {
	return func(p *Pipeline) {
		if b != nil {
			p.blender = b
		}
	}
}

// WithWriter sets a custom table writer.
func WithWriter(w *tabular.Writer) Option {
	return func(p *Pipeline) {
		if w != nil {
			p.writer = w
		}
	}
}

// WithRunID tags all log records of a run with an identifier.
func WithRunID(id string) Option {
	return func(p *Pipeline) {
		if id != "" {
			p.runID = id
		}
	}
}

// WithLogger sets a custom logger for the pipeline.
func WithLogger(l logger.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// New constructs a Pipeline with default configuration.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		ratingsPath: defaultRatingsPath,
		curvePath:   defaultCurvePath,
		outputPath:  defaultOutputPath,
		blender:     scoring.NewBlender(),
		writer:      tabular.NewWriter(),
		logger:      logger.Get(),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Run executes the pipeline once. Fatal errors abort before anything is
// written; rows with missing values survive with undefined derived fields
// and are reported in one aggregate warning at the end of the value stage.
func (p *Pipeline) Run(ctx context.Context) (Summary, error) {
	metrics.RecordRun()

	summary, err := p.run(ctx)
	if err != nil {
		metrics.RecordFailure()
		return Summary{}, err
	}

	metrics.SetLastRun(time.Now())
	return summary, nil
}

func (p *Pipeline) run(ctx context.Context) (Summary, error) {
	// Load both tables before any derivation so schema problems surface
	// with no partial output.
	start := time.Now()
	table, err := tabular.ReadRatings(p.ratingsPath)
	if err != nil {
		return Summary{}, err
	}
	points, err := tabular.ReadCurve(p.curvePath)
	if err != nil {
		return Summary{}, err
	}
	lookup, err := curve.New(points)
	if err != nil {
		return Summary{}, fmt.Errorf("%s: %w", p.curvePath, err)
	}
	metrics.RecordStageDuration(metrics.StageLoad, time.Since(start))
	metrics.AddRowsLoaded(len(table.Courses))
	metrics.SetCurvePoints(lookup.Len())
	p.logger.Info(ctx, "tables loaded",
		logger.String("run_id", p.runID),
		logger.Int("rows", len(table.Courses)),
		logger.Int("curve_points", lookup.Len()))

	if err := ctx.Err(); err != nil {
		return Summary{}, fmt.Errorf("run cancelled: %w", err)
	}

	summary := Summary{
		Rows:        len(table.Courses),
		CurvePoints: lookup.Len(),
		OutputPath:  p.outputPath,
	}

	// Quality aggregation.
	start = time.Now()
	for i := range table.Courses {
		table.Courses[i].GolfQuality = quality.Aggregate(table.Courses[i])
		if model.Missing(table.Courses[i].GolfQuality) {
			summary.MissingSubScores++
		}
	}
	metrics.RecordStageDuration(metrics.StageQuality, time.Since(start))
	metrics.AddMissingSubScoreRows(summary.MissingSubScores)

	// Value interpolation. Missing prices are a per-row outcome, not an
	// abort; they are collected and reported once.
	start = time.Now()
	var unpriced []string
	for i := range table.Courses {
		c := &table.Courses[i]
		c.ValueScore = lookup.Value(c.Price)
		if model.Missing(c.Price) {
			unpriced = append(unpriced, c.Name)
		}
	}
	metrics.RecordStageDuration(metrics.StageValueScore, time.Since(start))
	summary.MissingPrices = len(unpriced)
	metrics.AddMissingPriceRows(len(unpriced))
	if len(unpriced) > 0 {
		p.logger.Warn(ctx, "rows with missing prices; value_score is undefined for them",
			logger.String("run_id", p.runID),
			logger.Int("rows", len(unpriced)),
			logger.String("courses", joinNames(unpriced)))
	}

	// Composite blend.
	start = time.Now()
	for i := range table.Courses {
		c := &table.Courses[i]
		res := p.blender.Blend(c.GolfQuality, c.ValueScore)
		c.ValueQuality = res.ValueQuality
		c.CompositeScore = res.CompositeScore
	}
	metrics.RecordStageDuration(metrics.StageComposite, time.Since(start))

	if err := ctx.Err(); err != nil {
		return Summary{}, fmt.Errorf("run cancelled: %w", err)
	}

	// Ranking.
	start = time.Now()
	ranked := ranking.Rank(table.Courses)
	metrics.RecordStageDuration(metrics.StageRank, time.Since(start))

	// Persist.
	start = time.Now()
	if err := p.writer.WriteRanked(p.outputPath, table.Header, ranked); err != nil {
		return Summary{}, err
	}
	metrics.RecordStageDuration(metrics.StageWrite, time.Since(start))
	metrics.AddRowsRanked(len(ranked))
	p.logger.Info(ctx, "ranked table written",
		logger.String("run_id", p.runID),
		logger.String("output", p.outputPath),
		logger.Int("rows", len(ranked)))

	return summary, nil
}

// joinNames renders the first few course names for the aggregate warning.
func joinNames(names []string) string {
	if len(names) > maxWarnedNames {
		return strings.Join(names[:maxWarnedNames], ", ") + ", ..."
	}
	return strings.Join(names, ", ")
}
