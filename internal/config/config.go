// Package config defines pipeline configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Layer optional file and env overrides in Load.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// RatingsPath locates the course ratings CSV.
	RatingsPath string `koanf:"ratings_path"`

	// CurvePath locates the price→value curve CSV.
	CurvePath string `koanf:"curve_path"`

	// OutputPath locates the ranked output CSV. Missing parent directories
	// are created on write.
	OutputPath string `koanf:"output_path"`

	// MetricsTextfile, when set, receives the run's metrics in Prometheus
	// text exposition format (textfile collector model).
	MetricsTextfile string `koanf:"metrics_textfile"`

	// GolfQualityWeight and ValueScoreWeight define the composite blend.
	// They must be non-negative and sum to 1.0.
	GolfQualityWeight float64 `koanf:"golf_quality_weight"`
	ValueScoreWeight  float64 `koanf:"value_score_weight"`

	// RoundDecimals sets the cosmetic rounding of derived output columns.
	RoundDecimals int `koanf:"round_decimals"`
}

// New creates a Config with defaults.
func New() *Config {
	c := &Config{
		LogLevel:          "info",
		RatingsPath:       "data/course_ratings.csv",
		CurvePath:         "data/price_curve.csv",
		OutputPath:        "data/course_rankings.csv",
		MetricsTextfile:   "",
		GolfQualityWeight: 0.7,
		ValueScoreWeight:  0.3,
		RoundDecimals:     3,
	}
	return c
}
