package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/okian/fairway/internal/domain/scoring"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if FAIRWAY_CONFIG is set
//  3. env (prefix FAIRWAY_)
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("FAIRWAY_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: FAIRWAY_RATINGS_PATH, FAIRWAY_OUTPUT_PATH, ...
	// Map env keys like FAIRWAY_RATINGS_PATH -> ratings_path (flat keys)
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("FAIRWAY_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "fairway_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Basic validation
	if cfg.RatingsPath == "" {
		return nil, fmt.Errorf("%w: ratings_path must not be empty", ErrInvalidConfig)
	}
	if cfg.CurvePath == "" {
		return nil, fmt.Errorf("%w: curve_path must not be empty", ErrInvalidConfig)
	}
	if cfg.OutputPath == "" {
		return nil, fmt.Errorf("%w: output_path must not be empty", ErrInvalidConfig)
	}
	if !scoring.ValidWeights(cfg.GolfQualityWeight, cfg.ValueScoreWeight) {
		return nil, fmt.Errorf("%w: blend weights must be non-negative and sum to 1.0", ErrInvalidConfig)
	}
	return &cfg, nil
}
