// Package model contains domain models passed between layers.
package model

import "math"

// Ratings table column names. The loader validates their presence and the
// writer emits them back in their original order.
const (
	ColCourse     = "course"
	ColRegion     = "region"
	ColPrice      = "price"
	ColLayout     = "layout_score"
	ColDifficulty = "difficulty_score"
	ColConditions = "conditions_score"
)

// Price curve column names.
const (
	ColCurvePrice = "price"
	ColCurveValue = "value_score"
)

// Derived column names. The reporting consumer expects these verbatim.
const (
	ColGolfQuality = "golf_quality"
	ColValueScore  = "value_score"
	ColValueQual   = "value_quality"
	ColComposite   = "composite_score"
	ColRank        = "rank_position"
)

// Course represents one ratings row plus its derived scores.
// Numeric fields use NaN for a missing value; NaN propagates through the
// derived fields for that row instead of aborting the run.
type Course struct {
	Name   string
	Region string // empty when the input carries no region column

	Price      float64
	Layout     float64
	Difficulty float64
	Conditions float64

	// Raw input cells by column name, kept so extra columns pass through
	// the pipeline unchanged.
	Fields map[string]string

	GolfQuality    float64
	ValueScore     float64
	ValueQuality   float64
	CompositeScore float64
	RankPosition   int
}

// CurvePoint is one (price, value) control point of the price curve.
type CurvePoint struct {
	Price float64
	Value float64
}

// Table is a parsed ratings table: the input header in file order plus one
// Course per data row.
type Table struct {
	Header  []string
	Courses []Course
}

// Missing reports whether a numeric cell had no value.
func Missing(v float64) bool {
	return math.IsNaN(v)
}
