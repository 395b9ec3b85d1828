// Package quality derives the golf quality score from raw sub-scores.
package quality

import (
	"math"

	"github.com/okian/fairway/internal/domain/model"
)

// subScoreCount is the number of sub-scores averaged into golf quality.
const subScoreCount = 3

// Aggregate returns the golf quality for a course: the arithmetic mean of
// the layout, difficulty and conditions sub-scores. A missing sub-score makes
// the mean undefined for that row, so NaN is returned rather than skipping or
// imputing the value.
func Aggregate(c model.Course) float64 {
	if model.Missing(c.Layout) || model.Missing(c.Difficulty) || model.Missing(c.Conditions) {
		return math.NaN()
	}
	return (c.Layout + c.Difficulty + c.Conditions) / subScoreCount
}
