// Package scoring computes the blended value/composite scores.
package scoring

import "math"

// Default blend weights.
const (
	defaultGolfQualityWeight = 0.7
	defaultValueScoreWeight  = 0.3
	weightSumTolerance       = 0.001
)

// Result carries both named outputs of the blend. They are computed from the
// same formula today; keeping them separate lets the composite diverge later
// (penalties, bonuses) without changing the output schema.
type Result struct {
	ValueQuality   float64
	CompositeScore float64
}

// Blender computes the weighted blend of golf quality and value score.
type Blender struct {
	golfQualityWeight float64
	valueScoreWeight  float64
}

// NewBlender creates a Blender with the default 0.7/0.3 weights, then applies
// options.
func NewBlender(opts ...Option) *Blender {
	b := &Blender{
		golfQualityWeight: defaultGolfQualityWeight,
		valueScoreWeight:  defaultValueScoreWeight,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Blend computes value_quality = wq*golfQuality + wv*valueScore and copies it
// into composite_score. A missing input propagates NaN through both outputs.
func (b *Blender) Blend(golfQuality, valueScore float64) Result {
	vq := b.golfQualityWeight*golfQuality + b.valueScoreWeight*valueScore
	return Result{
		ValueQuality:   vq,
		CompositeScore: vq,
	}
}

// Weights returns the configured (golf quality, value score) weights.
func (b *Blender) Weights() (float64, float64) {
	return b.golfQualityWeight, b.valueScoreWeight
}

// ValidWeights reports whether the pair is usable as blend weights:
// non-negative and summing to 1.0 within tolerance.
func ValidWeights(golfQualityWeight, valueScoreWeight float64) bool {
	if golfQualityWeight < 0 || valueScoreWeight < 0 {
		return false
	}
	return math.Abs(golfQualityWeight+valueScoreWeight-1.0) <= weightSumTolerance
}
