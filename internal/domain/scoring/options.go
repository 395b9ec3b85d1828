package scoring

// Option applies a configuration option to the Blender.
type Option func(*Blender)

// WithWeights sets the blend weights. Invalid pairs (negative, or not
// summing to 1.0 within tolerance) are ignored and the defaults kept.
func WithWeights(golfQualityWeight, valueScoreWeight float64) Option {
	return func(b *Blender) {
		if ValidWeights(golfQualityWeight, valueScoreWeight) {
			b.golfQualityWeight = golfQualityWeight
			b.valueScoreWeight = valueScoreWeight
		}
	}
}
