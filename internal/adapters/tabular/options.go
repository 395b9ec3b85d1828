package tabular

// Option applies a configuration option to the Writer.
type Option func(*Writer)

// WithRoundDecimals sets how many decimal places the derived score columns
// keep in the output file. Rounding is cosmetic; nothing downstream of the
// pipeline computes on the rounded values.
func WithRoundDecimals(n int) Option {
	return func(w *Writer) {
		if n >= 0 {
			w.roundDecimals = n
		}
	}
}
