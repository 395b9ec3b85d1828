package tabular

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/okian/fairway/internal/domain/model"
)

// Default writer configuration constants.
const (
	defaultRoundDecimals = 3
	outputDirPermission  = 0o755
)

// Writer persists a ranked table as CSV: every input column in its original
// order followed by the derived score columns and the rank.
type Writer struct {
	roundDecimals int
}

// NewWriter creates a Writer with default rounding, then applies options.
func NewWriter(opts ...Option) *Writer {
	w := &Writer{
		roundDecimals: defaultRoundDecimals,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// WriteRanked writes the ranked courses to path, creating missing parent
// directories. Derived score columns are rounded for presentation; missing
// values become empty cells. The first error surfaces, there are no retries.
func (w *Writer) WriteRanked(path string, header []string, courses []model.Course) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, outputDirPermission); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	out := append(append(make([]string, 0, len(header)+5), header...),
		model.ColGolfQuality, model.ColValueScore, model.ColValueQual, model.ColComposite, model.ColRank)

	cw := csv.NewWriter(f)
	if err := cw.Write(out); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}

	row := make([]string, len(out))
	for _, c := range courses {
		n := 0
		for _, col := range header {
			row[n] = c.Fields[col]
			n++
		}
		row[n] = w.formatScore(c.GolfQuality)
		row[n+1] = w.formatScore(c.ValueScore)
		row[n+2] = w.formatScore(c.ValueQuality)
		row[n+3] = w.formatScore(c.CompositeScore)
		row[n+4] = strconv.Itoa(c.RankPosition)
		if err := cw.Write(row); err != nil {
			_ = f.Close()
			return fmt.Errorf("write %s: %w", path, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// formatScore renders a derived score rounded to the configured number of
// decimal places, with trailing zeros dropped. Missing values render empty.
func (w *Writer) formatScore(v float64) string {
	if model.Missing(v) {
		return ""
	}
	p := math.Pow(10, float64(w.roundDecimals))
	return strconv.FormatFloat(math.Round(v*p)/p, 'f', -1, 64)
}
