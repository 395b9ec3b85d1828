// Package report renders console views over a ranked course table.
//
// The views are presentation only: top-N by composite score, the most
// undervalued courses (high value_score, composite as tiebreak) and the most
// overpriced ones (low value_score, price as tiebreak). They impose no
// contract on the pipeline beyond stable column names.
package report

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/okian/fairway/internal/adapters/tabular"
	"github.com/okian/fairway/internal/domain/model"
)

// tabwriter layout constants.
const (
	colMinWidth = 2
	colTabWidth = 4
	colPadding  = 2
)

// Run loads the ranked table and writes all report views to w.
func Run(cfg Config, w io.Writer) error {
	table, err := tabular.ReadRanked(cfg.InputPath)
	if err != nil {
		return err
	}

	printSummary(w, table.Courses)
	printView(w, fmt.Sprintf("Top %d by composite score", cfg.TopN), TopByComposite(table.Courses, cfg.TopN))
	printView(w, fmt.Sprintf("Most undervalued (top %d by value score)", cfg.TopN), MostUndervalued(table.Courses, cfg.TopN))
	printView(w, fmt.Sprintf("Most overpriced (top %d by low value score)", cfg.TopN), MostOverpriced(table.Courses, cfg.TopN))
	return nil
}

// TopByComposite returns up to n courses ordered by composite score
// descending. The input order breaks ties, mirroring the pipeline's ranking.
func TopByComposite(courses []model.Course, n int) []model.Course {
	out := sortedCopy(courses, func(a, b model.Course) bool {
		return descLess(a.CompositeScore, b.CompositeScore)
	})
	return head(out, n)
}

// MostUndervalued returns up to n courses with the highest value score,
// using composite score descending as the tiebreak.
func MostUndervalued(courses []model.Course, n int) []model.Course {
	out := sortedCopy(courses, func(a, b model.Course) bool {
		if a.ValueScore != b.ValueScore && !(model.Missing(a.ValueScore) && model.Missing(b.ValueScore)) {
			return descLess(a.ValueScore, b.ValueScore)
		}
		return descLess(a.CompositeScore, b.CompositeScore)
	})
	return head(out, n)
}

// MostOverpriced returns up to n courses with the lowest value score,
// using price descending as the tiebreak.
func MostOverpriced(courses []model.Course, n int) []model.Course {
	out := sortedCopy(courses, func(a, b model.Course) bool {
		if a.ValueScore != b.ValueScore && !(model.Missing(a.ValueScore) && model.Missing(b.ValueScore)) {
			return ascLess(a.ValueScore, b.ValueScore)
		}
		return descLess(a.Price, b.Price)
	})
	return head(out, n)
}

// descLess orders descending with missing values last.
func descLess(a, b float64) bool {
	switch {
	case model.Missing(a):
		return false
	case model.Missing(b):
		return true
	default:
		return a > b
	}
}

// ascLess orders ascending with missing values last.
func ascLess(a, b float64) bool {
	switch {
	case model.Missing(a):
		return false
	case model.Missing(b):
		return true
	default:
		return a < b
	}
}

func sortedCopy(courses []model.Course, less func(a, b model.Course) bool) []model.Course {
	out := make([]model.Course, len(courses))
	copy(out, courses)
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func head(courses []model.Course, n int) []model.Course {
	if n > 0 && len(courses) > n {
		return courses[:n]
	}
	return courses
}

func printSummary(w io.Writer, courses []model.Course) {
	fmt.Fprintf(w, "===== Summary =====\n")
	fmt.Fprintf(w, "Courses ranked: %d\n", len(courses))
	if mean, ok := meanOf(courses, func(c model.Course) float64 { return c.Price }); ok {
		fmt.Fprintf(w, "Average price: $%.2f\n", mean)
	}
	if mean, ok := meanOf(courses, func(c model.Course) float64 { return c.GolfQuality }); ok {
		fmt.Fprintf(w, "Average golf quality: %.2f\n", mean)
	}
	if mean, ok := meanOf(courses, func(c model.Course) float64 { return c.CompositeScore }); ok {
		fmt.Fprintf(w, "Average composite score: %.2f\n", mean)
	}
	fmt.Fprintln(w)
}

// meanOf averages a field over the rows where it is present. The second
// return is false when no row has a value.
func meanOf(courses []model.Course, field func(model.Course) float64) (float64, bool) {
	var sum float64
	var n int
	for _, c := range courses {
		if v := field(c); !model.Missing(v) {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

func printView(w io.Writer, title string, courses []model.Course) {
	fmt.Fprintf(w, "===== %s =====\n", title)
	tw := tabwriter.NewWriter(w, colMinWidth, colTabWidth, colPadding, ' ', 0)
	fmt.Fprintln(tw, "rank\tcourse\tregion\tprice\tgolf_quality\tvalue_score\tcomposite_score")
	for _, c := range courses {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			c.RankPosition, c.Name, c.Region,
			cell(c.Price), cell(c.GolfQuality), cell(c.ValueScore), cell(c.CompositeScore))
	}
	_ = tw.Flush()
	fmt.Fprintln(w)
}

// cell renders a numeric cell, leaving missing values blank.
func cell(v float64) string {
	if model.Missing(v) {
		return ""
	}
	return fmt.Sprintf("%.2f", v)
}
