// Package ranking assigns dense rank positions by composite score.
package ranking

import (
	"sort"

	"github.com/okian/fairway/internal/domain/model"
)

// Rank returns a new slice ordered by composite score descending with
// 1-based rank positions assigned. The sort is stable, so rows with equal
// composite scores keep their original relative order. Rows whose composite
// is missing sort after every comparable row and still receive a rank, which
// keeps the rank positions a dense permutation of 1..N.
func Rank(courses []model.Course) []model.Course {
	ranked := make([]model.Course, len(courses))
	copy(ranked, courses)

	sort.SliceStable(ranked, func(i, j int) bool {
		return scoreLess(ranked[j].CompositeScore, ranked[i].CompositeScore)
	})

	for i := range ranked {
		ranked[i].RankPosition = i + 1
	}
	return ranked
}

// scoreLess orders composite scores ascending with missing values first, so
// that the descending sort above places them last.
func scoreLess(a, b float64) bool {
	switch {
	case model.Missing(a):
		return !model.Missing(b)
	case model.Missing(b):
		return false
	default:
		return a < b
	}
}
