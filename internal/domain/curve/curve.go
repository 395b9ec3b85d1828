// Package curve implements the price-to-value lookup curve.
package curve

import (
	"math"
	"sort"

	"github.com/okian/fairway/internal/domain/model"
)

// Curve is a price→value function defined by sorted control points.
// Lookups between points interpolate linearly; lookups outside the covered
// price range clamp flat to the nearest endpoint's value.
type Curve struct {
	points []model.CurvePoint
}

// New builds a Curve from control points. The input order is irrelevant;
// points are copied and sorted by price ascending. The curve must be
// non-empty and every control point must carry a defined (price, value) pair.
func New(points []model.CurvePoint) (*Curve, error) {
	if len(points) == 0 {
		return nil, ErrEmptyCurve
	}
	for _, p := range points {
		if model.Missing(p.Price) || model.Missing(p.Value) {
			return nil, ErrUndefinedPoint
		}
	}

	sorted := make([]model.CurvePoint, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Price < sorted[j].Price
	})

	return &Curve{points: sorted}, nil
}

// Value returns the value score for a price. A price at a control point
// returns that point's value exactly; a price between two points is linearly
// interpolated; a price below the first or above the last point returns the
// endpoint's value. A missing price yields a missing value.
func (c *Curve) Value(price float64) float64 {
	if model.Missing(price) {
		return math.NaN()
	}

	first := c.points[0]
	last := c.points[len(c.points)-1]
	if price <= first.Price {
		return first.Value
	}
	if price >= last.Price {
		return last.Value
	}

	// Smallest index with points[i].Price >= price; the bracketing pair is
	// (i-1, i). i is in [1, len-1] because the endpoints were handled above.
	i := sort.Search(len(c.points), func(i int) bool {
		return c.points[i].Price >= price
	})
	p0, p1 := c.points[i-1], c.points[i]
	if p1.Price == price {
		return p1.Value
	}
	if p1.Price == p0.Price {
		return p1.Value
	}
	return p0.Value + (p1.Value-p0.Value)*(price-p0.Price)/(p1.Price-p0.Price)
}

// Len returns the number of control points.
func (c *Curve) Len() int {
	return len(c.points)
}
