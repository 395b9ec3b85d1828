package curve

import "errors"

// Sentinel kinds for curve construction errors.
var (
	ErrEmptyCurve     = errors.New("price curve has no control points")
	ErrUndefinedPoint = errors.New("price curve control point is undefined")
)
