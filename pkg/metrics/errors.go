package metrics

import "errors"

// Sentinel kinds for metrics export errors.
var (
	ErrEmptyTextfilePath = errors.New("metrics textfile path is empty")
)
