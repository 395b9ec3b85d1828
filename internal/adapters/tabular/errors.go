package tabular

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel kinds for table I/O errors.
var (
	ErrNotFound = errors.New("input file not found")
	ErrSchema   = errors.New("missing required columns")
)

// SchemaError reports every required column absent from a source in one
// error, not just the first.
type SchemaError struct {
	Source  string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: %v in %s", ErrSchema, strings.Join(e.Missing, ", "), e.Source)
}

// Unwrap lets callers match the error with errors.Is(err, ErrSchema).
func (e *SchemaError) Unwrap() error {
	return ErrSchema
}
