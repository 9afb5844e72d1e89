package etl

import (
	"errors"
	"fmt"
)

var (
	// ErrStructureMismatch means the page no longer has the shape the
	// extractor expects: the labeled table is gone or its rows are short.
	ErrStructureMismatch = errors.New("page structure mismatch")
	ErrMissingColumn     = errors.New("missing column")
	ErrInvalidIdentifier = errors.New("invalid SQL identifier")
)

type StructureError struct {
	Reason string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("%s: %s", ErrStructureMismatch, e.Reason)
}

func (e *StructureError) Unwrap() error {
	return ErrStructureMismatch
}

// ParseError reports a GDP cell that could not be turned into a
// finite, non-negative number.
type ParseError struct {
	Country string
	Value   string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("country %q: invalid GDP value %q: %v", e.Country, e.Value, e.Err)
	}
	return fmt.Sprintf("country %q: invalid GDP value %q", e.Country, e.Value)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
