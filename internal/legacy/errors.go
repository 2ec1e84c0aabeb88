package legacy

import (
	"errors"
	"fmt"
)

// ErrMissingMain is returned when a structured day has no main dish to print.
var ErrMissingMain = errors.New("day menu has no main dish")

// ParseError reports a legacy value that could not be read.
type ParseError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s %q: %s", e.Field, e.Value, e.Reason)
}

func parseErrorf(field, value, format string, args ...any) *ParseError {
	return &ParseError{Field: field, Value: value, Reason: fmt.Sprintf(format, args...)}
}
