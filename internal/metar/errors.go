package metar

import (
	"errors"
	"fmt"
)

// Fatal parse conditions. Every other missing field is reported as an
// absent value, never as an error.
var (
	ErrNotReport         = errors.New("not a METAR or SPECI report")
	ErrNilWithBody       = errors.New("NIL report carries a body")
	ErrMissingVisibility = errors.New("visibility missing and no CAVOK")
)

// ParseError records which field stopped the parse and the text that was
// left when it did.
type ParseError struct {
	Field string
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Input == "" {
		return fmt.Sprintf("metar: %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("metar: %s: %v at %q", e.Field, e.Err, e.Input)
}

func (e *ParseError) Unwrap() error { return e.Err }
