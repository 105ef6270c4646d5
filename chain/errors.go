package chain

import (
	"errors"
	"fmt"
)

// Build-time errors. All are reported wrapped in a *ConfigError.
var (
	ErrUnrecognizedElement = errors.New("chain: unrecognized element shape")
	ErrDuplicateLoop       = errors.New("chain: loop marker may appear at most once")
	ErrMisplacedLoop       = errors.New("chain: loop marker not allowed inside a nested list")
)

// ConfigError reports a malformed chain specification. It is returned only
// from Build, never raised during invocation.
type ConfigError struct {
	// Index is the element's position in its enclosing specification,
	// -1 when unknown.
	Index int

	// Element is the offending specification element.
	Element Element

	// Err is the underlying cause.
	Err error
}

// Error returns a message naming the offending element.
func (e *ConfigError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("%v (element %d: %#v)", e.Err, e.Index, e.Element)
	}
	return fmt.Sprintf("%v (element: %#v)", e.Err, e.Element)
}

// Unwrap returns the underlying cause.
func (e *ConfigError) Unwrap() error {
	return e.Err
}
