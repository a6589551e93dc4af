package combinator

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	// ErrNotMatch is returned when a parser does not match at the current position.
	ErrNotMatch = errors.New("not match")
	// ErrUnexpectedEOF is returned when fewer characters remain than a parser needs.
	ErrUnexpectedEOF = errors.New("unexpected end of input")
	// ErrTrailingInput is returned by EOF when input remains.
	ErrTrailingInput = errors.New("unexpected trailing input")
	// ErrGuard is returned by Guard(false).
	ErrGuard = errors.New("guard failed")

	// ErrNonProductive is raised (as a panic) when Many repeats a parser that succeeded without consuming input.
	ErrNonProductive = errors.New("parser was not productive")
	// ErrUndefinedRule is raised (as a panic) when a declared rule is used before Define.
	ErrUndefinedRule = errors.New("rule is declared but not defined")
)

// ParseError describes a recoverable parse failure.
type ParseError struct {
	// Expected is the literal the parser was looking for, if any.
	Expected string
	// Need is the number of characters requested when the input ran out.
	Need int
	Pos  Position
	Err  error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	switch {
	case e.Expected != "" && errors.Is(e.Err, ErrUnexpectedEOF):
		return fmt.Sprintf("expected %q at %s: %v", e.Expected, e.Pos, e.Err)
	case e.Expected != "":
		return fmt.Sprintf("expected %q at %s", e.Expected, e.Pos)
	case e.Need > 0:
		return fmt.Sprintf("%v at %s: need %d more character(s)", e.Err, e.Pos, e.Need)
	default:
		return fmt.Sprintf("%v at %s", e.Err, e.Pos)
	}
}

// Unwrap returns the sentinel cause.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// AsParseError is a helper to extract *ParseError from error using errors.As.
func AsParseError(err error) (*ParseError, bool) {
	var perr *ParseError
	if errors.As(err, &perr) {
		return perr, true
	}

	return nil, false
}
