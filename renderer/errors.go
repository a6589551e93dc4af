package renderer

import (
	"errors"
	"fmt"

	"github.com/shibukawa/snaptmpl/combinator"
)

// Sentinel errors
var (
	ErrInvalidKey       = errors.New("invalid config key")
	ErrInvalidCode      = errors.New("invalid code region")
	ErrMissingValue     = errors.New("missing config value")
	ErrEvaluation       = errors.New("template evaluation failed")
	ErrUnexpectedResult = errors.New("template did not evaluate to a string")
	// ErrUnknownNode is raised (as a panic) for a tree node that is neither text nor code.
	ErrUnknownNode = errors.New("unknown template node")
)

// CodeError reports an expression error at the code region that contains it.
type CodeError struct {
	// Pos is the opening delimiter of the innermost code region containing the error.
	Pos     combinator.Position
	Message string
}

// Error implements the error interface.
func (e *CodeError) Error() string {
	return fmt.Sprintf("%v at %s: %s", ErrInvalidCode, e.Pos, e.Message)
}

// Unwrap returns ErrInvalidCode.
func (e *CodeError) Unwrap() error {
	return ErrInvalidCode
}

// AsCodeError is a helper to extract *CodeError from error using errors.As.
func AsCodeError(err error) (*CodeError, bool) {
	var cerr *CodeError
	if errors.As(err, &cerr) {
		return cerr, true
	}

	return nil, false
}
