package template

import "errors"

// Sentinel errors
var (
	// ErrSyntax wraps every template parse failure.
	ErrSyntax = errors.New("template syntax error")
	// ErrUnexpectedDelimiter indicates a closing delimiter without a matching opening one.
	ErrUnexpectedDelimiter = errors.New("unexpected delimiter")
	// ErrInvalidEncoding indicates a template that is not valid UTF-8.
	ErrInvalidEncoding = errors.New("invalid UTF-8")
	// ErrInvalidDelimiters indicates an unusable delimiter configuration.
	ErrInvalidDelimiters = errors.New("invalid delimiters")
)
