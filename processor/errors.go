package processor

import "errors"

// Sentinel errors
var (
	ErrUnknownProcessor   = errors.New("unknown processor")
	ErrDuplicateProcessor = errors.New("processor is already registered")
	ErrTaskLimit          = errors.New("task limit exceeded")
	ErrMissingArgument    = errors.New("missing file name argument")
	ErrNotList            = errors.New("config value is not a list")
	ErrUnsafeOutput       = errors.New("output name leaves the result directory")
)
