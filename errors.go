// Package snaptmpl holds the project configuration shared by the CLI and the
// processors.
package snaptmpl

import "errors"

// Common errors used throughout the snaptmpl package
var (
	// ErrConfigValidation is returned when configuration validation fails.
	ErrConfigValidation = errors.New("configuration validation failed")

	// ErrExpectedMappingNode indicates a values file whose top level is not a mapping.
	// Values errors
	ErrExpectedMappingNode = errors.New("values must be a mapping")
	// ErrInvalidValueKey indicates a value name that templates cannot reference.
	ErrInvalidValueKey = errors.New("invalid value name")
)
