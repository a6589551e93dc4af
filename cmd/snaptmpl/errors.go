package main

import "errors"

// Sentinel errors for command operations
var (
	ErrInvalidSetFlag = errors.New("--set expects key=value")
	ErrGenerateFailed = errors.New("some tasks failed")
)
