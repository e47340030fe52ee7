// Package testutil provides testing utilities for fsctl.
//
// This package contains mock errors and test helpers used across test files.
// It should only be imported by test files (*_test.go).
package testutil

import "errors"

// Mock errors for testing purposes.
var (
	// ErrMockControl indicates a mock controller rejected a request (used in tests).
	ErrMockControl = errors.New("control request failed")
)
