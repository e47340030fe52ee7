// Package errors provides centralized error handling for fsctl.
//
// This package defines sentinel errors used for programmatic error categorization
// throughout the application. All error types can be checked using errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// File-control failure reasons. Every error returned by the fsctl bridge
// wraps exactly one of these together with the underlying OS error.
var (
	// ErrLockContended indicates that another descriptor already holds the lock.
	ErrLockContended = errors.New("lock held by another descriptor")

	// ErrInvalidDescriptor indicates the descriptor is closed or does not refer to an open file.
	ErrInvalidDescriptor = errors.New("invalid file descriptor")

	// ErrUnsupported indicates the platform or filesystem cannot perform the operation.
	ErrUnsupported = errors.New("operation not supported")

	// ErrNotLocked indicates an unlock was requested on a range that holds no lock.
	ErrNotLocked = errors.New("file is not locked")

	// ErrFileControl indicates any other OS-level failure of a file-control call.
	ErrFileControl = errors.New("file control failed")
)

// Storage errors.
var (
	// ErrStorageLocked indicates a storage file could not be opened because
	// another process holds its lock.
	ErrStorageLocked = errors.New("storage is locked")

	// ErrInvalidStorageName indicates a storage file name is empty, absolute,
	// or escapes the storage directory.
	ErrInvalidStorageName = errors.New("invalid storage name")

	// ErrStorageClosed indicates an operation on a storage file after Close.
	ErrStorageClosed = errors.New("storage file closed")
)

// Configuration errors.
var (
	// ErrConfigNil indicates that a nil config was passed to validation.
	ErrConfigNil = errors.New("config is nil")

	// ErrConfigInvalidLog indicates an invalid Log configuration value.
	ErrConfigInvalidLog = errors.New("invalid Log configuration")

	// ErrConfigInvalidLock indicates an invalid Lock configuration value.
	ErrConfigInvalidLock = errors.New("invalid Lock configuration")
)

// CLI errors.
var (
	// ErrInvalidOutputFormat indicates an invalid output format was specified.
	ErrInvalidOutputFormat = errors.New("invalid output format")

	// ErrInvalidArgument indicates that an invalid argument was provided.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrJSONErrorOutput indicates that an error has already been output as JSON.
	// This ensures a non-zero exit code while preventing duplicate error messages.
	ErrJSONErrorOutput = errors.New("error output as JSON")

	// ErrProbeFailed indicates that one or more probed paths could not be checked.
	ErrProbeFailed = errors.New("probe failed")
)

// ExitCode2Error wraps an error to indicate exit code 2 should be used.
type ExitCode2Error struct {
	Err error
}

// NewExitCode2Error wraps an error to indicate exit code 2.
func NewExitCode2Error(err error) *ExitCode2Error {
	return &ExitCode2Error{Err: err}
}

// Error implements the error interface.
func (e *ExitCode2Error) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ExitCode2Error) Unwrap() error {
	return e.Err
}

// IsExitCode2Error checks if an error should result in exit code 2.
func IsExitCode2Error(err error) bool {
	var e *ExitCode2Error
	return errors.As(err, &e)
}
