package fsctl

import (
	"fmt"

	"github.com/mrz1836/fsctl/internal/errors"
)

// Operation names used as error prefixes.
const (
	opSparse = "sparse"
	opLock   = "lock"
	opUnlock = "unlock"
)

// Controller performs file-control requests on a raw descriptor.
// On Windows the descriptor is the file HANDLE, as returned by (*os.File).Fd().
type Controller interface {
	// Sparse marks the file as sparse. Platforms whose filesystems allocate
	// sparsely by default report success without doing anything.
	Sparse(fd uintptr) error

	// LockExclusive takes an exclusive lock on the file without blocking.
	// A lock held through another descriptor fails with ErrLockContended.
	LockExclusive(fd uintptr) error

	// Unlock releases a lock taken with LockExclusive.
	Unlock(fd uintptr) error
}

// Descriptor is anything that exposes an OS file descriptor, such as *os.File.
type Descriptor interface {
	Fd() uintptr
}

// Native returns the Controller for the platform this binary was built for.
func Native() Controller {
	return native
}

// Sparse marks the file behind d as sparse using the native controller.
func Sparse(d Descriptor) error {
	if d == nil {
		return failure(opSparse, errors.ErrInvalidDescriptor, nil)
	}
	return native.Sparse(d.Fd())
}

// LockExclusive takes an exclusive non-blocking lock on the file behind d.
func LockExclusive(d Descriptor) error {
	if d == nil {
		return failure(opLock, errors.ErrInvalidDescriptor, nil)
	}
	return native.LockExclusive(d.Fd())
}

// Unlock releases the lock held through d.
func Unlock(d Descriptor) error {
	if d == nil {
		return failure(opUnlock, errors.ErrInvalidDescriptor, nil)
	}
	return native.Unlock(d.Fd())
}

// failure builds the error for a failed request. The reason sentinel comes
// first so it reads as the cause; the OS error follows when there is one.
func failure(op string, reason, osErr error) error {
	if osErr == nil {
		return fmt.Errorf("%s: %w", op, reason)
	}
	return fmt.Errorf("%s: %w: %w", op, reason, osErr)
}
