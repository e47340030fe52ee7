//go:build windows

package fsctl

import (
	stderrors "errors"

	"golang.org/x/sys/windows"

	"github.com/mrz1836/fsctl/internal/errors"
)

// LockFileEx/UnlockFileEx range parameters. The lock covers the first byte
// of the file, which every cooperating caller agrees to use as the whole-file lock.
// See: https://learn.microsoft.com/en-us/windows/win32/api/fileapi/nf-fileapi-lockfileex
const (
	lockReserved  = 0 // Reserved parameter, must be zero
	lockBytesLow  = 1 // Low-order 32 bits of the byte range
	lockBytesHigh = 0 // High-order 32 bits of the byte range
)

// windowsController implements Controller with DeviceIoControl and the
// LockFileEx family.
type windowsController struct{}

//nolint:gochecknoglobals // selected once at build time
var native Controller = windowsController{}

func (windowsController) Sparse(fd uintptr) error {
	var bytesReturned uint32
	err := windows.DeviceIoControl(
		windows.Handle(fd),
		windows.FSCTL_SET_SPARSE,
		nil, 0,
		nil, 0,
		&bytesReturned,
		nil,
	)
	return classify(opSparse, err)
}

func (windowsController) LockExclusive(fd uintptr) error {
	err := windows.LockFileEx(
		windows.Handle(fd),
		windows.LOCKFILE_EXCLUSIVE_LOCK|windows.LOCKFILE_FAIL_IMMEDIATELY,
		lockReserved,
		lockBytesLow,
		lockBytesHigh,
		&windows.Overlapped{},
	)
	return classify(opLock, err)
}

func (windowsController) Unlock(fd uintptr) error {
	err := windows.UnlockFileEx(
		windows.Handle(fd),
		lockReserved,
		lockBytesLow,
		lockBytesHigh,
		&windows.Overlapped{},
	)
	return classify(opUnlock, err)
}

// classify wraps a Win32 error with its failure reason.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}

	var reason error
	switch {
	case stderrors.Is(err, windows.ERROR_LOCK_VIOLATION):
		reason = errors.ErrLockContended
	case stderrors.Is(err, windows.ERROR_INVALID_HANDLE):
		reason = errors.ErrInvalidDescriptor
	case stderrors.Is(err, windows.ERROR_INVALID_FUNCTION),
		stderrors.Is(err, windows.ERROR_NOT_SUPPORTED):
		// exFAT and FAT volumes have no sparse support.
		reason = errors.ErrUnsupported
	case stderrors.Is(err, windows.ERROR_NOT_LOCKED):
		reason = errors.ErrNotLocked
	default:
		reason = errors.ErrFileControl
	}
	return failure(op, reason, err)
}
