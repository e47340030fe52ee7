// Package fsctl is a thin bridge to three operating-system file controls:
// marking a file sparse, taking an exclusive non-blocking lock, and releasing
// that lock.
//
// Each call borrows a descriptor the caller already opened, converts it to
// the native handle, and issues exactly one syscall. Nothing is cached,
// retried, or logged. The platform implementation is chosen at build time:
//
//   - windows: DeviceIoControl(FSCTL_SET_SPARSE), LockFileEx, UnlockFileEx
//   - unix: sparse is a no-op, locking uses flock(2)
//   - other: sparse is a no-op, locking reports ErrUnsupported
//
// Failures wrap one sentinel from internal/errors (ErrLockContended,
// ErrInvalidDescriptor, ErrUnsupported, ErrNotLocked or ErrFileControl)
// together with the OS error. Callers that need the plain 0/1 result
// use the *Flag functions.
//
// Usage:
//
//	f, _ := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600)
//	if err := fsctl.LockExclusive(f); err != nil {
//	    // not acquired; errors.Is(err, errors.ErrLockContended) when held elsewhere
//	}
//	defer fsctl.Unlock(f)
package fsctl
