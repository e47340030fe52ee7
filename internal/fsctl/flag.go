package fsctl

import (
	stderrors "errors"

	"github.com/mrz1836/fsctl/internal/errors"
)

// Result flags of the descriptor-in, flag-out call boundary.
const (
	// FlagFailure reports that the request was not applied.
	FlagFailure uint32 = 0
	// FlagSuccess reports that the request was applied, or was not needed.
	FlagSuccess uint32 = 1
)

// Flag collapses an error into the 0/1 result flag. Every failure reason maps
// to FlagFailure.
func Flag(err error) uint32 {
	if err != nil {
		return FlagFailure
	}
	return FlagSuccess
}

// MarkSparseFlag marks fd sparse and returns 1 on success (or when the
// platform needs no request) and 0 on failure.
func MarkSparseFlag(fd uint32) uint32 {
	return Flag(native.Sparse(uintptr(fd)))
}

// LockExclusiveFlag returns 1 if the exclusive lock on fd was acquired and
// 0 otherwise, including when another descriptor holds it.
func LockExclusiveFlag(fd uint32) uint32 {
	return Flag(native.LockExclusive(uintptr(fd)))
}

// UnlockFlag returns 1 if the lock on fd was released and 0 otherwise.
func UnlockFlag(fd uint32) uint32 {
	return Flag(native.Unlock(uintptr(fd)))
}

// Reason codes reported by ReasonCode.
const (
	ReasonNone              = ""
	ReasonContended         = "contended"
	ReasonInvalidDescriptor = "invalid_descriptor"
	ReasonUnsupported       = "unsupported"
	ReasonNotLocked         = "not_locked"
	ReasonOS                = "os_error"
)

// ReasonCode returns a stable short code for the failure reason in err.
// It returns ReasonNone for a nil error and ReasonOS for errors that carry
// no known reason.
func ReasonCode(err error) string {
	switch {
	case err == nil:
		return ReasonNone
	case stderrors.Is(err, errors.ErrLockContended):
		return ReasonContended
	case stderrors.Is(err, errors.ErrInvalidDescriptor):
		return ReasonInvalidDescriptor
	case stderrors.Is(err, errors.ErrUnsupported):
		return ReasonUnsupported
	case stderrors.Is(err, errors.ErrNotLocked):
		return ReasonNotLocked
	default:
		return ReasonOS
	}
}
