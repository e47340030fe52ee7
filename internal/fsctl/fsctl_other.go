//go:build !windows && (!unix || aix || solaris)

package fsctl

import "github.com/mrz1836/fsctl/internal/errors"

// unsupportedController is used where no flock equivalent is wired up.
// Sparse still succeeds: there is no request to make, so the caller's
// intent is already satisfied.
type unsupportedController struct{}

//nolint:gochecknoglobals // selected once at build time
var native Controller = unsupportedController{}

func (unsupportedController) Sparse(_ uintptr) error {
	return nil
}

func (unsupportedController) LockExclusive(_ uintptr) error {
	return failure(opLock, errors.ErrUnsupported, nil)
}

func (unsupportedController) Unlock(_ uintptr) error {
	return failure(opUnlock, errors.ErrUnsupported, nil)
}
