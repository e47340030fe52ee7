//go:build unix && !aix && !solaris

package fsctl

import (
	stderrors "errors"

	"golang.org/x/sys/unix"

	"github.com/mrz1836/fsctl/internal/errors"
)

// unixController implements Controller with flock(2). Unix filesystems
// allocate sparsely without being asked, so Sparse has nothing to do.
type unixController struct{}

//nolint:gochecknoglobals // selected once at build time
var native Controller = unixController{}

func (unixController) Sparse(_ uintptr) error {
	return nil
}

func (unixController) LockExclusive(fd uintptr) error {
	return classify(opLock, unix.Flock(int(fd), unix.LOCK_EX|unix.LOCK_NB))
}

func (unixController) Unlock(fd uintptr) error {
	return classify(opUnlock, unix.Flock(int(fd), unix.LOCK_UN|unix.LOCK_NB))
}

// classify wraps a syscall error with its failure reason.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}

	var reason error
	switch {
	case stderrors.Is(err, unix.EWOULDBLOCK), stderrors.Is(err, unix.EAGAIN):
		reason = errors.ErrLockContended
	case stderrors.Is(err, unix.EBADF):
		reason = errors.ErrInvalidDescriptor
	case stderrors.Is(err, unix.ENOSYS),
		stderrors.Is(err, unix.EOPNOTSUPP),
		stderrors.Is(err, unix.ENOTSUP):
		reason = errors.ErrUnsupported
	default:
		reason = errors.ErrFileControl
	}
	return failure(op, reason, err)
}
