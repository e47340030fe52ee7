package storage

import (
	stderrors "errors"
	"sync"

	"github.com/spf13/afero"

	"github.com/mrz1836/fsctl/internal/errors"
	"github.com/mrz1836/fsctl/internal/fsctl"
)

// File is an open storage file. It is safe for concurrent use; Close waits
// for in-flight reads and writes.
type File struct {
	mu     sync.RWMutex
	file   afero.File
	fd     fsctl.Descriptor // nil when the filesystem has no OS descriptors
	ctrl   fsctl.Controller
	name   string
	role   Role
	locked bool
	closed bool
}

// Name returns the storage name the file was opened with.
func (f *File) Name() string {
	return f.name
}

// Role returns the file's role.
func (f *File) Role() Role {
	return f.role
}

// Locked reports whether the file holds the exclusive lock.
func (f *File) Locked() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.locked
}

// ReadAt reads len(p) bytes starting at off.
func (f *File) ReadAt(p []byte, off int64) (int, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.closed {
		return 0, errors.ErrStorageClosed
	}
	return f.file.ReadAt(p, off)
}

// WriteAt writes p starting at off.
func (f *File) WriteAt(p []byte, off int64) (int, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.closed {
		return 0, errors.ErrStorageClosed
	}
	return f.file.WriteAt(p, off)
}

// Truncate changes the size of the file.
func (f *File) Truncate(size int64) error {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.closed {
		return errors.ErrStorageClosed
	}
	return f.file.Truncate(size)
}

// Size returns the current size of the file in bytes.
func (f *File) Size() (int64, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.closed {
		return 0, errors.ErrStorageClosed
	}
	info, err := f.file.Stat()
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// Sync commits the file contents to stable storage.
func (f *File) Sync() error {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.closed {
		return errors.ErrStorageClosed
	}
	return f.file.Sync()
}

// Close releases the lock, if held, and closes the file. Calling Close
// more than once returns nil.
func (f *File) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil
	}
	f.closed = true

	var unlockErr error
	if f.locked {
		unlockErr = errors.Wrapf(f.ctrl.Unlock(f.fd.Fd()), "failed to unlock %s", f.name)
		f.locked = false
	}
	closeErr := errors.Wrapf(f.file.Close(), "failed to close %s", f.name)

	return stderrors.Join(unlockErr, closeErr)
}

// grow extends the file to size bytes if it is smaller.
func (f *File) grow(size int64) error {
	current, err := f.Size()
	if err != nil {
		return errors.Wrapf(err, "failed to stat %s", f.name)
	}
	if current >= size {
		return nil
	}
	return errors.Wrapf(f.Truncate(size), "failed to extend %s", f.name)
}
