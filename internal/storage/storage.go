// Package storage opens the named files of a storage directory and applies
// file controls according to each file's role: the bitfield is locked so
// only one process writes the directory at a time, and files can be marked
// sparse where the platform asks for it.
package storage

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/mrz1836/fsctl/internal/constants"
	"github.com/mrz1836/fsctl/internal/errors"
	"github.com/mrz1836/fsctl/internal/fsctl"
)

// Storage opens files below a single directory.
type Storage struct {
	fs           afero.Fs
	dir          string
	ctrl         fsctl.Controller
	lockBitfield bool
	sparse       bool
}

// Option configures a Storage.
type Option func(*Storage)

// WithController replaces the native file controller. Used in tests.
func WithController(c fsctl.Controller) Option {
	return func(s *Storage) {
		s.ctrl = c
	}
}

// WithLockBitfield enables or disables locking of bitfield files. Enabled by default.
func WithLockBitfield(enabled bool) Option {
	return func(s *Storage) {
		s.lockBitfield = enabled
	}
}

// WithSparse enables or disables marking writable files sparse. Disabled by default.
func WithSparse(enabled bool) Option {
	return func(s *Storage) {
		s.sparse = enabled
	}
}

// New creates a Storage rooted at dir on fs.
func New(fs afero.Fs, dir string, opts ...Option) *Storage {
	s := &Storage{
		fs:           fs,
		dir:          dir,
		ctrl:         fsctl.Native(),
		lockBitfield: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir returns the storage directory.
func (s *Storage) Dir() string {
	return s.dir
}

// OpenOptions control a single Open call.
type OpenOptions struct {
	// ReadOnly opens the file without write access. The file must exist.
	ReadOnly bool
	// Truncate empties the file on open.
	Truncate bool
	// Size extends the file to at least this many bytes after opening.
	Size int64
}

// Open opens name inside the storage directory, creating it and its parent
// directories unless ReadOnly is set.
//
// A bitfield file is locked before Open returns; if another process holds
// the lock, Open fails with an error matching errors.ErrStorageLocked.
func (s *Storage) Open(ctx context.Context, name string, opts OpenOptions) (*File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !filepath.IsLocal(name) {
		return nil, fmt.Errorf("%w: %q", errors.ErrInvalidStorageName, name)
	}

	role := RoleOf(name)
	path := filepath.Join(s.dir, name)
	logger := zerolog.Ctx(ctx).With().
		Str("component", "storage").
		Str("name", name).
		Str("role", role.String()).
		Logger()

	flag := os.O_RDWR | os.O_CREATE
	if opts.ReadOnly {
		flag = os.O_RDONLY
	} else if err := s.fs.MkdirAll(filepath.Dir(path), constants.DirPerm); err != nil {
		return nil, errors.Wrapf(err, "failed to create directory for %s", name)
	}
	if opts.Truncate && !opts.ReadOnly {
		flag |= os.O_TRUNC
	}

	af, err := s.fs.OpenFile(path, flag, constants.FilePerm)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", name)
	}

	f := &File{
		file: af,
		name: name,
		role: role,
		ctrl: s.ctrl,
	}
	f.fd, _ = af.(fsctl.Descriptor)

	if err := s.prepare(f, opts, logger); err != nil {
		_ = f.Close()
		return nil, err
	}

	logger.Debug().Bool("locked", f.locked).Msg("storage file opened")
	return f, nil
}

// prepare applies locking, sparse marking and pre-sizing to a freshly opened file.
func (s *Storage) prepare(f *File, opts OpenOptions, logger zerolog.Logger) error {
	if f.role == RoleBitfield && s.lockBitfield {
		if err := s.lock(f); err != nil {
			logger.Debug().Err(err).Str("reason", fsctl.ReasonCode(err)).Msg("bitfield lock not acquired")
			return err
		}
	}

	if s.sparse && !opts.ReadOnly {
		if err := s.markSparse(f); err != nil {
			if !stderrors.Is(err, errors.ErrUnsupported) {
				return err
			}
			logger.Debug().Err(err).Msg("sparse files not supported, continuing")
		}
	}

	if opts.Size > 0 && !opts.ReadOnly {
		if err := f.grow(opts.Size); err != nil {
			return err
		}
	}

	return nil
}

func (s *Storage) lock(f *File) error {
	if f.fd == nil {
		return fmt.Errorf("lock %s: %w: no file descriptor", f.name, errors.ErrUnsupported)
	}
	if err := s.ctrl.LockExclusive(f.fd.Fd()); err != nil {
		if stderrors.Is(err, errors.ErrLockContended) {
			return fmt.Errorf("%s: %w: %w", f.name, errors.ErrStorageLocked, err)
		}
		return errors.Wrapf(err, "failed to lock %s", f.name)
	}
	f.locked = true
	return nil
}

func (s *Storage) markSparse(f *File) error {
	if f.fd == nil {
		return fmt.Errorf("sparse %s: %w: no file descriptor", f.name, errors.ErrUnsupported)
	}
	return errors.Wrapf(s.ctrl.Sparse(f.fd.Fd()), "failed to mark %s sparse", f.name)
}
