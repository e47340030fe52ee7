package cli

import (
	stderrors "errors"
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/mrz1836/fsctl/internal/errors"
	"github.com/mrz1836/fsctl/internal/fsctl"
	"github.com/mrz1836/fsctl/internal/storage"
)

// StorageFileResult describes one file opened through a storage directory.
type StorageFileResult struct {
	Name   string `json:"name"`
	Role   string `json:"role"`
	Opened bool   `json:"opened"`
	Locked bool   `json:"locked"`
	Size   int64  `json:"size"`
	Reason string `json:"reason,omitempty"`
	Error  string `json:"error,omitempty"`
}

type storageOpenOptions struct {
	readOnly     bool
	truncate     bool
	size         int64
	sparse       bool
	lockBitfield bool
}

// AddStorageCommand adds the storage command group to the root command.
func AddStorageCommand(root *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "storage",
		Short: "Work with storage directories",
		Long: `Work with storage directories made of named files.

A file named "bitfield" is locked when opened so only one process writes
the directory. A file named "tree" is never locked. Writable files can be
marked sparse.`,
	}

	cmd.AddCommand(newStorageOpenCmd())
	root.AddCommand(cmd)
}

func newStorageOpenCmd() *cobra.Command {
	opts := &storageOpenOptions{}

	cmd := &cobra.Command{
		Use:   "open <dir> <name>...",
		Short: "Open storage files and report their state",
		Long: `Open each name inside dir the way a storage writer does, report the
file's role, lock state and size, then close everything.

Defaults for --sparse and --lock-bitfield come from the storage section of
the config.`,
		Example: `  # Open a storage directory's files
  fsctl storage open ./feed tree bitfield data

  # Create the data file with room for 1 MiB
  fsctl storage open ./feed data --size 1048576`,
		Args: usageArgs(cobra.MinimumNArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStorageOpen(cmd, args[0], args[1:], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.readOnly, "read-only", false, "open existing files without write access")
	cmd.Flags().BoolVar(&opts.truncate, "truncate", false, "empty files when opening them")
	cmd.Flags().Int64Var(&opts.size, "size", 0, "extend files to at least this many bytes")
	cmd.Flags().BoolVar(&opts.sparse, "sparse", false, "mark writable files sparse")
	cmd.Flags().BoolVar(&opts.lockBitfield, "lock-bitfield", true, "lock bitfield files")

	return cmd
}

// storageFromFlags builds a Storage from config defaults overridden by any
// flags the user set.
func storageFromFlags(cmd *cobra.Command, dir string, opts *storageOpenOptions, ec *ExecutionContext) *storage.Storage {
	sparse := ec.Config.Storage.Sparse
	if cmd.Flags().Changed("sparse") {
		sparse = opts.sparse
	}
	lockBitfield := ec.Config.Storage.LockBitfield
	if cmd.Flags().Changed("lock-bitfield") {
		lockBitfield = opts.lockBitfield
	}

	return storage.New(afero.NewOsFs(), dir,
		storage.WithSparse(sparse),
		storage.WithLockBitfield(lockBitfield),
	)
}

func runStorageOpen(cmd *cobra.Command, dir string, names []string, opts *storageOpenOptions) error {
	ctx := cmd.Context()
	ec := GetExecutionContext(ctx)
	logger := GetLogger().With().Str("dir", dir).Logger()

	if opts.size < 0 {
		return errors.NewExitCode2Error(fmt.Errorf("%w: --size must not be negative", errors.ErrInvalidArgument))
	}

	s := storageFromFlags(cmd, dir, opts, ec)
	openOpts := storage.OpenOptions{ReadOnly: opts.readOnly, Truncate: opts.truncate, Size: opts.size}

	results := make([]StorageFileResult, 0, len(names))
	files := make([]*storage.File, 0, len(names))
	var errs []error

	for _, name := range names {
		r := StorageFileResult{Name: name, Role: storage.RoleOf(name).String()}

		f, err := s.Open(ctx, name, openOpts)
		if err != nil {
			r.Reason = fsctl.ReasonCode(err)
			r.Error = err.Error()
			errs = append(errs, err)
			results = append(results, r)
			continue
		}
		files = append(files, f)

		r.Opened = true
		r.Locked = f.Locked()
		if r.Size, err = f.Size(); err != nil {
			r.Error = err.Error()
			errs = append(errs, err)
		}
		results = append(results, r)
	}

	for _, f := range files {
		if err := f.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	logger.Debug().Int("files", len(names)).Int("errors", len(errs)).Msg("storage open complete")

	openErr := stderrors.Join(errs...)
	out := cmd.OutOrStdout()
	if ec.OutputFormat == OutputJSON {
		if err := encodeJSONIndented(out, results); err != nil {
			return err
		}
		if openErr != nil {
			return fmt.Errorf("%w: %w", errors.ErrJSONErrorOutput, openErr)
		}
		return nil
	}

	writeStorageTable(out, dir, results)
	return openErr
}

func writeStorageTable(w io.Writer, dir string, results []StorageFileResult) {
	s := newOutputStyles(w)
	_, _ = fmt.Fprintln(w, s.header.Render(dir))
	for _, r := range results {
		if !r.Opened {
			_, _ = fmt.Fprintln(w, s.status(false, fmt.Sprintf("%s %s %s",
				r.Name, s.label.Render(r.Role), s.dim.Render(r.Error))))
			continue
		}
		detail := fmt.Sprintf("%d bytes", r.Size)
		if r.Locked {
			detail += ", locked"
		}
		_, _ = fmt.Fprintln(w, s.status(true, fmt.Sprintf("%s %s %s",
			r.Name, s.label.Render(r.Role), s.dim.Render(detail))))
	}
}
