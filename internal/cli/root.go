// Package cli provides the command-line interface for fsctl.
package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mrz1836/fsctl/internal/config"
	"github.com/mrz1836/fsctl/internal/errors"
)

// BuildInfo contains version information set at build time via ldflags.
type BuildInfo struct {
	// Version is the semantic version (e.g., "1.0.0").
	Version string
	// Commit is the git commit hash.
	Commit string
	// Date is the build date.
	Date string
}

// globalLogger stores the initialized logger for use by subcommands.
// It is set during PersistentPreRunE and read through GetLogger.
var (
	globalLogger   zerolog.Logger //nolint:gochecknoglobals // CLI logger requires global access
	globalLoggerMu sync.RWMutex   //nolint:gochecknoglobals // Protects globalLogger
)

// GetLogger returns the initialized logger for use by subcommands.
//
// It MUST only be called after the root command's PersistentPreRunE has
// executed; before that it returns a zero-value logger that discards output.
func GetLogger() zerolog.Logger {
	globalLoggerMu.RLock()
	defer globalLoggerMu.RUnlock()
	return globalLogger
}

// rootOptions holds construction-time settings that are not user flags.
type rootOptions struct {
	// logWriter replaces console and file log output when set.
	logWriter io.Writer
}

// newRootCmd creates and returns the root command for the fsctl CLI.
func newRootCmd(flags *GlobalFlags, info BuildInfo, opts rootOptions) *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "fsctl",
		Short: "Sparse-file and exclusive-lock control for open files",
		Long: `fsctl applies operating-system file controls to files:

  • mark a file sparse (FSCTL_SET_SPARSE on Windows, a no-op elsewhere)
  • take an exclusive, non-blocking lock (LockFileEx or flock)
  • release that lock

It also opens storage directories the way long-running writers do,
locking the bitfield file so only one process writes at a time.`,
		Version: formatVersion(info),
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := BindGlobalFlags(v, cmd); err != nil {
				return fmt.Errorf("failed to bind flags: %w", err)
			}

			if err := validateGlobalFlags(cmd, flags); err != nil {
				return err
			}

			cfg, err := config.Load(cmd.Context())
			if err != nil {
				return err
			}

			session := uuid.NewString()
			var logger zerolog.Logger
			if opts.logWriter != nil {
				logger = InitLoggerWithWriter(flags.Verbose, flags.Quiet, opts.logWriter)
			} else {
				logger = InitLogger(flags.Verbose, flags.Quiet, cfg.Log)
			}
			logger = logger.With().Str("session", session).Logger()

			globalLoggerMu.Lock()
			globalLogger = logger
			globalLoggerMu.Unlock()

			ctx := logger.WithContext(cmd.Context())
			ctx = WithExecutionContext(ctx, &ExecutionContext{
				Config:       cfg,
				Session:      session,
				OutputFormat: flags.Output,
			})
			cmd.SetContext(ctx)

			logger.Debug().Str("command", cmd.CommandPath()).Msg("command started")
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	AddGlobalFlags(cmd, flags)

	AddSparseCommand(cmd)
	AddLockCommand(cmd)
	AddProbeCommand(cmd)
	AddStorageCommand(cmd)
	AddConfigCommand(cmd)

	return cmd
}

// formatVersion creates the version string from build info.
func formatVersion(info BuildInfo) string {
	if info.Version == "" {
		info.Version = "dev"
	}
	if info.Commit == "" {
		info.Commit = "none"
	}
	if info.Date == "" {
		info.Date = "unknown"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", info.Version, info.Commit, info.Date)
}

// Execute runs the root command with the provided context and build info.
// Errors are printed to stderr with a suggested action unless they were
// already written as JSON.
func Execute(ctx context.Context, info BuildInfo) error {
	flags := &GlobalFlags{}
	cmd := newRootCmd(flags, info, rootOptions{})
	err := cmd.ExecuteContext(ctx)
	if err != nil {
		printError(os.Stderr, err)
	}
	return err
}

// printError writes err in user-facing form.
func printError(w io.Writer, err error) {
	if stderrors.Is(err, errors.ErrJSONErrorOutput) {
		return
	}
	msg, action := errors.Actionable(err)
	_, _ = fmt.Fprintf(w, "Error: %s\n", msg)
	if msg != err.Error() {
		_, _ = fmt.Fprintf(w, "  %s\n", err.Error())
	}
	if action != "" {
		_, _ = fmt.Fprintf(w, "  %s\n", action)
	}
}
