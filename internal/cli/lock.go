package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mrz1836/fsctl/internal/constants"
	"github.com/mrz1836/fsctl/internal/errors"
	"github.com/mrz1836/fsctl/internal/fsctl"
	"github.com/mrz1836/fsctl/internal/signal"
)

// holdFromConfig is the --hold value used when the flag is given bare.
const holdFromConfig = "config"

type lockOptions struct {
	hold string
}

// AddLockCommand adds the lock command to the root command.
func AddLockCommand(root *cobra.Command) {
	root.AddCommand(newLockCmd())
}

func newLockCmd() *cobra.Command {
	opts := &lockOptions{}

	cmd := &cobra.Command{
		Use:   "lock <path>",
		Short: "Take an exclusive, non-blocking lock on a file",
		Long: `Take an exclusive lock on a file without waiting. The file is created
if it does not exist.

Without --hold the lock is released right away, which checks that it can be
taken. With --hold the lock is kept until the duration elapses or the
process is interrupted. A bare --hold uses lock.hold from the config,
where zero means until interrupted.`,
		Example: `  # Check that nobody else holds the lock
  fsctl lock data/bitfield

  # Hold the lock for 30 seconds
  fsctl lock data/bitfield --hold=30s`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLock(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.hold, "hold", "", "keep the lock for a duration, or until interrupted")
	cmd.Flags().Lookup("hold").NoOptDefVal = holdFromConfig

	return cmd
}

// holdDuration resolves the --hold flag. held reports whether the lock
// should be kept at all; a zero duration means until interrupted.
func holdDuration(cmd *cobra.Command, value string, ec *ExecutionContext) (d time.Duration, held bool, err error) {
	if !cmd.Flags().Changed("hold") {
		return 0, false, nil
	}
	if value == holdFromConfig {
		return ec.Config.Lock.Hold, true, nil
	}

	d, err = time.ParseDuration(value)
	if err != nil || d < 0 || d > constants.MaxHoldDuration {
		return 0, false, errors.NewExitCode2Error(fmt.Errorf("%w: --hold %q must be a duration between 0 and %s",
			errors.ErrInvalidArgument, value, constants.MaxHoldDuration))
	}
	return d, true, nil
}

func runLock(cmd *cobra.Command, path string, opts *lockOptions) error {
	ctx := cmd.Context()
	ec := GetExecutionContext(ctx)
	logger := GetLogger().With().Str("path", path).Logger()
	out := cmd.OutOrStdout()

	hold, held, err := holdDuration(cmd, opts.hold, ec)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, constants.FilePerm) //nolint:gosec // user-supplied path
	if err != nil {
		return errors.Wrap(err, "failed to open file")
	}
	defer func() { _ = f.Close() }()

	results := make([]OpResult, 0, 2)

	lockErr := fsctl.LockExclusive(f)
	results = append(results, newOpResult(path, "lock", lockErr))
	if lockErr != nil {
		logger.Warn().Err(lockErr).Str("reason", fsctl.ReasonCode(lockErr)).Msg("lock not acquired")
		return finishLock(out, ec.OutputFormat, results, lockErr)
	}
	logger.Info().Msg("lock acquired")

	if held {
		start := time.Now()
		h := signal.NewHandler(ctx)

		if ec.OutputFormat == OutputText {
			writeOpResults(out, results)
			results = results[:0]
			printHoldNotice(cmd.ErrOrStderr(), hold)
		}

		release := waitForRelease(h, hold)
		h.Stop()

		event := logger.Info().Dur("held", time.Since(start)).Str("release", release)
		if sig := h.Received(); sig != nil {
			event = event.Str("signal", sig.String())
		}
		event.Msg("releasing lock")
	}

	unlockErr := fsctl.Unlock(f)
	results = append(results, newOpResult(path, "unlock", unlockErr))
	if unlockErr != nil {
		logger.Error().Err(unlockErr).Msg("unlock failed")
	}

	return finishLock(out, ec.OutputFormat, results, unlockErr)
}

// Why a held lock was released.
const (
	releaseElapsed     = "elapsed"
	releaseInterrupted = "interrupted"
	releaseCanceled    = "canceled"
)

// waitForRelease blocks until hold elapses, a signal arrives, or the
// handler's parent context ends, and reports which happened. A zero hold
// waits without a timer.
func waitForRelease(h *signal.Handler, hold time.Duration) string {
	var elapsed <-chan time.Time
	if hold > 0 {
		timer := time.NewTimer(hold)
		defer timer.Stop()
		elapsed = timer.C
	}

	select {
	case <-h.Interrupted():
		return releaseInterrupted
	case <-h.Context().Done():
		// Interrupted closes before the context is canceled.
		select {
		case <-h.Interrupted():
			return releaseInterrupted
		default:
			return releaseCanceled
		}
	case <-elapsed:
		return releaseElapsed
	}
}

func printHoldNotice(w io.Writer, hold time.Duration) {
	if hold <= 0 {
		_, _ = fmt.Fprintln(w, "Holding lock. Press Ctrl+C to release.")
		return
	}
	_, _ = fmt.Fprintf(w, "Holding lock for %s. Press Ctrl+C to release early.\n", hold)
}

// finishLock writes results and returns opErr. JSON output is always an array.
func finishLock(w io.Writer, format string, results []OpResult, opErr error) error {
	if format == OutputJSON {
		if err := encodeJSONIndented(w, results); err != nil {
			return err
		}
		if opErr != nil {
			return fmt.Errorf("%w: %w", errors.ErrJSONErrorOutput, opErr)
		}
		return nil
	}

	writeOpResults(w, results)
	return opErr
}

func writeOpResults(w io.Writer, results []OpResult) {
	for _, r := range results {
		_ = writeOpResult(w, OutputText, r)
	}
}
