package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mrz1836/fsctl/internal/errors"
	"github.com/mrz1836/fsctl/internal/fsctl"
)

// ProbeResult reports whether a file's exclusive lock is free.
type ProbeResult struct {
	Path      string `json:"path"`
	Available bool   `json:"available"`
	Flag      uint32 `json:"flag"`
	Reason    string `json:"reason,omitempty"`
	Error     string `json:"error,omitempty"`
}

// failed reports whether the probe itself went wrong, as opposed to finding
// the lock taken.
func (r ProbeResult) failed() bool {
	return !r.Available && r.Reason != fsctl.ReasonContended
}

// AddProbeCommand adds the probe command to the root command.
func AddProbeCommand(root *cobra.Command) {
	root.AddCommand(newProbeCmd())
}

func newProbeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "probe <path>...",
		Short: "Report which files can be locked right now",
		Long: `Probe each existing file by taking its exclusive lock and releasing it
immediately. Files locked by another process are reported as unavailable.
Paths are probed concurrently.

The exit code is 1 if any file could not be probed. Files that are merely
locked do not affect the exit code.`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProbe(cmd, args)
		},
	}
}

func runProbe(cmd *cobra.Command, paths []string) error {
	ctx := cmd.Context()
	ec := GetExecutionContext(ctx)
	logger := GetLogger()

	results, err := probePaths(ctx, paths)
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if r.failed() {
			failed++
		}
	}
	logger.Debug().Int("paths", len(paths)).Int("failed", failed).Msg("probe complete")

	out := cmd.OutOrStdout()
	if ec.OutputFormat == OutputJSON {
		if err := encodeJSONIndented(out, results); err != nil {
			return err
		}
	} else {
		writeProbeTable(out, results)
	}

	if failed == 0 {
		return nil
	}
	probeErr := fmt.Errorf("%w: %d of %d paths", errors.ErrProbeFailed, failed, len(paths))
	if ec.OutputFormat == OutputJSON {
		return fmt.Errorf("%w: %w", errors.ErrJSONErrorOutput, probeErr)
	}
	return probeErr
}

// probePaths probes every path with at most NumCPU files open at once.
// Results keep the order of paths.
func probePaths(ctx context.Context, paths []string) ([]ProbeResult, error) {
	results := make([]ProbeResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = probePath(path)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// probePath takes and releases the exclusive lock on path.
func probePath(path string) ProbeResult {
	r := ProbeResult{Path: path}

	f, err := os.OpenFile(path, os.O_RDWR, 0) //nolint:gosec // user-supplied path
	if err != nil {
		r.Reason = fsctl.ReasonOS
		r.Error = err.Error()
		return r
	}
	defer func() { _ = f.Close() }()

	lockErr := fsctl.LockExclusive(f)
	r.Flag = fsctl.Flag(lockErr)
	r.Reason = fsctl.ReasonCode(lockErr)
	if lockErr != nil {
		r.Error = lockErr.Error()
		return r
	}

	if err := fsctl.Unlock(f); err != nil {
		r.Reason = fsctl.ReasonCode(err)
		r.Error = err.Error()
		return r
	}

	r.Available = true
	return r
}

func writeProbeTable(w io.Writer, results []ProbeResult) {
	s := newOutputStyles(w)
	for _, r := range results {
		switch {
		case r.Available:
			_, _ = fmt.Fprintln(w, s.status(true, r.Path+" "+s.dim.Render("available")))
		case r.failed():
			_, _ = fmt.Fprintln(w, s.status(false, r.Path+" "+s.dim.Render(r.Error)))
		default:
			_, _ = fmt.Fprintln(w, s.status(false, r.Path+" "+s.dim.Render("locked")))
		}
	}
}
