package cli

import (
	"bytes"
	"context"
	"io"
	"sync"
	"testing"

	"github.com/mrz1836/fsctl/internal/constants"
)

// testBuildInfo is the build info every test root command reports.
//
//nolint:gochecknoglobals // Shared test fixture
var testBuildInfo = BuildInfo{Version: "1.2.3", Commit: "abc1234", Date: "2026-01-02"}

// lockedBuffer is a bytes.Buffer safe to read while a command writes to it
// from another goroutine.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// executeCmd runs the root command with args against an isolated fsctl home
// and returns everything written to stdout and stderr.
func executeCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	isolateHome(t)

	out := &lockedBuffer{}
	err := executeCmdContext(t, context.Background(), out, args...)
	return out.String(), err
}

// executeCmdContext runs the root command with ctx, writing stdout and
// stderr to out. Call isolateHome first; this may then run on another
// goroutine.
func executeCmdContext(t *testing.T, ctx context.Context, out io.Writer, args ...string) error {
	t.Helper()

	flags := &GlobalFlags{}
	cmd := newRootCmd(flags, testBuildInfo, rootOptions{logWriter: io.Discard})
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)

	return cmd.ExecuteContext(ctx)
}

// isolateHome points FSCTL_HOME at a fresh temp directory.
func isolateHome(t *testing.T) {
	t.Helper()
	t.Setenv(constants.HomeEnvVar, t.TempDir())
}
