package cli

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fsctlerrors "github.com/mrz1836/fsctl/internal/errors"
	"github.com/mrz1836/fsctl/internal/fsctl"
)

func TestProbeCmd_MissingFileFails(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")

	out, err := executeCmd(t, "-o", "json", "probe", missing)
	require.ErrorIs(t, err, fsctlerrors.ErrProbeFailed)
	require.ErrorIs(t, err, fsctlerrors.ErrJSONErrorOutput)
	assert.Equal(t, ExitError, ExitCodeForError(err))

	var results []ProbeResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)
	assert.Equal(t, missing, results[0].Path)
	assert.False(t, results[0].Available)
	assert.Equal(t, fsctl.FlagFailure, results[0].Flag)
	assert.Equal(t, fsctl.ReasonOS, results[0].Reason)
	assert.NotEmpty(t, results[0].Error)
}

func TestProbeCmd_RequiresPath(t *testing.T) {
	_, err := executeCmd(t, "probe")
	require.Error(t, err)
	assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))
}

func TestProbePaths_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := probePaths(ctx, []string{"a", "b"})
	require.ErrorIs(t, err, context.Canceled)
}

func TestProbeResult_Failed(t *testing.T) {
	tests := []struct {
		name string
		r    ProbeResult
		want bool
	}{
		{"available", ProbeResult{Available: true, Flag: fsctl.FlagSuccess}, false},
		{"locked elsewhere", ProbeResult{Reason: fsctl.ReasonContended}, false},
		{"open failed", ProbeResult{Reason: fsctl.ReasonOS}, true},
		{"unsupported", ProbeResult{Reason: fsctl.ReasonUnsupported}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.r.failed())
		})
	}
}
