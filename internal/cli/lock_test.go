package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fsctlerrors "github.com/mrz1836/fsctl/internal/errors"
	"github.com/mrz1836/fsctl/internal/signal"
)

func TestLockCmd_InvalidHold(t *testing.T) {
	tests := []struct {
		name string
		hold string
	}{
		{"not a duration", "--hold=soon"},
		{"negative", "--hold=-1s"},
		{"too long", "--hold=25h"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "lockfile")

			_, err := executeCmd(t, "lock", path, tt.hold)
			require.Error(t, err)
			require.ErrorIs(t, err, fsctlerrors.ErrInvalidArgument)
			assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))
			assert.NoFileExists(t, path, "the file is not created when the flag is invalid")
		})
	}
}

func TestFinishLock_JSONFailureIsMarked(t *testing.T) {
	var out bytes.Buffer
	results := []OpResult{newOpResult("f", "lock", fsctlerrors.ErrLockContended)}

	err := finishLock(&out, OutputJSON, results, fsctlerrors.ErrLockContended)
	require.ErrorIs(t, err, fsctlerrors.ErrJSONErrorOutput)
	require.ErrorIs(t, err, fsctlerrors.ErrLockContended)

	var decoded []OpResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.False(t, decoded[0].Success)
	assert.Equal(t, "contended", decoded[0].Reason)
}

func TestWaitForRelease(t *testing.T) {
	t.Run("hold elapses", func(t *testing.T) {
		h := signal.NewHandler(context.Background())
		defer h.Stop()

		assert.Equal(t, releaseElapsed, waitForRelease(h, 10*time.Millisecond))
	})

	t.Run("parent canceled without a hold", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		h := signal.NewHandler(ctx)
		defer h.Stop()

		cancel()
		assert.Equal(t, releaseCanceled, waitForRelease(h, 0))
	})

	t.Run("parent canceled before the hold elapses", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		h := signal.NewHandler(ctx)
		defer h.Stop()

		cancel()
		assert.Equal(t, releaseCanceled, waitForRelease(h, time.Hour))
	})
}
