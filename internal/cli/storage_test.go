package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fsctlerrors "github.com/mrz1836/fsctl/internal/errors"
)

func TestStorageOpenCmd_WithoutLocking(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "feed")

	out, err := executeCmd(t, "-o", "json", "storage", "open", dir,
		"tree", "bitfield", "data", "--lock-bitfield=false", "--size", "4096")
	require.NoError(t, err)

	var results []StorageFileResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 3)

	roles := map[string]string{}
	for _, r := range results {
		assert.True(t, r.Opened, r.Name)
		assert.False(t, r.Locked, r.Name)
		assert.Equal(t, int64(4096), r.Size, r.Name)
		roles[r.Name] = r.Role
	}
	assert.Equal(t, map[string]string{"tree": "tree", "bitfield": "bitfield", "data": "data"}, roles)

	for _, name := range []string{"tree", "bitfield", "data"} {
		assert.FileExists(t, filepath.Join(dir, name))
	}
}

func TestStorageOpenCmd_InvalidName(t *testing.T) {
	dir := t.TempDir()

	out, err := executeCmd(t, "storage", "open", dir, "../escape", "--lock-bitfield=false")
	require.ErrorIs(t, err, fsctlerrors.ErrInvalidStorageName)
	assert.Equal(t, ExitError, ExitCodeForError(err))
	assert.Contains(t, out, "../escape")
	assert.NoFileExists(t, filepath.Join(filepath.Dir(dir), "escape"))
}

func TestStorageOpenCmd_ReadOnlyMissing(t *testing.T) {
	dir := t.TempDir()

	out, err := executeCmd(t, "-o", "json", "storage", "open", dir, "data", "--read-only")
	require.ErrorIs(t, err, os.ErrNotExist)
	require.ErrorIs(t, err, fsctlerrors.ErrJSONErrorOutput)

	var results []StorageFileResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)
	assert.False(t, results[0].Opened)
	assert.NotEmpty(t, results[0].Error)
}

func TestStorageOpenCmd_NegativeSize(t *testing.T) {
	_, err := executeCmd(t, "storage", "open", t.TempDir(), "data", "--size", "-1")
	require.ErrorIs(t, err, fsctlerrors.ErrInvalidArgument)
	assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))
}

func TestStorageOpenCmd_RequiresName(t *testing.T) {
	_, err := executeCmd(t, "storage", "open", t.TempDir())
	require.Error(t, err)
	assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))
}
