//go:build windows || (unix && !aix && !solaris)

package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/fsctl/internal/constants"
	fsctlerrors "github.com/mrz1836/fsctl/internal/errors"
	"github.com/mrz1836/fsctl/internal/fsctl"
)

func TestStorageOpenCmd_LocksBitfield(t *testing.T) {
	dir := t.TempDir()

	out, err := executeCmd(t, "-o", "json", "storage", "open", dir, "tree", "bitfield")
	require.NoError(t, err)

	var results []StorageFileResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 2)
	assert.False(t, results[0].Locked, "tree is never locked")
	assert.True(t, results[1].Locked, "bitfield is locked by default")
}

func TestStorageOpenCmd_BitfieldHeldElsewhere(t *testing.T) {
	dir := t.TempDir()
	holder, err := os.OpenFile(filepath.Join(dir, constants.BitfieldFileName), os.O_RDWR|os.O_CREATE, constants.FilePerm)
	require.NoError(t, err)
	t.Cleanup(func() { _ = holder.Close() })
	require.NoError(t, fsctl.LockExclusive(holder))

	out, err := executeCmd(t, "storage", "open", dir, "tree", "bitfield")
	require.ErrorIs(t, err, fsctlerrors.ErrStorageLocked)
	require.ErrorIs(t, err, fsctlerrors.ErrLockContended)
	assert.Contains(t, out, "tree")
	assert.Contains(t, out, "bitfield")
}
