//go:build windows || (unix && !aix && !solaris)

package storage_test

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/fsctl/internal/errors"
	"github.com/mrz1836/fsctl/internal/storage"
)

func TestOpen_BitfieldIsExclusive(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()
	first := storage.New(afero.NewOsFs(), dir)
	second := storage.New(afero.NewOsFs(), dir)

	f1, err := first.Open(ctx, "bitfield", storage.OpenOptions{})
	require.NoError(t, err)
	assert.True(t, f1.Locked())

	_, err = second.Open(ctx, "bitfield", storage.OpenOptions{})
	require.ErrorIs(t, err, errors.ErrStorageLocked)
	require.ErrorIs(t, err, errors.ErrLockContended)

	// Other files in the same directory stay available.
	tree, err := second.Open(ctx, "tree", storage.OpenOptions{})
	require.NoError(t, err)
	require.NoError(t, tree.Close())

	require.NoError(t, f1.Close())

	f2, err := second.Open(ctx, "bitfield", storage.OpenOptions{})
	require.NoError(t, err)
	assert.True(t, f2.Locked())
	require.NoError(t, f2.Close())
}
