package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// filePerm matches the permission fsctl uses for files it creates.
const filePerm = 0o600

// CreateFile creates name inside a fresh temp directory, opens it read-write,
// and registers Close with t.Cleanup.
func CreateFile(t testing.TB, name string) *os.File {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, filePerm) // #nosec G304 -- test code using safe temp dir
	require.NoError(t, err, "create %s", path)

	t.Cleanup(func() { _ = f.Close() })
	return f
}

// Reopen opens a second, independent descriptor on the same file as f.
// The descriptors do not share locks.
func Reopen(t testing.TB, f *os.File) *os.File {
	t.Helper()

	g, err := os.OpenFile(f.Name(), os.O_RDWR, filePerm) // #nosec G304 -- path from CreateFile
	require.NoError(t, err, "reopen %s", f.Name())

	t.Cleanup(func() { _ = g.Close() })
	return g
}

// ClosedFile returns a file that has already been closed. Its Fd no longer
// refers to an open file.
func ClosedFile(t testing.TB) *os.File {
	t.Helper()

	f := CreateFile(t, "closed")
	require.NoError(t, f.Close())
	return f
}

// MockController is a fsctl.Controller whose results are set by the test.
// It records the descriptors it was called with.
type MockController struct {
	SparseErr error
	LockErr   error
	UnlockErr error

	SparseCalls []uintptr
	LockCalls   []uintptr
	UnlockCalls []uintptr
}

// Sparse records fd and returns SparseErr.
func (m *MockController) Sparse(fd uintptr) error {
	m.SparseCalls = append(m.SparseCalls, fd)
	return m.SparseErr
}

// LockExclusive records fd and returns LockErr.
func (m *MockController) LockExclusive(fd uintptr) error {
	m.LockCalls = append(m.LockCalls, fd)
	return m.LockErr
}

// Unlock records fd and returns UnlockErr.
func (m *MockController) Unlock(fd uintptr) error {
	m.UnlockCalls = append(m.UnlockCalls, fd)
	return m.UnlockErr
}
