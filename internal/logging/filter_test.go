package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errWriteFailed = errors.New("write failed")

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errWriteFailed }

type closeRecorder struct {
	bytes.Buffer
	closed bool
}

func (c *closeRecorder) Close() error {
	c.closed = true
	return nil
}

func TestPathMasker_Mask(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		home     string
		input    string
		expected string
	}{
		{"unix path", "/home/alice", "open /home/alice/data/bitfield", "open ~/data/bitfield"},
		{"trailing slash on home", "/home/alice/", "/home/alice/x", "~/x"},
		{"multiple occurrences", "/Users/bob", "/Users/bob/a -> /Users/bob/b", "~/a -> ~/b"},
		{"no match", "/home/alice", "/var/lib/data", "/var/lib/data"},
		{"windows path", `C:\Users\carol`, `C:\Users\carol\store\tree`, `~\store\tree`},
		{"windows path json escaped", `C:\Users\carol`, `{"path":"C:\\Users\\carol\\tree"}`, `{"path":"~\\tree"}`},
		{"empty home", "", "/home/alice/x", "/home/alice/x"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, NewPathMasker(tc.home).Mask(tc.input))
		})
	}
}

func TestPathMasker_Nil(t *testing.T) {
	t.Parallel()

	var m *PathMasker
	assert.Equal(t, "/x", m.Mask("/x"))
}

func TestFilteringWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := NewFilteringWriter(&buf, NewPathMasker("/home/alice"))

	input := []byte("locked /home/alice/store/bitfield\n")
	n, err := w.Write(input)
	require.NoError(t, err)
	assert.Equal(t, len(input), n)
	assert.Equal(t, "locked ~/store/bitfield\n", buf.String())
}

func TestFilteringWriter_Error(t *testing.T) {
	t.Parallel()

	w := NewFilteringWriter(failingWriter{}, NewPathMasker("/home/alice"))
	n, err := w.Write([]byte("x"))
	require.ErrorIs(t, err, errWriteFailed)
	assert.Equal(t, 0, n)
}

func TestFilteringWriter_WithZerolog(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := zerolog.New(NewFilteringWriter(&buf, NewPathMasker("/home/alice")))
	logger.Info().Str("path", "/home/alice/store/tree").Msg("opened")

	assert.Contains(t, buf.String(), `"path":"~/store/tree"`)
	assert.NotContains(t, buf.String(), "/home/alice")
}

func TestFilteringWriteCloser(t *testing.T) {
	t.Parallel()

	rec := &closeRecorder{}
	wc := NewFilteringWriteCloser(rec, NewPathMasker("/root"))

	_, err := wc.Write([]byte("/root/a"))
	require.NoError(t, err)
	require.NoError(t, wc.Close())

	assert.Equal(t, "~/a", rec.String())
	assert.True(t, rec.closed)
}
