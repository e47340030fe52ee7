// Package logging provides zerolog output helpers. Log lines routinely carry
// file paths, so output written through this package has the user's home
// directory replaced by "~" before it reaches the console or the log file.
package logging

import (
	"io"
	"os"
	"strings"
)

// HomePlaceholder replaces the home directory in log output.
const HomePlaceholder = "~"

// PathMasker replaces a home directory prefix in text.
type PathMasker struct {
	replacer *strings.Replacer
}

// NewPathMasker creates a masker for home. An empty home produces a masker
// that returns its input unchanged.
func NewPathMasker(home string) *PathMasker {
	home = strings.TrimRight(home, `/\`)
	if home == "" {
		return &PathMasker{}
	}

	pairs := []string{home, HomePlaceholder}
	// JSON output escapes backslashes, so Windows paths appear doubled.
	if escaped := strings.ReplaceAll(home, `\`, `\\`); escaped != home {
		pairs = append([]string{escaped, HomePlaceholder}, pairs...)
	}
	return &PathMasker{replacer: strings.NewReplacer(pairs...)}
}

// NewHomeMasker creates a masker for the current user's home directory.
func NewHomeMasker() *PathMasker {
	home, err := os.UserHomeDir()
	if err != nil {
		return NewPathMasker("")
	}
	return NewPathMasker(home)
}

// Mask returns s with every occurrence of the home directory replaced.
func (m *PathMasker) Mask(s string) string {
	if m == nil || m.replacer == nil {
		return s
	}
	return m.replacer.Replace(s)
}

// FilteringWriter wraps an io.Writer and masks the home directory in
// everything written through it.
type FilteringWriter struct {
	w      io.Writer
	masker *PathMasker
}

// NewFilteringWriter creates a FilteringWriter around w.
func NewFilteringWriter(w io.Writer, masker *PathMasker) *FilteringWriter {
	return &FilteringWriter{w: w, masker: masker}
}

// Write implements io.Writer. It reports len(p) on success so callers do
// not see a short write when masking shortens the output.
func (fw *FilteringWriter) Write(p []byte) (int, error) {
	if _, err := io.WriteString(fw.w, fw.masker.Mask(string(p))); err != nil {
		return 0, err
	}
	return len(p), nil
}

// FilteringWriteCloser is a FilteringWriter whose Close closes the wrapped writer.
type FilteringWriteCloser struct {
	*FilteringWriter
	closer io.Closer
}

// NewFilteringWriteCloser wraps wc so that writes are masked.
func NewFilteringWriteCloser(wc io.WriteCloser, masker *PathMasker) *FilteringWriteCloser {
	return &FilteringWriteCloser{
		FilteringWriter: NewFilteringWriter(wc, masker),
		closer:          wc,
	}
}

// Close closes the wrapped writer.
func (fwc *FilteringWriteCloser) Close() error {
	return fwc.closer.Close()
}
