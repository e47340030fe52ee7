package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/mrz1836/fsctl/internal/errors"
	"github.com/mrz1836/fsctl/internal/fsctl"
)

// encodeJSONIndented writes v to w as two-space indented JSON.
func encodeJSONIndented(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// outputStyles holds the lipgloss styles used for text output.
type outputStyles struct {
	ok     lipgloss.Style
	fail   lipgloss.Style
	label  lipgloss.Style
	dim    lipgloss.Style
	header lipgloss.Style
}

// newOutputStyles creates styles rendered for w. Colors are dropped when w
// is not a terminal.
func newOutputStyles(w io.Writer) *outputStyles {
	r := lipgloss.NewRenderer(w)
	return &outputStyles{
		ok:     r.NewStyle().Foreground(lipgloss.Color("#00D787")).Bold(true),
		fail:   r.NewStyle().Foreground(lipgloss.Color("#FF5F5F")).Bold(true),
		label:  r.NewStyle().Foreground(lipgloss.Color("#00D7FF")),
		dim:    r.NewStyle().Foreground(lipgloss.Color("#808080")),
		header: r.NewStyle().Bold(true).Underline(true),
	}
}

// status renders a check or cross followed by msg.
func (s *outputStyles) status(success bool, msg string) string {
	if success {
		return s.ok.Render("✓") + " " + msg
	}
	return s.fail.Render("✗") + " " + msg
}

// OpResult is the outcome of a single file-control request.
type OpResult struct {
	Path      string `json:"path"`
	Operation string `json:"operation"`
	Success   bool   `json:"success"`
	Flag      uint32 `json:"flag"`
	Reason    string `json:"reason,omitempty"`
	Error     string `json:"error,omitempty"`
}

// writeOpResult writes r in the requested format.
func writeOpResult(w io.Writer, format string, r OpResult) error {
	if format == OutputJSON {
		return encodeJSONIndented(w, r)
	}

	s := newOutputStyles(w)
	line := fmt.Sprintf("%s %s", r.Operation, r.Path)
	if r.Reason != "" {
		line += " " + s.dim.Render("("+r.Reason+")")
	}
	_, err := fmt.Fprintln(w, s.status(r.Success, line))
	return err
}

// finishOp writes r and returns opErr. In JSON mode a failure is marked as
// already reported so Execute does not print it again.
func finishOp(w io.Writer, format string, r OpResult, opErr error) error {
	if err := writeOpResult(w, format, r); err != nil {
		return err
	}
	if opErr != nil && format == OutputJSON {
		return fmt.Errorf("%w: %w", errors.ErrJSONErrorOutput, opErr)
	}
	return opErr
}

// newOpResult builds the result of operation on path from its error.
func newOpResult(path, operation string, err error) OpResult {
	r := OpResult{
		Path:      path,
		Operation: operation,
		Success:   err == nil,
		Flag:      fsctl.Flag(err),
		Reason:    fsctl.ReasonCode(err),
	}
	if err != nil {
		r.Error = err.Error()
	}
	return r
}
