// Package diag is the diagnostic sink external collaborator from
// SPEC_FULL.md §6/§7: every engine failure is fatal, reported exactly once,
// and terminates the process. It mirrors lacc's error()/exit(1) idiom
// (original_source/.../macro.c calls error(...); exit(1); at every fatal
// site) and styles its severities the way MadAppGang/dingo colors CLI
// diagnostics, via charmbracelet/lipgloss.
package diag

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// Exit is the process-exit hook; tests replace it to observe a Fatalf call
// without killing the test binary.
type Exit func(code int)

// Sink is a fatal, single-shot diagnostic reporter.
type Sink struct {
	w    io.Writer
	exit Exit
}

// New creates a Sink writing to w (typically os.Stderr) that terminates the
// process via os.Exit on Fatalf.
func New(w io.Writer) *Sink {
	return &Sink{w: w, exit: os.Exit}
}

// NewWithExit creates a Sink with a caller-supplied exit hook, used by tests
// that need to assert a fatal diagnostic fired without ending the test
// binary.
func NewWithExit(w io.Writer, exit Exit) *Sink {
	return &Sink{w: w, exit: exit}
}

// Fatalf prints a formatted error and terminates the process. It never
// returns — the engine never attempts to continue after calling it.
func (s *Sink) Fatalf(format string, args ...any) {
	fmt.Fprintln(s.w, errorStyle.Render("error:")+" "+fmt.Sprintf(format, args...))
	s.exit(1)
}

// Warnf prints a non-fatal warning (used by the directive layer for
// #warning, which the distilled spec's §4 leaves to the directive
// collaborator rather than the engine itself).
func (s *Sink) Warnf(format string, args ...any) {
	fmt.Fprintln(s.w, warnStyle.Render("warning:")+" "+fmt.Sprintf(format, args...))
}
