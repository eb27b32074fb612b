package helpers

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Severity glyphs used for human-readable status lines.
const (
	GlyphSuccess = "✔"
	GlyphInfo    = "ℹ"
	GlyphWarning = "⚠"
	GlyphError   = "✖"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// StatusWriter prints severity-prefixed status lines. Styling is disabled
// when the destination is not a terminal.
type StatusWriter struct {
	out   io.Writer
	plain bool
}

// NewStatusWriter creates a status writer targeting out. Passing nil targets
// stdout with tty detection.
func NewStatusWriter(out io.Writer) *StatusWriter {
	if out == nil {
		return &StatusWriter{out: os.Stdout, plain: !isatty.IsTerminal(os.Stdout.Fd())}
	}
	f, isFile := out.(*os.File)
	return &StatusWriter{out: out, plain: !isFile || !isatty.IsTerminal(f.Fd())}
}

func (s *StatusWriter) print(style lipgloss.Style, glyph, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if s.plain {
		fmt.Fprintf(s.out, "%s %s\n", glyph, msg)
		return
	}
	fmt.Fprintf(s.out, "%s %s\n", style.Render(glyph), msg)
}

// Success prints a success status line.
func (s *StatusWriter) Success(format string, args ...any) {
	s.print(successStyle, GlyphSuccess, format, args...)
}

// Info prints an informational status line.
func (s *StatusWriter) Info(format string, args ...any) {
	s.print(infoStyle, GlyphInfo, format, args...)
}

// Warning prints a warning status line.
func (s *StatusWriter) Warning(format string, args ...any) {
	s.print(warningStyle, GlyphWarning, format, args...)
}

// Error prints an error status line.
func (s *StatusWriter) Error(format string, args ...any) {
	s.print(errorStyle, GlyphError, format, args...)
}
