package ui

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// ANSI color and style constants for CLI output
const (
	ColorReset = "\033[0m"
	ColorBold  = "\033[1m"
	ColorDim   = "\033[2m"

	ColorCyan   = "\033[36m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorWhite  = "\033[97m"
	ColorRed    = "\033[31m"
)

// Enabled reports whether the package-level helpers style their text. They are
// used for stderr, so it is off when NO_COLOR is set or stderr is not a terminal.
var Enabled = colorFor(os.Stderr)

// IsTerminal reports whether f is an interactive terminal.
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func colorFor(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && os.Getenv("NO_COLOR") == "" && IsTerminal(f)
}

// Styler applies styles for one output stream.
type Styler struct {
	enabled bool
}

// For returns a Styler that colours only when w is a terminal and NO_COLOR is unset.
func For(w io.Writer) Styler {
	return Styler{enabled: colorFor(w)}
}

// Colored reports whether s emits ANSI codes.
func (s Styler) Colored() bool {
	return s.enabled
}

func (s Styler) style(code, text string) string {
	if !s.enabled {
		return text
	}
	return code + text + ColorReset
}

func (s Styler) Bold(text string) string    { return s.style(ColorBold, text) }
func (s Styler) Dim(text string) string     { return s.style(ColorDim, text) }
func (s Styler) Success(text string) string { return s.style(ColorGreen, text) }
func (s Styler) Info(text string) string    { return s.style(ColorDim+ColorYellow, text) }
func (s Styler) Error(text string) string   { return s.style(ColorRed, text) }

func stderr() Styler {
	return Styler{enabled: Enabled}
}

func Bold(s string) string {
	return stderr().Bold(s)
}

func Dim(s string) string {
	return stderr().Dim(s)
}

func Success(s string) string {
	return stderr().Success(s)
}

func Info(s string) string {
	return stderr().Info(s)
}

func Error(s string) string {
	return stderr().Error(s)
}
