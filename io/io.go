// Package capoio centralizes terminal IO for capo applications: the
// reader and writers actions use, TTY detection and the color policy.
package capoio

import (
	stdio "io"
	"os"
	"strconv"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// IOManager centralizes IO and terminal capabilities
type IOManager struct {
	in  stdio.Reader
	out stdio.Writer
	err stdio.Writer

	forceColor bool
	noColor    bool
}

// New returns a manager bound to process stdio
func New() *IOManager {
	return &IOManager{in: os.Stdin, out: os.Stdout, err: os.Stderr}
}

// WithIn sets the input reader used by the manager and returns the manager for chaining.
func (m *IOManager) WithIn(r stdio.Reader) *IOManager { m.in = r; return m }

// WithOut sets the standard output writer and returns the manager for chaining.
func (m *IOManager) WithOut(w stdio.Writer) *IOManager { m.out = w; return m }

// WithErr sets the standard error writer and returns the manager for chaining.
func (m *IOManager) WithErr(w stdio.Writer) *IOManager { m.err = w; return m }

// ForceColor forces color output on, regardless of environment.
func (m *IOManager) ForceColor() *IOManager { m.forceColor = true; m.noColor = false; return m }

// NoColor disables color output, regardless of environment.
func (m *IOManager) NoColor() *IOManager { m.noColor = true; m.forceColor = false; return m }

// ColorAuto uses environment heuristics to determine color support.
func (m *IOManager) ColorAuto() *IOManager { m.noColor = false; m.forceColor = false; return m }

// In returns the configured input reader.
func (m *IOManager) In() stdio.Reader { return m.in }

// Out returns the configured standard output writer.
func (m *IOManager) Out() stdio.Writer { return m.out }

// Err returns the configured standard error writer.
func (m *IOManager) Err() stdio.Writer { return m.err }

// IsTTY reports whether the output writer is a terminal.
func (m *IOManager) IsTTY() bool {
	_, ok := terminalFd(m.out)
	return ok
}

// IsInteractive reports whether input comes from a terminal outside CI.
func (m *IOManager) IsInteractive() bool {
	_, ok := terminalFd(m.in)
	return ok && os.Getenv("CI") == ""
}

// Width returns the terminal width, then $COLUMNS, then 80.
func (m *IOManager) Width() int {
	if fd, ok := terminalFd(m.out); ok {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			return w
		}
	}
	if w, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && w > 0 {
		return w
	}
	return 80
}

// SupportsColor applies NO_COLOR and FORCE_COLOR, then requires a
// terminal with a usable TERM.
func (m *IOManager) SupportsColor() bool {
	if m.noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	if m.forceColor || os.Getenv("FORCE_COLOR") != "" {
		return true
	}
	if !m.IsTTY() {
		return false
	}
	t := os.Getenv("TERM")
	return t != "" && t != "dumb"
}

// Style returns a color honoring the manager's color policy.
func (m *IOManager) Style(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if m.SupportsColor() {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

// Colorize renders s with attrs, or returns s unchanged without color.
func (m *IOManager) Colorize(s string, attrs ...color.Attribute) string {
	return m.Style(attrs...).Sprint(s)
}

// Bold returns s in bold when color is supported; otherwise s unchanged.
func (m *IOManager) Bold(s string) string { return m.Colorize(s, color.Bold) }

// Faint returns s in faint intensity when supported; otherwise s unchanged.
func (m *IOManager) Faint(s string) string { return m.Colorize(s, color.Faint) }

func terminalFd(v any) (int, bool) {
	f, ok := v.(*os.File)
	if !ok {
		return 0, false
	}
	fd := int(f.Fd())
	return fd, term.IsTerminal(fd)
}
