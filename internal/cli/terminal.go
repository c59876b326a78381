package cli

import (
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// Terminal describes the stream the tree is printed to.
type Terminal interface {
	// Width returns the column count, or false when it is unknown.
	Width() (int, bool)
	IsTerminal() bool
}

type fileTerminal struct {
	f *os.File
}

// NewTerminal returns the Terminal backed by f, usually os.Stdout.
func NewTerminal(f *os.File) Terminal {
	return fileTerminal{f: f}
}

func (t fileTerminal) Width() (int, bool) {
	if w, _, err := term.GetSize(int(t.f.Fd())); err == nil && w > 0 {
		return w, true
	}
	if cols, err := strconv.Atoi(strings.TrimSpace(os.Getenv("COLUMNS"))); err == nil && cols > 0 {
		return cols, true
	}
	return 0, false
}

func (t fileTerminal) IsTerminal() bool {
	return term.IsTerminal(int(t.f.Fd()))
}

// shouldUseColor resolves the --color mode. "auto" respects NO_COLOR,
// CLICOLOR and CLICOLOR_FORCE and otherwise colors only terminals.
func shouldUseColor(mode string, t Terminal) bool {
	switch mode {
	case colorAlways:
		return true
	case colorNever:
		return false
	}

	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return false
	}
	if os.Getenv("CLICOLOR") == "0" {
		return false
	}
	if _, exists := os.LookupEnv("CLICOLOR_FORCE"); exists {
		return true
	}
	return t.IsTerminal()
}
