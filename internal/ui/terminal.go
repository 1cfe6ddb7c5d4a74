package ui

import (
	"os"

	"golang.org/x/term"
)

// IsTerminal returns true if the file descriptor is a terminal.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
