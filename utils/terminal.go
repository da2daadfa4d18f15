package utils

import (
	"os"

	"golang.org/x/term"
)

// RunningOnTerminal checks whether stderr, where logs and progress go, is a terminal.
func RunningOnTerminal() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}
