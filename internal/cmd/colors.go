package cmd

import (
	"os"

	"github.com/muesli/termenv"
)

// ANSI color codes for plain (non-lipgloss) terminal output.
// Disabled in init() when the terminal does not support them.
var (
	colorYellow = "\033[0;33m"
	colorCyan   = "\033[0;36m"
	colorDim    = "\033[2m"
	colorBold   = "\033[1m"
	colorReset  = "\033[0m"
)

func init() {
	if shouldDisableColors() {
		colorYellow = ""
		colorCyan = ""
		colorDim = ""
		colorBold = ""
		colorReset = ""
	}
}

func shouldDisableColors() bool {
	// Honor NO_COLOR (https://no-color.org/) and dumb terminals.
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return true
	}
	return termenv.EnvColorProfile() == termenv.Ascii
}
