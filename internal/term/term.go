// Package term provides ANSI color state and terminal detection.
//
// Colors are package-level variables so display code can concatenate them
// directly. [Configure] sets them once during startup; when colors are
// disabled the variables are empty strings, making string concatenation a
// no-op.
package term

import (
	"os"
	"strings"

	"github.com/Fauzanjr07/File-Renamer/internal/config"
)

// ANSI color codes. Empty when colors are disabled.
var (
	Magenta = ""
	NC      = "" // Reset sequence.
)

// Configure resolves the color mode and sets the package-level ANSI
// variables. Call once during startup (from [logging.New]).
func Configure(mode config.ColorMode) {
	if resolve(mode) {
		Magenta = "\033[1;95m"
		NC = "\033[0m"
	} else {
		Magenta, NC = "", ""
	}
}

// Enabled reports whether ANSI colors are currently active.
func Enabled() bool { return NC != "" }

// resolve determines whether colors should be enabled based on the configured
// mode, TTY detection, and the NO_COLOR env var (https://no-color.org).
func resolve(mode config.ColorMode) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default: // ColorAuto
		return IsTerminal(os.Stderr) &&
			os.Getenv("NO_COLOR") == "" &&
			strings.ToLower(os.Getenv("TERM")) != "dumb"
	}
}

// IsTerminal reports whether f is attached to a TTY (character device).
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
