// Package display renders the banner and the human-readable plan listing.
package display

import (
	"fmt"
	"os"

	"github.com/Fauzanjr07/File-Renamer/internal/term"
)

// PrintBanner prints the ASCII art banner; uses Magenta if colors are enabled.
func PrintBanner() {
	if term.Magenta != "" {
		fmt.Fprint(os.Stderr, term.Magenta)
	}
	fmt.Fprint(os.Stderr, ` ____
|  _ \ ___ _ __   __ _ _ __ ___   ___ _ __
| |_) / _ \ '_ \ / _`+"`"+` | '_ ` + "`" + ` _ \ / _ \ '__|
|  _ <  __/ | | | (_| | | | | | |  __/ |
|_| \_\___|_| |_|\__,_|_| |_| |_|\___|_|
`)
	if term.Magenta != "" {
		fmt.Fprintln(os.Stderr, term.NC)
	}
}
