// Package config holds runtime configuration: defaults, validation, and the
// TOML/env layering applied beneath CLI flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// --- Enum types for validated string fields ---

// SortMode selects the scan ordering.
type SortMode string

const (
	SortName  SortMode = "name"  // Natural sort of filenames (default).
	SortMtime SortMode = "mtime" // Ascending modification time, name tiebreak.
	SortExif  SortMode = "exif"  // Ascending EXIF capture time, mtime fallback.
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stderr is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// DefaultExts is the extension filter applied when --exts is not given.
const DefaultExts = "jpg,jpeg,png,gif,webp,bmp"

// Config holds all runtime settings for one invocation. It is populated by
// [DefaultConfig], layered by the config file and environment, and finally
// overridden by CLI flags. It is not mutated after validation.
type Config struct {
	// Target directory (resolved to an absolute path by [ResolveDir]).
	Dir string

	// Sequential naming scheme.
	Prefix    string // Optional prefix before the counter.
	Separator string // Between prefix and counter. Default: "_".
	Start     int    // First counter value. Default: 1.
	Padding   int    // Zero-pad width for the counter. Default: 3.

	// Pattern mode. When set, Prefix/Separator/Padding are ignored.
	Pattern string

	// Extension filter, normalized to lowercase with leading dots.
	Exts []string

	Sort   SortMode
	DryRun bool

	// CSV mapping paths.
	MapCSV   string // Export the resolved plan to this path.
	ApplyCSV string // Apply an existing mapping instead of generating one.

	// Display and logging.
	ColorMode ColorMode
	Verbose   bool
	LogFile   string
}

// DefaultConfig returns a Config matching the documented flag defaults.
func DefaultConfig() Config {
	return Config{
		Dir:       ".",
		Separator: "_",
		Start:     1,
		Padding:   3,
		Exts:      ParseExtList(DefaultExts),
		Sort:      SortName,
		ColorMode: ColorAuto,
	}
}

// ParseExtList splits a comma-separated extension list and normalizes each
// entry to a lowercase extension with a leading dot. Empty items are dropped.
func ParseExtList(s string) []string {
	var exts []string
	for _, part := range strings.Split(s, ",") {
		p := strings.ToLower(strings.TrimSpace(part))
		if p == "" {
			continue
		}
		if !strings.HasPrefix(p, ".") {
			p = "." + p
		}
		exts = append(exts, p)
	}
	return exts
}

// Validate checks enum fields and numeric ranges. Called after all layers
// (file, env, flags) have been applied.
func (c *Config) Validate() error {
	switch c.Sort {
	case SortName, SortMtime, SortExif:
		// valid
	default:
		return errors.New("invalid sort mode (use 'name', 'mtime' or 'exif')")
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	if c.Padding < 0 {
		return fmt.Errorf("padding must not be negative (got %d)", c.Padding)
	}
	if len(c.Exts) == 0 {
		return errors.New("extension list must not be empty")
	}
	if c.Dir == "" {
		return errors.New("target directory must not be empty")
	}
	return nil
}

// ResolveDir resolves a user-supplied directory path to an absolute existing
// directory. Shell quoting leftovers and "~" are tried as fallback candidates
// before giving up, so paths pasted from other tools still resolve.
func ResolveDir(path string) (string, error) {
	candidates := []string{
		path,
		strings.Trim(strings.Trim(path, `"`), `'`),
	}
	if strings.HasPrefix(path, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			candidates = append(candidates, filepath.Join(home, strings.TrimPrefix(path, "~")))
		}
	}
	if abs, err := filepath.Abs(path); err == nil {
		candidates = append(candidates, abs)
	}

	seen := make(map[string]bool)
	for _, c := range candidates {
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		if fi, err := os.Stat(c); err == nil && fi.IsDir() {
			return filepath.Abs(c)
		}
	}
	return "", fmt.Errorf("directory not found: %s", path)
}
