package mapping

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Fauzanjr07/File-Renamer/internal/naming"
	"github.com/Fauzanjr07/File-Renamer/internal/planner"
)

// ErrMappingNotFound is returned for a row whose name_raw matches no file in
// the target directory, neither exactly nor case-insensitively. It is
// recorded per row; the run continues.
var ErrMappingNotFound = errors.New("mapping source not found")

// Plan turns imported rows into a resolved rename plan against the directory
// contents in diskNames.
//
// Source lookup is by exact basename first, then case-insensitive. A missing
// source yields an error in the second return value and the row is skipped.
// When name_change has no extension the matched source's extension is
// appended. The resolver r is applied exactly as for generated plans; callers
// seed it with every name in diskNames so targets never land on an existing
// file, row sources included. A row keeping its current name is still allowed.
func Plan(rows []planner.Entry, diskNames []string, r *naming.Resolver) ([]planner.Entry, []error) {
	lowered := make(map[string]string, len(diskNames))
	for _, name := range diskNames {
		lowered[strings.ToLower(name)] = name
	}
	exists := make(map[string]bool, len(diskNames))
	for _, name := range diskNames {
		exists[name] = true
	}

	var entries []planner.Entry
	var rowErrs []error
	for _, row := range rows {
		source := row.NameRaw
		if !exists[source] {
			match, ok := lowered[strings.ToLower(source)]
			if !ok {
				rowErrs = append(rowErrs, fmt.Errorf("%w: %s", ErrMappingNotFound, row.NameRaw))
				continue
			}
			source = match
		}

		target := row.NameChange
		if filepath.Ext(target) == "" {
			target += filepath.Ext(source)
		}

		entries = append(entries, planner.Entry{
			NameRaw:    source,
			NameChange: r.Resolve(source, target),
		})
	}
	return entries, rowErrs
}
