// Package planner turns an ordered scan into a rename plan: one collision-free
// (name_raw, name_change) pair per source file.
package planner

import (
	"path/filepath"

	"github.com/Fauzanjr07/File-Renamer/internal/naming"
	"github.com/Fauzanjr07/File-Renamer/internal/scan"
)

// Entry pairs a source basename with its resolved target basename. Target
// names are pairwise unique within one plan.
type Entry struct {
	NameRaw    string
	NameChange string
}

// Build computes the plan for files in scan order. The counter starts at
// start and increments by one per file, with no gaps. Collisions are resolved
// through r, which the caller seeds with every on-disk name so that no target
// can land on an existing file, batch members included.
func Build(files []scan.FileEntry, gen naming.Generator, r *naming.Resolver, start int) []Entry {
	entries := make([]Entry, 0, len(files))
	n := start
	for _, f := range files {
		proposed := gen.Name(n, filepath.Ext(f.Name))
		entries = append(entries, Entry{
			NameRaw:    f.Name,
			NameChange: r.Resolve(f.Name, proposed),
		})
		n++
	}
	return entries
}
