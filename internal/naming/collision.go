package naming

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Resolver tracks target names claimed during one plan and resolves
// duplicates by appending "_1", "_2", … before the extension. It is used
// sequentially within a single run; resolution is deterministic given the
// order of Resolve calls.
type Resolver struct {
	owners   map[string]string // target name → source name that claimed it ("" = reserved on disk)
	counters map[string]int    // base target name → next suffix counter
}

// NewResolver creates a resolver with the given names pre-reserved. Callers
// seed it with every on-disk name of the directory — batch members included —
// so generated names never clobber an existing file, not even one that a
// later plan entry would have vacated. A file keeping its own current name
// is still allowed despite the seeding.
func NewResolver(reserved []string) *Resolver {
	r := &Resolver{
		owners:   make(map[string]string, len(reserved)),
		counters: make(map[string]int),
	}
	for _, name := range reserved {
		r.owners[name] = ""
	}
	return r
}

// Resolve returns the final target name for source, handling collisions.
// If proposed is unclaimed (or already owned by source), it is returned
// as-is; a file keeping its own current name is not a collision. Otherwise
// the first free "_N" variant is claimed and returned.
func (r *Resolver) Resolve(source, proposed string) string {
	if r.free(proposed, source) {
		r.owners[proposed] = source
		return proposed
	}

	ext := filepath.Ext(proposed)
	stem := strings.TrimSuffix(proposed, ext)

	counter := r.counters[proposed]
	if counter == 0 {
		counter = 1
	}
	for {
		candidate := fmt.Sprintf("%s_%d%s", stem, counter, ext)
		if r.free(candidate, source) {
			r.counters[proposed] = counter + 1
			r.owners[candidate] = source
			return candidate
		}
		counter++
	}
}

// free reports whether source may claim name: it is unclaimed, already owned
// by source, or it is source's own current name still carrying the disk-scan
// reservation (keeping one's own name is not a collision).
func (r *Resolver) free(name, source string) bool {
	owner, taken := r.owners[name]
	if !taken {
		return true
	}
	return owner == source || (owner == "" && name == source)
}
