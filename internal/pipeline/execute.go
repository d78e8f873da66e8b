package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/Fauzanjr07/File-Renamer/internal/planner"
)

// ErrTargetExists marks an entry refused because its target path is already
// occupied by a different file.
var ErrTargetExists = errors.New("target already exists")

// RenameError wraps the filesystem error for one failed plan entry.
type RenameError struct {
	From string
	To   string
	Err  error
}

func (e *RenameError) Error() string {
	return fmt.Sprintf("rename %s -> %s: %v", e.From, e.To, e.Err)
}

func (e *RenameError) Unwrap() error { return e.Err }

// apply performs the renames in plan order. A failed entry is recorded and
// skipped; prior renames stay applied (no rollback). Context cancellation
// stops between entries.
func apply(ctx context.Context, dir string, entries []planner.Entry, stats *RunStats, log zerolog.Logger) {
	for i, e := range entries {
		stats.Current = i + 1

		if ctx.Err() != nil {
			log.Warn().Msg("interrupted")
			return
		}

		if e.NameRaw == e.NameChange {
			stats.Unchanged++
			log.Debug().Str("file", e.NameRaw).Msg("name unchanged, skipping")
			continue
		}

		src := filepath.Join(dir, e.NameRaw)
		dst := filepath.Join(dir, e.NameChange)
		if err := checkTargetFree(src, dst); err != nil {
			rerr := &RenameError{From: e.NameRaw, To: e.NameChange, Err: err}
			stats.Failed++
			stats.Errors = append(stats.Errors, rerr)
			log.Error().Err(rerr.Err).Str("from", e.NameRaw).Str("to", e.NameChange).Msg("rename refused")
			continue
		}
		if err := os.Rename(src, dst); err != nil {
			rerr := &RenameError{From: e.NameRaw, To: e.NameChange, Err: err}
			stats.Failed++
			stats.Errors = append(stats.Errors, rerr)
			log.Error().Err(rerr.Err).Str("from", e.NameRaw).Str("to", e.NameChange).Msg("rename failed")
			continue
		}

		stats.Renamed++
		log.Info().Str("from", e.NameRaw).Str("to", e.NameChange).Msg("renamed")
	}
}

// checkTargetFree refuses renames onto an occupied path: os.Rename would
// silently replace the destination. A case-only rename on a case-insensitive
// filesystem resolves src and dst to the same file and is allowed.
func checkTargetFree(src, dst string) error {
	di, err := os.Lstat(dst)
	if err != nil {
		return nil
	}
	if si, err := os.Lstat(src); err == nil && os.SameFile(si, di) {
		return nil
	}
	return ErrTargetExists
}
