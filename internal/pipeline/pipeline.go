// Package pipeline orchestrates one run: scan (or CSV import), plan
// construction, preview or execution, and the summary report.
package pipeline

import (
	"context"
	"os"

	"github.com/rs/zerolog"

	"github.com/Fauzanjr07/File-Renamer/internal/config"
	"github.com/Fauzanjr07/File-Renamer/internal/display"
	"github.com/Fauzanjr07/File-Renamer/internal/mapping"
	"github.com/Fauzanjr07/File-Renamer/internal/naming"
	"github.com/Fauzanjr07/File-Renamer/internal/planner"
	"github.com/Fauzanjr07/File-Renamer/internal/scan"
)

// Run is the top-level batch entry point. It builds the plan (generated from
// the scan, or imported when --apply-csv is set), optionally exports it,
// then previews or applies it.
//
// The returned error is fatal (bad directory, bad pattern, unreadable CSV)
// and means no rename was attempted. Per-entry failures are never fatal; they
// are logged, counted in RunStats.Failed, and the run continues.
func Run(ctx context.Context, cfg *config.Config, log zerolog.Logger) (RunStats, error) {
	var stats RunStats

	var entries []planner.Entry
	var err error
	if cfg.ApplyCSV != "" {
		entries, err = importPlan(cfg, &stats, log)
	} else {
		entries, err = generatePlan(cfg, &stats, log)
	}
	if err != nil {
		return stats, err
	}

	if cfg.MapCSV != "" {
		// Export failures don't abort the run; the plan is still usable.
		if err := mapping.Write(cfg.MapCSV, entries); err != nil {
			log.Warn().Err(err).Str("path", cfg.MapCSV).Msg("failed to write mapping file")
		} else {
			log.Info().Str("path", cfg.MapCSV).Msg("mapping written")
		}
	}

	if cfg.DryRun {
		display.RenderPlan(os.Stdout, entries)
		log.Info().Int("planned", len(entries)).Msg("dry run, no files renamed")
		logSummary(log, &stats)
		return stats, nil
	}

	apply(ctx, cfg.Dir, entries, &stats, log)
	logSummary(log, &stats)
	return stats, nil
}

// generatePlan scans the directory and computes target names with the
// configured generator.
func generatePlan(cfg *config.Config, stats *RunStats, log zerolog.Logger) ([]planner.Entry, error) {
	gen, err := naming.New(cfg.Pattern, cfg.Prefix, cfg.Separator, cfg.Padding)
	if err != nil {
		return nil, err
	}

	files, err := scan.Scan(cfg.Dir, cfg.Exts, cfg.Sort)
	if err != nil {
		return nil, err
	}
	stats.Total = len(files)
	log.Info().Int("files", len(files)).Str("dir", cfg.Dir).Str("sort", string(cfg.Sort)).Msg("scanned")

	// Every on-disk name is reserved, batch members included: a target must
	// never land on an existing file, even one a later entry would vacate.
	// Renaming a file to its own current name remains allowed.
	diskNames, err := scan.ListNames(cfg.Dir)
	if err != nil {
		return nil, err
	}
	return planner.Build(files, gen, naming.NewResolver(diskNames), cfg.Start), nil
}

// importPlan reads the --apply-csv mapping and resolves it against the
// directory contents. Rows whose source cannot be found are counted as
// failures and skipped.
func importPlan(cfg *config.Config, stats *RunStats, log zerolog.Logger) ([]planner.Entry, error) {
	rows, err := mapping.Read(cfg.ApplyCSV)
	if err != nil {
		return nil, err
	}
	stats.Total = len(rows)

	diskNames, err := scan.ListNames(cfg.Dir)
	if err != nil {
		return nil, err
	}

	// Every on-disk name is reserved, row sources included, so imported
	// targets can never clobber an existing file; a row that keeps its
	// current name is still allowed.
	entries, rowErrs := mapping.Plan(rows, diskNames, naming.NewResolver(diskNames))
	for _, re := range rowErrs {
		log.Error().Err(re).Msg("mapping row skipped")
	}
	stats.Failed += len(rowErrs)
	return entries, nil
}

func logSummary(log zerolog.Logger, stats *RunStats) {
	log.Info().
		Int("renamed", stats.Renamed).
		Int("unchanged", stats.Unchanged).
		Int("failed", stats.Failed).
		Msg("done")
}
