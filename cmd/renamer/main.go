// Command renamer batch-renames the image files of one directory to a
// sequential numbering scheme or a pattern, with dry-run preview, CSV
// mapping export/import, and collision-safe renaming.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/Fauzanjr07/File-Renamer/internal/config"
	"github.com/Fauzanjr07/File-Renamer/internal/display"
	"github.com/Fauzanjr07/File-Renamer/internal/logging"
	"github.com/Fauzanjr07/File-Renamer/internal/pipeline"
)

const longHelp = `
Rename the image files of a directory to a numeric sequence (IMG_001.jpg,
IMG_002.jpg, …) or a pattern with a counter placeholder ({n}, {n:03d}).

Files are ordered by natural filename sort, modification time, or EXIF
capture time. Name collisions — with files already on disk or within the
batch — are resolved by appending _1, _2, … before the extension.

The resolved plan can be previewed (--dry-run), exported to a CSV mapping
(--map-csv) for review or auditing, or an existing mapping can be applied
(--apply-csv) with case-insensitive source matching.
`

var exampleUsage = strings.TrimSpace(`
  renamer --dir ./photos --prefix IMG --start 1 --padding 3
  renamer --dir ./scans --pattern "test_board_{n:03d}" --dry-run
  renamer --dir ./photos --map-csv plan.csv --dry-run
  renamer --dir ./photos --apply-csv plan.csv
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := config.DefaultConfig()
	var (
		cfgPath   string
		extsFlag  string
		sortFlag  string
		colorFlag string
	)

	root := &cobra.Command{
		Use:           "renamer",
		Short:         "Batch-rename image files to a numeric sequence or pattern",
		Long:          strings.TrimSpace(longHelp),
		Example:       exampleUsage,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Layering: file and env values apply only to flags the user
			// did not set explicitly.
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if changed["exts"] {
				cfg.Exts = config.ParseExtList(extsFlag)
			}
			if changed["sort"] {
				cfg.Sort = config.SortMode(sortFlag)
			}
			if changed["color"] {
				cfg.ColorMode = config.ColorMode(colorFlag)
			}

			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = config.DefaultConfigPath()
			}
			if cfgFile != "" && config.FileExists(cfgFile) {
				fc, err := config.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				config.ApplyFileConfig(&cfg, fc, changed)
			}
			if err := config.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}
			dir, err := config.ResolveDir(cfg.Dir)
			if err != nil {
				return err
			}
			cfg.Dir = dir

			log, closeLog, err := logging.New(&cfg)
			if err != nil {
				return err
			}
			defer closeLog()

			display.PrintBanner()
			log.Debug().Interface("config", cfg).Msg("configuration")
			if cfg.DryRun {
				log.Warn().Msg("dry run, no files will be renamed")
			}

			// Cancel between entries on SIGINT/SIGTERM; a started rename is
			// never interrupted mid-call.
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			go func() {
				<-sigCh
				log.Warn().Msg("received interrupt, stopping after current entry")
				cancel()
			}()

			stats, err := pipeline.Run(ctx, &cfg, log)
			if err != nil {
				return err
			}
			if stats.Failed > 0 {
				return fmt.Errorf("%d of %d entries failed", stats.Failed, stats.Total)
			}
			return nil
		},
	}

	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: ~/.renamer/config.toml)")
	root.Flags().StringVarP(&cfg.Dir, "dir", "d", cfg.Dir, "directory containing the files to rename")
	root.Flags().StringVarP(&cfg.Prefix, "prefix", "p", cfg.Prefix, "prefix before the numeric sequence")
	root.Flags().StringVar(&cfg.Separator, "sep", cfg.Separator, "separator between prefix and number")
	root.Flags().IntVar(&cfg.Start, "start", cfg.Start, "first counter value")
	root.Flags().IntVar(&cfg.Padding, "padding", cfg.Padding, "zero-pad width for the counter")
	root.Flags().StringVar(&extsFlag, "exts", config.DefaultExts, "comma-separated extensions to include")
	root.Flags().StringVar(&sortFlag, "sort", string(cfg.Sort), "scan order: name | mtime | exif")
	root.Flags().StringVar(&cfg.Pattern, "pattern", "", "name template with {n} counter placeholder (overrides prefix/sep/padding)")
	root.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "preview the plan without renaming")
	root.Flags().StringVar(&cfg.MapCSV, "map-csv", "", "export the plan to this CSV (name_raw,name_change)")
	root.Flags().StringVar(&cfg.ApplyCSV, "apply-csv", "", "apply an existing CSV mapping instead of generating names")
	root.Flags().StringVar(&colorFlag, "color", string(cfg.ColorMode), "colored logs: auto | always | never")
	root.Flags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "verbose output")
	root.Flags().StringVarP(&cfg.LogFile, "log", "l", "", "append logs to file")

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "renamer: %v\n", err)
		os.Exit(1)
	}
}
