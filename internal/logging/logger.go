// Package logging constructs the zerolog logger used across the tool.
//
// Logs and diagnostics go to stderr (optionally mirrored to a file) so that
// stdout stays clean for the plan listing, which callers may pipe.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/Fauzanjr07/File-Renamer/internal/config"
	"github.com/Fauzanjr07/File-Renamer/internal/term"
)

// New builds the logger from cfg: console output on stderr with colors per
// the resolved color mode, debug level gated by Verbose, and an optional
// append-mode file sink. The returned closer is a no-op unless LogFile was
// set; call it when done.
func New(cfg *config.Config) (zerolog.Logger, func() error, error) {
	term.Configure(cfg.ColorMode)

	console := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !term.Enabled(),
	}

	var out io.Writer = console
	closer := func() error { return nil }

	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
			return zerolog.Logger{}, nil, err
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return zerolog.Logger{}, nil, err
		}
		// The file sink gets zerolog's native JSON lines; the console keeps
		// the human format.
		out = zerolog.MultiLevelWriter(console, f)
		closer = f.Close
	}

	level := zerolog.InfoLevel
	if cfg.Verbose {
		level = zerolog.DebugLevel
	}

	logger := zerolog.New(out).Level(level).With().Timestamp().Logger()
	return logger, closer, nil
}
