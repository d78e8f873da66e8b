package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Fauzanjr07/File-Renamer/internal/config"
)

func TestNew_FileSink(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	cfg.LogFile = filepath.Join(dir, "logs", "run.log")

	log, closeLog, err := New(&cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Info().Str("file", "a.jpg").Msg("renamed")
	if err := closeLog(); err != nil {
		t.Fatalf("close: %v", err)
	}

	b, err := os.ReadFile(cfg.LogFile)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(b), `"renamed"`) {
		t.Errorf("log file missing message: %q", b)
	}
	if !strings.Contains(string(b), `"file":"a.jpg"`) {
		t.Errorf("log file missing field: %q", b)
	}
}

func TestNew_VerboseEnablesDebug(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever

	log, closeLog, err := New(&cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer closeLog()
	if log.GetLevel() != zerolog.InfoLevel {
		t.Errorf("default level: got %v, want info", log.GetLevel())
	}

	cfg.Verbose = true
	log, closeLog, err = New(&cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer closeLog()
	if log.GetLevel() != zerolog.DebugLevel {
		t.Errorf("verbose level: got %v, want debug", log.GetLevel())
	}
}
