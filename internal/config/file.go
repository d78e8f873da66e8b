package config

// This file implements the config-file and environment layers. Precedence is
// flags > environment (RENAMER_*) > TOML file > defaults; file and env values
// are only applied for flags the user did not set explicitly (changed map).

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config with TOML-friendly field types. Bool and int
// fields are pointers so an absent key is distinguishable from an explicit
// false or zero.
type FileConfig struct {
	Dir       string `toml:"dir"`
	Prefix    string `toml:"prefix"`
	Separator string `toml:"separator"`
	Start     *int   `toml:"start"`
	Padding   *int   `toml:"padding"`
	Pattern   string `toml:"pattern"`
	Exts      string `toml:"exts"`
	Sort      string `toml:"sort"`
	DryRun    *bool  `toml:"dry_run"`
	MapCSV    string `toml:"map_csv"`
	ApplyCSV  string `toml:"apply_csv"`
	Color     string `toml:"color"`
	Verbose   *bool  `toml:"verbose"`
	LogFile   string `toml:"log_file"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.renamer/config.toml, or "" when the home
// directory cannot be determined.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".renamer", "config.toml")
	}
	return ""
}

// FileExists reports whether a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

// ApplyFileConfig applies file values to cfg, skipping any flag the user set
// explicitly.
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) {
	s := setter{changed}

	s.str("dir", fc.Dir, &cfg.Dir)
	s.str("prefix", fc.Prefix, &cfg.Prefix)
	s.str("sep", fc.Separator, &cfg.Separator)
	s.str("pattern", fc.Pattern, &cfg.Pattern)
	s.str("map-csv", fc.MapCSV, &cfg.MapCSV)
	s.str("apply-csv", fc.ApplyCSV, &cfg.ApplyCSV)
	s.str("log", fc.LogFile, &cfg.LogFile)

	s.num("start", fc.Start, &cfg.Start)
	s.num("padding", fc.Padding, &cfg.Padding)

	if fc.Exts != "" && !changed["exts"] {
		cfg.Exts = ParseExtList(fc.Exts)
	}
	if fc.Sort != "" && !changed["sort"] {
		cfg.Sort = SortMode(fc.Sort)
	}
	if fc.Color != "" && !changed["color"] {
		cfg.ColorMode = ColorMode(fc.Color)
	}

	s.boolean("dry-run", fc.DryRun, &cfg.DryRun)
	s.boolean("verbose", fc.Verbose, &cfg.Verbose)
}

// ApplyEnvConfig applies RENAMER_* environment variables to cfg, again
// skipping explicitly set flags. Env overrides the file but not flags.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := setter{changed}

	s.str("dir", os.Getenv("RENAMER_DIR"), &cfg.Dir)
	s.str("prefix", os.Getenv("RENAMER_PREFIX"), &cfg.Prefix)
	s.str("sep", os.Getenv("RENAMER_SEP"), &cfg.Separator)
	s.str("pattern", os.Getenv("RENAMER_PATTERN"), &cfg.Pattern)
	s.str("log", os.Getenv("RENAMER_LOG"), &cfg.LogFile)

	if err := s.numFromString("start", os.Getenv("RENAMER_START"), &cfg.Start); err != nil {
		return err
	}
	if err := s.numFromString("padding", os.Getenv("RENAMER_PADDING"), &cfg.Padding); err != nil {
		return err
	}

	if v := os.Getenv("RENAMER_EXTS"); v != "" && !changed["exts"] {
		cfg.Exts = ParseExtList(v)
	}
	if v := os.Getenv("RENAMER_SORT"); v != "" && !changed["sort"] {
		cfg.Sort = SortMode(v)
	}
	if v := os.Getenv("RENAMER_COLOR"); v != "" && !changed["color"] {
		cfg.ColorMode = ColorMode(v)
	}
	return nil
}

// setter applies layered values while respecting flag precedence.
type setter struct {
	changed map[string]bool
}

func (s setter) str(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// num and numFromString apply any present value, zero included; validity is
// left to Config.Validate so the file and env layers agree.
func (s setter) num(flag string, value *int, dst *int) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

func (s setter) numFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = n
	return nil
}

func (s setter) boolean(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}
