// Package scan enumerates and orders the files of one target directory.
package scan

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/Fauzanjr07/File-Renamer/internal/config"
)

// ErrDirectoryNotFound is returned when the target path does not exist or is
// not a directory. It is fatal to the whole run.
var ErrDirectoryNotFound = errors.New("directory not found")

// FileEntry describes one source file at scan time. Entries are not mutated
// after the scan; a fresh scan is performed on every invocation.
type FileEntry struct {
	Name    string // Basename.
	Path    string // Full path (dir + basename).
	ModTime time.Time
}

// Scan lists the regular files of dir whose extension (case-insensitively)
// is in exts, ordered according to mode. The extension list must already be
// normalized by [config.ParseExtList].
func Scan(dir string, exts []string, mode config.SortMode) ([]FileEntry, error) {
	entries, err := readDir(dir)
	if err != nil {
		return nil, err
	}

	accepted := make(map[string]bool, len(exts))
	for _, e := range exts {
		accepted[e] = true
	}

	var files []FileEntry
	for _, e := range entries {
		if accepted[strings.ToLower(filepath.Ext(e.Name))] {
			files = append(files, e)
		}
	}

	switch mode {
	case config.SortMtime:
		sort.SliceStable(files, func(i, j int) bool {
			if !files[i].ModTime.Equal(files[j].ModTime) {
				return files[i].ModTime.Before(files[j].ModTime)
			}
			return files[i].Name < files[j].Name
		})
	case config.SortExif:
		sortByCaptureTime(files)
	default:
		sort.SliceStable(files, func(i, j int) bool {
			return NaturalLess(files[i].Name, files[j].Name)
		})
	}
	return files, nil
}

// ListNames returns the basenames of all regular files in dir, unfiltered and
// unsorted. Used to seed collision reservations and to resolve CSV mapping
// sources against the full directory contents.
func ListNames(dir string) ([]string, error) {
	entries, err := readDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	return names, nil
}

// readDir lists the regular files of dir as FileEntry values.
func readDir(dir string) ([]FileEntry, error) {
	fi, err := os.Stat(dir)
	if err != nil || !fi.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrDirectoryNotFound, dir)
	}

	dirents, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}

	var files []FileEntry
	for _, d := range dirents {
		if !d.Type().IsRegular() {
			continue
		}
		info, err := d.Info()
		if err != nil {
			// Entry vanished between ReadDir and Info.
			continue
		}
		files = append(files, FileEntry{
			Name:    d.Name(),
			Path:    filepath.Join(dir, d.Name()),
			ModTime: info.ModTime(),
		})
	}
	return files, nil
}
