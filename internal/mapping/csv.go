// Package mapping reads and writes rename-plan CSV files and builds plans
// from imported mappings.
//
// The format is UTF-8 text with the header row "name_raw,name_change" and one
// data row per file. Values are basenames only, never directory components.
package mapping

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Fauzanjr07/File-Renamer/internal/planner"
)

// Header columns of a mapping CSV.
var header = []string{"name_raw", "name_change"}

// Write exports a resolved plan to path, in plan order.
func Write(path string, entries []planner.Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create mapping file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write mapping header: %w", err)
	}
	for _, e := range entries {
		if err := w.Write([]string{e.NameRaw, e.NameChange}); err != nil {
			return fmt.Errorf("write mapping row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush mapping file: %w", err)
	}
	return nil
}

// Read parses a mapping CSV. The header must name both columns; rows with an
// empty name_raw or name_change are dropped. Returned entries are raw rows:
// source matching and collision resolution happen in [Plan].
func Read(path string) ([]planner.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open mapping file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse mapping file %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, errors.New("mapping file is empty")
	}

	rawCol, changeCol := -1, -1
	for i, col := range records[0] {
		switch strings.TrimSpace(col) {
		case "name_raw":
			rawCol = i
		case "name_change":
			changeCol = i
		}
	}
	if rawCol < 0 || changeCol < 0 {
		return nil, errors.New("mapping file must have header: name_raw,name_change")
	}

	var rows []planner.Entry
	for _, rec := range records[1:] {
		if rawCol >= len(rec) || changeCol >= len(rec) {
			continue
		}
		raw := strings.TrimSpace(rec[rawCol])
		change := strings.TrimSpace(rec[changeCol])
		if raw == "" || change == "" {
			continue
		}
		rows = append(rows, planner.Entry{NameRaw: raw, NameChange: change})
	}
	return rows, nil
}
