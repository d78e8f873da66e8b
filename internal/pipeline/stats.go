package pipeline

// RunStats tracks aggregate counters across one batch run.
type RunStats struct {
	Total     int // Plan entries (scanned files or CSV rows).
	Current   int // 1-based index of the entry being processed.
	Renamed   int
	Unchanged int // Entries whose target equals their current name.
	Failed    int // Rename failures plus unmatched mapping rows.

	// Errors holds the per-entry failures for the final report.
	Errors []error
}
