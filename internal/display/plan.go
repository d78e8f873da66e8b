package display

import (
	"fmt"
	"io"

	"github.com/Fauzanjr07/File-Renamer/internal/planner"
)

// RenderPlan writes the plan as one column-aligned "name_raw -> name_change"
// line per entry. Entries whose name does not change are marked, so a preview
// shows exactly what an apply run would touch.
func RenderPlan(w io.Writer, entries []planner.Entry) {
	width := 0
	for _, e := range entries {
		if len(e.NameRaw) > width {
			width = len(e.NameRaw)
		}
	}
	for _, e := range entries {
		if e.NameRaw == e.NameChange {
			fmt.Fprintf(w, "%-*s    (unchanged)\n", width, e.NameRaw)
			continue
		}
		fmt.Fprintf(w, "%-*s -> %s\n", width, e.NameRaw, e.NameChange)
	}
}
