package optimize

import (
	"fmt"
	"strings"
)

// Render formats a Report into the opt_report.txt artifact text: pipeline
// order, before/after counts, aggregate removed/replaced counts, a
// basic-block CFG summary per round, and a chronological per-round,
// per-pass change log.
func (r *Report) Render() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Pipeline: %s\n", strings.Join(r.PipelineOrder, " -> "))
	fmt.Fprintf(&sb, "quads_before: %d\n", r.QuadsBefore)
	fmt.Fprintf(&sb, "quads_after: %d\n", r.QuadsAfter)

	totalRemoved, totalChanged := 0, 0
	for _, rnd := range r.Rounds {
		for _, p := range rnd.Passes {
			totalRemoved += len(p.Removed)
			totalChanged += len(p.Changed)
		}
	}
	fmt.Fprintf(&sb, "removed_total: %d\n", totalRemoved)
	fmt.Fprintf(&sb, "replaced_total: %d\n", totalChanged)
	sb.WriteString("\n")

	for ri, rnd := range r.Rounds {
		fmt.Fprintf(&sb, "Round %d:\n", ri+1)
		sb.WriteString("  Basic blocks:\n")
		for _, b := range rnd.Blocks {
			fmt.Fprintf(&sb, "    block %d [%d,%d] -> %v\n", b.ID, b.Start, b.End, b.Succs)
		}
		for _, p := range rnd.Passes {
			fmt.Fprintf(&sb, "  %s: removed=%d replaced=%d\n", p.Name, len(p.Removed), len(p.Changed))
			for _, idx := range p.Removed {
				fmt.Fprintf(&sb, "    - removed quad %d\n", idx)
			}
			for _, c := range p.Changed {
				fmt.Fprintf(&sb, "    - %d: %s -> %s\n", c.OrigIndex, c.Old, c.New)
			}
			if len(p.Notes) > 0 {
				fmt.Fprintf(&sb, "    notes: %s\n", joinNotes(p.Notes))
			}
		}
	}

	return sb.String()
}
