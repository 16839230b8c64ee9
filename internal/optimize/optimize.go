// Package optimize runs the fixed intra-block optimization pipeline
// [Folding, ConstProp, CopyProp, DCE] for up to three rounds, stopping
// early once a round changes nothing. Each pass mutates a single block's
// quad slice in place and reports what it changed for the opt_report.txt
// artifact.
package optimize

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dekarrin/minilangc/internal/cfg"
	"github.com/dekarrin/minilangc/internal/ir"
)

// DefaultMaxRounds is the default round cap; Optimize accepts an override
// so config.Config.MaxRounds can tune it.
const DefaultMaxRounds = 3

// Change records one quad replacement within a pass, by original index.
type Change struct {
	OrigIndex int
	Old       string
	New       string
}

// PassStats accumulates what one pass did across every block in one round.
type PassStats struct {
	Name    string
	Removed []int
	Changed []Change
	Notes   []string
}

func (p *PassStats) Dirty() bool {
	return len(p.Removed) > 0 || len(p.Changed) > 0
}

// Report is the full accumulated result of Optimize, enough to render
// opt_report.txt.
type Report struct {
	PipelineOrder []string
	QuadsBefore   int
	QuadsAfter    int
	Rounds        []RoundReport
}

// BlockSummary is a snapshot of one basic block's shape at the start of a
// round, before that round's passes run.
type BlockSummary struct {
	ID    int
	Start int
	End   int
	Succs []int
}

// RoundReport holds one round's CFG snapshot and per-pass stats.
type RoundReport struct {
	Blocks []BlockSummary
	Passes []PassStats
}

func summarizeBlocks(g *cfg.Graph) []BlockSummary {
	out := make([]BlockSummary, 0, len(g.Blocks))
	for _, b := range g.Blocks {
		succs := make([]int, len(b.Succs))
		copy(succs, b.Succs)
		out = append(out, BlockSummary{ID: b.ID, Start: b.Start, End: b.End, Succs: succs})
	}
	return out
}

// Optimize runs the pipeline on quads, returning the optimized sequence
// and a report. It rebuilds the CFG from the latest quad sequence at the
// start of every round, since block boundaries can shift as quads are
// dropped by DCE.
func Optimize(quads []ir.Quad, maxRounds int) ([]ir.Quad, *Report, error) {
	if maxRounds <= 0 {
		maxRounds = DefaultMaxRounds
	}

	report := &Report{
		PipelineOrder: []string{"Folding", "ConstProp", "CopyProp", "DCE"},
		QuadsBefore:   len(quads),
	}

	current := quads
	for round := 0; round < maxRounds; round++ {
		graph, err := cfg.Build(current)
		if err != nil {
			return nil, nil, err
		}

		rr := RoundReport{Blocks: summarizeBlocks(graph)}
		anyChange := false

		passes := []func(*cfg.Graph) PassStats{foldBlocks, constPropBlocks, copyPropBlocks, dceBlocks}
		for _, run := range passes {
			stats := run(graph)
			rr.Passes = append(rr.Passes, stats)
			if stats.Dirty() {
				anyChange = true
			}
		}

		report.Rounds = append(report.Rounds, rr)
		current = graph.Flatten()

		if !anyChange {
			break
		}
	}

	report.QuadsAfter = len(current)
	return current, report, nil
}

func isLiteral(operand string) bool {
	if operand == "" || operand == "-" {
		return false
	}
	_, err := strconv.Atoi(operand)
	return err == nil
}

func isArithOp(op string) bool {
	switch op {
	case "ADD", "SUB", "MUL", "DIV":
		return true
	}
	return false
}

func isControl(op string) bool {
	switch op {
	case "LABEL", "GOTO", "IF_LT", "IF_GT", "IF_EQ", "IF_NE":
		return true
	}
	return false
}

func evalArith(op string, a, b int) (int, bool) {
	switch op {
	case "ADD":
		return a + b, true
	case "SUB":
		return a - b, true
	case "MUL":
		return a * b, true
	case "DIV":
		if b == 0 {
			return 0, false
		}
		// truncate toward zero: Go's native integer division semantics.
		return a / b, true
	}
	return 0, false
}

func quadText(q ir.Quad) string {
	return fmt.Sprintf("(%s, %s, %s, %s)", q.Op, q.Arg1, q.Arg2, q.Res)
}

// origIndexOf recovers a quad's index in the sequence the current round
// started from, using the block's recorded Start offset; blocks built by
// cfg.Build carry quads as a slice view, so position i within the block
// corresponds to index Start+i as long as no earlier pass has already
// resized this block's slice in the same round (folding/constprop/copyprop
// never resize; only DCE does, and DCE runs last). The CFG is rebuilt from
// the previous round's output, so only in round 1 is this the quad's
// ir.quad index; later rounds report indices into that round's input.
func origIndexOf(b *cfg.Block, i int) int {
	return b.Start + i
}

func joinNotes(notes []string) string {
	return strings.Join(notes, "; ")
}
