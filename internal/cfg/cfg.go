// Package cfg splits a quad sequence into leader-delimited basic blocks
// and computes block successors using the classic leader/block-split
// algorithm.
package cfg

import (
	"sort"

	"github.com/dekarrin/minilangc/internal/cerr"
	"github.com/dekarrin/minilangc/internal/ir"
)

// Block is a maximal straight-line run of quads.
type Block struct {
	ID    int
	Start int // index of first quad, inclusive
	End   int // index of last quad, inclusive
	Succs []int
	Quads []ir.Quad
}

// Graph is a full control-flow graph over a quad sequence.
type Graph struct {
	Blocks []Block
	Quads  []ir.Quad
}

func isJump(op string) bool {
	switch op {
	case "GOTO", "IF_LT", "IF_GT", "IF_EQ", "IF_NE":
		return true
	}
	return false
}

// Build constructs the CFG for quads. A GOTO/IF_* target that is not
// defined by any LABEL quad is a fatal internal error.
func Build(quads []ir.Quad) (*Graph, error) {
	if len(quads) == 0 {
		return &Graph{Quads: quads}, nil
	}

	labelIndex := make(map[string]int)
	for i, q := range quads {
		if q.Op == "LABEL" {
			labelIndex[q.Res] = i
		}
	}

	leaders := map[int]bool{0: true}
	for i, q := range quads {
		if q.Op == "LABEL" {
			leaders[i] = true
		}
		if isJump(q.Op) {
			if i+1 < len(quads) {
				leaders[i+1] = true
			}
			if _, ok := labelIndex[q.Res]; !ok {
				return nil, cerr.Internalf("cfg: undefined label %q referenced by quad %d", q.Res, i)
			}
			leaders[labelIndex[q.Res]] = true
		}
	}

	var starts []int
	for i := range leaders {
		starts = append(starts, i)
	}
	sort.Ints(starts)

	var blocks []Block
	startToID := make(map[int]int)
	for idx, start := range starts {
		end := len(quads) - 1
		if idx+1 < len(starts) {
			end = starts[idx+1] - 1
		}
		startToID[start] = idx
		blocks = append(blocks, Block{
			ID:    idx,
			Start: start,
			End:   end,
			Quads: quads[start : end+1],
		})
	}

	blockOf := func(quadIdx int) int {
		for _, b := range blocks {
			if quadIdx >= b.Start && quadIdx <= b.End {
				return b.ID
			}
		}
		return -1
	}

	for i := range blocks {
		last := blocks[i].Quads[len(blocks[i].Quads)-1]
		var succs []int

		switch {
		case last.Op == "GOTO":
			succs = append(succs, blockOf(labelIndex[last.Res]))
		case isJump(last.Op): // IF_*
			succs = append(succs, blockOf(labelIndex[last.Res]))
			if blocks[i].End+1 < len(quads) {
				succs = append(succs, blockOf(blocks[i].End+1))
			}
		default:
			if blocks[i].End+1 < len(quads) {
				succs = append(succs, blockOf(blocks[i].End+1))
			}
		}

		dedup := map[int]bool{}
		var out []int
		for _, s := range succs {
			if s < 0 || dedup[s] {
				continue
			}
			dedup[s] = true
			out = append(out, s)
		}
		sort.Ints(out)
		blocks[i].Succs = out
	}

	return &Graph{Blocks: blocks, Quads: quads}, nil
}

// Flatten reassembles a graph's blocks back into a single quad sequence,
// in block order (used after optimization rewrites individual blocks).
func (g *Graph) Flatten() []ir.Quad {
	out := make([]ir.Quad, 0, len(g.Quads))
	for _, b := range g.Blocks {
		out = append(out, b.Quads...)
	}
	return out
}
