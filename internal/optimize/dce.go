package optimize

import (
	"strings"

	"github.com/dekarrin/minilangc/internal/cfg"
	"github.com/dekarrin/minilangc/internal/ir"
)

// dceBlocks runs a backward liveness pass per block. Only quads defining a
// compiler temporary (name starting with "t") that is not live are
// dropped; user variables are never eliminated even when apparently dead,
// since whole-program liveness across blocks is out of scope (spec
// section 4.6).
func dceBlocks(g *cfg.Graph) PassStats {
	stats := PassStats{Name: "DCE"}

	for bi := range g.Blocks {
		block := &g.Blocks[bi]
		live := map[string]bool{}

		kept := make([]ir.Quad, len(block.Quads))
		copy(kept, block.Quads)

		var result []ir.Quad
		for i := len(kept) - 1; i >= 0; i-- {
			q := kept[i]

			if isControl(q.Op) {
				result = append([]ir.Quad{q}, result...)
				addOperand(live, q.Arg1)
				addOperand(live, q.Arg2)
				continue
			}

			if strings.HasPrefix(q.Res, "t") && !live[q.Res] {
				stats.Removed = append(stats.Removed, origIndexOf(block, i))
				continue
			}

			result = append([]ir.Quad{q}, result...)
			delete(live, q.Res)
			addOperand(live, q.Arg1)
			addOperand(live, q.Arg2)
		}

		block.Quads = result
	}

	return stats
}

func addOperand(live map[string]bool, operand string) {
	if operand == "" || operand == "-" || isLiteral(operand) {
		return
	}
	live[operand] = true
}
