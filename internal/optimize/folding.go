package optimize

import (
	"fmt"
	"strconv"

	"github.com/dekarrin/minilangc/internal/cfg"
	"github.com/dekarrin/minilangc/internal/ir"
)

// foldBlocks applies constant folding: any arithmetic quad whose operands
// are both integer literals is replaced by an equivalent ASSIGN of the
// computed value. Division by a literal zero is left unfolded and noted,
// never evaluated.
func foldBlocks(g *cfg.Graph) PassStats {
	stats := PassStats{Name: "Folding"}

	for bi := range g.Blocks {
		block := &g.Blocks[bi]
		for i := range block.Quads {
			q := block.Quads[i]
			if !isArithOp(q.Op) || !isLiteral(q.Arg1) || !isLiteral(q.Arg2) {
				continue
			}

			a, _ := strconv.Atoi(q.Arg1)
			b, _ := strconv.Atoi(q.Arg2)

			if q.Op == "DIV" && b == 0 {
				stats.Notes = append(stats.Notes, fmt.Sprintf("Skip div-by-zero folding at %d", origIndexOf(block, i)))
				continue
			}

			val, ok := evalArith(q.Op, a, b)
			if !ok {
				continue
			}

			old := quadText(q)
			newQuad := ir.Quad{Op: "ASSIGN", Arg1: fmt.Sprintf("%d", val), Arg2: "-", Res: q.Res}
			block.Quads[i] = newQuad

			stats.Changed = append(stats.Changed, Change{
				OrigIndex: origIndexOf(block, i),
				Old:       old,
				New:       quadText(newQuad),
			})
		}
	}

	return stats
}
