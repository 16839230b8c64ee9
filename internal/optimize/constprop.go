package optimize

import (
	"github.com/dekarrin/minilangc/internal/cfg"
)

// constPropBlocks substitutes known-literal values for variable operands
// within a block, clearing the mapping at every control-flow point
// (LABEL/GOTO/IF_*) since optimization is intra-block only; values are
// never tracked across block boundaries even along a guaranteed
// fallthrough edge.
func constPropBlocks(g *cfg.Graph) PassStats {
	stats := PassStats{Name: "ConstProp"}

	for bi := range g.Blocks {
		block := &g.Blocks[bi]
		env := map[string]string{}

		for i := range block.Quads {
			q := block.Quads[i]

			if isControl(q.Op) {
				env = map[string]string{}
				continue
			}

			old := quadText(q)
			changed := false
			if lit, ok := env[q.Arg1]; ok {
				q.Arg1 = lit
				changed = true
			}
			if lit, ok := env[q.Arg2]; ok {
				q.Arg2 = lit
				changed = true
			}

			if changed {
				block.Quads[i] = q
				stats.Changed = append(stats.Changed, Change{
					OrigIndex: origIndexOf(block, i),
					Old:       old,
					New:       quadText(q),
				})
			}

			if q.Op == "ASSIGN" && isLiteral(q.Arg1) {
				env[q.Res] = q.Arg1
			} else if q.Res != "" && q.Res != "-" {
				delete(env, q.Res)
				for k, v := range env {
					if v == q.Res {
						delete(env, k)
					}
				}
			}
		}
	}

	return stats
}
