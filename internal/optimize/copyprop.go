package optimize

import "github.com/dekarrin/minilangc/internal/cfg"

// copyPropBlocks substitutes var -> var copies analogously to
// constPropBlocks, binding dst -> resolve(src) after any pure-copy ASSIGN
// (both operands non-literal variables). resolve walks the chain with
// cycle protection, since earlier rounds can introduce self-referential
// copies.
func copyPropBlocks(g *cfg.Graph) PassStats {
	stats := PassStats{Name: "CopyProp"}

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
			if repl, ok := env[q.Arg1]; ok {
				q.Arg1 = repl
				changed = true
			}
			if repl, ok := env[q.Arg2]; ok {
				q.Arg2 = repl
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

			if q.Op == "ASSIGN" && !isLiteral(q.Arg1) && q.Arg1 != "-" && !isLiteral(q.Res) {
				env[q.Res] = resolve(env, q.Arg1)
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

// resolve follows the copy chain for name through env, stopping at the
// first name with no further binding, and bailing out to the last
// non-self-referential name if a cycle is detected.
func resolve(env map[string]string, name string) string {
	visited := map[string]bool{}
	cur := name
	for {
		if visited[cur] {
			return cur
		}
		visited[cur] = true
		next, ok := env[cur]
		if !ok || next == cur {
			return cur
		}
		cur = next
	}
}
