package grammar

import "github.com/dekarrin/minilangc/internal/util"

// epsilon is the sentinel FIRST-set member meaning "derives the empty
// string". It is never a real grammar symbol.
const epsilon = ""

// First holds the FIRST set of every terminal and nonterminal in the
// grammar, computed once at package init time since the grammar is fixed
// and FIRST is a pure function of it.
var First = computeFirstSets()

func computeFirstSets() map[string]util.StringSet {
	first := make(map[string]util.StringSet, len(Terminals)+len(Nonterminals)+1)
	for _, t := range Terminals {
		first[t] = util.StringSetOf([]string{t})
	}
	for _, nt := range Nonterminals {
		first[nt] = util.NewStringSet()
	}
	first[AugmentedStart] = util.NewStringSet()

	changed := true
	for changed {
		changed = false
		for _, p := range Productions {
			lhsFirst := first[p.LHS]
			before := lhsFirst.Len()

			if len(p.RHS) == 0 {
				lhsFirst.Add(epsilon)
			} else {
				allNullable := true
				for _, sym := range p.RHS {
					symFirst := first[sym]
					for _, s := range symFirst.Elements() {
						if s != epsilon {
							lhsFirst.Add(s)
						}
					}
					if !symFirst.Has(epsilon) {
						allNullable = false
						break
					}
				}
				if allNullable {
					lhsFirst.Add(epsilon)
				}
			}

			if lhsFirst.Len() != before {
				changed = true
			}
		}
	}
	return first
}

// FirstOfSequence returns FIRST(symbols) and whether the entire sequence is
// nullable (derives epsilon). It is used by LR(1) closure to compute the
// lookahead set for [B -> .γ, FIRST(βa)].
func FirstOfSequence(symbols []string) (util.StringSet, bool) {
	result := util.NewStringSet()
	nullable := true
	for _, sym := range symbols {
		symFirst := First[sym]
		for _, s := range symFirst.Elements() {
			if s != epsilon {
				result.Add(s)
			}
		}
		if !symFirst.Has(epsilon) {
			nullable = false
			break
		}
	}
	return result, nullable
}
