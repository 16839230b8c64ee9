package automaton

import (
	"fmt"
	"sort"

	"github.com/dekarrin/minilangc/internal/grammar"
)

// TransitionConflictError reports that two canonical states merged into one
// LALR state disagree about where a symbol's GOTO/shift leads. This can
// only happen if the canonical collection itself is inconsistent (a bug in
// its construction), since GOTO targets are themselves grouped by core
// before this function runs; it is kept as a defensive check rather than
// assumed impossible.
type TransitionConflictError struct {
	FromSources []int
	Symbol      string
	TargetA     int
	TargetB     int
}

func (e *TransitionConflictError) Error() string {
	return fmt.Sprintf("LALR merge: canonical states %v disagree on GOTO(%s): %d vs %d",
		e.FromSources, e.Symbol, e.TargetA, e.TargetB)
}

// MergeToLALR groups a canonical LR(1) collection's states by item-set
// core and unions their lookaheads, producing the LALR(1) collection: two
// LR(1) states are merged into one LALR(1) state iff they have the same
// core. This is the efficient-in-practice middle ground
// between SLR(1) (uses FOLLOW, loses precision) and canonical LR(1) (one
// state per distinct lookahead set, far larger tables).
func MergeToLALR(canon Collection) (*Collection, map[int]int, error) {
	groups := make(map[string][]int) // core signature -> canonical state IDs
	var order []string

	for _, st := range canon.States {
		key := coreKey(st.Items.Core())
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], st.ID)
	}

	canonicalToLALR := make(map[int]int, len(canon.States))
	lalrStates := make([]State, 0, len(order))

	for lalrID, key := range order {
		sources := groups[key]
		sort.Ints(sources)
		for _, cid := range sources {
			canonicalToLALR[cid] = lalrID
		}

		merged := ItemSet{}
		for _, cid := range sources {
			for core, las := range canon.States[cid].Items {
				merged.addLookaheads(core, las)
			}
		}
		lalrStates = append(lalrStates, State{ID: lalrID, Items: merged, Transitions: map[string]int{}})
	}

	// wire transitions, translating canonical target IDs to LALR IDs and
	// checking that merged sources agree
	sourcesByLALR := make([][]int, len(order))
	for lalrID, key := range order {
		sourcesByLALR[lalrID] = groups[key]
	}

	for lalrID := range order {
		for _, cid := range sourcesByLALR[lalrID] {
			for sym, ctarget := range canon.States[cid].Transitions {
				ltarget := canonicalToLALR[ctarget]
				if existing, ok := lalrStates[lalrID].Transitions[sym]; ok {
					if existing != ltarget {
						return nil, nil, &TransitionConflictError{
							FromSources: sourcesByLALR[lalrID],
							Symbol:      sym,
							TargetA:     existing,
							TargetB:     ltarget,
						}
					}
				} else {
					lalrStates[lalrID].Transitions[sym] = ltarget
				}
			}
		}
	}

	result := &Collection{States: lalrStates, Initial: canonicalToLALR[canon.Initial]}

	return result, canonicalToLALR, nil
}

// Sources returns the canonical LR(1) state IDs that merged into LALR
// state id, derived from canonicalToLALR (the second return of
// MergeToLALR). Kept as a standalone helper rather than stored on State so
// the hot-path Collection type stays symmetric between canonical and LALR
// use.
func Sources(canonicalToLALR map[int]int, id int) []int {
	var out []int
	for cid, lid := range canonicalToLALR {
		if lid == id {
			out = append(out, cid)
		}
	}
	sort.Ints(out)
	return out
}

// Cores returns the shared item-set core (production ID, dot position)
// pairs of an LALR state, sorted for deterministic display.
func (c Collection) Cores(id int) []grammar.ItemCore {
	cores := c.States[id].Items.Core()
	out := make([]grammar.ItemCore, 0, len(cores))
	for k := range cores {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ProdID != out[j].ProdID {
			return out[i].ProdID < out[j].ProdID
		}
		return out[i].Dot < out[j].Dot
	})
	return out
}
