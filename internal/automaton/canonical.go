package automaton

import (
	"github.com/dekarrin/minilangc/internal/grammar"
)

// State is one state of the canonical LR(1) collection: an item set plus
// its outgoing GOTO transitions, keyed by the states' own IDs (assigned in
// BFS discovery order so state 0 is always the initial state).
type State struct {
	ID          int
	Items       ItemSet
	Transitions map[string]int // symbol -> target state ID
}

// Collection is the canonical LR(1) collection: every reachable state,
// indexed by ID, plus the initial state's ID (always 0, kept explicit for
// readability at call sites).
type Collection struct {
	States  []State
	Initial int
}

// ByCore returns the bare core set of state id's items, the key by which
// canonical states are grouped into LALR states.
func (c Collection) ByCore(id int) map[grammar.ItemCore]bool {
	return c.States[id].Items.Core()
}

// BuildCanonicalCollection runs the canonical LR(1) collection construction
// (Algorithm 4.54 in the purple dragon book): start from the
// closure of the augmented production's initial item with lookahead EOF,
// then repeatedly GOTO every state on every grammar symbol (in
// terminal-then-nonterminal order, see symbolOrder) until no new state set
// appears. States are deduplicated by their full item set, cores and
// lookaheads together — two GOTO results with the same cores but different
// lookaheads are distinct canonical LR(1) states; MergeToLALR later merges
// such states that share a core but disagree on lookaheads.
func BuildCanonicalCollection() Collection {
	startCore := grammar.ItemCore{ProdID: 1, Dot: 0}
	initial := Closure(newItem(startCore, grammar.EOF))

	var states []State
	seen := make(map[string]int) // exact (core,lookahead) signature -> state ID

	states = append(states, State{ID: 0, Items: initial, Transitions: map[string]int{}})
	seen[itemSetKey(initial)] = 0

	symbols := symbolOrder()

	queue := []int{0}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		items := states[id].Items

		for _, sym := range symbols {
			next := Goto(items, sym)
			if len(next) == 0 {
				continue
			}
			key := itemSetKey(next)
			targetID, exists := seen[key]
			if !exists {
				targetID = len(states)
				states = append(states, State{ID: targetID, Items: next, Transitions: map[string]int{}})
				seen[key] = targetID
				queue = append(queue, targetID)
			}
			states[id].Transitions[sym] = targetID
		}
	}

	return Collection{States: states, Initial: 0}
}

// itemSetKey produces a deterministic string signature of a full item set
// (cores AND lookaheads), used to decide whether a GOTO result is a
// already-known canonical LR(1) state.
func itemSetKey(items ItemSet) string {
	cores := make(map[grammar.ItemCore]bool, len(items))
	for c := range items {
		cores[c] = true
	}
	base := coreKey(cores)

	var sb []byte
	sb = append(sb, base...)
	sb = append(sb, '|')
	for _, it := range items.Items() {
		sb = append(sb, []byte(itoa(it.Core.ProdID))...)
		sb = append(sb, '.')
		sb = append(sb, []byte(itoa(it.Core.Dot))...)
		sb = append(sb, ':')
		sb = append(sb, it.Lookahead...)
		sb = append(sb, ',')
	}
	return string(sb)
}
