// Package parse builds the LALR(1) ACTION/GOTO table from the canonical
// automaton and drives the table-driven shift/reduce parser over a token
// stream. The driver loop keeps three parallel stacks (state, symbol,
// value) and records a trace line before each action is applied.
package parse

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dekarrin/minilangc/internal/automaton"
	"github.com/dekarrin/minilangc/internal/cerr"
	"github.com/dekarrin/minilangc/internal/grammar"
)

// ActionKind distinguishes the four cell contents an ACTION table entry can
// hold.
type ActionKind int

const (
	ActionError ActionKind = iota
	ActionShift
	ActionReduce
	ActionAccept
)

// Action is one ACTION table cell: a shift to a state, a reduce by a
// production, or accept.
type Action struct {
	Kind  ActionKind
	State int // valid when Kind == ActionShift
	Prod  int // valid when Kind == ActionReduce
}

func (a Action) String() string {
	switch a.Kind {
	case ActionShift:
		return fmt.Sprintf("s%d", a.State)
	case ActionReduce:
		return fmt.Sprintf("r%d", a.Prod)
	case ActionAccept:
		return "acc"
	default:
		return ""
	}
}

// Conflict describes one shift/reduce or reduce/reduce conflict discovered
// during table construction. It carries enough detail to explain why: the
// state, the offending terminal, the two candidate actions, and (for a
// conflict found while building the LALR table) the canonical LR(1)
// state IDs that merged to produce it. Whether a given conflict reflects
// grammar-level ambiguity or is an artifact of the LALR core-merge is
// settled directly by Build, which diagnoses the canonical collection on
// its own terms before ever merging it: Table.CanonicalConflicts holds
// the former, Table.Conflicts the latter.
type Conflict struct {
	State     int
	Terminal  string
	Existing  Action
	Candidate Action
	Sources   []int
	Items     []grammar.Item
}

func (c Conflict) String() string {
	var sb strings.Builder
	kind := "shift/reduce"
	if c.Existing.Kind == ActionReduce && c.Candidate.Kind == ActionReduce {
		kind = "reduce/reduce"
	}
	fmt.Fprintf(&sb, "%s conflict in state %d on %s: %s vs %s (from canonical states %v)\n",
		kind, c.State, c.Terminal, c.Existing, c.Candidate, c.Sources)
	for _, it := range c.Items {
		fmt.Fprintf(&sb, "  %s\n", it)
	}
	return sb.String()
}

// Table is the constructed LALR(1) ACTION/GOTO table.
type Table struct {
	Canonical automaton.Collection
	LALR      automaton.Collection
	ToLALR    map[int]int // canonical state ID -> LALR state ID

	Action map[int]map[string]Action // state -> terminal -> action
	Goto   map[int]map[string]int    // state -> nonterminal -> state

	Conflicts []Conflict

	// CanonicalConflicts holds any conflicts found while filling in an
	// ACTION table over the unmerged canonical LR(1) collection, built
	// and checked before the LALR merge runs at all. A conflict here
	// means the grammar itself is ambiguous; a conflict that appears
	// only in Conflicts (CanonicalConflicts empty) was introduced by
	// the LALR core-merge instead.
	CanonicalConflicts []Conflict
}

// Build constructs the canonical LR(1) collection and diagnoses it for
// conflicts on its own terms first - a conflict here means the grammar
// itself is ambiguous, independent of any LALR merge. It then merges to
// LALR(1) and fills in the ACTION/GOTO table callers use to parse.
// Conflicts are recorded, not fatal: a grammar with conflicts still
// produces a table (the first-registered action for a cell wins, as is
// conventional for yacc-family tools), but Build returns a non-nil error
// wrapping every conflict found at either level, since MiniLang's grammar
// (with its Matched/Unmatched dangling-else split) is defined to be
// conflict-free and any conflict indicates a grammar or construction bug.
func Build() (*Table, error) {
	canon := automaton.BuildCanonicalCollection()

	_, _, canonConflicts := buildActionGoto(canon, func(id int) []int { return []int{id} })

	lalr, toLALR, err := automaton.MergeToLALR(canon)
	if err != nil {
		return nil, cerr.Internalf("LALR construction: %v", err)
	}

	action, gotoTable, lalrConflicts := buildActionGoto(*lalr, func(id int) []int { return automaton.Sources(toLALR, id) })

	t := &Table{
		Canonical:          canon,
		LALR:               *lalr,
		ToLALR:             toLALR,
		Action:             action,
		Goto:               gotoTable,
		Conflicts:          lalrConflicts,
		CanonicalConflicts: canonConflicts,
	}

	if len(t.CanonicalConflicts) > 0 {
		var sb strings.Builder
		for _, c := range t.CanonicalConflicts {
			sb.WriteString(c.String())
		}
		return t, cerr.Internalf("grammar is ambiguous: %d conflict(s) found in the canonical LR(1) collection, before any LALR merge:\n%s", len(t.CanonicalConflicts), sb.String())
	}

	if len(t.Conflicts) > 0 {
		var sb strings.Builder
		for _, c := range t.Conflicts {
			sb.WriteString(c.String())
		}
		return t, cerr.Internalf("grammar is not LALR(1): %d conflict(s) found, introduced by the LALR core-merge:\n%s", len(t.Conflicts), sb.String())
	}

	return t, nil
}

// buildActionGoto fills in ACTION/GOTO over coll, the shared construction
// used for both the canonical LR(1) diagnostic pass and the real LALR(1)
// table. sourcesOf resolves a state ID to the canonical state IDs a
// Conflict should cite as its origin (itself, for the canonical pass;
// the LALR-merge sources, for the LALR pass).
func buildActionGoto(coll automaton.Collection, sourcesOf func(int) []int) (map[int]map[string]Action, map[int]map[string]int, []Conflict) {
	action := make(map[int]map[string]Action)
	gotoTable := make(map[int]map[string]int)
	var conflicts []Conflict

	for _, st := range coll.States {
		action[st.ID] = make(map[string]Action)
		gotoTable[st.ID] = make(map[string]int)

		for sym, target := range st.Transitions {
			if grammar.IsTerminal(sym) {
				setAction(action, &conflicts, st, sym, Action{Kind: ActionShift, State: target}, sourcesOf(st.ID))
			} else {
				gotoTable[st.ID][sym] = target
			}
		}

		for _, item := range st.Items.Items() {
			if !item.Core.AtEnd() {
				continue
			}
			prod := grammar.ByID[item.Core.ProdID]
			if prod.LHS == grammar.AugmentedStart {
				setAction(action, &conflicts, st, grammar.EOF, Action{Kind: ActionAccept}, sourcesOf(st.ID))
				continue
			}
			setAction(action, &conflicts, st, item.Lookahead, Action{Kind: ActionReduce, Prod: prod.ID}, sourcesOf(st.ID))
		}
	}

	return action, gotoTable, conflicts
}

// setAction records candidate in action[st.ID][terminal], or appends a
// Conflict to *conflicts if a different action is already there.
func setAction(action map[int]map[string]Action, conflicts *[]Conflict, st automaton.State, terminal string, candidate Action, sources []int) {
	existing, ok := action[st.ID][terminal]
	if ok && existing != candidate {
		*conflicts = append(*conflicts, Conflict{
			State:     st.ID,
			Terminal:  terminal,
			Existing:  existing,
			Candidate: candidate,
			Sources:   sources,
			Items:     st.Items.Items(),
		})
		return
	}
	action[st.ID][terminal] = candidate
}

// DumpRows renders the ACTION/GOTO table to the csv-ready row format used
// by the action_goto.csv artifact: header row of state, terminal columns
// (sorted, EOF last), nonterminal columns (sorted).
func (t *Table) DumpRows() [][]string {
	terms := make([]string, 0, len(grammar.Terminals))
	for _, term := range grammar.Terminals {
		if term != grammar.EOF {
			terms = append(terms, term)
		}
	}
	sort.Strings(terms)
	terms = append(terms, grammar.EOF)

	nonterms := make([]string, len(grammar.Nonterminals))
	copy(nonterms, grammar.Nonterminals)
	sort.Strings(nonterms)

	header := append([]string{"state"}, terms...)
	header = append(header, nonterms...)
	rows := [][]string{header}

	ids := make([]int, 0, len(t.LALR.States))
	for _, st := range t.LALR.States {
		ids = append(ids, st.ID)
	}
	sort.Ints(ids)

	for _, id := range ids {
		row := []string{fmt.Sprintf("%d", id)}
		for _, term := range terms {
			if a, ok := t.Action[id][term]; ok {
				row = append(row, a.String())
			} else {
				row = append(row, "")
			}
		}
		for _, nt := range nonterms {
			if target, ok := t.Goto[id][nt]; ok {
				row = append(row, fmt.Sprintf("%d", target))
			} else {
				row = append(row, "")
			}
		}
		rows = append(rows, row)
	}
	return rows
}
