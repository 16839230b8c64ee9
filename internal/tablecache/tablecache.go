// Package tablecache memoizes the LALR(1) parse table, both in-process
// (it is a pure function of the fixed grammar, so it only needs computing
// once per process) and on disk, so repeated invocations of the CLI
// against the same build don't pay table-construction cost twice. On-disk
// encoding uses dekarrin/rezi's binary codec.
package tablecache

import (
	"os"
	"sort"
	"sync"

	"github.com/dekarrin/rezi"

	"github.com/dekarrin/minilangc/internal/automaton"
	"github.com/dekarrin/minilangc/internal/cerr"
	"github.com/dekarrin/minilangc/internal/parse"
)

var (
	once      sync.Once
	singleton *parse.Table
	buildErr  error
)

// Get returns the process-wide LALR table, building it at most once
// regardless of how many goroutines call Get concurrently.
func Get() (*parse.Table, error) {
	once.Do(func() {
		singleton, buildErr = parse.Build()
	})
	return singleton, buildErr
}

// cached is the on-disk representation: just enough of a Table to
// reconstruct ACTION/GOTO without rerunning canonical-collection
// construction. Conflicts are never cached, since Build only returns a
// usable table when there are none.
type cached struct {
	ActionStates []int
	ActionTerms  []string
	ActionKinds  []int
	ActionVals   []int

	GotoStates []int
	GotoSyms   []string
	GotoVals   []int
}

func flatten(t *parse.Table) cached {
	var c cached
	for state, row := range t.Action {
		for term, a := range row {
			c.ActionStates = append(c.ActionStates, state)
			c.ActionTerms = append(c.ActionTerms, term)
			c.ActionKinds = append(c.ActionKinds, int(a.Kind))
			val := a.State
			if a.Kind == parse.ActionReduce {
				val = a.Prod
			}
			c.ActionVals = append(c.ActionVals, val)
		}
	}
	for state, row := range t.Goto {
		for sym, target := range row {
			c.GotoStates = append(c.GotoStates, state)
			c.GotoSyms = append(c.GotoSyms, sym)
			c.GotoVals = append(c.GotoVals, target)
		}
	}
	return c
}

func (c cached) actions() map[int]map[string]parse.Action {
	out := make(map[int]map[string]parse.Action)
	for i := range c.ActionStates {
		state := c.ActionStates[i]
		if out[state] == nil {
			out[state] = make(map[string]parse.Action)
		}
		a := parse.Action{Kind: parse.ActionKind(c.ActionKinds[i])}
		switch a.Kind {
		case parse.ActionShift:
			a.State = c.ActionVals[i]
		case parse.ActionReduce:
			a.Prod = c.ActionVals[i]
		}
		out[state][c.ActionTerms[i]] = a
	}
	return out
}

// stateIDs returns the sorted union of every state ID appearing in the
// cache, enough to reconstruct the ID-only automaton.State entries
// DumpRows needs to enumerate table rows; item sets and transitions are
// never cached, since nothing downstream of parsing consults them.
func (c cached) stateIDs() []int {
	seen := map[int]bool{}
	for _, s := range c.ActionStates {
		seen[s] = true
	}
	for _, s := range c.GotoStates {
		seen[s] = true
	}
	ids := make([]int, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func (c cached) gotos() map[int]map[string]int {
	out := make(map[int]map[string]int)
	for i := range c.GotoStates {
		state := c.GotoStates[i]
		if out[state] == nil {
			out[state] = make(map[string]int)
		}
		out[state][c.GotoSyms[i]] = c.GotoVals[i]
	}
	return out
}

// WriteFile serializes table's ACTION/GOTO to path using rezi's binary
// encoding.
func WriteFile(t *parse.Table, path string) error {
	data := rezi.EncBinary(flatten(t))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return cerr.Userf("could not write table cache %s: %v", path, err)
	}
	return nil
}

// ReadFile deserializes a table cache previously written by WriteFile. The
// result has Action/Goto fully populated and LALR.States carrying one
// ID-only entry per cached state (enough for callers like Table.DumpRows
// to enumerate rows by ID); Items/Transitions are never reconstructed,
// and Canonical/Conflicts are left empty, since a cache is only ever
// written for a conflict-free table and nothing downstream of parsing
// consults those fields.
func ReadFile(path string) (*parse.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, cerr.Userf("could not read table cache %s: %v", path, err)
	}

	var c cached
	n, err := rezi.DecBinary(data, &c)
	if err != nil {
		return nil, cerr.Userf("corrupt table cache %s: %v", path, err)
	}
	if n != len(data) {
		return nil, cerr.Userf("corrupt table cache %s: trailing data", path)
	}

	var states []automaton.State
	for _, id := range c.stateIDs() {
		states = append(states, automaton.State{ID: id})
	}

	return &parse.Table{
		LALR:   automaton.Collection{States: states},
		Action: c.actions(),
		Goto:   c.gotos(),
	}, nil
}
