// Package automaton builds the canonical LR(1) collection of item sets for
// the MiniLang grammar and merges it into an LALR(1) collection by item-set
// core, following Algorithms 4.53/4.56's closure and goto (purple dragon
// book section 4.7) and the core-merge construction for LALR(1). State
// identity, closure, and goto follow a generic string-keyed item-set
// representation adapted to the fixed MiniLang grammar.
package automaton

import (
	"sort"

	"github.com/dekarrin/minilangc/internal/grammar"
	"github.com/dekarrin/minilangc/internal/util"
)

// ItemSet maps each item core present in the set to the union of its
// lookaheads: a "core map with lookahead sets" representation that
// materializes flat grammar.Item values only where needed for display.
type ItemSet map[grammar.ItemCore]util.StringSet

// Items returns the set's contents as flat, sorted grammar.Item values -
// sorted by (prod id, dot, lookahead) so callers get deterministic output
// regardless of map iteration order.
func (s ItemSet) Items() []grammar.Item {
	out := make([]grammar.Item, 0, len(s))
	for core, las := range s {
		for _, la := range las.Elements() {
			out = append(out, grammar.Item{Core: core, Lookahead: la})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Core.ProdID != b.Core.ProdID {
			return a.Core.ProdID < b.Core.ProdID
		}
		if a.Core.Dot != b.Core.Dot {
			return a.Core.Dot < b.Core.Dot
		}
		return a.Lookahead < b.Lookahead
	})
	return out
}

// Core returns the bare set of item cores, ignoring lookaheads. Two LR(1)
// states merge into one LALR(1) state iff their Core sets are equal.
func (s ItemSet) Core() map[grammar.ItemCore]bool {
	out := make(map[grammar.ItemCore]bool, len(s))
	for c := range s {
		out[c] = true
	}
	return out
}

func coreKey(cores map[grammar.ItemCore]bool) string {
	keys := make([]grammar.ItemCore, 0, len(cores))
	for c := range cores {
		keys = append(keys, c)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].ProdID != keys[j].ProdID {
			return keys[i].ProdID < keys[j].ProdID
		}
		return keys[i].Dot < keys[j].Dot
	})
	var sb []byte
	for _, k := range keys {
		sb = append(sb, []byte(itoa(k.ProdID))...)
		sb = append(sb, '.')
		sb = append(sb, []byte(itoa(k.Dot))...)
		sb = append(sb, ';')
	}
	return string(sb)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [12]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

func newItem(core grammar.ItemCore, lookaheads ...string) ItemSet {
	s := ItemSet{}
	s[core] = util.StringSetOf(lookaheads)
	return s
}

func (s ItemSet) addLookaheads(core grammar.ItemCore, las util.StringSet) bool {
	existing, ok := s[core]
	if !ok {
		existing = util.NewStringSet()
		s[core] = existing
	}
	before := existing.Len()
	existing.AddAll(las)
	return existing.Len() != before
}

// Closure computes the LR(1) closure of a seed item set: Algorithm 4.54
// ("Construction of the canonical LR(1) collection"). Items sharing a core
// have their lookaheads merged instead of being tracked as separate items,
// which makes the fixpoint loop a worklist over cores rather than over items.
func Closure(seed ItemSet) ItemSet {
	result := ItemSet{}
	var queue []grammar.ItemCore
	for core, las := range seed {
		result[core] = las.Copy()
		queue = append(queue, core)
	}
	sort.Slice(queue, func(i, j int) bool {
		if queue[i].ProdID != queue[j].ProdID {
			return queue[i].ProdID < queue[j].ProdID
		}
		return queue[i].Dot < queue[j].Dot
	})

	for len(queue) > 0 {
		core := queue[0]
		queue = queue[1:]

		sym, ok := core.NextSymbol()
		if !ok || grammar.IsTerminal(sym) {
			continue
		}

		p := grammar.ByID[core.ProdID]
		beta := p.RHS[core.Dot+1:]
		lookaheads := result[core]

		needed := util.NewStringSet()
		for _, la := range lookaheads.Sorted() {
			seq := append(append([]string{}, beta...), la)
			firstSet, _ := grammar.FirstOfSequence(seq)
			needed.AddAll(firstSet)
		}

		for _, prod := range grammar.ByLHS[sym] {
			newCore := grammar.ItemCore{ProdID: prod.ID, Dot: 0}
			if result.addLookaheads(newCore, needed) {
				queue = append(queue, newCore)
			}
		}
	}
	return result
}

// Goto computes GOTO(items, symbol): shift the dot over symbol in every
// item whose next symbol is symbol, union lookaheads by shifted core, then
// close the result. Returns an empty set if no item in items can shift on
// symbol.
func Goto(items ItemSet, symbol string) ItemSet {
	moved := ItemSet{}
	for core, las := range items {
		sym, ok := core.NextSymbol()
		if !ok || sym != symbol {
			continue
		}
		moved.addLookaheads(core.Advance(), las)
	}
	if len(moved) == 0 {
		return nil
	}
	return Closure(moved)
}

// symbolOrder is the fixed BFS order canonical-collection construction
// walks grammar symbols in: terminals (sorted, EOF last), then
// nonterminals (sorted). Keeping this order fixed makes state numbering
// deterministic and reproducible across runs.
func symbolOrder() []string {
	terms := make([]string, 0, len(grammar.Terminals))
	for _, t := range grammar.Terminals {
		if t != grammar.EOF {
			terms = append(terms, t)
		}
	}
	sort.Strings(terms)
	terms = append(terms, grammar.EOF)

	nonterms := make([]string, len(grammar.Nonterminals))
	copy(nonterms, grammar.Nonterminals)
	sort.Strings(nonterms)

	return append(terms, nonterms...)
}
