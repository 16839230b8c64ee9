package grammar

import (
	"fmt"
	"strings"
)

// ItemCore identifies an LR item's production and dot position, ignoring
// lookahead. Two LR(1) items with the same core but different lookaheads
// are merged (their lookaheads unioned) everywhere this package and
// internal/automaton build item sets; two LALR states are defined by having
// equal sets of cores.
type ItemCore struct {
	ProdID int
	Dot    int
}

// Item is an LR(1) item: a production, a dot position in its RHS, and a
// single lookahead terminal. Sets of Items are represented as
// map[ItemCore]util.StringSet (core -> unioned lookaheads) rather than a
// flat slice, per the "core map with lookahead sets" representation spec
// section 9 recommends; Item itself is only materialized where a single,
// fully concrete item is needed (trace/report rendering).
type Item struct {
	Core      ItemCore
	Lookahead string
}

func (c ItemCore) production() Production {
	return ByID[c.ProdID]
}

// AtEnd reports whether the dot has reached the end of the production's RHS
// (i.e. this is a complete item, a candidate for reduction).
func (c ItemCore) AtEnd() bool {
	return c.Dot >= len(c.production().RHS)
}

// NextSymbol returns the grammar symbol immediately after the dot, and
// whether one exists.
func (c ItemCore) NextSymbol() (string, bool) {
	p := c.production()
	if c.Dot >= len(p.RHS) {
		return "", false
	}
	return p.RHS[c.Dot], true
}

// Advance returns the core with the dot shifted one position to the right.
// It does not check bounds: called on a complete item it returns a core
// whose dot lies past the RHS, so callers must check AtEnd/NextSymbol first.
func (c ItemCore) Advance() ItemCore {
	return ItemCore{ProdID: c.ProdID, Dot: c.Dot + 1}
}

// String renders an item core as "LHS -> α . β", the form used in
// conflict-diagnostic dumps.
func (c ItemCore) String() string {
	p := c.production()
	parts := make([]string, 0, len(p.RHS)+1)
	parts = append(parts, p.RHS[:c.Dot]...)
	parts = append(parts, "·")
	parts = append(parts, p.RHS[c.Dot:]...)
	return fmt.Sprintf("%s -> %s", p.LHS, strings.Join(parts, " "))
}

func (i Item) String() string {
	return fmt.Sprintf("[%s, %s]", i.Core.String(), i.Lookahead)
}
