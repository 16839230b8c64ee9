package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/minilangc/internal/grammar"
)

func initialItems() ItemSet {
	seed := newItem(grammar.ItemCore{ProdID: 1, Dot: 0}, grammar.EOF)
	return Closure(seed)
}

func Test_Closure_includesAllProgramAlternatives(t *testing.T) {
	closure := initialItems()

	// closure of [S' -> .Program EOF, $] must add every production whose
	// LHS can start at dot 0, recursively, down to Stmt alternatives.
	found := map[int]bool{}
	for core := range closure {
		found[core.ProdID] = true
	}
	for _, id := range []int{1, 2, 3, 4} {
		assert.Truef(t, found[id], "closure missing item for production %d", id)
	}
}

func Test_Closure_mergesLookaheadsByCore(t *testing.T) {
	closure := initialItems()
	core := grammar.ItemCore{ProdID: 4, Dot: 0} // StmtList -> epsilon
	las, ok := closure[core]
	require.True(t, ok, "closure missing core %+v", core)
	assert.NotZero(t, las.Len(), "expected at least one lookahead for StmtList epsilon production")
}

func Test_Goto_onStartSymbolReachesAcceptingItem(t *testing.T) {
	initial := initialItems()
	next := Goto(initial, grammar.StartSymbol)
	require.NotEmpty(t, next, "GOTO(initial, Program) should not be empty")

	core := grammar.ItemCore{ProdID: 1, Dot: 1} // S' -> Program . EOF
	_, ok := next[core]
	assert.True(t, ok, "GOTO(initial, Program) missing item S' -> Program . EOF")
}

func Test_Goto_onUnreachableSymbolIsEmpty(t *testing.T) {
	initial := initialItems()
	next := Goto(initial, "RBRACE")
	assert.Empty(t, next)
}

func Test_BuildCanonicalCollection_nonEmptyAndDeterministic(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	a := BuildCanonicalCollection()
	b := BuildCanonicalCollection()
	require.NotEmpty(a.States)
	require.Len(b.States, len(a.States))
	for i := range a.States {
		assert.Equalf(itemSetKey(a.States[i].Items), itemSetKey(b.States[i].Items), "state %d differs between two canonical builds", i)
	}
}

func Test_MergeToLALR_producesFewerOrEqualStates(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	canon := BuildCanonicalCollection()
	lalr, toLALR, err := MergeToLALR(canon)
	require.NoError(err)
	assert.LessOrEqual(len(lalr.States), len(canon.States))
	assert.Len(toLALR, len(canon.States))
}

func Test_Sources_recoversCanonicalStatesForLALRState(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	canon := BuildCanonicalCollection()
	lalr, toLALR, err := MergeToLALR(canon)
	require.NoError(err)

	for lalrID := range lalr.States {
		sources := Sources(toLALR, lalrID)
		require.NotEmptyf(sources, "LALR state %d has no recovered canonical sources", lalrID)
		for _, src := range sources {
			assert.Equalf(lalrID, toLALR[src], "canonical state %d maps to the wrong LALR state", src)
		}
	}
}
