package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Build_conflictFreeTable(t *testing.T) {
	table, err := Build()
	require.NoError(t, err, "this grammar is defined to be conflict-free")
	assert.Empty(t, table.Conflicts)
	assert.Empty(t, table.CanonicalConflicts, "the canonical LR(1) collection itself should already be conflict-free")
}

func Test_Build_lalrStateIDsAreDenseFromZero(t *testing.T) {
	table, err := Build()
	require.NoError(t, err)

	seen := make(map[int]bool, len(table.LALR.States))
	for _, st := range table.LALR.States {
		seen[st.ID] = true
	}
	for i := 0; i < len(table.LALR.States); i++ {
		assert.Truef(t, seen[i], "LALR state ids not dense in [0,%d): missing %d", len(table.LALR.States), i)
	}
}

func Test_Dump_rendersHeaderAndStateColumn(t *testing.T) {
	table, err := Build()
	require.NoError(t, err)

	out := table.Dump(20)
	assert.Contains(t, out, "state")
	assert.Contains(t, out, "0")
}

func Test_Build_actionHasAtMostOneEntryPerCell(t *testing.T) {
	table, err := Build()
	require.NoError(t, err)

	// Build() itself returning nil error already implies no conflicts were
	// recorded, but walk the table directly too: every (state, terminal)
	// maps to exactly one Action value, by construction of the map type.
	for state, row := range table.Action {
		seenTerms := map[string]bool{}
		for term := range row {
			assert.Falsef(t, seenTerms[term], "state %d terminal %s has duplicate entries", state, term)
			seenTerms[term] = true
		}
	}
}
