package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_First_terminalIsItself(t *testing.T) {
	assert := assert.New(t)

	assert.True(First["ID"].Has("ID"))
	assert.Equal(1, First["ID"].Len())
}

func Test_First_stmtListIncludesEpsilon(t *testing.T) {
	assert := assert.New(t)

	// StmtList -> epsilon is production 4, so FIRST(StmtList) must contain
	// epsilon alongside every terminal that can start a Stmt.
	assert.True(First["StmtList"].Has(epsilon))
	for _, want := range []string{"ID", "IF", "WHILE", "LBRACE"} {
		assert.Truef(First["StmtList"].Has(want), "FIRST(StmtList) missing %s", want)
	}
}

func Test_First_factorExcludesEpsilon(t *testing.T) {
	assert := assert.New(t)

	assert.False(First["Factor"].Has(epsilon))
	for _, want := range []string{"ID", "NUM", "LPAREN"} {
		assert.Truef(First["Factor"].Has(want), "FIRST(Factor) missing %s", want)
	}
}

func Test_FirstOfSequence_nullability(t *testing.T) {
	assert := assert.New(t)

	set, nullable := FirstOfSequence([]string{"StmtList"})
	assert.True(nullable, "FIRST({StmtList}) should be nullable")
	assert.True(set.Has("ID"))

	set2, nullable2 := FirstOfSequence([]string{"Factor", "EOF"})
	assert.False(nullable2, "FIRST({Factor, EOF}) should not be nullable")
	assert.False(set2.Has("EOF"), "Factor is not nullable so EOF should not leak into the sequence's FIRST set")
}
