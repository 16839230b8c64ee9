package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Productions_count(t *testing.T) {
	assert.Len(t, Productions, 36)
}

func Test_Productions_idsAreDenseFromOne(t *testing.T) {
	for i, p := range Productions {
		assert.Equalf(t, i+1, p.ID, "Productions[%d].ID", i)
	}
}

func Test_ByID_augmentedProductionShape(t *testing.T) {
	assert := assert.New(t)

	p := ByID[1]
	assert.Equal(AugmentedStart, p.LHS)
	assert.Equal([]string{StartSymbol, EOF}, p.RHS)
}

func Test_IsTerminal_IsNonterminal_areDisjoint(t *testing.T) {
	assert := assert.New(t)

	for _, term := range Terminals {
		assert.Falsef(IsNonterminal(term), "%s classified as both terminal and nonterminal", term)
	}
	for _, nt := range Nonterminals {
		assert.Falsef(IsTerminal(nt), "%s classified as both terminal and nonterminal", nt)
	}
}
