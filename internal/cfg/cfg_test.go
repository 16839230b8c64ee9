package cfg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/minilangc/internal/ir"
)

func Test_Build_splitsOnLabelsAndJumps(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	// straight line, then a jump to a label further down.
	quads := []ir.Quad{
		{Op: "ASSIGN", Arg1: "1", Arg2: "-", Res: "x"},
		{Op: "GOTO", Arg1: "-", Arg2: "-", Res: "L1"},
		{Op: "ASSIGN", Arg1: "2", Arg2: "-", Res: "y"},
		{Op: "LABEL", Arg1: "-", Arg2: "-", Res: "L1"},
		{Op: "ASSIGN", Arg1: "3", Arg2: "-", Res: "z"},
	}

	g, err := Build(quads)
	require.NoError(err)

	// leaders: 0 (first), 2 (after GOTO), 3 (LABEL L1) -> 3 blocks
	require.Len(g.Blocks, 3)
	assert.Equal(0, g.Blocks[0].Start)
	assert.Equal(1, g.Blocks[0].End)
	assert.Equal(2, g.Blocks[1].Start)
	assert.Equal(2, g.Blocks[1].End)
	assert.Equal(3, g.Blocks[2].Start)
	assert.Equal(4, g.Blocks[2].End)

	// block 0 ends in GOTO L1 -> single successor, block 2 (the LABEL block)
	assert.Equal([]int{2}, g.Blocks[0].Succs)
	// block 1 falls through to block 2
	assert.Equal([]int{2}, g.Blocks[1].Succs)
	// block 2 is last, no successors
	assert.Empty(g.Blocks[2].Succs)
}

func Test_Build_conditionalHasTwoSuccessors(t *testing.T) {
	quads := []ir.Quad{
		{Op: "IF_LT", Arg1: "a", Arg2: "b", Res: "L1"},
		{Op: "ASSIGN", Arg1: "0", Arg2: "-", Res: "x"},
		{Op: "LABEL", Arg1: "-", Arg2: "-", Res: "L1"},
		{Op: "ASSIGN", Arg1: "1", Arg2: "-", Res: "y"},
	}

	g, err := Build(quads)
	require.NoError(t, err)
	assert.Len(t, g.Blocks[0].Succs, 2)
}

func Test_Build_undefinedLabelIsError(t *testing.T) {
	quads := []ir.Quad{
		{Op: "GOTO", Arg1: "-", Arg2: "-", Res: "Lnope"},
	}
	_, err := Build(quads)
	assert.Error(t, err)
}

func Test_Flatten_roundTripsQuadOrder(t *testing.T) {
	quads := []ir.Quad{
		{Op: "ASSIGN", Arg1: "1", Arg2: "-", Res: "x"},
		{Op: "ASSIGN", Arg1: "2", Arg2: "-", Res: "y"},
	}
	g, err := Build(quads)
	require.NoError(t, err)
	assert.Equal(t, quads, g.Flatten())
}
