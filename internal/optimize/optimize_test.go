package optimize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/minilangc/internal/ir"
)

func Test_Optimize_foldsLiteralArithmetic(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	quads := []ir.Quad{
		{Op: "ADD", Arg1: "1", Arg2: "2", Res: "x"},
	}
	optimized, report, err := Optimize(quads, 1)
	require.NoError(err)
	require.Len(optimized, 1)
	assert.Equal("ASSIGN", optimized[0].Op)
	assert.Equal("3", optimized[0].Arg1)
	assert.True(report.Rounds[0].Passes[0].Dirty(), "folding pass should report a change")
}

func Test_Render_includesBasicBlockSummary(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	quads := []ir.Quad{
		{Op: "ADD", Arg1: "1", Arg2: "2", Res: "t1"},
		{Op: "ASSIGN", Arg1: "t1", Arg2: "-", Res: "x"},
	}
	_, report, err := Optimize(quads, 1)
	require.NoError(err)

	out := report.Render()
	assert.Contains(out, "Basic blocks:")
	assert.Contains(out, "block 0 [0,1] -> []")
}

func Test_Optimize_skipsDivByZeroFolding(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	quads := []ir.Quad{
		{Op: "DIV", Arg1: "4", Arg2: "0", Res: "x"},
	}
	optimized, report, err := Optimize(quads, 1)
	require.NoError(err)
	assert.Equal("DIV", optimized[0].Op, "division by literal zero must not be folded")
	assert.NotEmpty(report.Rounds[0].Passes[0].Notes)
}

func Test_Optimize_divisionTruncatesTowardZero(t *testing.T) {
	quads := []ir.Quad{
		{Op: "DIV", Arg1: "-7", Arg2: "2", Res: "x"},
	}
	optimized, _, err := Optimize(quads, 1)
	require.NoError(t, err)
	assert.Equal(t, "-3", optimized[0].Arg1, "(-7)/2 should truncate toward zero")
}

func Test_Optimize_constPropFeedsFoldingToFixedPoint(t *testing.T) {
	quads := []ir.Quad{
		{Op: "ASSIGN", Arg1: "5", Arg2: "-", Res: "x"},
		{Op: "ADD", Arg1: "x", Arg2: "1", Res: "y"},
	}
	// const-prop substitutes x with 5 in the ADD; folding then computes
	// ADD 5 1 into ASSIGN 6 on a later round. Run to the fixed point.
	optimized, _, err := Optimize(quads, DefaultMaxRounds)
	require.NoError(t, err)

	foundSix := false
	for _, q := range optimized {
		if q.Op == "ASSIGN" && q.Res == "y" && q.Arg1 == "6" {
			foundSix = true
		}
	}
	assert.True(t, foundSix, "expected y to fold to 6 after const-prop + folding fixed point, got %+v", optimized)
}

func Test_Optimize_copyPropSubstitutesVariableChains(t *testing.T) {
	quads := []ir.Quad{
		{Op: "ASSIGN", Arg1: "y", Arg2: "-", Res: "x"},
		{Op: "ADD", Arg1: "x", Arg2: "1", Res: "z"},
	}
	optimized, _, err := Optimize(quads, 1)
	require.NoError(t, err)

	found := false
	for _, q := range optimized {
		if q.Op == "ADD" && q.Arg1 == "y" {
			found = true
		}
	}
	assert.True(t, found, "expected copy-prop to replace x with y in ADD operand, got %+v", optimized)
}

func Test_Optimize_dceRemovesDeadTemp(t *testing.T) {
	quads := []ir.Quad{
		{Op: "ADD", Arg1: "1", Arg2: "2", Res: "t1"},
		{Op: "ASSIGN", Arg1: "3", Arg2: "-", Res: "x"},
	}
	optimized, _, err := Optimize(quads, DefaultMaxRounds)
	require.NoError(t, err)

	for _, q := range optimized {
		assert.NotEqualf(t, "t1", q.Res, "dead temp t1 should have been eliminated, got %+v", optimized)
	}
}

func Test_Optimize_dceNeverEliminatesUserVariables(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	quads := []ir.Quad{
		{Op: "ASSIGN", Arg1: "1", Arg2: "-", Res: "x"},
	}
	optimized, _, err := Optimize(quads, DefaultMaxRounds)
	require.NoError(err)
	require.Len(optimized, 1)
	assert.Equal("x", optimized[0].Res)
}

func Test_Optimize_stopsEarlyWhenRoundIsClean(t *testing.T) {
	quads := []ir.Quad{
		{Op: "ASSIGN", Arg1: "x", Arg2: "-", Res: "y"},
	}
	_, report, err := Optimize(quads, DefaultMaxRounds)
	require.NoError(t, err)
	assert.Less(t, len(report.Rounds), DefaultMaxRounds, "expected early stop before reaching max rounds")
}

func Test_Optimize_respectsMaxRoundsOverride(t *testing.T) {
	// const-prop rewrites this chain during round 1, so that round is not
	// clean and early stop alone would allow a second round; the override
	// must cap the run at one round.
	quads := []ir.Quad{
		{Op: "ASSIGN", Arg1: "1", Arg2: "-", Res: "a"},
		{Op: "ASSIGN", Arg1: "a", Arg2: "-", Res: "b"},
		{Op: "ASSIGN", Arg1: "b", Arg2: "-", Res: "x"},
	}
	_, report, err := Optimize(quads, 1)
	require.NoError(t, err)
	assert.Len(t, report.Rounds, 1, "maxRounds=1 override not respected")
}
