package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/minilangc/internal/ir"
)

func Test_Generate_pushLoadStoreAndHalt(t *testing.T) {
	quads := []ir.Quad{
		{Op: "ADD", Arg1: "1", Arg2: "x", Res: "t1"},
		{Op: "ASSIGN", Arg1: "t1", Arg2: "-", Res: "y"},
	}
	lines, err := Generate(quads)
	require.NoError(t, err)

	want := []string{
		"PUSH 1",
		"LOAD x",
		"ADD",
		"STORE t1",
		"LOAD t1",
		"STORE y",
		"HALT",
	}
	assert.Equal(t, want, lines)
}

func Test_Generate_undefinedLabelReportsLexicographicallySmallest(t *testing.T) {
	quads := []ir.Quad{
		{Op: "GOTO", Arg1: "-", Arg2: "-", Res: "Lz"},
		{Op: "GOTO", Arg1: "-", Arg2: "-", Res: "La"},
	}
	_, err := Generate(quads)
	require.Error(t, err)
	assert.Equal(t, "Error: undefined label La", err.Error())
}

func Test_Generate_conditionalEmitsJNZ(t *testing.T) {
	quads := []ir.Quad{
		{Op: "IF_LT", Arg1: "a", Arg2: "b", Res: "L1"},
		{Op: "LABEL", Arg1: "-", Arg2: "-", Res: "L1"},
	}
	lines, err := Generate(quads)
	require.NoError(t, err)
	assert.Equal(t, []string{"LOAD a", "LOAD b", "LT", "JNZ L1", "L1:", "HALT"}, lines)
}

func Test_DumpParseQuadFile_roundTrip(t *testing.T) {
	quads := []ir.Quad{
		{Op: "ADD", Arg1: "1", Arg2: "2", Res: "t1"},
		{Op: "ASSIGN", Arg1: "t1", Arg2: "-", Res: "x"},
	}
	text := Dump(quads)
	parsed, err := ParseQuadFile(text)
	require.NoError(t, err)
	assert.Equal(t, quads, parsed)
}

func Test_ParseQuadFile_rejectsMalformedLine(t *testing.T) {
	_, err := ParseQuadFile("not a quad line")
	assert.Error(t, err)
}
