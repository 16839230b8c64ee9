package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/minilangc/internal/ast"
	"github.com/dekarrin/minilangc/internal/lex"
)

func mustTable(t *testing.T) *Table {
	t.Helper()
	table, err := Build()
	require.NoError(t, err)
	return table
}

func mustTokens(t *testing.T, src string) []lex.Token {
	t.Helper()
	toks, err := lex.Tokenize(src)
	require.NoErrorf(t, err, "Tokenize(%q)", src)
	return toks
}

func Test_Parse_minimalAssignment(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	table := mustTable(t)
	toks := mustTokens(t, "x = 1 + 2;")

	result, err := Parse(table, toks)
	require.NoError(err)
	require.Len(result.Program.Stmts, 1)

	assign, ok := result.Program.Stmts[0].(ast.Assign)
	require.True(ok, "statement is %T, want ast.Assign", result.Program.Stmts[0])
	assert.Equal("x", assign.Name)

	bin, ok := assign.Expr.(ast.BinOp)
	require.True(ok, "assign expr is %T, want ast.BinOp", assign.Expr)
	assert.Equal(ast.OpAdd, bin.Op)

	assert.Equal("0", result.Trace[0].States)
	assert.Empty(result.Trace[0].Symbols)
}

func Test_Parse_danglingElseBindsToInnerIf(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	table := mustTable(t)
	toks := mustTokens(t, "if (a<b) if (c<d) x=1; else x=2;")

	result, err := Parse(table, toks)
	require.NoError(err)
	require.Len(result.Program.Stmts, 1)

	outer, ok := result.Program.Stmts[0].(ast.If)
	require.True(ok, "outer statement is %T, want ast.If", result.Program.Stmts[0])
	assert.Nil(outer.Else, "dangling else must bind to the inner if")

	inner, ok := outer.Then.(ast.If)
	require.True(ok, "outer.Then is %T, want ast.If", outer.Then)
	assert.NotNil(inner.Else)
}

func Test_Parse_errorReportsLineAndCol(t *testing.T) {
	table := mustTable(t)
	toks := mustTokens(t, "x = ;")

	_, err := Parse(table, toks)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Error 1:5:")
}
