package lex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Tokenize_minimalAssignment(t *testing.T) {
	toks, err := Tokenize("x = 1 + 2;")
	require.NoError(t, err)

	want := []Kind{ID, ASSIGN, NUM, PLUS, NUM, SEMI}
	require.Len(t, toks, len(want))
	for i, k := range want {
		assert.Equalf(t, k, toks[i].Type, "token %d", i)
	}
}

func Test_Tokenize_keywordsAndLineComments(t *testing.T) {
	src := "if (a < b) { // a comment\n  x = 1;\n}"
	toks, err := Tokenize(src)
	require.NoError(t, err)

	var kinds []Kind
	for _, tok := range toks {
		kinds = append(kinds, tok.Type)
	}
	want := []Kind{IF, LPAREN, ID, LT, ID, RPAREN, LBRACE, ID, ASSIGN, NUM, SEMI, RBRACE}
	assert.Equal(t, want, kinds)
}

func Test_Tokenize_deterministic(t *testing.T) {
	src := "while (i < 10) { i = i + 1; }"
	a, err := Tokenize(src)
	require.NoError(t, err)
	b, err := Tokenize(src)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func Test_Tokenize_tripleEqualsIsLexError(t *testing.T) {
	_, err := Tokenize("x === 1;")
	require.Error(t, err)
	assert.Equal(t, "Error 1:5: Expected valid token, but got CHAR('=')", err.Error())
}

func Test_Tokenize_tripleBangEqualsIsLexError(t *testing.T) {
	_, err := Tokenize("x !== 1;")
	require.Error(t, err)
	assert.Equal(t, "Error 1:5: Expected valid token, but got CHAR('=')", err.Error())
}

func Test_Tokenize_unknownCharIsLexError(t *testing.T) {
	_, err := Tokenize("x = 1 @ 2;")
	require.Error(t, err)
	assert.Equal(t, "Error 1:7: Expected valid token, but got CHAR('@')", err.Error())
}

func Test_Tokenize_nonASCIILetterIsLexError(t *testing.T) {
	_, err := Tokenize("café = 1;")
	require.Error(t, err, "identifiers are restricted to [A-Za-z_][A-Za-z0-9_]*, not any unicode letter")
	assert.Equal(t, "Error 1:4: Expected valid token, but got CHAR('é')", err.Error())
}
