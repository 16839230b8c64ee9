package lex

import (
	"strings"

	"github.com/dekarrin/minilangc/internal/cerr"
)

// Tokenize scans src into a flat token stream. It never emits EOF; callers
// (the parser) append exactly one synthetic EOF token with line/col just
// past the last real token.
func Tokenize(src string) ([]Token, error) {
	l := &lexer{src: []rune(src), line: 1, col: 1}
	var toks []Token

	for {
		l.skipSpaceAndComments()
		if l.atEnd() {
			break
		}

		startLine, startCol := l.line, l.col
		ch := l.peek()

		var (
			tok Token
			err error
		)

		switch {
		case isIdentStart(ch):
			tok = l.lexIdent(startLine, startCol)
		case isASCIIDigit(ch):
			tok = l.lexNumber(startLine, startCol)
		default:
			tok, err = l.lexOperatorOrSymbol(startLine, startCol)
		}
		if err != nil {
			return nil, err
		}

		tok.Index = len(toks)
		toks = append(toks, tok)
	}

	return toks, nil
}

type lexer struct {
	src       []rune
	pos       int
	line, col int
}

func (l *lexer) atEnd() bool { return l.pos >= len(l.src) }

func (l *lexer) peek() rune {
	if l.atEnd() {
		return 0
	}
	return l.src[l.pos]
}

func (l *lexer) peekAt(offset int) rune {
	if l.pos+offset >= len(l.src) {
		return 0
	}
	return l.src[l.pos+offset]
}

func (l *lexer) advance() rune {
	ch := l.src[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return ch
}

func (l *lexer) skipSpaceAndComments() {
	for !l.atEnd() {
		ch := l.peek()
		switch {
		case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n':
			l.advance()
		case ch == '/' && l.peekAt(1) == '/':
			for !l.atEnd() && l.peek() != '\n' {
				l.advance()
			}
		default:
			return
		}
	}
}

// isASCIILetter and isASCIIDigit restrict identifiers and numeric
// literals to [A-Za-z_]/[A-Za-z0-9_]* and [0-9]+ exactly; unicode.IsLetter
// and unicode.IsDigit would accept non-ASCII letters and digits MiniLang
// source never defines.
func isASCIILetter(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isASCIIDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch rune) bool {
	return ch == '_' || isASCIILetter(ch)
}

func isIdentCont(ch rune) bool {
	return ch == '_' || isASCIILetter(ch) || isASCIIDigit(ch)
}

func (l *lexer) lexIdent(line, col int) Token {
	var sb strings.Builder
	for !l.atEnd() && isIdentCont(l.peek()) {
		sb.WriteRune(l.advance())
	}
	lexeme := sb.String()
	kind, isKeyword := keywords[lexeme]
	if !isKeyword {
		kind = ID
	}
	return Token{Type: kind, Lexeme: lexeme, Line: line, Col: col}
}

func (l *lexer) lexNumber(line, col int) Token {
	var sb strings.Builder
	for !l.atEnd() && isASCIIDigit(l.peek()) {
		sb.WriteRune(l.advance())
	}
	return Token{Type: NUM, Lexeme: sb.String(), Line: line, Col: col}
}

func (l *lexer) lexOperatorOrSymbol(line, col int) (Token, error) {
	ch := l.advance()

	single := func(k Kind) (Token, error) {
		return Token{Type: k, Lexeme: string(ch), Line: line, Col: col}, nil
	}

	switch ch {
	case '+':
		return single(PLUS)
	case '-':
		return single(MINUS)
	case '*':
		return single(MUL)
	case '/':
		return single(DIV)
	case '(':
		return single(LPAREN)
	case ')':
		return single(RPAREN)
	case '{':
		return single(LBRACE)
	case '}':
		return single(RBRACE)
	case ';':
		return single(SEMI)
	case '<':
		return single(LT)
	case '>':
		return single(GT)
	case '=':
		if l.peek() == '=' {
			l.advance()
			if l.peek() == '=' {
				return Token{}, errUnexpectedChar(l.line, l.col, '=')
			}
			return Token{Type: EQ, Lexeme: "==", Line: line, Col: col}, nil
		}
		return single(ASSIGN)
	case '!':
		if l.peek() == '=' {
			l.advance()
			if l.peek() == '=' {
				return Token{}, errUnexpectedChar(l.line, l.col, '=')
			}
			return Token{Type: NE, Lexeme: "!=", Line: line, Col: col}, nil
		}
		return Token{}, errUnexpectedChar(line, col, '!')
	default:
		return Token{}, errUnexpectedChar(line, col, ch)
	}
}

func errUnexpectedChar(line, col int, ch rune) error {
	return cerr.Userf("Error %d:%d: Expected valid token, but got CHAR('%c')", line, col, ch)
}
