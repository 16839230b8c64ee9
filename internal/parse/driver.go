package parse

import (
	"sort"
	"strconv"
	"strings"

	"github.com/dekarrin/minilangc/internal/ast"
	"github.com/dekarrin/minilangc/internal/cerr"
	"github.com/dekarrin/minilangc/internal/grammar"
	"github.com/dekarrin/minilangc/internal/lex"
	"github.com/dekarrin/minilangc/internal/util"
)

// TraceLine is one row of the parse trace.
type TraceLine struct {
	Step    int
	States  string
	Symbols string
	Input   string
	Action  string
}

// Result is the output of a successful parse: the built AST plus the full
// trace.
type Result struct {
	Program ast.Program
	Trace   []TraceLine
}

// Parse runs the table-driven shift/reduce parser over tokens (without a
// trailing EOF; Parse appends the synthetic EOF itself) using table,
// simultaneously building the AST and recording a trace line before every
// action is applied.
func Parse(table *Table, tokens []lex.Token) (*Result, error) {
	eofTok := syntheticEOF(tokens)
	stream := append(append([]lex.Token{}, tokens...), eofTok)

	stateStack := []int{0}
	symbolStack := []string{}
	valueStack := []interface{}{}

	var trace []TraceLine
	pos := 0
	step := 0

	for {
		s := stateStack[len(stateStack)-1]
		cur := stream[pos]
		a := string(cur.Type)

		action, ok := table.Action[s][a]

		trace = append(trace, TraceLine{
			Step:    step,
			States:  formatInts(stateStack),
			Symbols: strings.Join(symbolStack, " "),
			Input:   formatRemainingInput(stream[pos:]),
			Action:  formatAction(action, ok),
		})
		step++

		if !ok {
			return nil, errUnexpected(s, table, cur)
		}

		switch action.Kind {
		case ActionShift:
			symbolStack = append(symbolStack, a)
			valueStack = append(valueStack, cur)
			stateStack = append(stateStack, action.State)
			if cur.Type != lex.EOF {
				pos++
			}

		case ActionReduce:
			prod := grammar.ByID[action.Prod]
			k := len(prod.RHS)

			poppedValues := append([]interface{}{}, valueStack[len(valueStack)-k:]...)

			symbolStack = symbolStack[:len(symbolStack)-k]
			valueStack = valueStack[:len(valueStack)-k]
			stateStack = stateStack[:len(stateStack)-k]

			sPrime := stateStack[len(stateStack)-1]
			symbolStack = append(symbolStack, prod.LHS)

			gotoState, ok := table.Goto[sPrime][prod.LHS]
			if !ok {
				return nil, cerr.Internalf("parser: missing GOTO[%d][%s]", sPrime, prod.LHS)
			}
			stateStack = append(stateStack, gotoState)

			node, err := build(prod.ID, poppedValues)
			if err != nil {
				return nil, err
			}
			valueStack = append(valueStack, node)

		case ActionAccept:
			prog, ok := valueStack[len(valueStack)-1].(ast.Program)
			if !ok {
				return nil, cerr.Internalf("parser: accept state did not produce a Program node")
			}
			return &Result{Program: prog, Trace: trace}, nil
		}
	}
}

func syntheticEOF(tokens []lex.Token) lex.Token {
	if len(tokens) == 0 {
		return lex.Token{Index: 0, Type: lex.EOF, Line: 1, Col: 1}
	}
	last := tokens[len(tokens)-1]
	line, col := last.Line, last.Col+len([]rune(last.Lexeme))
	return lex.Token{Index: last.Index + 1, Type: lex.EOF, Line: line, Col: col}
}

func formatInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, " ")
}

func formatRemainingInput(toks []lex.Token) string {
	parts := make([]string, len(toks))
	for i, t := range toks {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ")
}

func formatAction(a Action, ok bool) string {
	if !ok {
		return "error"
	}
	return a.String()
}

func errUnexpected(state int, table *Table, got lex.Token) error {
	var expected []string
	for term := range table.Action[state] {
		expected = append(expected, term)
	}
	sort.Strings(expected)
	return cerr.Userf("Error %d:%d: Expected %s, but got %s", got.Line, got.Col, util.MakeTextList(expected), got.String())
}

// build constructs the AST node for a completed production from its
// popped value-stack entries, following the exhaustive table in spec
// section 4.3.
func build(prodID int, vals []interface{}) (interface{}, error) {
	switch prodID {
	case 1: // S' -> Program EOF
		return vals[0], nil
	case 2: // Program -> StmtList
		return ast.Program{Stmts: vals[0].([]ast.Stmt)}, nil
	case 3: // StmtList -> Stmt StmtList
		stmt := vals[0].(ast.Stmt)
		rest := vals[1].([]ast.Stmt)
		return append([]ast.Stmt{stmt}, rest...), nil
	case 4: // StmtList -> epsilon
		return []ast.Stmt{}, nil
	case 5, 6: // Stmt -> Matched | Unmatched
		return vals[0].(ast.Stmt), nil
	case 7: // Matched -> AssignStmt
		return vals[0].(ast.Stmt), nil
	case 8: // Matched -> WHILE LPAREN Bool RPAREN Matched
		return ast.While{Cond: vals[2].(ast.BoolExpr), Body: vals[4].(ast.Stmt)}, nil
	case 9: // Matched -> Block
		return vals[0].(ast.Stmt), nil
	case 10: // Matched -> IF LPAREN Bool RPAREN Matched ELSE Matched
		return ast.If{Cond: vals[2].(ast.BoolExpr), Then: vals[4].(ast.Stmt), Else: vals[6].(ast.Stmt)}, nil
	case 11: // Unmatched -> IF LPAREN Bool RPAREN Stmt
		return ast.If{Cond: vals[2].(ast.BoolExpr), Then: vals[4].(ast.Stmt), Else: nil}, nil
	case 12: // Unmatched -> IF LPAREN Bool RPAREN Matched ELSE Unmatched
		return ast.If{Cond: vals[2].(ast.BoolExpr), Then: vals[4].(ast.Stmt), Else: vals[6].(ast.Stmt)}, nil
	case 13: // Unmatched -> WHILE LPAREN Bool RPAREN Unmatched
		return ast.While{Cond: vals[2].(ast.BoolExpr), Body: vals[4].(ast.Stmt)}, nil
	case 14: // AssignStmt -> ID ASSIGN Expr SEMI
		name := vals[0].(lex.Token).Lexeme
		return ast.Assign{Name: name, Expr: vals[2].(ast.Expr)}, nil
	case 15: // Block -> LBRACE StmtList RBRACE
		return ast.Block{Stmts: vals[1].([]ast.Stmt)}, nil
	case 16: // Expr -> Expr PLUS Term
		return ast.BinOp{Op: ast.OpAdd, Left: vals[0].(ast.Expr), Right: vals[2].(ast.Expr)}, nil
	case 17: // Expr -> Expr MINUS Term
		return ast.BinOp{Op: ast.OpSub, Left: vals[0].(ast.Expr), Right: vals[2].(ast.Expr)}, nil
	case 18: // Expr -> Term
		return vals[0].(ast.Expr), nil
	case 19: // Term -> Term MUL Factor
		return ast.BinOp{Op: ast.OpMul, Left: vals[0].(ast.Expr), Right: vals[2].(ast.Expr)}, nil
	case 20: // Term -> Term DIV Factor
		return ast.BinOp{Op: ast.OpDiv, Left: vals[0].(ast.Expr), Right: vals[2].(ast.Expr)}, nil
	case 21: // Term -> Factor
		return vals[0].(ast.Expr), nil
	case 22: // Factor -> ID
		return ast.Id{Name: vals[0].(lex.Token).Lexeme}, nil
	case 23: // Factor -> NUM
		return ast.Num{Value: vals[0].(lex.Token).Lexeme}, nil
	case 24: // Factor -> LPAREN Expr RPAREN
		return vals[1].(ast.Expr), nil
	case 25: // Bool -> OrExpr
		return vals[0].(ast.BoolExpr), nil
	case 26: // OrExpr -> OrExpr OR AndExpr
		return ast.LogicOp{Op: ast.LogicOr, Left: vals[0].(ast.BoolExpr), Right: vals[2].(ast.BoolExpr)}, nil
	case 27: // OrExpr -> AndExpr
		return vals[0].(ast.BoolExpr), nil
	case 28: // AndExpr -> AndExpr AND NotExpr
		return ast.LogicOp{Op: ast.LogicAnd, Left: vals[0].(ast.BoolExpr), Right: vals[2].(ast.BoolExpr)}, nil
	case 29: // AndExpr -> NotExpr
		return vals[0].(ast.BoolExpr), nil
	case 30: // NotExpr -> NOT NotExpr
		return ast.Not{Inner: vals[1].(ast.BoolExpr)}, nil
	case 31: // NotExpr -> LPAREN Bool RPAREN
		return vals[1].(ast.BoolExpr), nil
	case 32: // NotExpr -> RelExpr
		return vals[0].(ast.BoolExpr), nil
	case 33: // RelExpr -> Expr EQ Expr
		return ast.RelOp{Op: ast.RelEq, Left: vals[0].(ast.Expr), Right: vals[2].(ast.Expr)}, nil
	case 34: // RelExpr -> Expr NE Expr
		return ast.RelOp{Op: ast.RelNe, Left: vals[0].(ast.Expr), Right: vals[2].(ast.Expr)}, nil
	case 35: // RelExpr -> Expr LT Expr
		return ast.RelOp{Op: ast.RelLt, Left: vals[0].(ast.Expr), Right: vals[2].(ast.Expr)}, nil
	case 36: // RelExpr -> Expr GT Expr
		return ast.RelOp{Op: ast.RelGt, Left: vals[0].(ast.Expr), Right: vals[2].(ast.Expr)}, nil
	default:
		return nil, cerr.Internalf("parser: no AST builder for production %d", prodID)
	}
}
