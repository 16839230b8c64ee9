// Package grammar holds the fixed MiniLang context-free grammar: its 36
// productions, terminal/nonterminal vocabularies, and FIRST-set computation.
// The grammar is a constant of the program, not data read from a file, so
// this package has no parsing or construction API beyond the package-level
// Productions, Terminals and Nonterminals values.
package grammar

import (
	"fmt"
	"sort"
	"strings"
)

// Production is one grammar rule, LHS -> RHS[0] RHS[1] ... RHS[n-1]. An
// empty RHS is the epsilon production. Productions are immutable and
// identified by their 1-based ID.
type Production struct {
	ID  int
	LHS string
	RHS []string
}

func (p Production) String() string {
	rhs := strings.Join(p.RHS, " ")
	if rhs == "" {
		rhs = "ε"
	}
	return fmt.Sprintf("%d: %s -> %s", p.ID, p.LHS, rhs)
}

// AugmentedStart and StartSymbol name the grammar's start productions. The
// augmented start symbol only ever appears in production 1 and is never a
// legal lookahead/GOTO target symbol in its own right.
const (
	StartSymbol    = "Program"
	AugmentedStart = "S'"
	EOF            = "EOF"
)

// Terminals lists every terminal in a fixed, human-sensible order (not
// alphabetical); Terminals is re-sorted wherever a deterministic ordering
// is required (alphabetical in symbols.txt; alphabetical with EOF last in
// action_goto.csv and the canonical-collection BFS).
var Terminals = []string{
	"ID", "NUM", "IF", "ELSE", "WHILE", "AND", "OR", "NOT", "ASSIGN",
	"PLUS", "MINUS", "MUL", "DIV", "EQ", "NE", "LT", "GT",
	"LPAREN", "RPAREN", "LBRACE", "RBRACE", "SEMI", EOF,
}

// Nonterminals lists every nonterminal except the augmented start symbol,
// which callers handle separately (it appears only as the LHS of
// production 1, never on any RHS, and is never a legal GOTO column).
var Nonterminals = []string{
	"Program", "StmtList", "Stmt", "Matched", "Unmatched", "AssignStmt",
	"Block", "Expr", "Term", "Factor", "Bool", "OrExpr", "AndExpr",
	"NotExpr", "RelExpr",
}

// Productions is the fixed set of 36 MiniLang productions. Production 1 is
// the augmentation.
var Productions = []Production{
	{1, AugmentedStart, []string{"Program", "EOF"}},
	{2, "Program", []string{"StmtList"}},
	{3, "StmtList", []string{"Stmt", "StmtList"}},
	{4, "StmtList", nil},
	{5, "Stmt", []string{"Matched"}},
	{6, "Stmt", []string{"Unmatched"}},
	{7, "Matched", []string{"AssignStmt"}},
	{8, "Matched", []string{"WHILE", "LPAREN", "Bool", "RPAREN", "Matched"}},
	{9, "Matched", []string{"Block"}},
	{10, "Matched", []string{"IF", "LPAREN", "Bool", "RPAREN", "Matched", "ELSE", "Matched"}},
	{11, "Unmatched", []string{"IF", "LPAREN", "Bool", "RPAREN", "Stmt"}},
	{12, "Unmatched", []string{"IF", "LPAREN", "Bool", "RPAREN", "Matched", "ELSE", "Unmatched"}},
	{13, "Unmatched", []string{"WHILE", "LPAREN", "Bool", "RPAREN", "Unmatched"}},
	{14, "AssignStmt", []string{"ID", "ASSIGN", "Expr", "SEMI"}},
	{15, "Block", []string{"LBRACE", "StmtList", "RBRACE"}},
	{16, "Expr", []string{"Expr", "PLUS", "Term"}},
	{17, "Expr", []string{"Expr", "MINUS", "Term"}},
	{18, "Expr", []string{"Term"}},
	{19, "Term", []string{"Term", "MUL", "Factor"}},
	{20, "Term", []string{"Term", "DIV", "Factor"}},
	{21, "Term", []string{"Factor"}},
	{22, "Factor", []string{"ID"}},
	{23, "Factor", []string{"NUM"}},
	{24, "Factor", []string{"LPAREN", "Expr", "RPAREN"}},
	{25, "Bool", []string{"OrExpr"}},
	{26, "OrExpr", []string{"OrExpr", "OR", "AndExpr"}},
	{27, "OrExpr", []string{"AndExpr"}},
	{28, "AndExpr", []string{"AndExpr", "AND", "NotExpr"}},
	{29, "AndExpr", []string{"NotExpr"}},
	{30, "NotExpr", []string{"NOT", "NotExpr"}},
	{31, "NotExpr", []string{"LPAREN", "Bool", "RPAREN"}},
	{32, "NotExpr", []string{"RelExpr"}},
	{33, "RelExpr", []string{"Expr", "EQ", "Expr"}},
	{34, "RelExpr", []string{"Expr", "NE", "Expr"}},
	{35, "RelExpr", []string{"Expr", "LT", "Expr"}},
	{36, "RelExpr", []string{"Expr", "GT", "Expr"}},
}

// ByID maps a production ID to the Production, for O(1) lookup during
// table construction and parsing.
var ByID = func() map[int]Production {
	m := make(map[int]Production, len(Productions))
	for _, p := range Productions {
		m[p.ID] = p
	}
	return m
}()

// ByLHS groups productions by their left-hand side nonterminal, in ID order.
var ByLHS = func() map[string][]Production {
	m := make(map[string][]Production)
	for _, p := range Productions {
		m[p.LHS] = append(m[p.LHS], p)
	}
	return m
}()

var terminalSet = func() map[string]bool {
	m := make(map[string]bool, len(Terminals))
	for _, t := range Terminals {
		m[t] = true
	}
	return m
}()

var nonterminalSet = func() map[string]bool {
	m := make(map[string]bool, len(Nonterminals)+1)
	for _, nt := range Nonterminals {
		m[nt] = true
	}
	m[AugmentedStart] = true
	return m
}()

// IsTerminal reports whether sym is one of the grammar's terminals.
func IsTerminal(sym string) bool {
	return terminalSet[sym]
}

// IsNonterminal reports whether sym is one of the grammar's nonterminals
// (including the augmented start symbol).
func IsNonterminal(sym string) bool {
	return nonterminalSet[sym]
}

// DumpProductions renders the production list in the productions.txt
// artifact format: one "id: LHS -> RHS" line per production, epsilon
// spelled out.
func DumpProductions() string {
	var sb strings.Builder
	for _, p := range Productions {
		sb.WriteString(p.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// DumpSymbols renders the symbols.txt artifact: two lines, terminals then
// nonterminals, each alphabetically sorted. The augmented start symbol is
// never included; it is an implementation detail of table construction, not
// a symbol a MiniLang program's grammar exposes.
func DumpSymbols() string {
	terms := make([]string, len(Terminals))
	copy(terms, Terminals)
	sort.Strings(terms)

	nonterms := make([]string, len(Nonterminals))
	copy(nonterms, Nonterminals)
	sort.Strings(nonterms)

	return fmt.Sprintf("Terminals: %s\nNonterminals: %s\n", strings.Join(terms, ", "), strings.Join(nonterms, ", "))
}
