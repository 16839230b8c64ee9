// Package ir lowers a MiniLang AST to a quadruple sequence using the
// classic Dragon-Book backpatching scheme for control flow: a Builder
// exposes new_temp/new_label/emit/emit_label/makelist/merge/backpatch
// primitives, and generation dispatches with a type switch over the AST's
// typed node interfaces.
package ir

import (
	"fmt"

	"github.com/dekarrin/minilangc/internal/ast"
	"github.com/dekarrin/minilangc/internal/cerr"
)

// Quad is one three-address instruction. Unused fields hold "-".
type Quad struct {
	Op   string
	Arg1 string
	Arg2 string
	Res  string
}

const placeholder = "-"

// String renders a quad in the ir.quad artifact line format (without the
// leading "i: " index prefix, which callers add).
func (q Quad) String() string {
	return fmt.Sprintf("(%s, %s, %s, %s)", q.Op, q.Arg1, q.Arg2, q.Res)
}

// BoolCode is the pair of deferred-target lists returned by generating a
// boolean expression: indices of quads whose Res field still needs
// backpatching to the "branch taken" (true) or "fall through" (false)
// target.
type BoolCode struct {
	True  []int
	False []int
}

// Builder accumulates quads and owns the temp/label name counters. It is
// used for exactly one compilation and discarded afterward.
type Builder struct {
	Quads    []Quad
	tempNum  int
	labelNum int
}

func NewBuilder() *Builder {
	return &Builder{}
}

// NewTemp returns a fresh compiler temporary name, monotonically
// increasing: t1, t2, ...
func (b *Builder) NewTemp() string {
	b.tempNum++
	return fmt.Sprintf("t%d", b.tempNum)
}

// NewLabel returns a fresh label name: L1, L2, ...
func (b *Builder) NewLabel() string {
	b.labelNum++
	return fmt.Sprintf("L%d", b.labelNum)
}

// Emit appends a quad and returns its index.
func (b *Builder) Emit(op, a1, a2, res string) int {
	b.Quads = append(b.Quads, Quad{Op: op, Arg1: a1, Arg2: a2, Res: res})
	return len(b.Quads) - 1
}

// EmitLabel emits a LABEL quad.
func (b *Builder) EmitLabel(label string) int {
	return b.Emit("LABEL", placeholder, placeholder, label)
}

// Makelist returns a singleton deferred-target list.
func Makelist(i int) []int {
	return []int{i}
}

// Merge concatenates two deferred-target lists.
func Merge(a, b []int) []int {
	out := make([]int, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return out
}

// Backpatch fills the Res field of every quad index in list with label.
func (b *Builder) Backpatch(list []int, label string) {
	for _, idx := range list {
		b.Quads[idx].Res = label
	}
}

// Generate lowers a full program to its quad sequence.
func Generate(prog ast.Program) ([]Quad, error) {
	b := NewBuilder()
	for _, s := range prog.Stmts {
		if err := b.genStmt(s); err != nil {
			return nil, err
		}
	}
	return b.Quads, nil
}

// place computes the operand string for an arithmetic expression: a
// variable name, a numeric literal, or (for BinOp) a fresh temporary
// holding the computed result.
func (b *Builder) place(e ast.Expr) (string, error) {
	switch n := e.(type) {
	case ast.Id:
		return n.Name, nil
	case ast.Num:
		return n.Value, nil
	case ast.BinOp:
		left, err := b.place(n.Left)
		if err != nil {
			return "", err
		}
		right, err := b.place(n.Right)
		if err != nil {
			return "", err
		}
		t := b.NewTemp()
		b.Emit(string(n.Op), left, right, t)
		return t, nil
	default:
		return "", cerr.Internalf("ir: unhandled expression node %T", e)
	}
}

func (b *Builder) genBool(e ast.BoolExpr) (BoolCode, error) {
	switch n := e.(type) {
	case ast.RelOp:
		left, err := b.place(n.Left)
		if err != nil {
			return BoolCode{}, err
		}
		right, err := b.place(n.Right)
		if err != nil {
			return BoolCode{}, err
		}
		condIdx := b.Emit(string(n.Op), left, right, placeholder)
		gotoIdx := b.Emit("GOTO", placeholder, placeholder, placeholder)
		return BoolCode{True: Makelist(condIdx), False: Makelist(gotoIdx)}, nil

	case ast.LogicOp:
		p, err := b.genBool(n.Left)
		if err != nil {
			return BoolCode{}, err
		}
		switch n.Op {
		case ast.LogicOr:
			l := b.NewLabel()
			b.Backpatch(p.False, l)
			b.EmitLabel(l)
			q, err := b.genBool(n.Right)
			if err != nil {
				return BoolCode{}, err
			}
			return BoolCode{True: Merge(p.True, q.True), False: q.False}, nil
		case ast.LogicAnd:
			l := b.NewLabel()
			b.Backpatch(p.True, l)
			b.EmitLabel(l)
			q, err := b.genBool(n.Right)
			if err != nil {
				return BoolCode{}, err
			}
			return BoolCode{True: q.True, False: Merge(p.False, q.False)}, nil
		default:
			return BoolCode{}, cerr.Internalf("ir: unhandled logic op %q", n.Op)
		}

	case ast.Not:
		inner, err := b.genBool(n.Inner)
		if err != nil {
			return BoolCode{}, err
		}
		return BoolCode{True: inner.False, False: inner.True}, nil

	default:
		return BoolCode{}, cerr.Internalf("ir: unhandled boolean expression node %T", e)
	}
}

func (b *Builder) genStmt(s ast.Stmt) error {
	switch n := s.(type) {
	case ast.Assign:
		p, err := b.place(n.Expr)
		if err != nil {
			return err
		}
		b.Emit("ASSIGN", p, placeholder, n.Name)
		return nil

	case ast.Block:
		for _, child := range n.Stmts {
			if err := b.genStmt(child); err != nil {
				return err
			}
		}
		return nil

	case ast.If:
		cond, err := b.genBool(n.Cond)
		if err != nil {
			return err
		}
		if n.Else == nil {
			lt := b.NewLabel()
			b.Backpatch(cond.True, lt)
			b.EmitLabel(lt)
			if err := b.genStmt(n.Then); err != nil {
				return err
			}
			le := b.NewLabel()
			b.Backpatch(cond.False, le)
			b.EmitLabel(le)
			return nil
		}

		lt := b.NewLabel()
		b.Backpatch(cond.True, lt)
		b.EmitLabel(lt)
		if err := b.genStmt(n.Then); err != nil {
			return err
		}
		lend := b.NewLabel()
		b.Emit("GOTO", placeholder, placeholder, lend)
		lelse := b.NewLabel()
		b.Backpatch(cond.False, lelse)
		b.EmitLabel(lelse)
		if err := b.genStmt(n.Else); err != nil {
			return err
		}
		b.EmitLabel(lend)
		return nil

	case ast.While:
		lstart := b.NewLabel()
		b.EmitLabel(lstart)
		cond, err := b.genBool(n.Cond)
		if err != nil {
			return err
		}
		lbody := b.NewLabel()
		b.Backpatch(cond.True, lbody)
		b.EmitLabel(lbody)
		if err := b.genStmt(n.Body); err != nil {
			return err
		}
		b.Emit("GOTO", placeholder, placeholder, lstart)
		lend := b.NewLabel()
		b.Backpatch(cond.False, lend)
		b.EmitLabel(lend)
		return nil

	default:
		return cerr.Internalf("ir: unhandled statement node %T", s)
	}
}
