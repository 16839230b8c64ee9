// Package codegen lowers an optimized quad sequence to stack-machine
// assembly using a per-quad lowering table keyed on opcode. It also parses
// the ir.quad/ir_opt.quad text format, since that file is the re-entry
// surface between pipeline stages.
package codegen

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/dekarrin/minilangc/internal/cerr"
	"github.com/dekarrin/minilangc/internal/ir"
)

// Dump renders quads in the ir.quad/ir_opt.quad artifact line format:
// "i: (op, arg1, arg2, res)", one per line.
func Dump(quads []ir.Quad) string {
	var sb strings.Builder
	for i, q := range quads {
		fmt.Fprintf(&sb, "%d: %s\n", i, q.String())
	}
	return sb.String()
}

// ParseQuadFile parses the ir.quad text format back into a quad sequence.
// Lines are "i: (op, arg1, arg2, res)"; blank lines are skipped.
func ParseQuadFile(text string) ([]ir.Quad, error) {
	var quads []ir.Quad
	for lineNo, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		colon := strings.Index(line, ":")
		if colon < 0 {
			return nil, cerr.Userf("malformed quad file at line %d: missing index", lineNo+1)
		}
		body := strings.TrimSpace(line[colon+1:])
		body = strings.TrimPrefix(body, "(")
		body = strings.TrimSuffix(body, ")")
		fields := strings.Split(body, ",")
		if len(fields) != 4 {
			return nil, cerr.Userf("malformed quad file at line %d: expected 4 fields, got %d", lineNo+1, len(fields))
		}
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		quads = append(quads, ir.Quad{Op: fields[0], Arg1: fields[1], Arg2: fields[2], Res: fields[3]})
	}
	return quads, nil
}

var arithOpcode = map[string]string{
	"ADD": "ADD",
	"SUB": "SUB",
	"MUL": "MUL",
	"DIV": "DIV",
}

var relOpcode = map[string]string{
	"IF_GT": "GT",
	"IF_LT": "LT",
	"IF_EQ": "EQ",
	"IF_NE": "NE",
}

// Generate validates labels and emits stack-machine assembly lines for
// quads. Every GOTO/IF_* target must be defined by some LABEL quad; if
// not, Generate fails reporting the lexicographically smallest undefined
// name.
func Generate(quads []ir.Quad) ([]string, error) {
	defined := map[string]bool{}
	for _, q := range quads {
		if q.Op == "LABEL" {
			defined[q.Res] = true
		}
	}

	var missing []string
	seenMissing := map[string]bool{}
	for _, q := range quads {
		if (q.Op == "GOTO" || isIfOp(q.Op)) && !defined[q.Res] && !seenMissing[q.Res] {
			seenMissing[q.Res] = true
			missing = append(missing, q.Res)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, cerr.Userf("Error: undefined label %s", missing[0])
	}

	var lines []string
	emit := func(format string, a ...interface{}) {
		lines = append(lines, fmt.Sprintf(format, a...))
	}
	load := func(operand string) {
		if isLiteralOperand(operand) {
			emit("PUSH %s", operand)
		} else {
			emit("LOAD %s", operand)
		}
	}

	for _, q := range quads {
		switch {
		case q.Op == "LABEL":
			emit("%s:", q.Res)
		case q.Op == "GOTO":
			emit("JMP %s", q.Res)
		case q.Op == "ASSIGN":
			load(q.Arg1)
			emit("STORE %s", q.Res)
		case arithOpcode[q.Op] != "":
			load(q.Arg1)
			load(q.Arg2)
			emit(arithOpcode[q.Op])
			emit("STORE %s", q.Res)
		case isIfOp(q.Op):
			load(q.Arg1)
			load(q.Arg2)
			emit(relOpcode[q.Op])
			emit("JNZ %s", q.Res)
		default:
			return nil, cerr.Internalf("codegen: unknown opcode %q", q.Op)
		}
	}

	lines = append(lines, "HALT")
	return lines, nil
}

func isIfOp(op string) bool {
	_, ok := relOpcode[op]
	return ok
}

func isLiteralOperand(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}
