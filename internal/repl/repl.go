// Package repl implements minilangc's interactive mode: read one MiniLang
// statement (or a brace-delimited block, all on one input - the grammar
// has no use for newlines) per input, compile it as an ephemeral program
// in memory, and print its tokens/IR/optimized-IR/assembly immediately.
// Nothing touches disk; this is a convenience collaborator for exploring
// the pipeline, separate from the file-driven core. Line editing uses
// chzyer/readline.
package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/dekarrin/minilangc/internal/codegen"
	"github.com/dekarrin/minilangc/internal/config"
	"github.com/dekarrin/minilangc/internal/ir"
	"github.com/dekarrin/minilangc/internal/lex"
	"github.com/dekarrin/minilangc/internal/optimize"
	"github.com/dekarrin/minilangc/internal/parse"
	"github.com/dekarrin/minilangc/internal/tablecache"
)

const prompt = "minilangc> "

// Run starts an interactive session: each input is compiled as its own
// ephemeral program, or is the literal command "quit"/"exit" to end the
// session.
func Run(cfgVal config.Config, out io.Writer) error {
	rl, err := readline.NewEx(&readline.Config{Prompt: prompt})
	if err != nil {
		return fmt.Errorf("create readline session: %w", err)
	}
	defer rl.Close()

	table, err := tablecache.Get()
	if err != nil {
		return err
	}

	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF or readline.ErrInterrupt
			return nil
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return nil
		}

		if compErr := compile(table, cfgVal, line, out); compErr != nil {
			fmt.Fprintf(out, "%s\n", compErr.Error())
		}
	}
}

// compile runs src through the full pipeline in memory and writes each
// stage's output to out as soon as it's ready: tokens, then IR, then
// optimized IR, then assembly.
func compile(table *parse.Table, cfgVal config.Config, src string, out io.Writer) error {
	tokens, err := lex.Tokenize(src)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "tokens:")
	for _, tok := range tokens {
		fmt.Fprintf(out, "  %-10s %q\n", tok.Type, tok.Lexeme)
	}

	result, err := parse.Parse(table, tokens)
	if err != nil {
		return err
	}

	quads, err := ir.Generate(result.Program)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "ir:")
	fmt.Fprint(out, codegen.Dump(quads))

	optimized := quads
	if cfgVal.OptimizerOn {
		optimized, _, err = optimize.Optimize(quads, cfgVal.MaxRounds)
		if err != nil {
			return err
		}
	}
	fmt.Fprintln(out, "optimized ir:")
	fmt.Fprint(out, codegen.Dump(optimized))

	asm, err := codegen.Generate(optimized)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "assembly:")
	fmt.Fprintln(out, strings.Join(asm, "\n"))

	return nil
}
