/*
Minilangc compiles MiniLang source through the fixed lexer -> LALR parser
-> backpatched IR -> CFG/optimizer -> stack-machine codegen pipeline.

Usage:

	minilangc [flags]

The flags are:

	-v, --version
		Give the current version of minilangc and then exit.

	-m, --mode {cli,repl,gui}
		Run in one-shot CLI mode (default), interactive REPL mode, or GUI
		mode. GUI mode is not supported by this build and exits with code 2.

	-i, --input FILE
		The MiniLang source file to compile. Required in cli mode.

	-s, --stage STAGE
		Which pipeline stage to run and report on: lexer, table, parse, ir,
		opt, codegen, or all (default). Earlier stages run implicitly as
		needed.

	-c, --config FILE
		Path to a minilangc.toml configuration file. Defaults to
		"minilangc.toml" in the current directory; its absence is not an
		error.

	--verbose
		For any stage other than lexer, also print the ACTION/GOTO table as
		an aligned ASCII dump to stdout, whether or not the table stage ran.

Exit code 0 on success, 1 on any user-facing error, 2 on an argument error
or unsupported mode.
*/
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/dekarrin/minilangc/internal/config"
	"github.com/dekarrin/minilangc/internal/pipeline"
	"github.com/dekarrin/minilangc/internal/repl"
	"github.com/dekarrin/minilangc/internal/version"
)

const (
	ExitSuccess = iota
	ExitUserError
	ExitArgError
)

var (
	returnCode  = ExitSuccess
	flagVersion = pflag.BoolP("version", "v", false, "Give the current version and exit")
	flagMode    = pflag.StringP("mode", "m", "cli", "Run mode: cli, repl, or gui")
	flagInput   = pflag.StringP("input", "i", "", "MiniLang source file to compile (required in cli mode)")
	flagStage   = pflag.StringP("stage", "s", pipeline.StageAll, "Pipeline stage to run: lexer, table, parse, ir, opt, codegen, all")
	flagConfig  = pflag.StringP("config", "c", "minilangc.toml", "Path to minilangc.toml")
	flagReveal  = pflag.Bool("reveal", false, "No-op; retained for CLI compatibility with collaborator tooling")
	flagVerbose = pflag.Bool("verbose", false, "For any stage other than lexer, also print the ACTION/GOTO table dump")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		}
		os.Exit(returnCode)
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	if *flagReveal {
		fmt.Fprintln(os.Stderr, "Note: --reveal is not supported outside a desktop GUI context; ignoring it")
	}

	cfgVal, err := config.Load(*flagConfig)
	if err != nil {
		fail(err)
		return
	}

	switch *flagMode {
	case "gui":
		fmt.Fprintln(os.Stderr, "Error: gui mode is not supported by this build")
		returnCode = ExitArgError
		return

	case "repl":
		if err := repl.Run(cfgVal, os.Stdout); err != nil {
			fail(err)
		}
		return

	case "cli":
		runCLI(cfgVal)
		return

	default:
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q (expected cli, repl, or gui)\n", *flagMode)
		returnCode = ExitArgError
		return
	}
}

func runCLI(cfgVal config.Config) {
	if *flagInput == "" {
		fmt.Fprintln(os.Stderr, "Error: --input is required in cli mode")
		returnCode = ExitArgError
		return
	}

	if !validStage(*flagStage) {
		fmt.Fprintf(os.Stderr, "Error: unknown stage %q\n", *flagStage)
		returnCode = ExitArgError
		return
	}

	outDir := pipeline.OutDirFor(cfgVal.OutputRoot, *flagInput)
	written, err := pipeline.Run(*flagStage, *flagInput, outDir, cfgVal)
	if err != nil {
		fail(err)
		return
	}

	for _, name := range written {
		fmt.Println(name)
	}

	if *flagVerbose && *flagStage != pipeline.StageLexer {
		table, err := pipeline.LoadTable(outDir)
		if err != nil {
			fail(err)
			return
		}
		fmt.Println(table.Dump(cfgVal.TraceColWidth))
	}
}

func validStage(stage string) bool {
	switch stage {
	case pipeline.StageLexer, pipeline.StageTable, pipeline.StageParse,
		pipeline.StageIR, pipeline.StageOpt, pipeline.StageCodegen, pipeline.StageAll:
		return true
	}
	return false
}

// fail reports err to stderr and sets the process exit code. Both user
// errors and Internal errors (cerr.IsUser is true for both - Internal is
// a labeled subcategory, not a separate Go type) exit 1; argument errors
// exit 2, success exits 0.
func fail(err error) {
	fmt.Fprintln(os.Stderr, err.Error())
	returnCode = ExitUserError
}
