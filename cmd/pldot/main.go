// pldot renders the parse tree or the AST of a PL/0 function as a DOT graph.
//
// Usage:
//
//	pldot [-P|-A|-Ad|-Ac|-Acd] <infile> <outfile>
//
//	-P    parse tree
//	-A    AST, unoptimized
//	-Ad   AST after dead code elimination
//	-Ac   AST after constant propagation
//	-Acd  AST after dead code elimination and constant propagation
//
// Diagnostics for broken input go to standard output, same as the library's
// default; the exit code is 1 on any failure.
package main

import (
	"fmt"
	"os"

	pljit "github.com/danielgrittner/jit-compiler"
)

const appName = "pldot"

func usage() {
	fmt.Fprintf(os.Stderr, `Usage:
  %s [-P|-A|-Ad|-Ac|-Acd] <infile> <outfile>

  -P    render the parse tree
  -A    render the AST without optimizations
  -Ad   render the AST after dead code elimination
  -Ac   render the AST after constant propagation
  -Acd  render the AST after both optimization passes
`, appName)
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) != 3 {
		usage()
		return 1
	}

	mode := args[0]
	infile := args[1]
	outfile := args[2]

	parseTree := false
	dce := false
	constProp := false

	switch mode {
	case "-P":
		parseTree = true
	case "-A":
	case "-Ad":
		dce = true
	case "-Ac":
		constProp = true
	case "-Acd":
		dce = true
		constProp = true
	default:
		usage()
		return 1
	}

	source, err := os.ReadFile(infile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, infile, err)
		return 1
	}

	manager := pljit.NewSourceManager(string(source))

	parser := pljit.NewParser(manager)
	definition := parser.ParseFunctionDefinition()
	if definition == nil {
		return 1
	}

	out, err := os.Create(outfile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot create %s: %v\n", appName, outfile, err)
		return 1
	}
	defer out.Close()

	if parseTree {
		if err := pljit.WriteParseTreeDot(out, definition, manager); err != nil {
			fmt.Fprintf(os.Stderr, "%s: cannot write %s: %v\n", appName, outfile, err)
			return 1
		}
		return 0
	}

	analyzer := pljit.NewAnalyzer(manager)
	fn := analyzer.AnalyzeFunction(definition)
	if fn == nil {
		return 1
	}

	if dce {
		pljit.DeadCodeElimination{}.Run(fn, analyzer.Symbols())
	}
	if constProp {
		pljit.ConstantPropagation{}.Run(fn, analyzer.Symbols())
	}

	if err := pljit.WriteASTDot(out, fn, analyzer.Symbols()); err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot write %s: %v\n", appName, outfile, err)
		return 1
	}

	return 0
}
