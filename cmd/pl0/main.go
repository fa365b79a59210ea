// pl0 is an interactive shell around the pljit library.
//
// Function sources are entered directly (multi-line input ends at the '.'
// program terminator) and registered with a shared JIT. The last entered
// function can then be invoked and inspected.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/davecgh/go-spew/spew"
	"github.com/peterh/liner"

	pljit "github.com/danielgrittner/jit-compiler"
)

const (
	appName     = "pl0"
	historyFile = ".pl0_history"
	promptMain  = "pl0> "
	promptCont  = "...> "
)

var (
	banner   = fmt.Sprintf("pljit %s shell\nEnter a function (ends with '.'), Ctrl+C cancels input, Ctrl+D exits.\nType :help for commands.", pljit.Version)
	helpText = `
Shell commands:
  :call [args...]  Invoke the last entered function
  :cst             Print the parse tree of the last function as DOT
  :ast             Print the optimized AST of the last function as DOT
  :dump            Dump the optimized AST data structure
  :help            Show this help
  :quit            Exit the shell
`
)

func red(s string) string   { return "\x1b[31m" + s + "\x1b[0m" }
func green(s string) string { return "\x1b[32m" + s + "\x1b[0m" }
func blue(s string) string  { return "\x1b[94m" + s + "\x1b[0m" }

func main() {
	os.Exit(repl())
}

type session struct {
	jit *pljit.Jit

	// last entered function
	source  string
	handle  pljit.FunctionHandle
	defined bool
}

func repl() int {
	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	s := &session{jit: pljit.NewJit()}

	for {
		input, ok := readInput(ln)
		if !ok {
			fmt.Println()
			break
		}

		trimmed := strings.TrimSpace(input)
		if trimmed == "" {
			continue
		}

		if strings.HasPrefix(trimmed, ":") {
			if quit := s.command(trimmed); quit {
				return 0
			}
			ln.AppendHistory(trimmed)
			continue
		}

		s.source = input
		s.handle = s.jit.Register(input)
		s.defined = true
		fmt.Println(green("function registered; invoke it with :call"))
		ln.AppendHistory(strings.ReplaceAll(input, "\n", " "))
	}

	return 0
}

// readInput reads one command or one function source. Sources continue across
// lines until the program terminator '.' has been typed.
func readInput(ln *liner.State) (string, bool) {
	var b strings.Builder

	for {
		var line string
		var err error
		if b.Len() == 0 {
			line, err = ln.Prompt(promptMain)
		} else {
			line, err = ln.Prompt(promptCont)
		}
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			return "", true
		}

		if b.Len() == 0 && strings.HasPrefix(strings.TrimSpace(line), ":") {
			return line, true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		if strings.Contains(line, ".") {
			return b.String(), true
		}
	}
}

// command runs one ':' command; it reports whether the shell should exit.
func (s *session) command(input string) bool {
	fields := strings.Fields(input)

	switch strings.ToLower(fields[0]) {
	case ":quit":
		return true

	case ":help":
		fmt.Print(helpText)

	case ":call":
		if !s.defined {
			fmt.Println(red("no function entered yet"))
			break
		}
		args := make([]int64, 0, len(fields)-1)
		for _, field := range fields[1:] {
			n, err := strconv.ParseInt(field, 10, 64)
			if err != nil {
				fmt.Println(red(fmt.Sprintf("invalid argument %q", field)))
				return false
			}
			args = append(args, n)
		}
		result := s.handle.Invoke(args...)
		if result.Code != pljit.Success {
			fmt.Println(red(result.Code.String()))
			break
		}
		fmt.Println(blue(strconv.FormatInt(result.Value, 10)))

	case ":cst":
		s.inspect(func(manager *pljit.SourceManager, definition *pljit.FunctionDefinition) {
			_ = pljit.WriteParseTreeDot(os.Stdout, definition, manager)
		}, nil)

	case ":ast":
		s.inspect(nil, func(fn *pljit.Function, symbols *pljit.SymbolTable) {
			_ = pljit.WriteASTDot(os.Stdout, fn, symbols)
		})

	case ":dump":
		s.inspect(nil, func(fn *pljit.Function, symbols *pljit.SymbolTable) {
			spew.Dump(fn)
		})

	default:
		fmt.Println("unknown command. Type :help for the command list.")
	}

	return false
}

// inspect reruns the front end over the last entered source and hands the
// result to exactly one of the callbacks.
func (s *session) inspect(
	cst func(*pljit.SourceManager, *pljit.FunctionDefinition),
	ast func(*pljit.Function, *pljit.SymbolTable),
) {
	if !s.defined {
		fmt.Println(red("no function entered yet"))
		return
	}

	manager := pljit.NewSourceManager(s.source)
	parser := pljit.NewParser(manager)
	definition := parser.ParseFunctionDefinition()
	if definition == nil {
		return
	}

	if cst != nil {
		cst(manager, definition)
		return
	}

	analyzer := pljit.NewAnalyzer(manager)
	fn := analyzer.AnalyzeFunction(definition)
	if fn == nil {
		return
	}

	pljit.DeadCodeElimination{}.Run(fn, analyzer.Symbols())
	pljit.ConstantPropagation{}.Run(fn, analyzer.Symbols())

	ast(fn, analyzer.Symbols())
}
