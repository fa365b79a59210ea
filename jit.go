// jit.go — the public just-in-time compilation façade.
//
// A Jit owns any number of registered functions. Registration only stores the
// source; the full pipeline (lex, parse, analyze, optimize) runs lazily on
// the first invocation of each function and exactly once, no matter how many
// goroutines race on that first call. Compilation failure is terminal: every
// later invocation of a broken function reports CompileError without
// recompiling.
//
// Handles stay valid for the lifetime of the Jit and are safe for concurrent
// use. All diagnostics — compile-time and runtime — go to the writer the Jit
// was created with.
package pljit

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Version of the pljit library.
const Version = "1.0.0"

// ResultCode classifies the outcome of a function invocation.
type ResultCode int

const (
	// Success: the function ran to its return-statement.
	Success ResultCode = iota
	// CompileError: the source failed to compile; the value is meaningless.
	CompileError
	// RuntimeError: the function divided by zero.
	RuntimeError
	// InvalidFunctionCall: the argument count does not match the declared
	// parameter count.
	InvalidFunctionCall
)

func (c ResultCode) String() string {
	switch c {
	case Success:
		return "success"
	case CompileError:
		return "compile error"
	case RuntimeError:
		return "runtime error"
	case InvalidFunctionCall:
		return "invalid function call"
	default:
		return "unknown"
	}
}

// Result is the outcome of one invocation. On any non-success code the value
// is -1.
type Result struct {
	Value int64
	Code  ResultCode
}

// CantFail unwraps a Result that the caller knows cannot fail. It panics on
// any non-success code.
func CantFail(result Result) int64 {
	if result.Code != Success {
		panic("pljit: invocation failed: " + result.Code.String())
	}
	return result.Value
}

type frameState int

const (
	stateNotCompiled frameState = iota
	stateCompiled
	stateCompileError
)

// functionFrame holds one registered function. The mutex guards state,
// symbols and fn; after the state has left stateNotCompiled those fields are
// never written again.
type functionFrame struct {
	manager *SourceManager
	out     io.Writer

	mu      sync.RWMutex
	state   frameState
	symbols *SymbolTable
	fn      *Function
}

// compile runs the full pipeline. The caller holds the write lock.
func (f *functionFrame) compile() {
	f.state = stateCompileError

	if f.manager.Len() == 0 {
		fmt.Fprintln(f.out, "error: received code string of length 0")
		return
	}

	parser := NewParser(f.manager)
	definition := parser.ParseFunctionDefinition()
	if definition == nil {
		return
	}

	analyzer := NewAnalyzer(f.manager)
	fn := analyzer.AnalyzeFunction(definition)
	if fn == nil {
		return
	}

	passes := []Pass{DeadCodeElimination{}, ConstantPropagation{}}
	for _, pass := range passes {
		pass.Run(fn, analyzer.Symbols())
	}

	f.symbols = analyzer.Symbols()
	f.fn = fn
	f.state = stateCompiled
}

// Jit compiles and executes PL/0 functions on demand.
type Jit struct {
	mu     sync.Mutex
	frames []*functionFrame
	out    io.Writer
}

// NewJit creates a Jit that prints diagnostics to standard output.
func NewJit() *Jit {
	return NewJitWithOutput(os.Stdout)
}

// NewJitWithOutput creates a Jit that prints all diagnostics to w.
func NewJitWithOutput(w io.Writer) *Jit {
	return &Jit{out: w}
}

// Register stores the source code of a function and returns a handle to it.
// No compilation happens yet.
func (j *Jit) Register(code string) FunctionHandle {
	manager := NewSourceManager(code)
	manager.SetOutput(j.out)

	frame := &functionFrame{manager: manager, out: j.out}

	j.mu.Lock()
	j.frames = append(j.frames, frame)
	j.mu.Unlock()

	return FunctionHandle{frame: frame}
}

// FunctionHandle refers to one registered function. Handles are cheap to
// copy and safe for concurrent use.
type FunctionHandle struct {
	frame *functionFrame
}

// Invoke compiles the function if this is its first call, then executes it
// with the given arguments.
func (h FunctionHandle) Invoke(args ...int64) Result {
	f := h.frame

	f.mu.RLock()
	if f.state == stateNotCompiled {
		// Upgrade to the write lock; recheck because another goroutine may
		// have compiled in between.
		f.mu.RUnlock()
		f.mu.Lock()
		if f.state == stateNotCompiled {
			f.compile()
		}
		f.mu.Unlock()
		f.mu.RLock()
	}
	defer f.mu.RUnlock()

	if f.state == stateCompileError {
		return Result{Value: -1, Code: CompileError}
	}

	if len(args) != f.symbols.ParameterCount() {
		fmt.Fprintf(f.out,
			"error: invalid number of parameters provided, expected %d but %d were provided\n",
			f.symbols.ParameterCount(), len(args))
		return Result{Value: -1, Code: InvalidFunctionCall}
	}

	params := make([]int64, len(args))
	copy(params, args)

	ctx := newExecutionContext(f.symbols, params, f.out)
	value, ok := runFunction(f.fn, ctx)
	if !ok {
		return Result{Value: -1, Code: RuntimeError}
	}

	return Result{Value: value, Code: Success}
}
