// exec.go — tree-walking evaluator for optimized or unoptimized ASTs.
//
// Execution runs the statement list front to back over a per-call context
// holding the parameter and variable slots. Arithmetic is 64-bit two's
// complement with wrap-around; division truncates toward zero.
//
// The only runtime error is division by zero. It is reported exactly once per
// call by printing "error: division by zero" to the configured writer; after
// that the context is poisoned and evaluation short-circuits without touching
// any further state.
package pljit

import (
	"fmt"
	"io"
)

type executionError int

const (
	noError executionError = iota
	divisionByZero
)

// executionContext is the mutable state of one function invocation.
type executionContext struct {
	parameterValues []int64
	variableValues  []int64
	returnValue     int64
	err             executionError
	symbols         *SymbolTable
	out             io.Writer
}

func newExecutionContext(symbols *SymbolTable, args []int64, out io.Writer) *executionContext {
	return &executionContext{
		parameterValues: args,
		variableValues:  make([]int64, symbols.VariableCount()),
		symbols:         symbols,
		out:             out,
	}
}

// runFunction executes the statement list and returns the value of the first
// return-statement, or false if a runtime error occurred.
func runFunction(fn *Function, ctx *executionContext) (int64, bool) {
	for _, stmt := range fn.Statements {
		done := execStatement(stmt, ctx)
		if ctx.err != noError {
			return 0, false
		}
		if done {
			return ctx.returnValue, true
		}
	}
	// Unreachable: the analyzer guarantees a return-statement.
	return 0, false
}

// execStatement executes one statement and reports whether it ended the call.
func execStatement(stmt Statement, ctx *executionContext) bool {
	switch s := stmt.(type) {
	case *AssignmentStatement:
		value := evalExpression(s.Expr, ctx)
		if ctx.err != noError {
			return false
		}
		if s.Target.Kind == SymbolParameter {
			ctx.parameterValues[s.Target.ID] = value
		} else {
			ctx.variableValues[s.Target.ID] = value
		}
		return false

	case *ReturnStatement:
		value := evalExpression(s.Expr, ctx)
		if ctx.err != noError {
			return false
		}
		ctx.returnValue = value
		return true

	default:
		return false
	}
}

func evalExpression(expr Expression, ctx *executionContext) int64 {
	switch e := expr.(type) {
	case *ConstantLiteral:
		return e.Value

	case *Identifier:
		switch e.Kind {
		case SymbolParameter:
			return ctx.parameterValues[e.ID]
		case SymbolVariable:
			return ctx.variableValues[e.ID]
		default:
			return ctx.symbols.ConstantValue(e.ID)
		}

	case *UnaryOp:
		value := evalExpression(e.Expr, ctx)
		if ctx.err != noError {
			return 0
		}
		if e.Op == UnaryMinus {
			return -value
		}
		return value

	case *BinaryOp:
		lhs := evalExpression(e.Lhs, ctx)
		if ctx.err != noError {
			return 0
		}
		rhs := evalExpression(e.Rhs, ctx)
		if ctx.err != noError {
			return 0
		}
		if e.Op == BinaryDiv && rhs == 0 {
			fmt.Fprintln(ctx.out, "error: division by zero")
			ctx.err = divisionByZero
			return 0
		}
		return foldBinary(e.Op, lhs, rhs)

	default:
		return 0
	}
}
