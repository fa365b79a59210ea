// optimizer.go — AST optimization passes.
//
// Two passes exist and the JIT runs them in this order:
//
//  1. DeadCodeElimination drops every statement behind the first
//     return-statement; PL/0 has no control flow, so nothing after it can
//     execute.
//  2. ConstantPropagation tracks which parameters and variables hold a known
//     value at each point of the straight-line statement list and folds
//     expressions over known values into literals.
//
// Folding is purely a compile-time rewrite and must never change runtime
// behavior. In particular a division whose right-hand side is a known zero is
// left untouched, so the division-by-zero error still surfaces when the
// function runs.
package pljit

// Pass is one AST-rewriting optimization.
type Pass interface {
	Run(fn *Function, symbols *SymbolTable)
}

// DeadCodeElimination removes statements that can never execute.
type DeadCodeElimination struct{}

// Run truncates the statement list after the first return-statement.
func (DeadCodeElimination) Run(fn *Function, symbols *SymbolTable) {
	for i, stmt := range fn.Statements {
		if _, ok := stmt.(*ReturnStatement); ok {
			fn.Statements = fn.Statements[:i+1]
			return
		}
	}
}

// valueKey addresses one parameter or variable in the known-value map.
type valueKey struct {
	kind SymbolKind
	id   int
}

// ConstantPropagation folds expressions over compile-time-known values.
type ConstantPropagation struct{}

// Run rewrites the function in place. Assignments of a known value make the
// target known for the following statements; assignments of an unknown value
// invalidate it again.
func (ConstantPropagation) Run(fn *Function, symbols *SymbolTable) {
	p := &propagator{
		symbols:     symbols,
		knownValues: make(map[valueKey]int64),
	}

	for _, stmt := range fn.Statements {
		switch s := stmt.(type) {
		case *AssignmentStatement:
			key := valueKey{kind: s.Target.Kind, id: s.Target.ID}
			if value, known := p.foldExpression(s.Expr); known {
				s.Expr = &ConstantLiteral{Value: value}
				p.knownValues[key] = value
			} else {
				delete(p.knownValues, key)
			}

		case *ReturnStatement:
			if value, known := p.foldExpression(s.Expr); known {
				s.Expr = &ConstantLiteral{Value: value}
			}
		}
	}
}

type propagator struct {
	symbols     *SymbolTable
	knownValues map[valueKey]int64
}

// foldExpression computes the expression's value if it is known. When only
// one side of a binary operation is known, that side is materialized as a
// literal in place; a fully known expression is materialized by the caller.
func (p *propagator) foldExpression(expr Expression) (int64, bool) {
	switch e := expr.(type) {
	case *ConstantLiteral:
		return e.Value, true

	case *Identifier:
		if e.Kind == SymbolConstant {
			return p.symbols.ConstantValue(e.ID), true
		}
		value, known := p.knownValues[valueKey{kind: e.Kind, id: e.ID}]
		return value, known

	case *UnaryOp:
		value, known := p.foldExpression(e.Expr)
		if !known {
			return 0, false
		}
		if e.Op == UnaryMinus {
			return -value, true
		}
		return value, true

	case *BinaryOp:
		lhs, lhsKnown := p.foldExpression(e.Lhs)
		rhs, rhsKnown := p.foldExpression(e.Rhs)

		if lhsKnown && rhsKnown {
			if e.Op == BinaryDiv && rhs == 0 {
				// Must keep failing at runtime.
				return 0, false
			}
			return foldBinary(e.Op, lhs, rhs), true
		}

		if lhsKnown {
			e.Lhs = &ConstantLiteral{Value: lhs}
		}
		if rhsKnown {
			e.Rhs = &ConstantLiteral{Value: rhs}
		}
		return 0, false

	default:
		return 0, false
	}
}

// foldBinary applies a binary operator with 64-bit wrap-around semantics.
// Dividing the minimum value by -1 wraps instead of trapping.
func foldBinary(op BinaryOpKind, lhs, rhs int64) int64 {
	switch op {
	case BinaryAdd:
		return lhs + rhs
	case BinarySub:
		return lhs - rhs
	case BinaryMul:
		return lhs * rhs
	default:
		if rhs == -1 {
			return -lhs
		}
		return lhs / rhs
	}
}
