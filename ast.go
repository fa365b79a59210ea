// ast.go — abstract syntax tree for PL/0.
//
// The AST is what the semantic analyzer produces from a CST and what the
// optimizer passes and the evaluator operate on. Unlike the CST it carries no
// source ranges and no separator tokens; identifiers are resolved to
// (namespace, id) pairs against the symbol table built during analysis.
//
// Expressions are held behind the Expression interface so that optimizer
// passes can splice rewritten subtrees into their parents.
package pljit

// Expression is an AST expression node: ConstantLiteral, Identifier, UnaryOp
// or BinaryOp.
type Expression interface {
	exprNode()
}

// Statement is an AST statement node: AssignmentStatement or ReturnStatement.
type Statement interface {
	stmtNode()
}

// Function is the AST root, a statement list executed front to back.
type Function struct {
	Statements []Statement
}

// AssignmentStatement stores the value of Expr into Target. The target is
// never a constant.
type AssignmentStatement struct {
	Target *Identifier
	Expr   Expression
}

func (*AssignmentStatement) stmtNode() {}

// ReturnStatement evaluates Expr and ends execution with its value.
type ReturnStatement struct {
	Expr Expression
}

func (*ReturnStatement) stmtNode() {}

// ConstantLiteral is a literal 64-bit value.
type ConstantLiteral struct {
	Value int64
}

func (*ConstantLiteral) exprNode() {}

// Identifier is a resolved reference to the symbol (Kind, ID).
type Identifier struct {
	Kind SymbolKind
	ID   int
}

func (*Identifier) exprNode() {}

// UnaryOpKind is the operator of a UnaryOp.
type UnaryOpKind int

const (
	UnaryPlus UnaryOpKind = iota
	UnaryMinus
)

// UnaryOp applies a sign to its operand.
type UnaryOp struct {
	Op   UnaryOpKind
	Expr Expression
}

func (*UnaryOp) exprNode() {}

// BinaryOpKind is the operator of a BinaryOp.
type BinaryOpKind int

const (
	BinaryAdd BinaryOpKind = iota
	BinarySub
	BinaryMul
	BinaryDiv
)

// BinaryOp combines two operands. Arithmetic is 64-bit two's complement;
// division truncates toward zero.
type BinaryOp struct {
	Op  BinaryOpKind
	Lhs Expression
	Rhs Expression
}

func (*BinaryOp) exprNode() {}
