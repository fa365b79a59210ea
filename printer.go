// printer.go — DOT (graphviz) output for the CST and the AST.
//
// Both writers emit a plain digraph: first one label line per node in
// preorder, then one edge line per parent/child pair, also in preorder. CST
// nodes are labeled with their production names and leaves with their raw
// source text, so the picture reproduces the input exactly, separators
// included. AST nodes are labeled with what they compute: operator glyphs,
// resolved symbol names and literal values.
package pljit

import (
	"fmt"
	"io"
	"strconv"
)

// dotBuilder accumulates the node labels and edges of one digraph. Nodes are
// numbered in order of creation; addNode with a valid parent records the
// edge immediately, which keeps the edge list in preorder too.
type dotBuilder struct {
	labels []string
	edges  [][2]int
}

const dotRoot = -1

func (b *dotBuilder) addNode(parent int, label string) int {
	b.labels = append(b.labels, label)
	id := len(b.labels) - 1
	if parent != dotRoot {
		b.edges = append(b.edges, [2]int{parent, id})
	}
	return id
}

func (b *dotBuilder) writeTo(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "digraph {\n"); err != nil {
		return err
	}
	for i, label := range b.labels {
		if _, err := fmt.Fprintf(w, "\t%d [label=\"%s\"];\n", i, label); err != nil {
			return err
		}
	}
	for _, e := range b.edges {
		if _, err := fmt.Fprintf(w, "\t%d -> %d;\n", e[0], e[1]); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "}\n")
	return err
}

// WriteParseTreeDot writes the CST rooted at fd as a DOT digraph.
func WriteParseTreeDot(w io.Writer, fd *FunctionDefinition, manager *SourceManager) error {
	b := &dotBuilder{}

	root := b.addNode(dotRoot, "function-definition")
	if fd.params != nil {
		visitParseNode(b, manager, root, fd.params)
	}
	if fd.vars != nil {
		visitParseNode(b, manager, root, fd.vars)
	}
	if fd.consts != nil {
		visitParseNode(b, manager, root, fd.consts)
	}
	visitParseNode(b, manager, root, fd.compound)
	visitParseNode(b, manager, root, fd.terminator)

	return b.writeTo(w)
}

// visitParseNode adds the subtree rooted at node under the given parent.
func visitParseNode(b *dotBuilder, manager *SourceManager, parent int, node parseNode) {
	switch n := node.(type) {
	case *genericToken, *identifier, *literal:
		// Leaves show their raw source text.
		b.addNode(parent, manager.Text(node.reference()))

	case *declaratorList:
		id := b.addNode(parent, "declarator-list")
		for _, child := range n.children {
			visitParseNode(b, manager, id, child)
		}

	case *initDeclaratorList:
		id := b.addNode(parent, "init-declarator-list")
		for _, child := range n.children {
			visitParseNode(b, manager, id, child)
		}

	case *initDeclarator:
		id := b.addNode(parent, "init-declarator")
		visitParseNode(b, manager, id, n.target)
		visitParseNode(b, manager, id, n.init)
		visitParseNode(b, manager, id, n.value)

	case *parameterDeclarations:
		id := b.addNode(parent, "parameter-declarations")
		visitParseNode(b, manager, id, n.keyword)
		visitParseNode(b, manager, id, n.declaratorList)
		visitParseNode(b, manager, id, n.semicolon)

	case *variableDeclarations:
		id := b.addNode(parent, "variable-declarations")
		visitParseNode(b, manager, id, n.keyword)
		visitParseNode(b, manager, id, n.declaratorList)
		visitParseNode(b, manager, id, n.semicolon)

	case *constantDeclarations:
		id := b.addNode(parent, "constant-declarations")
		visitParseNode(b, manager, id, n.keyword)
		visitParseNode(b, manager, id, n.initDeclaratorList)
		visitParseNode(b, manager, id, n.semicolon)

	case *compoundStatement:
		id := b.addNode(parent, "compound-statement")
		visitParseNode(b, manager, id, n.begin)
		visitParseNode(b, manager, id, n.statementList)
		visitParseNode(b, manager, id, n.end)

	case *statementList:
		id := b.addNode(parent, "statement-list")
		for _, child := range n.children {
			visitParseNode(b, manager, id, child)
		}

	case *statement:
		id := b.addNode(parent, "statement")
		if n.typ == returnStatementType {
			visitParseNode(b, manager, id, n.returnKeyword)
			visitParseNode(b, manager, id, n.additive)
		} else {
			visitParseNode(b, manager, id, n.assignment)
		}

	case *assignmentExpression:
		id := b.addNode(parent, "assignment-expression")
		visitParseNode(b, manager, id, n.target)
		visitParseNode(b, manager, id, n.assignment)
		visitParseNode(b, manager, id, n.additive)

	case *additiveExpression:
		id := b.addNode(parent, "additive-expression")
		visitParseNode(b, manager, id, n.multiplicative)
		if n.op != nil {
			visitParseNode(b, manager, id, n.op)
			visitParseNode(b, manager, id, n.additive)
		}

	case *multiplicativeExpression:
		id := b.addNode(parent, "multiplicative-expression")
		visitParseNode(b, manager, id, n.unary)
		if n.op != nil {
			visitParseNode(b, manager, id, n.op)
			visitParseNode(b, manager, id, n.multiplicative)
		}

	case *unaryExpression:
		id := b.addNode(parent, "unary-expression")
		if n.sign != nil {
			visitParseNode(b, manager, id, n.sign)
		}
		visitParseNode(b, manager, id, n.primary)

	case *primaryExpression:
		id := b.addNode(parent, "primary-expression")
		switch n.typ {
		case identifierPrimary:
			visitParseNode(b, manager, id, n.ident)
		case literalPrimary:
			visitParseNode(b, manager, id, n.lit)
		default:
			visitParseNode(b, manager, id, n.leftParenthesis)
			visitParseNode(b, manager, id, n.additive)
			visitParseNode(b, manager, id, n.rightParenthesis)
		}
	}
}

// WriteASTDot writes the AST rooted at fn as a DOT digraph. The symbol table
// supplies the declared names of resolved identifiers.
func WriteASTDot(w io.Writer, fn *Function, symbols *SymbolTable) error {
	b := &dotBuilder{}

	root := b.addNode(dotRoot, "Function")
	for _, stmt := range fn.Statements {
		visitASTStatement(b, symbols, root, stmt)
	}

	return b.writeTo(w)
}

func visitASTStatement(b *dotBuilder, symbols *SymbolTable, parent int, stmt Statement) {
	switch s := stmt.(type) {
	case *AssignmentStatement:
		id := b.addNode(parent, ":=")
		visitASTExpression(b, symbols, id, s.Target)
		visitASTExpression(b, symbols, id, s.Expr)

	case *ReturnStatement:
		id := b.addNode(parent, "RETURN")
		visitASTExpression(b, symbols, id, s.Expr)
	}
}

func visitASTExpression(b *dotBuilder, symbols *SymbolTable, parent int, expr Expression) {
	switch e := expr.(type) {
	case *ConstantLiteral:
		b.addNode(parent, strconv.FormatInt(e.Value, 10))

	case *Identifier:
		name := symbols.LookupName(e.Kind, e.ID)
		if e.Kind == SymbolConstant {
			value := symbols.ConstantValue(e.ID)
			b.addNode(parent, name+": "+strconv.FormatInt(value, 10))
			return
		}
		b.addNode(parent, name)

	case *UnaryOp:
		label := "+"
		if e.Op == UnaryMinus {
			label = "-"
		}
		id := b.addNode(parent, label)
		visitASTExpression(b, symbols, id, e.Expr)

	case *BinaryOp:
		var label string
		switch e.Op {
		case BinaryAdd:
			label = "+"
		case BinarySub:
			label = "-"
		case BinaryMul:
			label = "*"
		default:
			label = "/"
		}
		id := b.addNode(parent, label)
		visitASTExpression(b, symbols, id, e.Lhs)
		visitASTExpression(b, symbols, id, e.Rhs)
	}
}
