// parsetree.go — concrete syntax tree for PL/0.
//
// One node type exists per grammar production. Every node records the exact
// source range it spans, from the first token consumed to the last.
// Fixed-arity productions hold their children in named fields;
// variable-arity productions (declarator lists, statement lists) keep an
// ordered child slice that also contains the separator tokens, so the tree
// reproduces the source exactly. The tree is immutable once built.
//
// Only the root FunctionDefinition is exported; hosts obtain one from
// Parser.ParseFunctionDefinition and hand it to the semantic analyzer or to
// WriteParseTreeDot.
package pljit

// parseNodeKind discriminates the CST node variants.
type parseNodeKind int

const (
	nodeGenericToken parseNodeKind = iota
	nodeIdentifier
	nodeLiteral
	nodeDeclaratorList
	nodeInitDeclaratorList
	nodeInitDeclarator
	nodeParameterDeclarations
	nodeVariableDeclarations
	nodeConstantDeclarations
	nodeCompoundStatement
	nodeStatementList
	nodeStatement
	nodeAssignmentExpression
	nodeAdditiveExpression
	nodeMultiplicativeExpression
	nodeUnaryExpression
	nodePrimaryExpression
	nodeFunctionDefinition
)

// parseNode lets the declarator/statement lists and the DOT printer treat
// all CST nodes uniformly.
type parseNode interface {
	kind() parseNodeKind
	reference() SourceRange
}

// genericToken is a leaf wrapping a keyword, separator, or operator token.
type genericToken struct {
	ref SourceRange
}

func (n *genericToken) kind() parseNodeKind    { return nodeGenericToken }
func (n *genericToken) reference() SourceRange { return n.ref }

// identifier is a leaf for an identifier token; its name is the source text
// of its range.
type identifier struct {
	ref SourceRange
}

func (n *identifier) kind() parseNodeKind    { return nodeIdentifier }
func (n *identifier) reference() SourceRange { return n.ref }

// literal is a leaf for an unsigned decimal literal, already converted to a
// 64-bit value.
type literal struct {
	value int64
	ref   SourceRange
}

func (n *literal) kind() parseNodeKind    { return nodeLiteral }
func (n *literal) reference() SourceRange { return n.ref }

// declaratorList = identifier {"," identifier}; children keeps the commas.
type declaratorList struct {
	children []parseNode
	ref      SourceRange
}

func (n *declaratorList) kind() parseNodeKind    { return nodeDeclaratorList }
func (n *declaratorList) reference() SourceRange { return n.ref }

// initDeclarator = identifier "=" literal.
type initDeclarator struct {
	target *identifier
	init   *genericToken
	value  *literal
	ref    SourceRange
}

func (n *initDeclarator) kind() parseNodeKind    { return nodeInitDeclarator }
func (n *initDeclarator) reference() SourceRange { return n.ref }

// initDeclaratorList = init-declarator {"," init-declarator}; commas kept.
type initDeclaratorList struct {
	children []parseNode
	ref      SourceRange
}

func (n *initDeclaratorList) kind() parseNodeKind    { return nodeInitDeclaratorList }
func (n *initDeclaratorList) reference() SourceRange { return n.ref }

// parameterDeclarations = "PARAM" declarator-list ";".
type parameterDeclarations struct {
	keyword        *genericToken
	declaratorList *declaratorList
	semicolon      *genericToken
	ref            SourceRange
}

func (n *parameterDeclarations) kind() parseNodeKind    { return nodeParameterDeclarations }
func (n *parameterDeclarations) reference() SourceRange { return n.ref }

// variableDeclarations = "VAR" declarator-list ";".
type variableDeclarations struct {
	keyword        *genericToken
	declaratorList *declaratorList
	semicolon      *genericToken
	ref            SourceRange
}

func (n *variableDeclarations) kind() parseNodeKind    { return nodeVariableDeclarations }
func (n *variableDeclarations) reference() SourceRange { return n.ref }

// constantDeclarations = "CONST" init-declarator-list ";".
type constantDeclarations struct {
	keyword            *genericToken
	initDeclaratorList *initDeclaratorList
	semicolon          *genericToken
	ref                SourceRange
}

func (n *constantDeclarations) kind() parseNodeKind    { return nodeConstantDeclarations }
func (n *constantDeclarations) reference() SourceRange { return n.ref }

// compoundStatement = "BEGIN" statement-list "END".
type compoundStatement struct {
	begin         *genericToken
	statementList *statementList
	end           *genericToken
	ref           SourceRange
}

func (n *compoundStatement) kind() parseNodeKind    { return nodeCompoundStatement }
func (n *compoundStatement) reference() SourceRange { return n.ref }

// statementList = statement {";" statement}; children keeps the semicolons.
type statementList struct {
	children []parseNode
	ref      SourceRange
}

func (n *statementList) kind() parseNodeKind    { return nodeStatementList }
func (n *statementList) reference() SourceRange { return n.ref }

type statementType int

const (
	assignmentStatementType statementType = iota
	returnStatementType
)

// statement is either an assignment-expression or "RETURN" followed by an
// additive-expression.
type statement struct {
	typ statementType

	// returnStatementType
	returnKeyword *genericToken
	additive      *additiveExpression

	// assignmentStatementType
	assignment *assignmentExpression

	ref SourceRange
}

func (n *statement) kind() parseNodeKind    { return nodeStatement }
func (n *statement) reference() SourceRange { return n.ref }

// assignmentExpression = identifier ":=" additive-expression.
type assignmentExpression struct {
	target     *identifier
	assignment *genericToken
	additive   *additiveExpression
	ref        SourceRange
}

func (n *assignmentExpression) kind() parseNodeKind    { return nodeAssignmentExpression }
func (n *assignmentExpression) reference() SourceRange { return n.ref }

// additiveExpression = multiplicative-expression [("+"|"-") additive-expression].
// The optional tail nests on the right, which makes '+' and '-' chains
// right-associative.
type additiveExpression struct {
	multiplicative *multiplicativeExpression
	op             *genericToken // nil if there is no tail
	opKind         TokenKind     // TokenPlus or TokenMinus when op != nil
	additive       *additiveExpression
	ref            SourceRange
}

func (n *additiveExpression) kind() parseNodeKind    { return nodeAdditiveExpression }
func (n *additiveExpression) reference() SourceRange { return n.ref }

// multiplicativeExpression = unary-expression [("*"|"/") multiplicative-expression].
type multiplicativeExpression struct {
	unary          *unaryExpression
	op             *genericToken // nil if there is no tail
	opKind         TokenKind     // TokenMul or TokenDiv when op != nil
	multiplicative *multiplicativeExpression
	ref            SourceRange
}

func (n *multiplicativeExpression) kind() parseNodeKind    { return nodeMultiplicativeExpression }
func (n *multiplicativeExpression) reference() SourceRange { return n.ref }

// unaryExpression = ["+"|"-"] primary-expression.
type unaryExpression struct {
	sign     *genericToken // nil if unsigned
	signKind TokenKind     // TokenPlus or TokenMinus when sign != nil
	primary  *primaryExpression
	ref      SourceRange
}

func (n *unaryExpression) kind() parseNodeKind    { return nodeUnaryExpression }
func (n *unaryExpression) reference() SourceRange { return n.ref }

type primaryExpressionType int

const (
	identifierPrimary primaryExpressionType = iota
	literalPrimary
	parenthesizedPrimary
)

// primaryExpression = identifier | literal | "(" additive-expression ")".
type primaryExpression struct {
	typ primaryExpressionType

	ident *identifier
	lit   *literal

	leftParenthesis  *genericToken
	additive         *additiveExpression
	rightParenthesis *genericToken

	ref SourceRange
}

func (n *primaryExpression) kind() parseNodeKind    { return nodePrimaryExpression }
func (n *primaryExpression) reference() SourceRange { return n.ref }

// FunctionDefinition is the CST root:
//
//	function-definition = [parameter-declarations] [variable-declarations]
//	                      [constant-declarations] compound-statement "."
type FunctionDefinition struct {
	params     *parameterDeclarations // optional
	vars       *variableDeclarations  // optional
	consts     *constantDeclarations  // optional
	compound   *compoundStatement
	terminator *genericToken
	ref        SourceRange
}

func (n *FunctionDefinition) kind() parseNodeKind { return nodeFunctionDefinition }

// Ref returns the source range spanned by the whole function definition.
func (n *FunctionDefinition) Ref() SourceRange { return n.ref }

func (n *FunctionDefinition) reference() SourceRange { return n.ref }
