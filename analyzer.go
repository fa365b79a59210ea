// analyzer.go — semantic analysis: CST in, AST out.
//
// The analyzer performs name resolution against a fresh symbol table and
// lowers the CST into the AST. It enforces the static rules of the language:
//
//   - declared names are unique across all three namespaces;
//   - every used name has a declaration;
//   - constants are never assignment targets;
//   - variables are read only after they have been assigned;
//   - the function contains at least one return-statement.
//
// On the first violation a diagnostic is printed through the source manager
// and analysis stops; the caller receives nil. Whether a variable "has been
// assigned" is decided purely by statement order, without control-flow
// reasoning — PL/0 has none.
package pljit

// Analyzer lowers a parsed function definition into an AST.
type Analyzer struct {
	manager *SourceManager
	symbols *SymbolTable

	// initializedVariables holds the variable IDs that have been assigned
	// by the statements analyzed so far.
	initializedVariables map[int]bool
}

// NewAnalyzer creates an analyzer with an empty symbol table.
func NewAnalyzer(manager *SourceManager) *Analyzer {
	return &Analyzer{
		manager:              manager,
		symbols:              NewSymbolTable(),
		initializedVariables: make(map[int]bool),
	}
}

// Symbols returns the symbol table populated during AnalyzeFunction.
func (a *Analyzer) Symbols() *SymbolTable {
	return a.symbols
}

// AnalyzeFunction resolves and lowers the function definition. On a semantic
// error it prints a diagnostic and returns nil.
func (a *Analyzer) AnalyzeFunction(fd *FunctionDefinition) *Function {
	if !a.registerDeclarations(fd) {
		return nil
	}

	fn := &Function{}
	hasReturn := false

	for _, child := range fd.compound.statementList.children {
		stmt, ok := child.(*statement)
		if !ok {
			// Separator token.
			continue
		}

		lowered := a.analyzeStatement(stmt)
		if lowered == nil {
			return nil
		}
		fn.Statements = append(fn.Statements, lowered)

		if _, isReturn := lowered.(*ReturnStatement); isReturn {
			hasReturn = true
		}
	}

	if !hasReturn {
		a.manager.PrintContext(fd.compound.end.ref,
			"error: function does not contain a return-statement")
		return nil
	}

	return fn
}

// registerDeclarations enters all declared names into the symbol table,
// section by section, preserving declaration order within each namespace.
func (a *Analyzer) registerDeclarations(fd *FunctionDefinition) bool {
	if fd.params != nil {
		for _, child := range fd.params.declaratorList.children {
			ident, ok := child.(*identifier)
			if !ok {
				continue
			}
			if !a.registerIdentifier(SymbolParameter, ident, 0) {
				return false
			}
		}
	}

	if fd.vars != nil {
		for _, child := range fd.vars.declaratorList.children {
			ident, ok := child.(*identifier)
			if !ok {
				continue
			}
			if !a.registerIdentifier(SymbolVariable, ident, 0) {
				return false
			}
		}
	}

	if fd.consts != nil {
		for _, child := range fd.consts.initDeclaratorList.children {
			decl, ok := child.(*initDeclarator)
			if !ok {
				continue
			}
			if !a.registerIdentifier(SymbolConstant, decl.target, decl.value.value) {
				return false
			}
		}
	}

	return true
}

func (a *Analyzer) registerIdentifier(kind SymbolKind, ident *identifier, constantValue int64) bool {
	name := a.manager.Text(ident.ref)

	existing, registered := a.symbols.Register(kind, name, ident.ref, constantValue)
	if !registered {
		a.manager.PrintContext(ident.ref, "error: duplicate declaration of identifier")
		a.manager.PrintContext(existing.DeclarationRef, "note: already declared here")
		return false
	}

	return true
}

// analyzeStatement lowers one statement. For assignments the right-hand side
// is analyzed before the target, so an expression error is reported even when
// the target would be rejected too.
func (a *Analyzer) analyzeStatement(stmt *statement) Statement {
	if stmt.typ == returnStatementType {
		expr := a.analyzeAdditiveExpression(stmt.additive)
		if expr == nil {
			return nil
		}
		return &ReturnStatement{Expr: expr}
	}

	expr := a.analyzeAdditiveExpression(stmt.assignment.additive)
	if expr == nil {
		return nil
	}

	target := a.analyzeAssignmentTarget(stmt.assignment.target)
	if target == nil {
		return nil
	}

	return &AssignmentStatement{Target: target, Expr: expr}
}

// analyzeAssignmentTarget resolves the left-hand side of an assignment and
// marks the variable as initialized.
func (a *Analyzer) analyzeAssignmentTarget(ident *identifier) *Identifier {
	name := a.manager.Text(ident.ref)

	entry, ok := a.symbols.Lookup(name)
	if !ok {
		a.manager.PrintContext(ident.ref, "error: use of undeclared identifier")
		return nil
	}

	if entry.Kind == SymbolConstant {
		a.manager.PrintContext(ident.ref,
			"error: trying to assign to an identifier declared 'CONST'")
		a.manager.PrintContext(entry.DeclarationRef, "note: declared as 'CONST' here")
		return nil
	}

	if entry.Kind == SymbolVariable {
		a.initializedVariables[entry.ID] = true
	}

	return &Identifier{Kind: entry.Kind, ID: entry.ID}
}

func (a *Analyzer) analyzeAdditiveExpression(expr *additiveExpression) Expression {
	lhs := a.analyzeMultiplicativeExpression(expr.multiplicative)
	if lhs == nil {
		return nil
	}

	if expr.op == nil {
		return lhs
	}

	rhs := a.analyzeAdditiveExpression(expr.additive)
	if rhs == nil {
		return nil
	}

	op := BinaryAdd
	if expr.opKind == TokenMinus {
		op = BinarySub
	}

	return &BinaryOp{Op: op, Lhs: lhs, Rhs: rhs}
}

func (a *Analyzer) analyzeMultiplicativeExpression(expr *multiplicativeExpression) Expression {
	lhs := a.analyzeUnaryExpression(expr.unary)
	if lhs == nil {
		return nil
	}

	if expr.op == nil {
		return lhs
	}

	rhs := a.analyzeMultiplicativeExpression(expr.multiplicative)
	if rhs == nil {
		return nil
	}

	op := BinaryMul
	if expr.opKind == TokenDiv {
		op = BinaryDiv
	}

	return &BinaryOp{Op: op, Lhs: lhs, Rhs: rhs}
}

func (a *Analyzer) analyzeUnaryExpression(expr *unaryExpression) Expression {
	inner := a.analyzePrimaryExpression(expr.primary)
	if inner == nil {
		return nil
	}

	if expr.sign == nil {
		return inner
	}

	op := UnaryPlus
	if expr.signKind == TokenMinus {
		op = UnaryMinus
	}

	return &UnaryOp{Op: op, Expr: inner}
}

func (a *Analyzer) analyzePrimaryExpression(expr *primaryExpression) Expression {
	switch expr.typ {
	case identifierPrimary:
		name := a.manager.Text(expr.ident.ref)

		entry, ok := a.symbols.Lookup(name)
		if !ok {
			a.manager.PrintContext(expr.ident.ref, "error: use of undeclared identifier")
			return nil
		}

		if entry.Kind == SymbolVariable && !a.initializedVariables[entry.ID] {
			a.manager.PrintContext(expr.ident.ref, "error: use of uninitialized identifier")
			return nil
		}

		return &Identifier{Kind: entry.Kind, ID: entry.ID}

	case literalPrimary:
		return &ConstantLiteral{Value: expr.lit.value}

	default:
		return a.analyzeAdditiveExpression(expr.additive)
	}
}
