// parser.go — recursive-descent parser for PL/0.
//
// The parser consumes tokens straight from the lexer (one-token lookahead)
// and builds the CST defined in parsetree.go. Every production records the
// exact source range from its first to its last token.
//
// Diagnostics follow a strict contract. Wherever a specific token is
// expected, two situations are distinguished:
//
//   - the stream is exhausted: the message reads "expected X afterwards" and
//     is pinned to the last successfully consumed character;
//   - a different token is present: the message reads "expected X" and is
//     pinned to that token's range.
//
// A failed sub-parse prints its diagnostic at the point of detection and
// returns nil; callers propagate the nil without printing again. When a
// lexer error token surfaces mid-parse, the parser fails silently because
// the lexer has already reported the underlying problem.
package pljit

const noTokenLeft = true

// expectedTokenMessage builds the diagnostic for a missing or mismatched
// token of the given kind.
func expectedTokenMessage(kind TokenKind, streamExhausted bool) string {
	name := kind.String()
	if streamExhausted {
		return "error: expected " + name + " afterwards"
	}
	return "error: expected " + name
}

// parseLiteralValue converts an unsigned decimal literal into an int64 by
// base-10 accumulation. Values beyond the int64 range wrap silently.
func parseLiteralValue(text string) int64 {
	var result uint64
	var shift uint64 = 1
	for i := len(text) - 1; i >= 0; i-- {
		result += uint64(text[i]-'0') * shift
		shift *= 10
	}
	return int64(result)
}

// Parser builds a CST for a single PL/0 function definition.
type Parser struct {
	manager *SourceManager
	lexer   *Lexer

	// refToLastChar points at the last successfully consumed character; it
	// anchors the "expected X afterwards" diagnostics.
	refToLastChar SourceLocation
}

// NewParser creates a parser over the given source manager.
func NewParser(manager *SourceManager) *Parser {
	p := &Parser{manager: manager, lexer: NewLexer(manager)}
	if p.lexer.HasNext() {
		p.refToLastChar = p.lexer.Peek().Ref.First()
	}
	return p
}

// ParseFunctionDefinition parses the whole source as a function definition
// and returns the CST root, or nil after printing a diagnostic.
func (p *Parser) ParseFunctionDefinition() *FunctionDefinition {
	// The three declaration sections are optional but strictly ordered.
	// A section is present iff the next token is its introducing keyword.
	var params *parameterDeclarations
	if p.lexer.HasNext() && p.lexer.Peek().Kind == TokenParam {
		params = p.parseParameterDeclarations()
		if params == nil {
			return nil
		}
		if !p.lexer.HasNext() {
			p.manager.PrintContextAt(params.ref.Last(),
				"error: expected afterwards either 'VAR', 'CONST', or 'BEGIN'")
			return nil
		}
	}

	var vars *variableDeclarations
	if p.lexer.HasNext() && p.lexer.Peek().Kind == TokenVar {
		vars = p.parseVariableDeclarations()
		if vars == nil {
			return nil
		}
		if !p.lexer.HasNext() {
			p.manager.PrintContextAt(vars.ref.Last(),
				"error: expected afterwards either 'CONST' or 'BEGIN'")
			return nil
		}
	}

	var consts *constantDeclarations
	if p.lexer.HasNext() && p.lexer.Peek().Kind == TokenConst {
		consts = p.parseConstantDeclarations()
		if consts == nil {
			return nil
		}
		if !p.lexer.HasNext() {
			p.manager.PrintContextAt(consts.ref.Last(),
				"error: expected afterwards 'BEGIN'")
			return nil
		}
	}

	compound := p.parseCompoundStatement()
	if compound == nil {
		return nil
	}

	terminator := p.parseGenericToken(TokenProgramTerminator)
	if terminator == nil {
		return nil
	}

	if p.lexer.HasNext() {
		if !p.lexer.Peek().HasError() {
			p.manager.PrintContext(p.lexer.Peek().Ref,
				"error: expected no tokens after the program terminator")
		}
		return nil
	}

	start := compound.ref
	switch {
	case params != nil:
		start = params.ref
	case vars != nil:
		start = vars.ref
	case consts != nil:
		start = consts.ref
	}

	return &FunctionDefinition{
		params:     params,
		vars:       vars,
		consts:     consts,
		compound:   compound,
		terminator: terminator,
		ref:        start.ExtendUntil(terminator.ref.Last()),
	}
}

func (p *Parser) parseIdentifier() *identifier {
	if !p.lexer.HasNext() {
		p.manager.PrintContextAt(p.refToLastChar,
			expectedTokenMessage(TokenIdentifier, noTokenLeft))
		return nil
	}

	token := p.lexer.Next()

	if token.HasError() {
		return nil
	}

	if token.Kind != TokenIdentifier {
		p.manager.PrintContext(token.Ref, expectedTokenMessage(TokenIdentifier, false))
		return nil
	}

	p.refToLastChar = token.Ref.Last()

	return &identifier{ref: token.Ref}
}

func (p *Parser) parseLiteral() *literal {
	if !p.lexer.HasNext() {
		p.manager.PrintContextAt(p.refToLastChar,
			expectedTokenMessage(TokenLiteral, noTokenLeft))
		return nil
	}

	token := p.lexer.Next()

	if token.HasError() {
		return nil
	}

	if token.Kind != TokenLiteral {
		p.manager.PrintContext(token.Ref, expectedTokenMessage(TokenLiteral, false))
		return nil
	}

	p.refToLastChar = token.Ref.Last()

	return &literal{value: parseLiteralValue(p.manager.Text(token.Ref)), ref: token.Ref}
}

func (p *Parser) parseGenericToken(expected TokenKind) *genericToken {
	if !p.lexer.HasNext() {
		p.manager.PrintContextAt(p.refToLastChar, expectedTokenMessage(expected, noTokenLeft))
		return nil
	}

	token := p.lexer.Next()

	if token.HasError() {
		return nil
	}

	if token.Kind != expected {
		p.manager.PrintContext(token.Ref, expectedTokenMessage(expected, false))
		return nil
	}

	p.refToLastChar = token.Ref.Last()

	return &genericToken{ref: token.Ref}
}

func (p *Parser) parseParameterDeclarations() *parameterDeclarations {
	keyword := p.parseGenericToken(TokenParam)
	if keyword == nil {
		return nil
	}

	list := p.parseDeclaratorList()
	if list == nil {
		return nil
	}

	semicolon := p.parseGenericToken(TokenSemicolon)
	if semicolon == nil {
		return nil
	}

	return &parameterDeclarations{
		keyword:        keyword,
		declaratorList: list,
		semicolon:      semicolon,
		ref:            keyword.ref.ExtendUntil(semicolon.ref.Last()),
	}
}

func (p *Parser) parseVariableDeclarations() *variableDeclarations {
	keyword := p.parseGenericToken(TokenVar)
	if keyword == nil {
		return nil
	}

	list := p.parseDeclaratorList()
	if list == nil {
		return nil
	}

	semicolon := p.parseGenericToken(TokenSemicolon)
	if semicolon == nil {
		return nil
	}

	return &variableDeclarations{
		keyword:        keyword,
		declaratorList: list,
		semicolon:      semicolon,
		ref:            keyword.ref.ExtendUntil(semicolon.ref.Last()),
	}
}

func (p *Parser) parseConstantDeclarations() *constantDeclarations {
	keyword := p.parseGenericToken(TokenConst)
	if keyword == nil {
		return nil
	}

	list := p.parseInitDeclaratorList()
	if list == nil {
		return nil
	}

	semicolon := p.parseGenericToken(TokenSemicolon)
	if semicolon == nil {
		return nil
	}

	return &constantDeclarations{
		keyword:            keyword,
		initDeclaratorList: list,
		semicolon:          semicolon,
		ref:                keyword.ref.ExtendUntil(semicolon.ref.Last()),
	}
}

func (p *Parser) parseDeclaratorList() *declaratorList {
	var children []parseNode

	first := p.parseIdentifier()
	if first == nil {
		return nil
	}
	children = append(children, first)

	// A comma in the lookahead implies another identifier follows.
	for p.lexer.HasNext() && p.lexer.Peek().Kind == TokenComma {
		comma := p.parseGenericToken(TokenComma)
		if comma == nil {
			return nil
		}
		children = append(children, comma)

		ident := p.parseIdentifier()
		if ident == nil {
			return nil
		}
		children = append(children, ident)
	}

	return &declaratorList{
		children: children,
		ref:      spanOfChildren(children),
	}
}

func (p *Parser) parseInitDeclaratorList() *initDeclaratorList {
	var children []parseNode

	first := p.parseInitDeclarator()
	if first == nil {
		return nil
	}
	children = append(children, first)

	// A comma in the lookahead implies another init-declarator follows.
	for p.lexer.HasNext() && p.lexer.Peek().Kind == TokenComma {
		comma := p.parseGenericToken(TokenComma)
		if comma == nil {
			return nil
		}
		children = append(children, comma)

		decl := p.parseInitDeclarator()
		if decl == nil {
			return nil
		}
		children = append(children, decl)
	}

	return &initDeclaratorList{
		children: children,
		ref:      spanOfChildren(children),
	}
}

func (p *Parser) parseInitDeclarator() *initDeclarator {
	target := p.parseIdentifier()
	if target == nil {
		return nil
	}

	init := p.parseGenericToken(TokenInit)
	if init == nil {
		return nil
	}

	value := p.parseLiteral()
	if value == nil {
		return nil
	}

	return &initDeclarator{
		target: target,
		init:   init,
		value:  value,
		ref:    target.ref.ExtendUntil(value.ref.Last()),
	}
}

func (p *Parser) parseCompoundStatement() *compoundStatement {
	begin := p.parseGenericToken(TokenBegin)
	if begin == nil {
		return nil
	}

	list := p.parseStatementList()
	if list == nil {
		return nil
	}

	end := p.parseGenericToken(TokenEnd)
	if end == nil {
		p.manager.PrintContext(begin.ref, "note: to match this 'BEGIN'")
		return nil
	}

	return &compoundStatement{
		begin:         begin,
		statementList: list,
		end:           end,
		ref:           begin.ref.ExtendUntil(end.ref.Last()),
	}
}

func (p *Parser) parseStatementList() *statementList {
	var children []parseNode

	first := p.parseStatement()
	if first == nil {
		return nil
	}
	children = append(children, first)

	// A semicolon in the lookahead implies another statement follows.
	for p.lexer.HasNext() && p.lexer.Peek().Kind == TokenSemicolon {
		semicolon := p.parseGenericToken(TokenSemicolon)
		if semicolon == nil {
			return nil
		}
		children = append(children, semicolon)

		stmt := p.parseStatement()
		if stmt == nil {
			return nil
		}
		children = append(children, stmt)
	}

	return &statementList{
		children: children,
		ref:      spanOfChildren(children),
	}
}

func (p *Parser) parseStatement() *statement {
	if !p.lexer.HasNext() {
		p.manager.PrintContextAt(p.refToLastChar, "error: expected statement afterwards")
		return nil
	}

	if p.lexer.Peek().HasError() {
		return nil
	}

	if p.lexer.Peek().Kind == TokenReturn {
		returnKeyword := p.parseGenericToken(TokenReturn)
		if returnKeyword == nil {
			return nil
		}

		additive := p.parseAdditiveExpression()
		if additive == nil {
			return nil
		}

		return &statement{
			typ:           returnStatementType,
			returnKeyword: returnKeyword,
			additive:      additive,
			ref:           returnKeyword.ref.ExtendUntil(additive.ref.Last()),
		}
	}

	// Anything other than RETURN must start an assignment expression, and
	// an assignment expression starts with an identifier.
	if p.lexer.Peek().Kind != TokenIdentifier {
		p.manager.PrintContext(p.lexer.Peek().Ref, "error: expected statement")
		return nil
	}

	assignment := p.parseAssignmentExpression()
	if assignment == nil {
		return nil
	}

	return &statement{
		typ:        assignmentStatementType,
		assignment: assignment,
		ref:        assignment.ref,
	}
}

func (p *Parser) parseAssignmentExpression() *assignmentExpression {
	target := p.parseIdentifier()
	if target == nil {
		return nil
	}

	assignment := p.parseGenericToken(TokenAssignment)
	if assignment == nil {
		return nil
	}

	additive := p.parseAdditiveExpression()
	if additive == nil {
		return nil
	}

	return &assignmentExpression{
		target:     target,
		assignment: assignment,
		additive:   additive,
		ref:        target.ref.ExtendUntil(additive.ref.Last()),
	}
}

func (p *Parser) parseAdditiveExpression() *additiveExpression {
	multiplicative := p.parseMultiplicativeExpression()
	if multiplicative == nil {
		return nil
	}

	// A '+' or '-' in the lookahead extends the expression; the tail is
	// parsed as a whole additive-expression, nesting to the right.
	if p.lexer.HasNext() &&
		(p.lexer.Peek().Kind == TokenPlus || p.lexer.Peek().Kind == TokenMinus) {
		opKind := p.lexer.Peek().Kind
		op := p.parseGenericToken(opKind)
		if op == nil {
			return nil
		}

		additive := p.parseAdditiveExpression()
		if additive == nil {
			return nil
		}

		return &additiveExpression{
			multiplicative: multiplicative,
			op:             op,
			opKind:         opKind,
			additive:       additive,
			ref:            multiplicative.ref.ExtendUntil(additive.ref.Last()),
		}
	}

	return &additiveExpression{
		multiplicative: multiplicative,
		ref:            multiplicative.ref,
	}
}

func (p *Parser) parseMultiplicativeExpression() *multiplicativeExpression {
	unary := p.parseUnaryExpression()
	if unary == nil {
		return nil
	}

	// A '*' or '/' in the lookahead extends the expression to the right.
	if p.lexer.HasNext() &&
		(p.lexer.Peek().Kind == TokenMul || p.lexer.Peek().Kind == TokenDiv) {
		opKind := p.lexer.Peek().Kind
		op := p.parseGenericToken(opKind)
		if op == nil {
			return nil
		}

		multiplicative := p.parseMultiplicativeExpression()
		if multiplicative == nil {
			return nil
		}

		return &multiplicativeExpression{
			unary:          unary,
			op:             op,
			opKind:         opKind,
			multiplicative: multiplicative,
			ref:            unary.ref.ExtendUntil(multiplicative.ref.Last()),
		}
	}

	return &multiplicativeExpression{
		unary: unary,
		ref:   unary.ref,
	}
}

func (p *Parser) parseUnaryExpression() *unaryExpression {
	if !p.lexer.HasNext() {
		p.manager.PrintContextAt(p.refToLastChar,
			"error: expected unary-expression or primary-expression afterwards")
		return nil
	}

	nextKind := p.lexer.Peek().Kind

	if nextKind == TokenPlus || nextKind == TokenMinus {
		sign := p.parseGenericToken(nextKind)
		if sign == nil {
			return nil
		}

		primary := p.parsePrimaryExpression()
		if primary == nil {
			return nil
		}

		return &unaryExpression{
			sign:     sign,
			signKind: nextKind,
			primary:  primary,
			ref:      sign.ref.ExtendUntil(primary.ref.Last()),
		}
	}

	primary := p.parsePrimaryExpression()
	if primary == nil {
		return nil
	}

	return &unaryExpression{
		primary: primary,
		ref:     primary.ref,
	}
}

func (p *Parser) parsePrimaryExpression() *primaryExpression {
	if !p.lexer.HasNext() {
		p.manager.PrintContextAt(p.refToLastChar,
			"error: expected primary-expression afterwards")
		return nil
	}

	if p.lexer.Peek().HasError() {
		return nil
	}

	nextKind := p.lexer.Peek().Kind

	if nextKind == TokenIdentifier {
		ident := p.parseIdentifier()
		if ident == nil {
			return nil
		}

		return &primaryExpression{
			typ:   identifierPrimary,
			ident: ident,
			ref:   ident.ref,
		}
	}

	if nextKind == TokenLiteral {
		lit := p.parseLiteral()
		if lit == nil {
			return nil
		}

		return &primaryExpression{
			typ: literalPrimary,
			lit: lit,
			ref: lit.ref,
		}
	}

	// The remaining form is "( additive-expression )".
	if nextKind != TokenLeftParenthesis {
		p.manager.PrintContext(p.lexer.Peek().Ref, "error: expected primary-expression")
		return nil
	}

	leftParenthesis := p.parseGenericToken(TokenLeftParenthesis)
	if leftParenthesis == nil {
		return nil
	}

	additive := p.parseAdditiveExpression()
	if additive == nil {
		return nil
	}

	rightParenthesis := p.parseGenericToken(TokenRightParenthesis)
	if rightParenthesis == nil {
		p.manager.PrintContext(leftParenthesis.ref, "note: to match this '('")
		return nil
	}

	return &primaryExpression{
		typ:              parenthesizedPrimary,
		leftParenthesis:  leftParenthesis,
		additive:         additive,
		rightParenthesis: rightParenthesis,
		ref:              leftParenthesis.ref.ExtendUntil(rightParenthesis.ref.Last()),
	}
}

// spanOfChildren computes the range from the first to the last child of a
// variable-arity node. The child slice is never empty.
func spanOfChildren(children []parseNode) SourceRange {
	first := children[0].reference()
	if len(children) == 1 {
		return first
	}
	return first.ExtendUntil(children[len(children)-1].reference().Last())
}
