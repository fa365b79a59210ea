// token.go
package pljit

// TokenKind classifies a lexical token.
type TokenKind int

const (
	// TokenUnknown is the zero value; the lexer never emits it.
	TokenUnknown TokenKind = iota

	// Keywords
	TokenParam
	TokenVar
	TokenConst
	TokenBegin
	TokenEnd
	TokenReturn

	// Separators
	TokenComma             // ","
	TokenSemicolon         // ";"
	TokenAssignment        // ":="
	TokenInit              // "="
	TokenLeftParenthesis   // "("
	TokenRightParenthesis  // ")"
	TokenProgramTerminator // "."

	// Operators
	TokenPlus  // "+"
	TokenMinus // "-"
	TokenMul   // "*"
	TokenDiv   // "/"

	TokenIdentifier
	TokenLiteral

	// TokenLexerError marks an illegal character or an unknown
	// multi-character token. It is sticky: once cached, the lexer keeps
	// returning it.
	TokenLexerError
)

var tokenKindNames = map[TokenKind]string{
	TokenUnknown:           "unknown",
	TokenParam:             "'PARAM'",
	TokenVar:               "'VAR'",
	TokenConst:             "'CONST'",
	TokenBegin:             "'BEGIN'",
	TokenEnd:               "'END'",
	TokenReturn:            "'RETURN'",
	TokenComma:             "','",
	TokenSemicolon:         "';'",
	TokenAssignment:        "':='",
	TokenInit:              "'='",
	TokenLeftParenthesis:   "'('",
	TokenRightParenthesis:  "')'",
	TokenProgramTerminator: "'.'",
	TokenPlus:              "'+'",
	TokenMinus:             "'-'",
	TokenMul:               "'*'",
	TokenDiv:               "'/'",
	TokenIdentifier:        "identifier",
	TokenLiteral:           "literal",
	TokenLexerError:        "lexer-error",
}

func (k TokenKind) String() string {
	if s, ok := tokenKindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Token is a lexical token: a kind plus the source range it covers.
type Token struct {
	Kind TokenKind
	Ref  SourceRange
}

// HasError reports whether the token is a lexer error token.
func (t Token) HasError() bool { return t.Kind == TokenLexerError }
