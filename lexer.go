// lexer.go — tokenizer for PL/0 with one-token lookahead.
//
// The lexer is a stateful stream over a SourceManager. It guarantees that
// between calls the cursor always rests on the first non-whitespace character
// (or the end), which keeps token boundaries predictable. Peek produces and
// caches the next token; Next consumes it.
//
// Error tokens are sticky: after an illegal character or an unknown
// multi-character token has been diagnosed, both Peek and Next keep returning
// the cached TokenLexerError so that no caller can silently advance past the
// failure point. The underlying diagnostic is printed exactly once, at the
// point of detection.
package pljit

func isWhitespaceChar(c byte) bool {
	return c == ' ' || c == '\n' || c == '\t'
}

func isLiteralChar(c byte) bool {
	return '0' <= c && c <= '9'
}

func isAlphaChar(c byte) bool {
	return ('A' <= c && c <= 'Z') || ('a' <= c && c <= 'z')
}

func isLegalChar(c byte) bool {
	return ('(' <= c && c <= ';') || c == '=' || // separators, operators, digits
		isAlphaChar(c) ||
		isWhitespaceChar(c)
}

// Lexer scans a PL/0 source into tokens, one at a time.
type Lexer struct {
	manager *SourceManager
	pos     int
	cache   *Token
}

// NewLexer creates a lexer over the given source manager. The cursor is
// advanced to the first non-whitespace character.
func NewLexer(manager *SourceManager) *Lexer {
	l := &Lexer{manager: manager}
	l.trimLeadingWhitespace()
	return l
}

// HasNext reports whether another token is available, i.e. the lookahead
// cache is populated or unconsumed non-whitespace input remains.
func (l *Lexer) HasNext() bool {
	return l.cache != nil || l.pos < l.manager.Len()
}

// Peek returns the next token without consuming it. The token (including an
// error token) is produced and cached on the first call.
func (l *Lexer) Peek() Token {
	if l.cache != nil {
		return *l.cache
	}
	tok := l.Next()
	l.cache = &tok
	return tok
}

// Next returns the next token. A cached non-error token is consumed; a cached
// error token is returned again without clearing the cache.
func (l *Lexer) Next() Token {
	if l.cache != nil {
		if l.cache.HasError() {
			// An error observed during Peek stays the answer.
			return *l.cache
		}
		tok := *l.cache
		l.cache = nil
		return tok
	}

	// The cursor rests on the first non-whitespace character.
	firstChar := l.manager.at(l.pos)
	start := l.pos

	if !isLegalChar(firstChar) {
		return l.cacheError(SourceRange{Begin: start, Length: 1}, "error: illegal character")
	}

	l.pos++

	if kind := singleCharTokenKind(firstChar); kind != TokenUnknown {
		l.trimLeadingWhitespace()
		return Token{Kind: kind, Ref: SourceRange{Begin: start, Length: 1}}
	}

	// Multi-character token: a literal, a keyword, an identifier, or ":=".
	lastChar := firstChar
	endPos := start

	isLiteral := isLiteralChar(firstChar)
	kind := TokenUnknown
	if isLiteral {
		kind = TokenLiteral
	}

	for ; l.pos < l.manager.Len(); l.pos++ {
		currentChar := l.manager.at(l.pos)

		if !isLegalChar(currentChar) {
			return l.cacheError(SourceRange{Begin: l.pos, Length: 1}, "error: illegal character")
		}

		// Edge case: the assignment operator. After ':' only '=' may follow.
		if lastChar == ':' {
			if currentChar != '=' {
				rng := SourceRange{Begin: start, Length: l.pos - start + 1}
				return l.cacheError(rng, "error: unknown multi-character token")
			}
			kind = TokenAssignment
			endPos = l.pos
			l.pos++
			break
		}

		if !isLiteral && !isAlphaChar(currentChar) {
			// First character that can no longer belong to an identifier
			// or keyword.
			break
		}

		if isLiteral && !isLiteralChar(currentChar) {
			// Identifiers do not absorb digits and literals do not absorb
			// letters; the literal ends here.
			break
		}

		lastChar = currentChar
		endPos = l.pos
	}

	rng := SourceRange{Begin: start, Length: endPos - start + 1}
	if kind == TokenUnknown {
		kind = keywordOrIdentifierKind(l.manager.Text(rng))
	}

	l.trimLeadingWhitespace()

	return Token{Kind: kind, Ref: rng}
}

func (l *Lexer) cacheError(rng SourceRange, message string) Token {
	l.manager.PrintContext(rng, message)
	tok := Token{Kind: TokenLexerError, Ref: rng}
	l.cache = &tok
	return tok
}

func (l *Lexer) trimLeadingWhitespace() {
	for l.pos < l.manager.Len() && isWhitespaceChar(l.manager.at(l.pos)) {
		l.pos++
	}
}

func singleCharTokenKind(c byte) TokenKind {
	switch c {
	case ',':
		return TokenComma
	case ';':
		return TokenSemicolon
	case '=':
		return TokenInit
	case '(':
		return TokenLeftParenthesis
	case ')':
		return TokenRightParenthesis
	case '.':
		return TokenProgramTerminator
	case '+':
		return TokenPlus
	case '-':
		return TokenMinus
	case '*':
		return TokenMul
	case '/':
		return TokenDiv
	default:
		return TokenUnknown
	}
}

func keywordOrIdentifierKind(text string) TokenKind {
	switch text {
	case "PARAM":
		return TokenParam
	case "VAR":
		return TokenVar
	case "CONST":
		return TokenConst
	case "BEGIN":
		return TokenBegin
	case "END":
		return TokenEnd
	case "RETURN":
		return TokenReturn
	default:
		return TokenIdentifier
	}
}
