// lexer_test.go
package pljit

import (
	"reflect"
	"testing"
)

func scanAll(t *testing.T, src string) ([]TokenKind, []string) {
	t.Helper()
	m, buf := newTestSource(src)
	l := NewLexer(m)

	var kinds []TokenKind
	var texts []string
	for l.HasNext() {
		tok := l.Next()
		if tok.HasError() {
			t.Fatalf("unexpected lexer error:\n%s", buf.String())
		}
		kinds = append(kinds, tok.Kind)
		texts = append(texts, m.Text(tok.Ref))
	}
	return kinds, texts
}

func wantKinds(t *testing.T, src string, want []TokenKind) {
	t.Helper()
	got, _ := scanAll(t, src)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("\nsource:\n%s\nwant kinds:\n%v\ngot kinds:\n%v", src, want, got)
	}
}

func Test_Lexer_Keywords_Are_ExactMatch(t *testing.T) {
	wantKinds(t, "PARAM VAR CONST BEGIN END RETURN",
		[]TokenKind{TokenParam, TokenVar, TokenConst, TokenBegin, TokenEnd, TokenReturn})

	// Keywords are case-sensitive; anything else is an identifier.
	wantKinds(t, "Param var begin", []TokenKind{TokenIdentifier, TokenIdentifier, TokenIdentifier})
}

func Test_Lexer_Separators_And_Operators(t *testing.T) {
	wantKinds(t, ", ; := = ( ) . + - * /",
		[]TokenKind{
			TokenComma, TokenSemicolon, TokenAssignment, TokenInit,
			TokenLeftParenthesis, TokenRightParenthesis, TokenProgramTerminator,
			TokenPlus, TokenMinus, TokenMul, TokenDiv,
		})
}

func Test_Lexer_WholeProgram(t *testing.T) {
	kinds, texts := scanAll(t, "PARAM a,b;\nBEGIN RETURN a+b END.")

	wantK := []TokenKind{
		TokenParam, TokenIdentifier, TokenComma, TokenIdentifier, TokenSemicolon,
		TokenBegin, TokenReturn, TokenIdentifier, TokenPlus, TokenIdentifier,
		TokenEnd, TokenProgramTerminator,
	}
	wantT := []string{"PARAM", "a", ",", "b", ";", "BEGIN", "RETURN", "a", "+", "b", "END", "."}

	if !reflect.DeepEqual(kinds, wantK) {
		t.Fatalf("kinds:\nwant %v\ngot  %v", wantK, kinds)
	}
	if !reflect.DeepEqual(texts, wantT) {
		t.Fatalf("texts:\nwant %v\ngot  %v", wantT, texts)
	}
}

func Test_Lexer_Identifier_Stops_At_Digit(t *testing.T) {
	// "abc1234" is two tokens; identifiers do not absorb digits.
	kinds, texts := scanAll(t, "abc1234")

	if !reflect.DeepEqual(kinds, []TokenKind{TokenIdentifier, TokenLiteral}) {
		t.Fatalf("kinds: got %v", kinds)
	}
	if !reflect.DeepEqual(texts, []string{"abc", "1234"}) {
		t.Fatalf("texts: got %v", texts)
	}
}

func Test_Lexer_Peek_Is_Idempotent(t *testing.T) {
	m, _ := newTestSource("BEGIN END")
	l := NewLexer(m)

	first := l.Peek()
	second := l.Peek()
	if first != second {
		t.Fatalf("peek not idempotent: %v vs %v", first, second)
	}

	consumed := l.Next()
	if consumed != first {
		t.Fatalf("next did not return the peeked token: %v vs %v", consumed, first)
	}

	if next := l.Peek(); next.Kind != TokenEnd {
		t.Fatalf("want END after consuming BEGIN, got %v", next.Kind)
	}
}

func Test_Lexer_IllegalCharacter_Diagnostic(t *testing.T) {
	m, buf := newTestSource("BEGIN ? END.")
	l := NewLexer(m)

	if tok := l.Next(); tok.Kind != TokenBegin {
		t.Fatalf("want BEGIN, got %v", tok.Kind)
	}

	tok := l.Next()
	if !tok.HasError() {
		t.Fatalf("want lexer error, got %v", tok.Kind)
	}

	want := "1:7: error: illegal character\n" +
		"BEGIN ? END.\n" +
		"      ^\n"
	if buf.String() != want {
		t.Fatalf("want:\n%s\ngot:\n%s", want, buf.String())
	}
}

func Test_Lexer_ErrorToken_Is_Sticky(t *testing.T) {
	m, buf := newTestSource("?")
	l := NewLexer(m)

	first := l.Next()
	if !first.HasError() {
		t.Fatalf("want lexer error, got %v", first.Kind)
	}

	// Peek and Next keep reporting the error; the diagnostic is printed once.
	printed := buf.String()
	for i := 0; i < 3; i++ {
		if tok := l.Peek(); tok != first {
			t.Fatalf("peek after error: got %v", tok)
		}
		if tok := l.Next(); tok != first {
			t.Fatalf("next after error: got %v", tok)
		}
	}
	if !l.HasNext() {
		t.Fatal("error token must keep the stream non-empty")
	}
	if buf.String() != printed {
		t.Fatalf("diagnostic printed more than once:\n%s", buf.String())
	}
}

func Test_Lexer_UnknownMultiCharacterToken(t *testing.T) {
	m, buf := newTestSource("a:b")
	l := NewLexer(m)

	if tok := l.Next(); tok.Kind != TokenIdentifier {
		t.Fatalf("want identifier, got %v", tok.Kind)
	}

	tok := l.Next()
	if !tok.HasError() {
		t.Fatalf("want lexer error, got %v", tok.Kind)
	}

	want := "1:2: error: unknown multi-character token\n" +
		"a:b\n" +
		" ^~\n"
	if buf.String() != want {
		t.Fatalf("want:\n%s\ngot:\n%s", want, buf.String())
	}
}

func Test_Lexer_Assignment_Operator(t *testing.T) {
	wantKinds(t, "x := 12", []TokenKind{TokenIdentifier, TokenAssignment, TokenLiteral})
	wantKinds(t, "x:=12", []TokenKind{TokenIdentifier, TokenAssignment, TokenLiteral})
}

func Test_Lexer_Whitespace_Only_Has_No_Tokens(t *testing.T) {
	m, _ := newTestSource(" \t\n ")
	l := NewLexer(m)
	if l.HasNext() {
		t.Fatal("whitespace-only source must have no tokens")
	}
}
