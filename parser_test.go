// parser_test.go
package pljit

import (
	"testing"
)

func parseSource(t *testing.T, src string) (*FunctionDefinition, string) {
	t.Helper()
	m, buf := newTestSource(src)
	fd := NewParser(m).ParseFunctionDefinition()
	return fd, buf.String()
}

func mustParse(t *testing.T, src string) *FunctionDefinition {
	t.Helper()
	fd, diagnostics := parseSource(t, src)
	if fd == nil {
		t.Fatalf("parse failed:\n%s", diagnostics)
	}
	if diagnostics != "" {
		t.Fatalf("unexpected diagnostics:\n%s", diagnostics)
	}
	return fd
}

func wantParseError(t *testing.T, src, want string) {
	t.Helper()
	fd, diagnostics := parseSource(t, src)
	if fd != nil {
		t.Fatalf("parse unexpectedly succeeded for:\n%s", src)
	}
	if diagnostics != want {
		t.Fatalf("\nwant diagnostics:\n%s\ngot diagnostics:\n%s", want, diagnostics)
	}
}

func Test_Parser_MinimalProgram(t *testing.T) {
	src := "BEGIN RETURN 1 END."
	fd := mustParse(t, src)

	m := NewSourceManager(src)
	if got := m.Text(fd.Ref()); got != src {
		t.Fatalf("root range: want %q, got %q", src, got)
	}
}

func Test_Parser_RootRange_Excludes_Whitespace(t *testing.T) {
	fd := mustParse(t, "  BEGIN RETURN 1 END.  ")

	if fd.Ref().Begin != 2 || fd.Ref().Length != 19 {
		t.Fatalf("root range: want {2 19}, got {%d %d}", fd.Ref().Begin, fd.Ref().Length)
	}
}

func Test_Parser_AllDeclarationSections(t *testing.T) {
	fd := mustParse(t, "PARAM a,b;\nVAR x,y,z;\nCONST C=1,D=2;\nBEGIN RETURN a END.")

	if fd.params == nil || fd.vars == nil || fd.consts == nil {
		t.Fatal("all three declaration sections must be present")
	}
	// Separator tokens are kept, so n declared names mean 2n-1 children.
	if got := len(fd.params.declaratorList.children); got != 3 {
		t.Fatalf("param declarator children: want 3, got %d", got)
	}
	if got := len(fd.vars.declaratorList.children); got != 5 {
		t.Fatalf("var declarator children: want 5, got %d", got)
	}
	if got := len(fd.consts.initDeclaratorList.children); got != 3 {
		t.Fatalf("const init-declarator children: want 3, got %d", got)
	}
}

func Test_Parser_RightAssociative_Subtraction(t *testing.T) {
	// 1-2-3 parses as 1-(2-3); the additive tail nests on the right.
	fd := mustParse(t, "BEGIN RETURN 1-2-3 END.")

	stmt := fd.compound.statementList.children[0].(*statement)
	add := stmt.additive

	if add.op == nil || add.opKind != TokenMinus {
		t.Fatal("outer additive-expression must have a '-' tail")
	}
	if got := add.multiplicative.unary.primary.lit.value; got != 1 {
		t.Fatalf("outer lhs: want 1, got %d", got)
	}

	tail := add.additive
	if tail.op == nil || tail.opKind != TokenMinus {
		t.Fatal("inner additive-expression must have a '-' tail")
	}
	if got := tail.multiplicative.unary.primary.lit.value; got != 2 {
		t.Fatalf("inner lhs: want 2, got %d", got)
	}
	if got := tail.additive.multiplicative.unary.primary.lit.value; got != 3 {
		t.Fatalf("inner rhs: want 3, got %d", got)
	}
}

func Test_Parser_MissingTerminator(t *testing.T) {
	wantParseError(t, "BEGIN RETURN 1 END",
		"1:18: error: expected '.' afterwards\n"+
			"BEGIN RETURN 1 END\n"+
			"                 ^\n")
}

func Test_Parser_WrongTokenInsteadOfTerminator(t *testing.T) {
	wantParseError(t, "BEGIN RETURN 1 END;",
		"1:19: error: expected '.'\n"+
			"BEGIN RETURN 1 END;\n"+
			"                  ^\n")
}

func Test_Parser_TrailingTokens_Rejected(t *testing.T) {
	wantParseError(t, "BEGIN RETURN 1 END. x",
		"1:21: error: expected no tokens after the program terminator\n"+
			"BEGIN RETURN 1 END. x\n"+
			"                    ^\n")
}

func Test_Parser_MissingEnd_Notes_Begin(t *testing.T) {
	wantParseError(t, "BEGIN RETURN 1.",
		"1:15: error: expected 'END'\n"+
			"BEGIN RETURN 1.\n"+
			"              ^\n"+
			"1:1: note: to match this 'BEGIN'\n"+
			"BEGIN RETURN 1.\n"+
			"^~~~~\n")
}

func Test_Parser_UnmatchedParenthesis_Notes_Open(t *testing.T) {
	wantParseError(t, "BEGIN RETURN (1 END.",
		"1:17: error: expected ')'\n"+
			"BEGIN RETURN (1 END.\n"+
			"                ^~~\n"+
			"1:14: note: to match this '('\n"+
			"BEGIN RETURN (1 END.\n"+
			"             ^\n")
}

func Test_Parser_Exhausted_After_Param_Section(t *testing.T) {
	wantParseError(t, "PARAM a;",
		"1:8: error: expected afterwards either 'VAR', 'CONST', or 'BEGIN'\n"+
			"PARAM a;\n"+
			"       ^\n")
}

func Test_Parser_Exhausted_After_Var_Section(t *testing.T) {
	wantParseError(t, "VAR a;",
		"1:6: error: expected afterwards either 'CONST' or 'BEGIN'\n"+
			"VAR a;\n"+
			"     ^\n")
}

func Test_Parser_Exhausted_After_Const_Section(t *testing.T) {
	wantParseError(t, "CONST a=1;",
		"1:10: error: expected afterwards 'BEGIN'\n"+
			"CONST a=1;\n"+
			"         ^\n")
}

func Test_Parser_NegativeConstInitializer_Rejected(t *testing.T) {
	// The grammar has no negative literals; '-' only exists as a unary
	// operator inside expressions.
	wantParseError(t, "CONST A = -1;\nBEGIN RETURN A END.",
		"1:11: error: expected literal\n"+
			"CONST A = -1;\n"+
			"          ^\n")
}

func Test_Parser_ExpectedStatement(t *testing.T) {
	wantParseError(t, "BEGIN 1 END.",
		"1:7: error: expected statement\n"+
			"BEGIN 1 END.\n"+
			"      ^\n")
}

func Test_Parser_ExpectedStatement_Afterwards(t *testing.T) {
	wantParseError(t, "BEGIN",
		"1:5: error: expected statement afterwards\n"+
			"BEGIN\n"+
			"    ^\n")
}

func Test_Parser_LexerError_Surfaces_Silently(t *testing.T) {
	// The lexer prints the diagnostic; the parser adds nothing.
	wantParseError(t, "BEGIN RETURN ? END.",
		"1:14: error: illegal character\n"+
			"BEGIN RETURN ? END.\n"+
			"             ^\n")
}

func Test_Parser_LiteralValue_Accumulation(t *testing.T) {
	if got := parseLiteralValue("0"); got != 0 {
		t.Fatalf("want 0, got %d", got)
	}
	if got := parseLiteralValue("1203"); got != 1203 {
		t.Fatalf("want 1203, got %d", got)
	}
	if got := parseLiteralValue("9223372036854775807"); got != 9223372036854775807 {
		t.Fatalf("want max int64, got %d", got)
	}
	// Values beyond the int64 range wrap silently.
	if got := parseLiteralValue("9223372036854775808"); got != -9223372036854775808 {
		t.Fatalf("want wrapped min int64, got %d", got)
	}
}
