// source_test.go
package pljit

import (
	"bytes"
	"testing"
)

// newTestSource builds a SourceManager whose diagnostics land in the
// returned buffer instead of stdout.
func newTestSource(src string) (*SourceManager, *bytes.Buffer) {
	m := NewSourceManager(src)
	buf := &bytes.Buffer{}
	m.SetOutput(buf)
	return m, buf
}

func Test_SourceManager_Text_And_Len(t *testing.T) {
	m, _ := newTestSource("BEGIN RETURN 1 END.")

	if m.Len() != 19 {
		t.Fatalf("Len: want 19, got %d", m.Len())
	}
	if got := m.Text(SourceRange{Begin: 6, Length: 6}); got != "RETURN" {
		t.Fatalf("Text: want %q, got %q", "RETURN", got)
	}
}

func Test_SourceManager_Caret_FirstColumn(t *testing.T) {
	m, buf := newTestSource("BEGIN RETURN 1 END.")
	m.PrintContext(SourceRange{Begin: 0, Length: 5}, "error: demo")

	want := "1:1: error: demo\n" +
		"BEGIN RETURN 1 END.\n" +
		"^~~~~\n"
	if buf.String() != want {
		t.Fatalf("want:\n%s\ngot:\n%s", want, buf.String())
	}
}

func Test_SourceManager_Caret_SecondLine(t *testing.T) {
	m, buf := newTestSource("VAR x;\nBEGIN RETURN x END.")
	m.PrintContext(SourceRange{Begin: 13, Length: 6}, "error: demo")

	want := "2:7: error: demo\n" +
		"BEGIN RETURN x END.\n" +
		"      ^~~~~~\n"
	if buf.String() != want {
		t.Fatalf("want:\n%s\ngot:\n%s", want, buf.String())
	}
}

func Test_SourceManager_Caret_SingleLocation(t *testing.T) {
	m, buf := newTestSource("BEGIN RETURN 1 END.")
	m.PrintContextAt(SourceLocation{Pos: 13}, "note: demo")

	want := "1:14: note: demo\n" +
		"BEGIN RETURN 1 END.\n" +
		"             ^\n"
	if buf.String() != want {
		t.Fatalf("want:\n%s\ngot:\n%s", want, buf.String())
	}
}

func Test_SourceManager_Range_Extension(t *testing.T) {
	r := SourceRange{Begin: 3, Length: 2}
	extended := r.ExtendUntil(SourceLocation{Pos: 9})

	if extended.Begin != 3 || extended.Length != 7 {
		t.Fatalf("ExtendUntil: want {3 7}, got {%d %d}", extended.Begin, extended.Length)
	}
	if first := r.First(); first.Pos != 3 {
		t.Fatalf("First: want 3, got %d", first.Pos)
	}
	if last := r.Last(); last.Pos != 4 {
		t.Fatalf("Last: want 4, got %d", last.Pos)
	}
}
