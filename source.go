// source.go — source ownership and diagnostic rendering.
//
// The SourceManager owns the immutable source text of one registered function.
// Everything downstream (tokens, parse tree nodes, symbol declarations) refers
// back into this text via SourceRange values: a start byte plus a length. A
// range carries no line/column information; PrintContext resolves it on demand
// by scanning the owned buffer. The linear scan is fine because diagnostics
// are rare and end the compilation anyway.
//
// Diagnostic format (1-based line and column):
//
//	L:C: <severity>: <message>
//	<the source line>
//	<col-1 spaces>^<~ repeated length-1 times>
//
// The severity is part of the message string handed in by the caller
// ("error: ..." or "note: ..."); the manager does not classify.
package pljit

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// SourceRange is a borrowed view into the source text owned by a
// SourceManager: Begin is a byte offset, Length is at least 1. Ranges never
// outlive the manager that owns their backing text.
type SourceRange struct {
	Begin  int
	Length int
}

// SourceLocation marks a single character position. It is used for
// "expected X afterwards" diagnostics that point right behind the last
// successfully consumed token.
type SourceLocation struct {
	Pos int
}

// First returns the location of the first character of the range.
func (r SourceRange) First() SourceLocation {
	return SourceLocation{Pos: r.Begin}
}

// Last returns the location of the last character of the range.
func (r SourceRange) Last() SourceLocation {
	return SourceLocation{Pos: r.Begin + r.Length - 1}
}

// ExtendUntil widens the range so that it ends at the given location.
func (r SourceRange) ExtendUntil(last SourceLocation) SourceRange {
	return SourceRange{Begin: r.Begin, Length: last.Pos - r.Begin + 1}
}

func rangeAt(loc SourceLocation) SourceRange {
	return SourceRange{Begin: loc.Pos, Length: 1}
}

// SourceManager owns the source text of a single PL/0 function and renders
// diagnostics against it.
type SourceManager struct {
	code string
	out  io.Writer
}

// NewSourceManager creates a manager for the given source text. Diagnostics
// are written to os.Stdout; see SetOutput.
func NewSourceManager(code string) *SourceManager {
	return &SourceManager{code: code, out: os.Stdout}
}

// SetOutput redirects all diagnostics rendered by this manager.
func (m *SourceManager) SetOutput(w io.Writer) { m.out = w }

// Len returns the length of the owned source text in bytes.
func (m *SourceManager) Len() int { return len(m.code) }

// Code returns the owned source text.
func (m *SourceManager) Code() string { return m.code }

// Text resolves a range into the source text it refers to.
func (m *SourceManager) Text(r SourceRange) string {
	return m.code[r.Begin : r.Begin+r.Length]
}

func (m *SourceManager) at(pos int) byte { return m.code[pos] }

// lineInfo is the result of resolving a location against the source buffer.
type lineInfo struct {
	lineNumber int // 1-based
	lineOffset int // 1-based column of the location within its line
	lineStart  int // byte index of the first character of the line
	lineLength int // length of the line, excluding the newline
}

// resolve scans the owned buffer to determine the line and column of the
// given location.
func (m *SourceManager) resolve(loc SourceLocation) lineInfo {
	currentLine := 1
	startOfCurrentLine := 0
	for i := 0; i < loc.Pos; i++ {
		if m.code[i] == '\n' {
			currentLine++
			startOfCurrentLine = i + 1
		}
	}

	lineLength := loc.Pos - startOfCurrentLine + 1
	for i := loc.Pos + 1; i < len(m.code) && m.code[i] != '\n'; i++ {
		lineLength++
	}

	return lineInfo{
		lineNumber: currentLine,
		lineOffset: loc.Pos - startOfCurrentLine + 1,
		lineStart:  startOfCurrentLine,
		lineLength: lineLength,
	}
}

// PrintContext renders the diagnostic message followed by the source line the
// range starts on and a caret-and-tilde underline of the range width.
func (m *SourceManager) PrintContext(r SourceRange, message string) {
	if len(m.code) == 0 {
		fmt.Fprintf(m.out, "1:1: %s\n", message)
		return
	}

	info := m.resolve(r.First())

	fmt.Fprintf(m.out, "%d:%d: %s\n", info.lineNumber, info.lineOffset, message)
	fmt.Fprintln(m.out, m.code[info.lineStart:info.lineStart+info.lineLength])
	fmt.Fprintf(m.out, "%s^%s\n",
		strings.Repeat(" ", info.lineOffset-1),
		strings.Repeat("~", r.Length-1))
}

// PrintContextAt renders a diagnostic for a single location.
func (m *SourceManager) PrintContextAt(loc SourceLocation, message string) {
	m.PrintContext(rangeAt(loc), message)
}
