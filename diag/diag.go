// Package diag formats diagnostics for parse failures.
//
// A diagnostic is rendered as a message line, the offending source line, a
// caret line pointing at the column, and a location trailer:
//
//	Error: expected "}"
//	  {{}{}
//	       ^
//	at line 1, column 5 in <input>
package diag

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Position represents a location in source text. Lines are 1-based,
// columns are 0-based byte offsets within the line.
type Position struct {
	Name   string
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	if p.Name != "" {
		return fmt.Sprintf("%s:%d:%d", p.Name, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Diagnostic is a single human-readable failure report.
type Diagnostic struct {
	Message  string
	Position Position

	text string
}

// New creates a diagnostic for msg at pos within text.
func New(text string, pos Position, msg string) Diagnostic {
	return Diagnostic{Message: msg, Position: pos, text: text}
}

// Line returns the source line the diagnostic points into.
func (d Diagnostic) Line() string {
	return LineAt(d.text, d.Position.Offset)
}

func (d Diagnostic) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Error: %s\n", d.Message)
	line := d.Line()
	sb.WriteString("  ")
	sb.WriteString(line)
	sb.WriteString("\n  ")
	sb.WriteString(caretPadding(line, d.Position.Column))
	sb.WriteString("^\n")
	fmt.Fprintf(&sb, "at line %d, column %d in %s", d.Position.Line, d.Position.Column, d.Position.Name)
	return sb.String()
}

// caretPadding returns whitespace as wide as the first col bytes of line,
// keeping tabs so the caret lines up in a terminal.
func caretPadding(line string, col int) string {
	if col > len(line) {
		col = len(line)
	}
	if col < 0 {
		return ""
	}
	var sb strings.Builder
	for _, r := range line[:col] {
		if r == '\t' {
			sb.WriteByte('\t')
		} else {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

// Advance scans text[from:to] starting at line/col and returns the line and
// column reached. "\n", "\r\n" and a lone "\r" each count as one line break.
func Advance(text string, from, to, line, col int) (int, int) {
	for i := from; i < to; i++ {
		switch text[i] {
		case '\n':
			line++
			col = 0
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				continue
			}
			line++
			col = 0
		default:
			col++
		}
	}
	return line, col
}

// Locate computes the position of offset in text.
func Locate(text, name string, offset int) Position {
	if offset > len(text) {
		offset = len(text)
	}
	line, col := Advance(text, 0, offset, 1, 0)
	return Position{Name: name, Offset: offset, Line: line, Column: col}
}

// LineAt returns the line of text containing offset, without its line break.
func LineAt(text string, offset int) string {
	if offset > len(text) {
		offset = len(text)
	}
	start := strings.LastIndexAny(text[:offset], "\r\n") + 1
	end := strings.IndexAny(text[start:], "\r\n")
	if end < 0 {
		return text[start:]
	}
	return text[start : start+end]
}

// Width returns the display width in runes of the first col bytes of line.
func Width(line string, col int) int {
	if col > len(line) {
		col = len(line)
	}
	return utf8.RuneCountInString(line[:col])
}
