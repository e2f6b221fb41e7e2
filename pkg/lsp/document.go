package lsp

import (
	"strings"
	"unicode/utf16"

	"github.com/dodlang/dod/pkg/dod"
)

// Document is the text of the most recently opened or changed file.
type Document struct {
	URI     string
	Version int
	Text    string
}

// Parse tokenizes and parses the document text from scratch.
func (d *Document) Parse() (*dod.Program, error) {
	return dod.Parse(d.Text)
}

// Diagnostics converts a parse result into diagnostics for this document,
// with characters counted in UTF-16 code units.
func (d *Document) Diagnostics(err error) []Diagnostic {
	diags := DiagnosticsFromError(err)
	for i := range diags {
		diags[i].Range = Range{
			Start: d.utf16Pos(diags[i].Range.Start),
			End:   d.utf16Pos(diags[i].Range.End),
		}
	}
	return diags
}

// utf16Pos converts a position whose Character is a byte offset into the
// line to one counted in UTF-16 code units, the LSP default encoding.
// Offsets past the end of the line are carried over unchanged.
func (d *Document) utf16Pos(pos Position) Position {
	line := d.line(pos.Line)
	n := min(pos.Character, len(line))
	units := 0
	for _, r := range line[:n] {
		units += utf16.RuneLen(r)
	}
	return Position{Line: pos.Line, Character: units + pos.Character - n}
}

// line returns the text of the 0-indexed line, without its terminator.
func (d *Document) line(index int) string {
	text := d.Text
	for range index {
		i := strings.IndexByte(text, '\n')
		if i < 0 {
			return ""
		}
		text = text[i+1:]
	}
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	return text
}

// Position represents a position in a document (0-indexed).
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Range represents a range in a document.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// DodPos converts a 1-indexed dod.Position to an LSP Position. The
// character is a byte offset; see Document.Diagnostics.
func DodPos(pos dod.Position) Position {
	return Position{
		Line:      max(pos.Line-1, 0),
		Character: max(pos.Column-1, 0),
	}
}

// DodRange converts start and end dod.Positions to an LSP Range.
// dod positions are 1-indexed, LSP positions are 0-indexed.
func DodRange(start, end dod.Position) Range {
	r := Range{Start: DodPos(start), End: DodPos(end)}
	if r.End.Line < r.Start.Line || (r.End.Line == r.Start.Line && r.End.Character <= r.Start.Character) {
		r.End = Position{Line: r.Start.Line, Character: r.Start.Character + 1}
	}
	return r
}
