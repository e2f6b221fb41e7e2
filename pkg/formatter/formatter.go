// Package formatter provides code formatting for .dod files.
package formatter

import (
	"github.com/dodlang/dod/pkg/dod"
)

// Formatter formats .dod source code.
type Formatter struct {
	// IndentString is the string used for indentation (default: four spaces).
	IndentString string
}

// New creates a new Formatter with default settings.
func New() *Formatter {
	return &Formatter{
		IndentString: "    ",
	}
}

// Format parses and reformats the given .dod source code.
// Returns the formatted code and any error encountered during parsing.
// Source that does not parse is never rewritten, and neither is source whose
// tokens the output would not reproduce.
func (f *Formatter) Format(source string) (string, error) {
	prog, err := dod.Parse(source)
	if err != nil {
		return "", err
	}

	printer := newPrinter(f.IndentString)
	formatted := printer.PrintProgram(prog)
	if err := verifyTokens(source, formatted); err != nil {
		return "", err
	}
	return formatted, nil
}

// verifyTokens reports an error at the first token of source that formatted
// drops or replaces. Semicolons are skipped: the printer ends every
// statement with one.
func verifyTokens(source, formatted string) error {
	want := significantTokens(source)
	got := significantTokens(formatted)
	for i, tok := range want {
		if i >= len(got) || got[i].Type != tok.Type || got[i].Literal != tok.Literal {
			return dod.NewErrorf(tok, "formatting would not preserve %s", tok.Describe())
		}
	}
	if len(got) > len(want) {
		eof := dod.Tokenize(source)
		return dod.NewErrorf(eof[len(eof)-1], "formatting would insert %s", got[len(want)].Describe())
	}
	return nil
}

func significantTokens(text string) []dod.Token {
	var toks []dod.Token
	for _, tok := range dod.Tokenize(text) {
		if tok.Type != dod.TokenSemicolon && tok.Type != dod.TokenEOF {
			toks = append(toks, tok)
		}
	}
	return toks
}

// FormatResult contains the result of formatting a file.
type FormatResult struct {
	// Content is the formatted content.
	Content string
	// Changed indicates if the content was different from the original.
	Changed bool
}

// FormatWithResult formats the source and indicates if it changed.
func (f *Formatter) FormatWithResult(source string) (FormatResult, error) {
	formatted, err := f.Format(source)
	if err != nil {
		return FormatResult{}, err
	}

	return FormatResult{
		Content: formatted,
		Changed: formatted != source,
	}, nil
}
