// Package dod implements the tokenizer and parser for the dod language.
// The language is a small set of variable declarations, if statements and
// arithmetic/comparison expressions; the parser stops at the first error.
package dod

import (
	"fmt"
	"strconv"
	"strings"
)

// TokenType represents the type of a lexical token.
type TokenType int

const (
	// Special tokens
	TokenEOF     TokenType = iota // end of input
	TokenIllegal                  // byte that starts no token

	// Literals
	TokenIdent   // identifier
	TokenKeyword // reserved word
	TokenInt     // integer literal: 123
	TokenFloat   // float literal: 1.23
	TokenString  // string literal: "..."

	// Punctuation
	TokenLParen      // (
	TokenRParen      // )
	TokenLBrace      // {
	TokenRBrace      // }
	TokenLBracket    // [
	TokenRBracket    // ]
	TokenComma       // ,
	TokenDot         // .
	TokenSemicolon   // ;
	TokenColon       // :
	TokenDoubleColon // ::

	// Arithmetic
	TokenPlus    // +
	TokenMinus   // -
	TokenStar    // *
	TokenSlash   // /
	TokenPercent // %

	// Comparison
	TokenLess      // <
	TokenLessEq    // <=
	TokenGreater   // >
	TokenGreaterEq // >=
	TokenEqual     // ==
	TokenNotEqual  // !=

	TokenBang   // !
	TokenAssign // =
)

// tokenNames maps token types to their string names for debugging.
var tokenNames = map[TokenType]string{
	TokenEOF:         "EOF",
	TokenIllegal:     "Illegal",
	TokenIdent:       "Ident",
	TokenKeyword:     "Keyword",
	TokenInt:         "Int",
	TokenFloat:       "Float",
	TokenString:      "String",
	TokenLParen:      "(",
	TokenRParen:      ")",
	TokenLBrace:      "{",
	TokenRBrace:      "}",
	TokenLBracket:    "[",
	TokenRBracket:    "]",
	TokenComma:       ",",
	TokenDot:         ".",
	TokenSemicolon:   ";",
	TokenColon:       ":",
	TokenDoubleColon: "::",
	TokenPlus:        "+",
	TokenMinus:       "-",
	TokenStar:        "*",
	TokenSlash:       "/",
	TokenPercent:     "%",
	TokenLess:        "<",
	TokenLessEq:      "<=",
	TokenGreater:     ">",
	TokenGreaterEq:   ">=",
	TokenEqual:       "==",
	TokenNotEqual:    "!=",
	TokenBang:        "!",
	TokenAssign:      "=",
}

// String returns a human-readable name for the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", t)
}

// Token represents a lexical token with its type, literal value, and source position.
// For strings, Literal holds the text between the quotes.
type Token struct {
	Type     TokenType
	Literal  string
	Line     int
	Column   int
	StartPos int // byte offset in source where token starts
	EndPos   int // byte offset just past the token
}

// String returns a debug representation of the token.
func (t Token) String() string {
	if t.Literal == "" {
		return fmt.Sprintf("%s at %d:%d", t.Type, t.Line, t.Column)
	}
	lit := t.Literal
	if len(lit) > 20 {
		lit = lit[:17] + "..."
	}
	return fmt.Sprintf("%s(%q) at %d:%d", t.Type, lit, t.Line, t.Column)
}

// Describe returns the token as it should appear in an error message.
func (t Token) Describe() string {
	switch t.Type {
	case TokenEOF:
		return "end of file"
	case TokenIdent, TokenKeyword, TokenInt, TokenFloat:
		return fmt.Sprintf("'%s'", t.Literal)
	case TokenString:
		return "string literal"
	case TokenIllegal:
		return fmt.Sprintf("%q", t.Literal)
	}
	return fmt.Sprintf("'%s'", t.Type)
}

// Pos returns the token's start position.
func (t Token) Pos() Position {
	return Position{Line: t.Line, Column: t.Column}
}

// End returns the position just past the token on its starting line.
// Tokens spanning lines (unterminated or multi-line strings) and EOF
// are given a width of one column.
func (t Token) End() Position {
	width := t.EndPos - t.StartPos
	if width <= 0 || (t.Type == TokenString && strings.Contains(t.Literal, "\n")) {
		width = 1
	}
	return Position{Line: t.Line, Column: t.Column + width}
}

// IsKeyword reports whether the token is the keyword kw.
func (t Token) IsKeyword(kw string) bool {
	return t.Type == TokenKeyword && t.Literal == kw
}

// IntValue returns the value of an integer literal. Text that does not fit
// in an int32 yields 0.
func (t Token) IntValue() int32 {
	v, err := strconv.ParseInt(t.Literal, 10, 32)
	if err != nil {
		return 0
	}
	return int32(v)
}

// FloatValue returns the value of a float literal. Malformed text such as
// "1.2.3" yields 0.
func (t Token) FloatValue() float32 {
	v, err := strconv.ParseFloat(t.Literal, 32)
	if err != nil {
		return 0
	}
	return float32(v)
}

// Position represents a 1-based source location.
type Position struct {
	Line   int
	Column int
}

// String returns a formatted position string.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// keywords is the fixed set of reserved words.
var keywords = map[string]bool{
	"if":       true,
	"else":     true,
	"while":    true,
	"for":      true,
	"return":   true,
	"break":    true,
	"continue": true,
	"true":     true,
	"false":    true,
	"null":     true,
	"int":      true,
	"float":    true,
	"string":   true,
	"bool":     true,
	"void":     true,
	"let":      true,
	"const":    true,
	"function": true,
}

// LookupIdent returns the token type for an identifier,
// checking if it's a keyword first.
func LookupIdent(ident string) TokenType {
	if keywords[ident] {
		return TokenKeyword
	}
	return TokenIdent
}
