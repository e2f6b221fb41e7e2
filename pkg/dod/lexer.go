package dod

import (
	"iter"
	"slices"
	"unicode/utf8"
)

// Lexer tokenizes dod source text byte by byte.
//
// The token sequence is finite and cannot be restarted: once the source is
// exhausted the lexer produces a single EOF token, after which Next reports
// false.
type Lexer struct {
	source string
	pos    int // next byte to read
	line   int // line of the last byte read (1-based)
	column int // column of the last byte read (1-based, 0 before a line's first byte)
	done   bool
}

// NewLexer creates a new Lexer for the given source.
func NewLexer(source string) *Lexer {
	return &Lexer{
		source: source,
		line:   1,
	}
}

// Tokenize returns every token in source, ending with exactly one EOF token.
func Tokenize(source string) []Token {
	return slices.Collect(NewLexer(source).All())
}

// Next returns the next token from the source. The second result is false
// once the EOF token has been returned.
func (l *Lexer) Next() (Token, bool) {
	if l.done {
		return Token{}, false
	}
	tok := l.scan()
	if tok.Type == TokenEOF {
		l.done = true
	}
	return tok, true
}

// All returns an iterator over the remaining tokens, EOF included.
func (l *Lexer) All() iter.Seq[Token] {
	return func(yield func(Token) bool) {
		for {
			tok, ok := l.Next()
			if !ok || !yield(tok) {
				return
			}
		}
	}
}

// readByte consumes one byte and updates the line/column counters.
func (l *Lexer) readByte() byte {
	b := l.source[l.pos]
	l.pos++
	if b == '\n' {
		l.line++
		l.column = 0
	} else {
		l.column++
	}
	return b
}

// peekByte returns the next byte without consuming it, or 0 at end of input.
func (l *Lexer) peekByte() byte {
	if l.pos >= len(l.source) {
		return 0
	}
	return l.source[l.pos]
}

// scan produces the next token, skipping whitespace first.
func (l *Lexer) scan() Token {
	l.skipWhitespace()

	if l.pos >= len(l.source) {
		return Token{
			Type:     TokenEOF,
			Line:     l.line,
			Column:   l.column + 1,
			StartPos: l.pos,
			EndPos:   l.pos,
		}
	}

	start := l.pos
	b := l.readByte()
	tok := Token{Line: l.line, Column: l.column, StartPos: start}

	switch b {
	case '(':
		tok.Type = TokenLParen
	case ')':
		tok.Type = TokenRParen
	case '{':
		tok.Type = TokenLBrace
	case '}':
		tok.Type = TokenRBrace
	case '[':
		tok.Type = TokenLBracket
	case ']':
		tok.Type = TokenRBracket
	case ',':
		tok.Type = TokenComma
	case '.':
		tok.Type = TokenDot
	case ';':
		tok.Type = TokenSemicolon
	case '+':
		tok.Type = TokenPlus
	case '-':
		tok.Type = TokenMinus
	case '*':
		tok.Type = TokenStar
	case '/':
		tok.Type = TokenSlash
	case '%':
		tok.Type = TokenPercent
	case ':':
		tok.Type = l.pair(':', TokenDoubleColon, TokenColon)
	case '!':
		tok.Type = l.pair('=', TokenNotEqual, TokenBang)
	case '=':
		tok.Type = l.pair('=', TokenEqual, TokenAssign)
	case '<':
		tok.Type = l.pair('=', TokenLessEq, TokenLess)
	case '>':
		tok.Type = l.pair('=', TokenGreaterEq, TokenGreater)
	case '"':
		tok.Type = TokenString
		tok.Literal = l.readString()
		tok.EndPos = l.pos
		return tok
	default:
		switch {
		case isDigit(b):
			tok.Type = l.readNumber()
		case isLetter(b):
			l.readWhile(func(c byte) bool { return isLetter(c) || isDigit(c) })
			tok.Type = LookupIdent(l.source[start:l.pos])
		default:
			// Consume the rest of a multi-byte character so the literal is readable.
			_, size := utf8.DecodeRuneInString(l.source[start:])
			for i := 1; i < size && l.pos < len(l.source); i++ {
				l.readByte()
			}
			tok.Type = TokenIllegal
		}
	}

	tok.EndPos = l.pos
	switch tok.Type {
	case TokenIdent, TokenKeyword, TokenInt, TokenFloat, TokenIllegal:
		tok.Literal = l.source[start:l.pos]
	}
	return tok
}

// pair consumes next if it follows and returns two, otherwise one.
func (l *Lexer) pair(next byte, two, one TokenType) TokenType {
	if l.peekByte() == next {
		l.readByte()
		return two
	}
	return one
}

// skipWhitespace skips spaces, tabs, carriage returns and newlines.
func (l *Lexer) skipWhitespace() {
	l.readWhile(func(c byte) bool {
		return c == ' ' || c == '\t' || c == '\r' || c == '\n'
	})
}

// readWhile consumes bytes while pred holds.
func (l *Lexer) readWhile(pred func(byte) bool) {
	for l.pos < len(l.source) && pred(l.source[l.pos]) {
		l.readByte()
	}
}

// readNumber reads the rest of a digit run. Any '.' inside the run turns the
// literal into a float; there is no exponent or separator syntax.
func (l *Lexer) readNumber() TokenType {
	typ := TokenInt
	l.readWhile(func(c byte) bool {
		if c == '.' {
			typ = TokenFloat
			return true
		}
		return isDigit(c)
	})
	return typ
}

// readString reads a double-quoted string after its opening quote.
// Bytes are taken verbatim; an unterminated string ends at end of input.
func (l *Lexer) readString() string {
	start := l.pos
	l.readWhile(func(c byte) bool { return c != '"' })
	text := l.source[start:l.pos]
	if l.pos < len(l.source) {
		l.readByte() // consume closing "
	}
	return text
}

// isLetter returns true if the byte is an ASCII letter or underscore.
func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

// isDigit returns true if the byte is an ASCII digit.
func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
