package dod

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexer_BasicTokens(t *testing.T) {
	type tc struct {
		input    string
		expected []Token
	}

	tests := map[string]tc{
		"empty": {
			input:    "",
			expected: []Token{{Type: TokenEOF, Line: 1, Column: 1}},
		},
		"let statement": {
			input: "let x = 1 + 2;",
			expected: []Token{
				{Type: TokenKeyword, Literal: "let", Line: 1, Column: 1},
				{Type: TokenIdent, Literal: "x", Line: 1, Column: 5},
				{Type: TokenAssign, Line: 1, Column: 7},
				{Type: TokenInt, Literal: "1", Line: 1, Column: 9},
				{Type: TokenPlus, Line: 1, Column: 11},
				{Type: TokenInt, Literal: "2", Line: 1, Column: 13},
				{Type: TokenSemicolon, Line: 1, Column: 14},
				{Type: TokenEOF, Line: 1, Column: 15},
			},
		},
		"punctuation": {
			input: "(){}[],.;",
			expected: []Token{
				{Type: TokenLParen, Line: 1, Column: 1},
				{Type: TokenRParen, Line: 1, Column: 2},
				{Type: TokenLBrace, Line: 1, Column: 3},
				{Type: TokenRBrace, Line: 1, Column: 4},
				{Type: TokenLBracket, Line: 1, Column: 5},
				{Type: TokenRBracket, Line: 1, Column: 6},
				{Type: TokenComma, Line: 1, Column: 7},
				{Type: TokenDot, Line: 1, Column: 8},
				{Type: TokenSemicolon, Line: 1, Column: 9},
				{Type: TokenEOF, Line: 1, Column: 10},
			},
		},
		"arithmetic": {
			input: "+-*/%",
			expected: []Token{
				{Type: TokenPlus, Line: 1, Column: 1},
				{Type: TokenMinus, Line: 1, Column: 2},
				{Type: TokenStar, Line: 1, Column: 3},
				{Type: TokenSlash, Line: 1, Column: 4},
				{Type: TokenPercent, Line: 1, Column: 5},
				{Type: TokenEOF, Line: 1, Column: 6},
			},
		},
		"two character operators": {
			input: ":: != == <= >=",
			expected: []Token{
				{Type: TokenDoubleColon, Line: 1, Column: 1},
				{Type: TokenNotEqual, Line: 1, Column: 4},
				{Type: TokenEqual, Line: 1, Column: 7},
				{Type: TokenLessEq, Line: 1, Column: 10},
				{Type: TokenGreaterEq, Line: 1, Column: 13},
				{Type: TokenEOF, Line: 1, Column: 15},
			},
		},
		"single character fallbacks": {
			input: ": ! = < >",
			expected: []Token{
				{Type: TokenColon, Line: 1, Column: 1},
				{Type: TokenBang, Line: 1, Column: 3},
				{Type: TokenAssign, Line: 1, Column: 5},
				{Type: TokenLess, Line: 1, Column: 7},
				{Type: TokenGreater, Line: 1, Column: 9},
				{Type: TokenEOF, Line: 1, Column: 10},
			},
		},
		"multiple lines": {
			input: "let a = 1;\n  b\n",
			expected: []Token{
				{Type: TokenKeyword, Literal: "let", Line: 1, Column: 1},
				{Type: TokenIdent, Literal: "a", Line: 1, Column: 5},
				{Type: TokenAssign, Line: 1, Column: 7},
				{Type: TokenInt, Literal: "1", Line: 1, Column: 9},
				{Type: TokenSemicolon, Line: 1, Column: 10},
				{Type: TokenIdent, Literal: "b", Line: 2, Column: 3},
				{Type: TokenEOF, Line: 3, Column: 1},
			},
		},
		"crlf line endings": {
			input: "a\r\nb",
			expected: []Token{
				{Type: TokenIdent, Literal: "a", Line: 1, Column: 1},
				{Type: TokenIdent, Literal: "b", Line: 2, Column: 1},
				{Type: TokenEOF, Line: 2, Column: 2},
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			l := NewLexer(tt.input)
			for i, expected := range tt.expected {
				tok, ok := l.Next()
				if !ok {
					t.Fatalf("token %d: stream ended early", i)
				}
				if tok.Type != expected.Type {
					t.Errorf("token %d: Type = %v, want %v", i, tok.Type, expected.Type)
				}
				if tok.Literal != expected.Literal {
					t.Errorf("token %d: Literal = %q, want %q", i, tok.Literal, expected.Literal)
				}
				if tok.Line != expected.Line {
					t.Errorf("token %d: Line = %d, want %d", i, tok.Line, expected.Line)
				}
				if tok.Column != expected.Column {
					t.Errorf("token %d: Column = %d, want %d", i, tok.Column, expected.Column)
				}
			}
			if tok, ok := l.Next(); ok {
				t.Errorf("expected exhausted stream, got %v", tok)
			}
		})
	}
}

func TestLexer_Keywords(t *testing.T) {
	for _, kw := range []string{
		"if", "else", "while", "for", "return", "break", "continue", "true", "false",
		"null", "int", "float", "string", "bool", "void", "let", "const", "function",
	} {
		t.Run(kw, func(t *testing.T) {
			toks := Tokenize(kw)
			require.Len(t, toks, 2)
			assert.Equal(t, TokenKeyword, toks[0].Type)
			assert.Equal(t, kw, toks[0].Literal)
			assert.True(t, toks[0].IsKeyword(kw))
		})
	}
}

func TestLexer_Identifiers(t *testing.T) {
	type tc struct {
		input string
		want  string
	}

	tests := map[string]tc{
		"plain":              {input: "count", want: "count"},
		"keyword prefix":     {input: "letter", want: "letter"},
		"leading underscore": {input: "_x1", want: "_x1"},
		"digits inside":      {input: "a1b2", want: "a1b2"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			toks := Tokenize(tt.input)
			require.Len(t, toks, 2)
			assert.Equal(t, TokenIdent, toks[0].Type)
			assert.Equal(t, tt.want, toks[0].Literal)
		})
	}
}

func TestLexer_Numbers(t *testing.T) {
	type tc struct {
		input     string
		wantType  TokenType
		wantInt   int32
		wantFloat float32
	}

	tests := map[string]tc{
		"integer":          {input: "42", wantType: TokenInt, wantInt: 42},
		"leading zeros":    {input: "007", wantType: TokenInt, wantInt: 7},
		"int32 overflow":   {input: "99999999999", wantType: TokenInt, wantInt: 0},
		"float":            {input: "12.5", wantType: TokenFloat, wantFloat: 12.5},
		"trailing dot":     {input: "3.", wantType: TokenFloat, wantFloat: 3},
		"two dots degrade": {input: "1.2.3", wantType: TokenFloat, wantFloat: 0},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			toks := Tokenize(tt.input)
			require.Len(t, toks, 2)
			tok := toks[0]
			assert.Equal(t, tt.wantType, tok.Type)
			assert.Equal(t, tt.input, tok.Literal)
			if tt.wantType == TokenInt {
				assert.Equal(t, tt.wantInt, tok.IntValue())
			} else {
				assert.Equal(t, tt.wantFloat, tok.FloatValue())
			}
		})
	}
}

func TestLexer_Strings(t *testing.T) {
	type tc struct {
		input string
		want  []Token
	}

	tests := map[string]tc{
		"simple": {
			input: `"hi there"`,
			want: []Token{
				{Type: TokenString, Literal: "hi there", Line: 1, Column: 1, StartPos: 0, EndPos: 10},
				{Type: TokenEOF, Line: 1, Column: 11, StartPos: 10, EndPos: 10},
			},
		},
		"unterminated": {
			input: `"abc`,
			want: []Token{
				{Type: TokenString, Literal: "abc", Line: 1, Column: 1, StartPos: 0, EndPos: 4},
				{Type: TokenEOF, Line: 1, Column: 5, StartPos: 4, EndPos: 4},
			},
		},
		"no escape processing": {
			input: `"a\"b"`,
			want: []Token{
				{Type: TokenString, Literal: `a\`, Line: 1, Column: 1, StartPos: 0, EndPos: 4},
				{Type: TokenIdent, Literal: "b", Line: 1, Column: 5, StartPos: 4, EndPos: 5},
				{Type: TokenString, Literal: "", Line: 1, Column: 6, StartPos: 5, EndPos: 6},
				{Type: TokenEOF, Line: 1, Column: 7, StartPos: 6, EndPos: 6},
			},
		},
		"spans lines": {
			input: "\"a\nb\" c",
			want: []Token{
				{Type: TokenString, Literal: "a\nb", Line: 1, Column: 1, StartPos: 0, EndPos: 5},
				{Type: TokenIdent, Literal: "c", Line: 2, Column: 4, StartPos: 6, EndPos: 7},
				{Type: TokenEOF, Line: 2, Column: 5, StartPos: 7, EndPos: 7},
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.input))
		})
	}
}

func TestLexer_Illegal(t *testing.T) {
	type tc struct {
		input   string
		literal string
	}

	tests := map[string]tc{
		"ascii":     {input: "@", literal: "@"},
		"multibyte": {input: "é", literal: "é"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			toks := Tokenize(tt.input)
			require.Len(t, toks, 2)
			assert.Equal(t, TokenIllegal, toks[0].Type)
			assert.Equal(t, tt.literal, toks[0].Literal)
			assert.Equal(t, TokenEOF, toks[1].Type)
		})
	}
}

func TestLexer_WhitespaceOnly(t *testing.T) {
	for name, input := range map[string]string{
		"spaces":  "   ",
		"mixed":   " \t\r\n \n",
		"newline": "\n",
	} {
		t.Run(name, func(t *testing.T) {
			toks := Tokenize(input)
			require.Len(t, toks, 1)
			assert.Equal(t, TokenEOF, toks[0].Type)
		})
	}
}

func TestLexer_NotRestartable(t *testing.T) {
	l := NewLexer("a")

	var got []TokenType
	for tok := range l.All() {
		got = append(got, tok.Type)
	}
	assert.Equal(t, []TokenType{TokenIdent, TokenEOF}, got)

	for range l.All() {
		t.Fatal("exhausted lexer yielded a token")
	}
	_, ok := l.Next()
	assert.False(t, ok)
}

func TestLexer_AllStopsEarly(t *testing.T) {
	l := NewLexer("a b c")
	for tok := range l.All() {
		assert.Equal(t, "a", tok.Literal)
		break
	}

	tok, ok := l.Next()
	require.True(t, ok)
	assert.Equal(t, "b", tok.Literal)
}

func TestTokenize_Idempotent(t *testing.T) {
	src := "let x = 1.5 * (y + 2);\nif (x >= 3) { x }\n\"s\" @"
	assert.Equal(t, Tokenize(src), Tokenize(src))
}

func TestToken_End(t *testing.T) {
	type tc struct {
		input string
		want  Position
	}

	tests := map[string]tc{
		"identifier":  {input: "abc", want: Position{Line: 1, Column: 4}},
		"two char op": {input: "<=", want: Position{Line: 1, Column: 3}},
		"eof":         {input: "", want: Position{Line: 1, Column: 2}},
		"multi-line":  {input: "\"a\nb\"", want: Position{Line: 1, Column: 2}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.input)[0].End())
		})
	}
}
