package dod

// TokenStream is a single-lookahead cursor over a materialized token slice.
// It is owned by one parser; nothing else advances it.
type TokenStream struct {
	tokens []Token
	pos    int
}

// NewTokenStream creates a cursor positioned at the first token.
func NewTokenStream(tokens []Token) *TokenStream {
	return &TokenStream{tokens: tokens}
}

// Peek returns the current token without consuming it.
// The second result is false when the stream is exhausted.
func (s *TokenStream) Peek() (Token, bool) {
	if s.pos >= len(s.tokens) {
		return Token{}, false
	}
	return s.tokens[s.pos], true
}

// Next returns the current token and advances past it.
func (s *TokenStream) Next() (Token, bool) {
	tok, ok := s.Peek()
	if ok {
		s.pos++
	}
	return tok, ok
}

// Last returns the last token in the stream, normally EOF.
func (s *TokenStream) Last() Token {
	if len(s.tokens) == 0 {
		return Token{Type: TokenEOF, Line: 1, Column: 1}
	}
	return s.tokens[len(s.tokens)-1]
}
