package dod

// Parser is a recursive-descent parser over a token slice.
//
// Parsing is fail-fast: the first syntax error is returned up the call chain
// and ends the parse. Statements committed before the failing top-level
// statement are kept; nothing is resynchronized.
type Parser struct {
	tokens *TokenStream
}

// NewParser creates a new Parser for the given tokens.
func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: NewTokenStream(tokens)}
}

// Parse tokenizes and parses source in one step.
func Parse(source string) (*Program, error) {
	return NewParser(Tokenize(source)).ParseProgram()
}

// ParseProgram parses statements until end of input or the first error.
// The returned Program is never nil. A non-nil error is always a *Error.
func (p *Parser) ParseProgram() (*Program, error) {
	prog := &Program{}
	for {
		stmt, err := p.parseStatement()
		if err != nil {
			return prog, err
		}
		if stmt == nil {
			return prog, nil
		}
		prog.Statements = append(prog.Statements, stmt)
	}
}

// peek returns the current token. An exhausted stream behaves as if it
// were parked on its final EOF token.
func (p *Parser) peek() Token {
	if tok, ok := p.tokens.Peek(); ok {
		return tok
	}
	return p.tokens.Last()
}

// advance consumes and returns the current token.
func (p *Parser) advance() Token {
	if tok, ok := p.tokens.Next(); ok {
		return tok
	}
	return p.tokens.Last()
}

// expect consumes the current token if it has type typ.
// what describes the expected token for the error message.
func (p *Parser) expect(typ TokenType, what string) (Token, error) {
	tok := p.peek()
	if tok.Type == typ {
		return p.advance(), nil
	}
	if tok.Type == TokenEOF {
		return tok, NewErrorf(tok, "unexpected end of file, expected %s", what)
	}
	return tok, NewErrorf(tok, "expected %s, found %s", what, tok.Describe())
}

// parseStatement parses one statement. It returns nil, nil at end of input.
func (p *Parser) parseStatement() (Stmt, error) {
	tok := p.peek()
	switch {
	case tok.Type == TokenEOF:
		return nil, nil
	case tok.IsKeyword("let"), tok.IsKeyword("const"):
		return p.parseVarDecl()
	case tok.IsKeyword("if"):
		return p.parseIf()
	case tok.Type == TokenKeyword:
		return nil, NewErrorf(tok, "unimplemented keyword '%s'", tok.Literal)
	default:
		return p.parseExprStmt()
	}
}

// parseVarDecl parses "let NAME = expr ;".
// The '=' and ';' tokens are consumed without being checked.
func (p *Parser) parseVarDecl() (Stmt, error) {
	kw := p.advance()

	name := p.peek()
	if name.Type != TokenIdent {
		return nil, NewErrorf(name, "expected identifier after '%s', found %s", kw.Literal, name.Describe())
	}
	p.advance()

	p.advance() // =

	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	p.advance() // ;

	return &VarDecl{
		Name:     name.Literal,
		Const:    kw.Literal == "const",
		Value:    value,
		Position: kw.Pos(),
	}, nil
}

// parseIf parses "if ( expr ) { stmt* }".
func (p *Parser) parseIf() (Stmt, error) {
	ifTok := p.advance()

	if _, err := p.expect(TokenLParen, "'(' after 'if'"); err != nil {
		return nil, err
	}

	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenRParen, "')' after if condition"); err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenLBrace, "'{' to open if body"); err != nil {
		return nil, err
	}

	var body []Stmt
	for {
		tok := p.peek()
		if tok.Type == TokenRBrace {
			p.advance()
			break
		}
		if tok.Type == TokenEOF {
			return nil, NewError(tok, "missing closing brace '}' for if body")
		}

		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}

	return &IfStmt{
		Cond:     cond,
		Body:     body,
		Position: ifTok.Pos(),
	}, nil
}

// parseExprStmt parses an expression statement with an optional trailing ';'.
func (p *Parser) parseExprStmt() (Stmt, error) {
	x, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.peek().Type == TokenSemicolon {
		p.advance()
	}
	return &ExprStmt{X: x}, nil
}
