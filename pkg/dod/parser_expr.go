package dod

import "slices"

// Operator sets for each binary precedence level, loosest first.
var (
	comparisonOps     = []TokenType{TokenLess, TokenLessEq, TokenGreater, TokenGreaterEq, TokenEqual, TokenNotEqual}
	additiveOps       = []TokenType{TokenPlus, TokenMinus}
	multiplicativeOps = []TokenType{TokenStar, TokenSlash, TokenPercent}
)

// parseExpr parses a full expression.
func (p *Parser) parseExpr() (Expr, error) {
	return p.parseComparison()
}

func (p *Parser) parseComparison() (Expr, error) {
	return p.parseBinary(p.parseAdditive, comparisonOps)
}

func (p *Parser) parseAdditive() (Expr, error) {
	return p.parseBinary(p.parseMultiplicative, additiveOps)
}

func (p *Parser) parseMultiplicative() (Expr, error) {
	return p.parseBinary(p.parseUnary, multiplicativeOps)
}

// parseBinary builds a left-associative chain of operand (op operand)*.
func (p *Parser) parseBinary(operand func() (Expr, error), ops []TokenType) (Expr, error) {
	left, err := operand()
	if err != nil {
		return nil, err
	}

	for slices.Contains(ops, p.peek().Type) {
		op := p.advance()
		right, err := operand()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Left: left, Right: right, Op: op}
	}
	return left, nil
}

// parseUnary parses "!" followed by a single grouping-level operand.
func (p *Parser) parseUnary() (Expr, error) {
	tok := p.peek()
	if tok.Type != TokenBang {
		return p.parseGrouping()
	}
	p.advance()

	x, err := p.parseGrouping()
	if err != nil {
		return nil, err
	}
	return &UnaryExpr{X: x, Position: tok.Pos()}, nil
}

// parseGrouping parses "( expr )" or falls through to a primary expression.
func (p *Parser) parseGrouping() (Expr, error) {
	tok := p.peek()
	if tok.Type != TokenLParen {
		return p.parsePrimary()
	}
	p.advance()

	x, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenRParen, "')' to close parenthesized expression"); err != nil {
		return nil, err
	}
	return &ParenExpr{X: x, Position: tok.Pos()}, nil
}

// parsePrimary parses an identifier, integer or float literal.
func (p *Parser) parsePrimary() (Expr, error) {
	tok := p.peek()
	switch tok.Type {
	case TokenIdent:
		p.advance()
		return &Identifier{Name: tok.Literal, Position: tok.Pos()}, nil
	case TokenInt:
		p.advance()
		return &IntegerLiteral{Value: tok.IntValue(), Literal: tok.Literal, Position: tok.Pos()}, nil
	case TokenFloat:
		p.advance()
		return &FloatLiteral{Value: tok.FloatValue(), Literal: tok.Literal, Position: tok.Pos()}, nil
	case TokenEOF:
		return nil, NewError(tok, "unexpected end of file")
	case TokenIllegal:
		return nil, NewErrorf(tok, "unexpected character %s", tok.Describe())
	default:
		return nil, NewErrorf(tok, "unexpected token %s, expected identifier or number", tok.Describe())
	}
}
