package dod

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// astOpts compares trees by shape: positions and operator token
// bookkeeping are checked by dedicated tests.
var astOpts = cmp.Options{
	cmpopts.IgnoreTypes(Position{}),
	cmpopts.IgnoreFields(Token{}, "Literal", "Line", "Column", "StartPos", "EndPos"),
	cmpopts.IgnoreFields(IntegerLiteral{}, "Literal"),
	cmpopts.IgnoreFields(FloatLiteral{}, "Literal"),
}

func intLit(v int32) *IntegerLiteral { return &IntegerLiteral{Value: v} }
func ident(name string) *Identifier  { return &Identifier{Name: name} }
func binary(op TokenType, l, r Expr) *BinaryExpr {
	return &BinaryExpr{Left: l, Right: r, Op: Token{Type: op}}
}

func TestParser_Statements(t *testing.T) {
	type tc struct {
		input string
		want  []Stmt
	}

	tests := map[string]tc{
		"let with addition": {
			input: "let x = 1 + 2;",
			want: []Stmt{
				&VarDecl{Name: "x", Value: binary(TokenPlus, intLit(1), intLit(2))},
			},
		},
		"const float": {
			input: "const k = 2.5;",
			want: []Stmt{
				&VarDecl{Name: "k", Const: true, Value: &FloatLiteral{Value: 2.5}},
			},
		},
		"if with body": {
			input: "if (1) { let y = 2; }",
			want: []Stmt{
				&IfStmt{
					Cond: intLit(1),
					Body: []Stmt{&VarDecl{Name: "y", Value: intLit(2)}},
				},
			},
		},
		"empty if body": {
			input: "if (a) {}",
			want:  []Stmt{&IfStmt{Cond: ident("a")}},
		},
		"nested if": {
			input: "if (a) { if (b) { c; } }",
			want: []Stmt{
				&IfStmt{
					Cond: ident("a"),
					Body: []Stmt{&IfStmt{
						Cond: ident("b"),
						Body: []Stmt{&ExprStmt{X: ident("c")}},
					}},
				},
			},
		},
		"expression statements": {
			input: "a b;",
			want: []Stmt{
				&ExprStmt{X: ident("a")},
				&ExprStmt{X: ident("b")},
			},
		},
		"let without semicolon at end": {
			input: "let x = 1",
			want:  []Stmt{&VarDecl{Name: "x", Value: intLit(1)}},
		},
		"multiple lines": {
			input: "let a = 1;\nlet b = a;\n",
			want: []Stmt{
				&VarDecl{Name: "a", Value: intLit(1)},
				&VarDecl{Name: "b", Value: ident("a")},
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			prog, err := Parse(tt.input)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, prog.Statements, astOpts); diff != "" {
				t.Errorf("statements mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParser_Precedence(t *testing.T) {
	type tc struct {
		input string
		want  Expr
	}

	tests := map[string]tc{
		"multiplication binds tighter": {
			input: "1 + 2 * 3",
			want:  binary(TokenPlus, intLit(1), binary(TokenStar, intLit(2), intLit(3))),
		},
		"comparison loosest": {
			input: "1 + 2 < 4",
			want:  binary(TokenLess, binary(TokenPlus, intLit(1), intLit(2)), intLit(4)),
		},
		"left associative subtraction": {
			input: "1 - 2 - 3",
			want:  binary(TokenMinus, binary(TokenMinus, intLit(1), intLit(2)), intLit(3)),
		},
		"left associative comparison": {
			input: "a == b != c",
			want:  binary(TokenNotEqual, binary(TokenEqual, ident("a"), ident("b")), ident("c")),
		},
		"modulo and division": {
			input: "a % b / c",
			want:  binary(TokenSlash, binary(TokenPercent, ident("a"), ident("b")), ident("c")),
		},
		"parentheses override": {
			input: "(1 + 2) * 3",
			want: binary(TokenStar,
				&ParenExpr{X: binary(TokenPlus, intLit(1), intLit(2))},
				intLit(3)),
		},
		"negation of group": {
			input: "!(a >= b)",
			want:  &UnaryExpr{X: &ParenExpr{X: binary(TokenGreaterEq, ident("a"), ident("b"))}},
		},
		"negation binds tighter than multiplication": {
			input: "!a * b",
			want:  binary(TokenStar, &UnaryExpr{X: ident("a")}, ident("b")),
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			prog, err := Parse(tt.input)
			require.NoError(t, err)
			require.Len(t, prog.Statements, 1)
			stmt, ok := prog.Statements[0].(*ExprStmt)
			require.True(t, ok, "statement is %T", prog.Statements[0])
			if diff := cmp.Diff(tt.want, stmt.X, astOpts); diff != "" {
				t.Errorf("expression mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParser_LiteralText(t *testing.T) {
	prog, err := Parse("let a = 99999999999; let b = 1.2.3; let c = 007;")
	require.NoError(t, err)
	require.Len(t, prog.Statements, 3)

	a := prog.Statements[0].(*VarDecl).Value.(*IntegerLiteral)
	assert.Equal(t, int32(0), a.Value)
	assert.Equal(t, "99999999999", a.Literal)

	b := prog.Statements[1].(*VarDecl).Value.(*FloatLiteral)
	assert.Equal(t, float32(0), b.Value)
	assert.Equal(t, "1.2.3", b.Literal)

	c := prog.Statements[2].(*VarDecl).Value.(*IntegerLiteral)
	assert.Equal(t, int32(7), c.Value)
	assert.Equal(t, "007", c.Literal)
}

func TestParser_Errors(t *testing.T) {
	type tc struct {
		input     string
		wantStmts int
		wantPos   Position
		wantEnd   Position
		wantMsg   string
	}

	tests := map[string]tc{
		"missing open paren": {
			input:     "if 1) { }",
			wantStmts: 0,
			wantPos:   Position{Line: 1, Column: 4},
			wantEnd:   Position{Line: 1, Column: 5},
			wantMsg:   "expected '(' after 'if', found '1'",
		},
		"missing close paren": {
			input:   "if (a { }",
			wantPos: Position{Line: 1, Column: 7},
			wantEnd: Position{Line: 1, Column: 8},
			wantMsg: "expected ')' after if condition, found '{'",
		},
		"missing open brace": {
			input:   "if (a) b",
			wantPos: Position{Line: 1, Column: 8},
			wantEnd: Position{Line: 1, Column: 9},
			wantMsg: "expected '{' to open if body, found 'b'",
		},
		"eof in if header": {
			input:   "if (a",
			wantPos: Position{Line: 1, Column: 6},
			wantEnd: Position{Line: 1, Column: 7},
			wantMsg: "unexpected end of file, expected ')' after if condition",
		},
		"missing closing brace": {
			input:   "if (1) { let y = 2;",
			wantPos: Position{Line: 1, Column: 20},
			wantEnd: Position{Line: 1, Column: 21},
			wantMsg: "missing closing brace '}' for if body",
		},
		"let needs identifier": {
			input:   "let 5 = 1;",
			wantPos: Position{Line: 1, Column: 5},
			wantEnd: Position{Line: 1, Column: 6},
			wantMsg: "expected identifier after 'let', found '5'",
		},
		"unimplemented keyword": {
			input:   "while (1) {}",
			wantPos: Position{Line: 1, Column: 1},
			wantEnd: Position{Line: 1, Column: 6},
			wantMsg: "unimplemented keyword 'while'",
		},
		"keyword in expression": {
			input:   "let b = true;",
			wantPos: Position{Line: 1, Column: 9},
			wantEnd: Position{Line: 1, Column: 13},
			wantMsg: "unexpected token 'true', expected identifier or number",
		},
		"eof in expression": {
			input:   "let x = 1 +",
			wantPos: Position{Line: 1, Column: 12},
			wantEnd: Position{Line: 1, Column: 13},
			wantMsg: "unexpected end of file",
		},
		"illegal character": {
			input:   "let x = @;",
			wantPos: Position{Line: 1, Column: 9},
			wantEnd: Position{Line: 1, Column: 10},
			wantMsg: `unexpected character "@"`,
		},
		"unclosed group": {
			input:   "(1 + 2;",
			wantPos: Position{Line: 1, Column: 7},
			wantEnd: Position{Line: 1, Column: 8},
			wantMsg: "expected ')' to close parenthesized expression, found ';'",
		},
		"double negation": {
			input:   "!!a",
			wantPos: Position{Line: 1, Column: 2},
			wantEnd: Position{Line: 1, Column: 3},
			wantMsg: "unexpected token '!', expected identifier or number",
		},
		"keeps statements before the error": {
			input:     "let x = 1; let y = ;",
			wantStmts: 1,
			wantPos:   Position{Line: 1, Column: 20},
			wantEnd:   Position{Line: 1, Column: 21},
			wantMsg:   "unexpected token ';', expected identifier or number",
		},
		"expression statement committed before error": {
			input:     "x = 1",
			wantStmts: 1,
			wantPos:   Position{Line: 1, Column: 3},
			wantEnd:   Position{Line: 1, Column: 4},
			wantMsg:   "unexpected token '=', expected identifier or number",
		},
		"error in body discards the whole if": {
			input:     "let a = 1;\nif (a) { let b = ; }",
			wantStmts: 1,
			wantPos:   Position{Line: 2, Column: 18},
			wantEnd:   Position{Line: 2, Column: 19},
			wantMsg:   "unexpected token ';', expected identifier or number",
		},
		"stray closing brace": {
			input:   "}",
			wantPos: Position{Line: 1, Column: 1},
			wantEnd: Position{Line: 1, Column: 2},
			wantMsg: "unexpected token '}', expected identifier or number",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			prog, err := Parse(tt.input)
			require.Error(t, err)
			require.NotNil(t, prog)
			assert.Len(t, prog.Statements, tt.wantStmts)

			var perr *Error
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.wantPos, perr.Pos)
			assert.Equal(t, tt.wantEnd, perr.End)
			assert.Equal(t, tt.wantMsg, perr.Message)
		})
	}
}

func TestParser_EmptyInput(t *testing.T) {
	for name, input := range map[string]string{
		"empty":      "",
		"whitespace": " \t\r\n\n  ",
	} {
		t.Run(name, func(t *testing.T) {
			prog, err := Parse(input)
			require.NoError(t, err)
			assert.Empty(t, prog.Statements)
		})
	}
}

func TestParser_NoTokens(t *testing.T) {
	prog, err := NewParser(nil).ParseProgram()
	require.NoError(t, err)
	assert.Empty(t, prog.Statements)
}

func TestParser_Idempotent(t *testing.T) {
	src := "let a = 1;\nif (a < 2) { let b = a * 3; }\nlet c = ;"

	prog1, err1 := Parse(src)
	prog2, err2 := Parse(src)

	assert.Equal(t, err1, err2)
	assert.Equal(t, DumpString(prog1), DumpString(prog2))
}

func TestParser_Positions(t *testing.T) {
	prog, err := Parse("let x = 1;\n  if (x) { !y; }")
	require.NoError(t, err)
	require.Len(t, prog.Statements, 2)

	decl := prog.Statements[0].(*VarDecl)
	assert.Equal(t, Position{Line: 1, Column: 1}, decl.Pos())
	assert.Equal(t, Position{Line: 1, Column: 9}, decl.Value.Pos())

	ifStmt := prog.Statements[1].(*IfStmt)
	assert.Equal(t, Position{Line: 2, Column: 3}, ifStmt.Pos())
	assert.Equal(t, Position{Line: 2, Column: 7}, ifStmt.Cond.Pos())

	body := ifStmt.Body[0].(*ExprStmt)
	assert.Equal(t, Position{Line: 2, Column: 12}, body.Pos())
}

func TestError_String(t *testing.T) {
	_, err := Parse("if 1) { }")
	require.Error(t, err)
	assert.Equal(t, "1:4: error: expected '(' after 'if', found '1'", err.Error())
}
