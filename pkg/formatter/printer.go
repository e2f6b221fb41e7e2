package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dodlang/dod/pkg/dod"
)

// printer generates formatted .dod source code from an AST.
type printer struct {
	indent string
	depth  int
	buf    strings.Builder
}

// newPrinter creates a new printer with the given settings.
func newPrinter(indent string) *printer {
	return &printer{
		indent: indent,
	}
}

// PrintProgram formats an entire program, one statement per line.
func (p *printer) PrintProgram(prog *dod.Program) string {
	p.buf.Reset()
	p.depth = 0

	for _, stmt := range prog.Statements {
		p.printStmt(stmt)
	}

	return p.buf.String()
}

func (p *printer) printStmt(stmt dod.Stmt) {
	p.writeIndent()
	switch s := stmt.(type) {
	case *dod.VarDecl:
		if s.Const {
			p.write("const ")
		} else {
			p.write("let ")
		}
		p.write(s.Name)
		p.write(" = ")
		p.printExpr(s.Value)
		p.write(";")
		p.newline()

	case *dod.IfStmt:
		p.write("if (")
		p.printExpr(s.Cond)
		p.write(") {")
		p.newline()
		p.depth++
		for _, inner := range s.Body {
			p.printStmt(inner)
		}
		p.depth--
		p.writeIndent()
		p.write("}")
		p.newline()

	case *dod.ExprStmt:
		p.printExpr(s.X)
		p.write(";")
		p.newline()

	default:
		panic(fmt.Sprintf("formatter: unexpected statement %T", stmt))
	}
}

func (p *printer) printExpr(expr dod.Expr) {
	switch e := expr.(type) {
	case *dod.IntegerLiteral:
		if e.Literal != "" {
			p.write(e.Literal)
		} else {
			p.write(strconv.FormatInt(int64(e.Value), 10))
		}
	case *dod.FloatLiteral:
		if e.Literal != "" {
			p.write(e.Literal)
		} else {
			p.write(dod.FormatFloat(e.Value))
		}
	case *dod.Identifier:
		p.write(e.Name)
	case *dod.BinaryExpr:
		p.printExpr(e.Left)
		p.write(" ")
		p.write(e.Op.Type.String())
		p.write(" ")
		p.printExpr(e.Right)
	case *dod.ParenExpr:
		p.write("(")
		p.printExpr(e.X)
		p.write(")")
	case *dod.UnaryExpr:
		p.write("!")
		p.printExpr(e.X)
	default:
		panic(fmt.Sprintf("formatter: unexpected expression %T", expr))
	}
}

func (p *printer) write(s string) {
	p.buf.WriteString(s)
}

func (p *printer) newline() {
	p.buf.WriteByte('\n')
}

func (p *printer) writeIndent() {
	for range p.depth {
		p.buf.WriteString(p.indent)
	}
}
