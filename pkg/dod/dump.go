package dod

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Dump writes an indented tree of the program's statements to w,
// one node per line.
func Dump(w io.Writer, prog *Program) error {
	var sb strings.Builder
	for _, stmt := range prog.Statements {
		dumpStmt(&sb, stmt, 0)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// DumpString returns the Dump output as a string.
func DumpString(prog *Program) string {
	var sb strings.Builder
	_ = Dump(&sb, prog)
	return sb.String()
}

func dumpLine(sb *strings.Builder, depth int, format string, args ...any) {
	sb.WriteString(strings.Repeat("  ", depth))
	fmt.Fprintf(sb, format, args...)
	sb.WriteByte('\n')
}

func dumpStmt(sb *strings.Builder, stmt Stmt, depth int) {
	switch s := stmt.(type) {
	case *VarDecl:
		kw := "let"
		if s.Const {
			kw = "const"
		}
		dumpLine(sb, depth, "VarDecl %s %s", kw, s.Name)
		dumpExpr(sb, s.Value, depth+1)
	case *IfStmt:
		dumpLine(sb, depth, "If")
		dumpLine(sb, depth+1, "Cond")
		dumpExpr(sb, s.Cond, depth+2)
		dumpLine(sb, depth+1, "Body")
		for _, inner := range s.Body {
			dumpStmt(sb, inner, depth+2)
		}
	case *ExprStmt:
		dumpLine(sb, depth, "ExprStmt")
		dumpExpr(sb, s.X, depth+1)
	default:
		dumpLine(sb, depth, "%T", stmt)
	}
}

func dumpExpr(sb *strings.Builder, expr Expr, depth int) {
	switch e := expr.(type) {
	case *IntegerLiteral:
		dumpLine(sb, depth, "Int %d", e.Value)
	case *FloatLiteral:
		dumpLine(sb, depth, "Float %s", FormatFloat(e.Value))
	case *Identifier:
		dumpLine(sb, depth, "Ident %s", e.Name)
	case *BinaryExpr:
		dumpLine(sb, depth, "Binary %s", e.Op.Type)
		dumpExpr(sb, e.Left, depth+1)
		dumpExpr(sb, e.Right, depth+1)
	case *ParenExpr:
		dumpLine(sb, depth, "Paren")
		dumpExpr(sb, e.X, depth+1)
	case *UnaryExpr:
		dumpLine(sb, depth, "Not")
		dumpExpr(sb, e.X, depth+1)
	default:
		dumpLine(sb, depth, "%T", expr)
	}
}

// FormatFloat renders a float literal so that it lexes back as a float.
func FormatFloat(v float32) string {
	s := strconv.FormatFloat(float64(v), 'f', -1, 32)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
