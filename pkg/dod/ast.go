package dod

// Node is the interface implemented by all AST nodes.
type Node interface {
	node()         // marker method to ensure type safety
	Pos() Position // returns the source position of the node
}

// Expr is an expression node.
type Expr interface {
	Node
	exprNode()
}

// Stmt is a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Program is the result of parsing a document: its top-level statements.
type Program struct {
	Statements []Stmt
}

// IntegerLiteral represents an integer literal: 42
type IntegerLiteral struct {
	Value    int32
	Literal  string // source text; Value is 0 when it does not fit an int32
	Position Position
}

func (e *IntegerLiteral) node()         {}
func (e *IntegerLiteral) exprNode()     {}
func (e *IntegerLiteral) Pos() Position { return e.Position }

// FloatLiteral represents a float literal: 4.2
type FloatLiteral struct {
	Value    float32
	Literal  string // source text
	Position Position
}

func (e *FloatLiteral) node()         {}
func (e *FloatLiteral) exprNode()     {}
func (e *FloatLiteral) Pos() Position { return e.Position }

// Identifier represents a name reference.
type Identifier struct {
	Name     string
	Position Position
}

func (e *Identifier) node()         {}
func (e *Identifier) exprNode()     {}
func (e *Identifier) Pos() Position { return e.Position }

// BinaryExpr represents left <op> right. Op is the operator token.
type BinaryExpr struct {
	Left  Expr
	Right Expr
	Op    Token
}

func (e *BinaryExpr) node()         {}
func (e *BinaryExpr) exprNode()     {}
func (e *BinaryExpr) Pos() Position { return e.Left.Pos() }

// ParenExpr represents ( X ).
type ParenExpr struct {
	X        Expr
	Position Position
}

func (e *ParenExpr) node()         {}
func (e *ParenExpr) exprNode()     {}
func (e *ParenExpr) Pos() Position { return e.Position }

// UnaryExpr represents logical negation: !X
type UnaryExpr struct {
	X        Expr
	Position Position
}

func (e *UnaryExpr) node()         {}
func (e *UnaryExpr) exprNode()     {}
func (e *UnaryExpr) Pos() Position { return e.Position }

// VarDecl represents let NAME = Value; or const NAME = Value;
type VarDecl struct {
	Name     string
	Const    bool
	Value    Expr
	Position Position
}

func (s *VarDecl) node()         {}
func (s *VarDecl) stmtNode()     {}
func (s *VarDecl) Pos() Position { return s.Position }

// IfStmt represents if (Cond) { Body }
type IfStmt struct {
	Cond     Expr
	Body     []Stmt
	Position Position
}

func (s *IfStmt) node()         {}
func (s *IfStmt) stmtNode()     {}
func (s *IfStmt) Pos() Position { return s.Position }

// ExprStmt is an expression used as a statement.
type ExprStmt struct {
	X Expr
}

func (s *ExprStmt) node()         {}
func (s *ExprStmt) stmtNode()     {}
func (s *ExprStmt) Pos() Position { return s.X.Pos() }
