package parser

type Expr interface {
	exprNode()
}

type Stmt interface {
	stmtNode()
}

// Literal expression: string, number, bool or null
type Literal struct {
	Value interface{}
}

func (*Literal) exprNode() {}

// Variable expression: x
type Variable struct {
	Name string
	Line int
}

func (*Variable) exprNode() {}

// Assignment expression: x = 42
type Assign struct {
	Name  string
	Value Expr
}

func (*Assign) exprNode() {}

// Unary expression: -a, !a
type Unary struct {
	Operator string
	Right    Expr
}

func (*Unary) exprNode() {}

// Binary expression: a + b
type Binary struct {
	Left     Expr
	Operator string
	Right    Expr
	Line     int
}

func (*Binary) exprNode() {}

// Arg is a single call argument. Name is empty for positional arguments.
type Arg struct {
	Name  string
	Value Expr
}

// Call expression: f(a, key: b)
type Call struct {
	Name string
	Args []Arg
	Line int
}

func (*Call) exprNode() {}

// ExprStmt is a top-level statement wrapping one expression
type ExprStmt struct {
	Expr Expr
	Line int
}

func (*ExprStmt) stmtNode() {}
