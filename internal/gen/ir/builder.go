package ir

// FragmentOf joins nodes into one fragment
func FragmentOf(parts ...Node) *Fragment {
	return &Fragment{Parts: parts}
}

// FuncBuilder builds a function declaration
type FuncBuilder struct {
	decl *FuncDecl
}

// NewFunc creates a new function builder
func NewFunc(name string) *FuncBuilder {
	return &FuncBuilder{
		decl: &FuncDecl{
			Name: name,
			Body: make([]Stmt, 0),
		},
	}
}

// Returns sets the return type written by the C dialect
func (b *FuncBuilder) Returns(typ string) *FuncBuilder {
	b.decl.ReturnType = typ
	return b
}

// Build returns the completed function
func (b *FuncBuilder) Build() *FuncDecl {
	return b.decl
}

// Expression builders

// Id creates an identifier
func Id(name string) *Ident {
	return &Ident{Name: name}
}

// Lit creates a literal
func Lit(value any) *Literal {
	switch v := value.(type) {
	case string:
		return &Literal{Value: v, Kind: "string"}
	case int:
		return &Literal{Value: v, Kind: "int"}
	case int64:
		return &Literal{Value: v, Kind: "int"}
	case float64:
		return &Literal{Value: v, Kind: "float"}
	case bool:
		return &Literal{Value: v, Kind: "bool"}
	default:
		return &Literal{Value: v, Kind: "unknown"}
	}
}

// True creates a true literal
func True() *Literal {
	return &Literal{Value: true, Kind: "bool"}
}

// False creates a false literal
func False() *Literal {
	return &Literal{Value: false, Kind: "bool"}
}

// Call creates a function call
func Call(fn string, args ...Expr) *CallExpr {
	return &CallExpr{Func: fn, Args: args}
}

// Raw creates a raw expression (escape hatch)
func Raw(code string) *RawExpr {
	return &RawExpr{Code: code}
}

// Binary operators

func Add(x, y Expr) *BinaryExpr { return &BinaryExpr{X: x, Op: "+", Y: y} }
func Eq(x, y Expr) *BinaryExpr { return &BinaryExpr{X: x, Op: "==", Y: y} }
func And(x, y Expr) *BinaryExpr { return &BinaryExpr{X: x, Op: "&&", Y: y} }

// Statement builders

// If creates an if statement
func If(cond Expr, then ...Stmt) *IfStmt {
	return &IfStmt{Cond: cond, Then: then}
}

// While creates a condition-only loop
func While(cond Expr, body ...Stmt) *WhileStmt {
	return &WhileStmt{Cond: cond, Body: body}
}

// Repeat creates a loop running n times with the counter starting at zero
func Repeat(v string, n int, body ...Stmt) *ForRangeStmt {
	return &ForRangeStmt{Var: v, Start: 0, End: n, Body: body}
}

// ForInclusive creates a counted loop covering start..end, both ends included
func ForInclusive(v string, start, end int, body ...Stmt) *ForRangeStmt {
	return &ForRangeStmt{Var: v, Start: start, End: end, Inclusive: true, Body: body}
}

// ExprStatement wraps an expression as a statement
func ExprStatement(e Expr) *ExprStmt {
	return &ExprStmt{X: e}
}
