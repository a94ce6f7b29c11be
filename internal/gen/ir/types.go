package ir

// Node is the base interface for all IR nodes
type Node interface {
	irNode()
}

// Expr represents an expression
type Expr interface {
	Node
	irExpr()
}

// Stmt represents a statement
type Stmt interface {
	Node
	irStmt()
}

// Dialect selects the surface syntax the emitter writes.
type Dialect string

const (
	// DialectPython uses indentation blocks, `pass` for empty bodies and no terminators.
	DialectPython Dialect = "python"
	// DialectC uses brace blocks and `;` after expression statements.
	DialectC Dialect = "c"
)

// Fragment is the code produced for one block. Parts are separated by a blank line.
type Fragment struct {
	Parts []Node
}

func (Fragment) irNode() {}

// FuncDecl represents a parameterless function declaration
type FuncDecl struct {
	Name       string
	ReturnType string // C dialect only, e.g. "void"
	Body       []Stmt
}

func (FuncDecl) irNode() {}
func (FuncDecl) irStmt() {}

// IfStmt represents an if statement without else branch
type IfStmt struct {
	Cond Expr
	Then []Stmt
}

func (IfStmt) irNode() {}
func (IfStmt) irStmt() {}

// WhileStmt represents a condition-only loop
type WhileStmt struct {
	Cond Expr
	Body []Stmt
}

func (WhileStmt) irNode() {}
func (WhileStmt) irStmt() {}

// ForRangeStmt represents a counted loop over integers from Start to End.
// End is exclusive unless Inclusive is set.
type ForRangeStmt struct {
	Var       string
	Start     int
	End       int
	Inclusive bool
	Body      []Stmt
}

func (ForRangeStmt) irNode() {}
func (ForRangeStmt) irStmt() {}

// ExprStmt wraps an expression as a statement
type ExprStmt struct {
	X Expr
}

func (ExprStmt) irNode() {}
func (ExprStmt) irStmt() {}

// Ident represents an identifier
type Ident struct {
	Name string
}

func (Ident) irNode() {}
func (Ident) irExpr() {}

// Literal represents a literal value
type Literal struct {
	Value any    // string, int, float64, bool
	Kind  string // "string", "int", "float", "bool"
}

func (Literal) irNode() {}
func (Literal) irExpr() {}

// CallExpr represents a function call. Func may be a dotted path such as "time.sleep".
type CallExpr struct {
	Func string
	Args []Expr
}

func (CallExpr) irNode() {}
func (CallExpr) irExpr() {}

// BinaryExpr represents a binary expression: x + y, x == y, etc.
// Logical operators are written in C form ("&&", "||") and translated per dialect.
type BinaryExpr struct {
	X  Expr
	Op string
	Y  Expr
}

func (BinaryExpr) irNode() {}
func (BinaryExpr) irExpr() {}

// RawExpr allows inserting raw code (escape hatch)
type RawExpr struct {
	Code string
}

func (RawExpr) irNode() {}
func (RawExpr) irExpr() {}
