package ir

import (
	"fmt"
	"strconv"
	"strings"
)

const indentUnit = "    "

// Emitter writes source text from IR nodes in one dialect
type Emitter struct {
	dialect Dialect
	buf     strings.Builder
	indent  int
	err     error
}

// NewEmitter creates a new emitter
func NewEmitter(dialect Dialect) *Emitter {
	return &Emitter{dialect: dialect}
}

// Emit renders the node and returns the accumulated text
func (e *Emitter) Emit(n Node) (string, error) {
	if e.dialect != DialectPython && e.dialect != DialectC {
		return "", fmt.Errorf("unknown dialect: %q", e.dialect)
	}
	e.emit(n)
	if e.err != nil {
		return "", e.err
	}
	return e.buf.String(), nil
}

// Emit is a convenience function rendering a single node
func Emit(n Node, dialect Dialect) (string, error) {
	return NewEmitter(dialect).Emit(n)
}

func (e *Emitter) python() bool {
	return e.dialect == DialectPython
}

func (e *Emitter) write(s string) {
	if e.err != nil {
		return
	}
	e.buf.WriteString(s)
}

func (e *Emitter) writef(format string, args ...any) {
	e.write(fmt.Sprintf(format, args...))
}

func (e *Emitter) writeIndent() {
	e.write(strings.Repeat(indentUnit, e.indent))
}

func (e *Emitter) newline() {
	e.write("\n")
}

func (e *Emitter) emit(n Node) {
	if e.err != nil {
		return
	}

	switch v := n.(type) {
	case *Fragment:
		for i, part := range v.Parts {
			if i > 0 {
				e.write("\n\n")
			}
			e.emit(part)
		}
	case *FuncDecl:
		e.emitFunc(v)
	case *IfStmt:
		e.emitIf(v)
	case *WhileStmt:
		e.emitWhile(v)
	case *ForRangeStmt:
		e.emitForRange(v)
	case *ExprStmt:
		e.emitExpr(v.X)
		if !e.python() {
			e.write(";")
		}
	case Expr:
		e.emitExpr(v)
	default:
		e.err = fmt.Errorf("unknown node type: %T", n)
	}
}

// emitBody writes a block body: an indented suite for Python, a brace block for C.
// The header (everything before ":" or "{") has already been written.
func (e *Emitter) emitBody(body []Stmt) {
	if e.python() {
		e.write(":")
		e.indent++
		if len(body) == 0 {
			e.newline()
			e.writeIndent()
			e.write("pass")
		}
		for _, stmt := range body {
			e.newline()
			e.writeIndent()
			e.emit(stmt)
		}
		e.indent--
		return
	}

	e.write(" {")
	e.indent++
	for _, stmt := range body {
		e.newline()
		e.writeIndent()
		e.emit(stmt)
	}
	e.indent--
	e.newline()
	e.writeIndent()
	e.write("}")
}

func (e *Emitter) emitFunc(f *FuncDecl) {
	if e.python() {
		e.writef("def %s()", f.Name)
	} else {
		ret := f.ReturnType
		if ret == "" {
			ret = "void"
		}
		e.writef("%s %s()", ret, f.Name)
	}
	e.emitBody(f.Body)
}

func (e *Emitter) emitIf(i *IfStmt) {
	e.write("if ")
	e.emitCond(i.Cond)
	e.emitBody(i.Then)
}

func (e *Emitter) emitWhile(w *WhileStmt) {
	e.write("while ")
	e.emitCond(w.Cond)
	e.emitBody(w.Body)
}

func (e *Emitter) emitCond(cond Expr) {
	if e.python() {
		e.emitExpr(cond)
		return
	}
	e.write("(")
	e.emitExpr(cond)
	e.write(")")
}

func (e *Emitter) emitForRange(f *ForRangeStmt) {
	if e.python() {
		stop := f.End
		if f.Inclusive {
			stop++
		}
		if f.Start == 0 {
			e.writef("for %s in range(%d)", f.Var, stop)
		} else {
			e.writef("for %s in range(%d, %d)", f.Var, f.Start, stop)
		}
		e.emitBody(f.Body)
		return
	}

	cmp := "<"
	if f.Inclusive {
		cmp = "<="
	}
	e.writef("for (int %s = %d; %s %s %d; %s++)", f.Var, f.Start, f.Var, cmp, f.End, f.Var)
	e.emitBody(f.Body)
}

func (e *Emitter) emitExpr(expr Expr) {
	if e.err != nil {
		return
	}

	switch v := expr.(type) {
	case *Ident:
		e.write(v.Name)

	case *Literal:
		e.emitLiteral(v)

	case *CallExpr:
		e.write(v.Func)
		e.write("(")
		for i, arg := range v.Args {
			if i > 0 {
				e.write(", ")
			}
			e.emitExpr(arg)
		}
		e.write(")")

	case *BinaryExpr:
		e.emitExpr(v.X)
		e.writef(" %s ", e.operator(v.Op))
		e.emitExpr(v.Y)

	case *RawExpr:
		e.write(v.Code)

	default:
		e.err = fmt.Errorf("unknown expression type: %T", expr)
	}
}

func (e *Emitter) operator(op string) string {
	if !e.python() {
		return op
	}
	switch op {
	case "&&":
		return "and"
	case "||":
		return "or"
	default:
		return op
	}
}

// emitLiteral writes strings between double quotes as-is; block text is not escaped.
func (e *Emitter) emitLiteral(l *Literal) {
	switch l.Kind {
	case "string":
		e.writef("\"%s\"", l.Value)
	case "int":
		e.writef("%d", l.Value)
	case "float":
		f, ok := l.Value.(float64)
		if !ok {
			e.err = fmt.Errorf("float literal holds %T", l.Value)
			return
		}
		e.write(strconv.FormatFloat(f, 'f', -1, 64))
	case "bool":
		b, _ := l.Value.(bool)
		switch {
		case e.python() && b:
			e.write("True")
		case e.python():
			e.write("False")
		default:
			e.writef("%t", b)
		}
	default:
		e.writef("%v", l.Value)
	}
}
