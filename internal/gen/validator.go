package gen

import (
	"fmt"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

// ErrorSyntax is reported by ValidateRequest when generated code does not parse
const ErrorSyntax = "Syntax error in generated code"

// maxDiagnostics bounds the positions collected from one parse
const maxDiagnostics = 10

// ValidationReport is the outcome of checking one piece of source code
type ValidationReport struct {
	Valid       bool
	Diagnostics []string
}

// ValidationResult is the outcome of generating and then validating a request
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Warnings []string `json:"warnings"`
	Errors   []string `json:"errors"`
}

// Validate checks code for lang. Python gets a full parse; the other targets
// only need non-blank code, so Valid there says nothing about syntax.
func Validate(code string, lang Language) ValidationReport {
	if lang == "" {
		lang = DefaultLanguage
	}
	if lang == LanguagePython {
		return validatePython(code)
	}

	if strings.TrimSpace(code) == "" {
		return ValidationReport{Valid: false, Diagnostics: []string{"code is empty"}}
	}
	return ValidationReport{Valid: true, Diagnostics: []string{}}
}

// ValidateRequest generates code for req and validates it. Failures are
// reported in the result, never returned.
func ValidateRequest(req Request) ValidationResult {
	return defaultGenerator.ValidateRequest(req)
}

// ValidateRequest generates code for req with g and validates it
func (g *Generator) ValidateRequest(req Request) ValidationResult {
	res, err := g.Generate(req)
	if err != nil {
		g.Logger.Debug().Err(err).Msg("generation failed during validation")
		return ValidationResult{Valid: false, Warnings: []string{}, Errors: []string{err.Error()}}
	}

	report := Validate(res.Code, res.Language)
	out := ValidationResult{Valid: report.Valid, Warnings: res.Warnings, Errors: []string{}}
	if !report.Valid {
		out.Errors = append(out.Errors, ErrorSyntax)
	}
	return out
}

func validatePython(code string) ValidationReport {
	source := []byte(code)
	if !strings.HasSuffix(code, "\n") {
		source = append(source, '\n')
	}

	parser := tree_sitter.NewParser()
	defer parser.Close()
	if err := parser.SetLanguage(tree_sitter.NewLanguage(tree_sitter_python.Language())); err != nil {
		return ValidationReport{Valid: false, Diagnostics: []string{err.Error()}}
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return ValidationReport{Valid: false, Diagnostics: []string{"parser returned no tree"}}
	}
	defer tree.Close()

	root := tree.RootNode()
	diags := make([]string, 0)
	if root.HasError() {
		collectSyntaxErrors(root, &diags)
		if len(diags) == 0 {
			diags = append(diags, "syntax error")
		}
		return ValidationReport{Valid: false, Diagnostics: diags}
	}

	// The grammar recovers from errors the compiler rejects.
	c := &structureChecker{lines: strings.Split(string(source), "\n"), diags: &diags}
	c.walk(root)
	if len(diags) > 0 {
		return ValidationReport{Valid: false, Diagnostics: diags}
	}
	return ValidationReport{Valid: true, Diagnostics: []string{}}
}

func collectSyntaxErrors(node *tree_sitter.Node, diags *[]string) {
	if len(*diags) >= maxDiagnostics {
		return
	}

	pos := node.StartPosition()
	switch {
	case node.IsMissing():
		*diags = append(*diags, fmt.Sprintf("%d:%d: missing %s", pos.Row+1, pos.Column+1, node.Kind()))
		return
	case node.IsError():
		*diags = append(*diags, fmt.Sprintf("%d:%d: unexpected input", pos.Row+1, pos.Column+1))
	}

	if !node.HasError() {
		return
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		if child := node.Child(i); child != nil {
			collectSyntaxErrors(child, diags)
		}
	}
}

type structureChecker struct {
	lines []string
	diags *[]string
}

func (c *structureChecker) report(node *tree_sitter.Node, msg string) {
	if len(*c.diags) >= maxDiagnostics {
		return
	}
	pos := node.StartPosition()
	*c.diags = append(*c.diags, fmt.Sprintf("%d:%d: %s", pos.Row+1, pos.Column+1, msg))
}

func (c *structureChecker) walk(node *tree_sitter.Node) {
	if len(*c.diags) >= maxDiagnostics {
		return
	}

	switch node.Kind() {
	case "module":
		c.checkSuite(node, nil)
	case "block":
		if statementCount(node) == 0 {
			c.report(node, "expected an indented block")
		}
		if parent := node.Parent(); parent != nil {
			ind := c.lineIndent(parent.StartPosition().Row)
			c.checkSuite(node, &ind)
		}
	case "print_statement":
		c.report(node, "missing parentheses in call to 'print'")
	case "exec_statement":
		c.report(node, "missing parentheses in call to 'exec'")
	case "break_statement":
		if !insideLoop(node) {
			c.report(node, "'break' outside loop")
		}
	case "continue_statement":
		if !insideLoop(node) {
			c.report(node, "'continue' not properly in loop")
		}
	case "return_statement":
		if !insideFunction(node) {
			c.report(node, "'return' outside function")
		}
	}

	for i := uint(0); i < node.NamedChildCount(); i++ {
		if child := node.NamedChild(i); child != nil {
			c.walk(child)
		}
	}
}

// indent is a line's leading whitespace measured with tabs as 8 columns and as 1.
// Indentation is consistent only when both measures agree.
type indent struct {
	tab8 int
	tab1 int
}

func (c *structureChecker) lineIndent(row uint) indent {
	var ind indent
	if int(row) >= len(c.lines) {
		return ind
	}
	for _, r := range c.lines[row] {
		switch r {
		case ' ':
			ind.tab8++
			ind.tab1++
		case '\t':
			ind.tab8 = (ind.tab8/8 + 1) * 8
			ind.tab1++
		default:
			return ind
		}
	}
	return ind
}

// startsLine reports whether only whitespace precedes node on its line
func (c *structureChecker) startsLine(node *tree_sitter.Node) bool {
	pos := node.StartPosition()
	if int(pos.Row) >= len(c.lines) {
		return false
	}
	line := c.lines[pos.Row]
	if int(pos.Column) > len(line) {
		return false
	}
	return strings.TrimLeft(line[:pos.Column], " \t") == ""
}

// checkSuite compares the indentation of statements opening a line in suite.
// A nil outer means module level, where statements sit at column zero.
func (c *structureChecker) checkSuite(suite *tree_sitter.Node, outer *indent) {
	var first *indent
	for i := uint(0); i < suite.NamedChildCount(); i++ {
		stmt := suite.NamedChild(i)
		if stmt == nil || stmt.Kind() == "comment" || !c.startsLine(stmt) {
			continue
		}
		ind := c.lineIndent(stmt.StartPosition().Row)
		switch {
		case outer == nil && (ind.tab8 != 0 || ind.tab1 != 0):
			c.report(stmt, "unexpected indent")
		case first == nil && outer != nil && (ind.tab8 <= outer.tab8 || ind.tab1 <= outer.tab1):
			c.report(stmt, "inconsistent use of tabs and spaces in indentation")
		case first != nil && ind != *first:
			c.report(stmt, "unindent does not match any outer indentation level")
		}
		if first == nil {
			first = &ind
		}
	}
}

func statementCount(block *tree_sitter.Node) int {
	n := 0
	for i := uint(0); i < block.NamedChildCount(); i++ {
		if child := block.NamedChild(i); child != nil && child.Kind() != "comment" {
			n++
		}
	}
	return n
}

// insideLoop reports whether node sits in a loop body of the same scope.
// The else clause of a loop belongs to the enclosing code.
func insideLoop(node *tree_sitter.Node) bool {
	prev := node
	for parent := node.Parent(); parent != nil; prev, parent = parent, parent.Parent() {
		switch parent.Kind() {
		case "for_statement", "while_statement":
			if prev.Kind() != "else_clause" {
				return true
			}
		case "function_definition", "class_definition", "module":
			return false
		}
	}
	return false
}

func insideFunction(node *tree_sitter.Node) bool {
	for parent := node.Parent(); parent != nil; parent = parent.Parent() {
		switch parent.Kind() {
		case "function_definition":
			return true
		case "class_definition", "module":
			return false
		}
	}
	return false
}
