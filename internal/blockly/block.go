// Package blockly reads Blockly workspace XML into block nodes.
package blockly

import "fmt"

// BlockNode is one visual-program unit read from a workspace document.
type BlockNode struct {
	Type string
	ID   string
	// Fields holds the text of the first direct <field> child for each name.
	Fields map[string]string
	// Children holds blocks nested directly below this one, through
	// <statement>, <value> or <next>.
	Children []*BlockNode
}

// Field returns the named field's text, or def when the field is absent or empty.
func (b *BlockNode) Field(name, def string) string {
	if v, ok := b.Fields[name]; ok && v != "" {
		return v
	}
	return def
}

// HasField reports whether the block carries a non-empty field with that name.
func (b *BlockNode) HasField(name string) bool {
	v, ok := b.Fields[name]
	return ok && v != ""
}

// ParseError reports a document that is not well-formed XML.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("invalid block document at line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("invalid block document: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
