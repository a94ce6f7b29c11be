package gen

import (
	"iotplatform/internal/blockly"
	"iotplatform/internal/gen/ir"
)

// importPrint is the header line recorded by print blocks in Python
const importPrint = "# Print function"

// TextGenerator quotes the TEXT field without escaping it
type TextGenerator struct{}

func (g *TextGenerator) BlockType() BlockType {
	return BlockText
}

func (g *TextGenerator) Generate(node *blockly.BlockNode, ctx *GeneratorContext) (ir.Node, error) {
	return ir.Lit(node.Field("TEXT", "")), nil
}

// PrintGenerator prints a fixed greeting; on boards it goes to the serial port
type PrintGenerator struct{}

func (g *PrintGenerator) BlockType() BlockType {
	return BlockTextPrint
}

func (g *PrintGenerator) Generate(node *blockly.BlockNode, ctx *GeneratorContext) (ir.Node, error) {
	if ctx.Python() {
		ctx.AddImport(importPrint)
		return ir.ExprStatement(ir.Call("print", ir.Lit("Hello World"))), nil
	}
	return ir.ExprStatement(ir.Call("Serial.println", ir.Lit("Hello World"))), nil
}
