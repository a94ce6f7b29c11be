package gen

import (
	"iotplatform/internal/blockly"
	"iotplatform/internal/gen/ir"
)

// NumberGenerator copies the NUM field verbatim
type NumberGenerator struct{}

func (g *NumberGenerator) BlockType() BlockType {
	return BlockMathNumber
}

func (g *NumberGenerator) Generate(node *blockly.BlockNode, ctx *GeneratorContext) (ir.Node, error) {
	return ir.Raw(node.Field("NUM", "0")), nil
}

type ArithmeticGenerator struct{}

func (g *ArithmeticGenerator) BlockType() BlockType {
	return BlockMathArithmetic
}

func (g *ArithmeticGenerator) Generate(node *blockly.BlockNode, ctx *GeneratorContext) (ir.Node, error) {
	return ir.Add(ir.Id("a"), ir.Id("b")), nil
}
