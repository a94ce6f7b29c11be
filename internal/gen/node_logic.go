package gen

import (
	"iotplatform/internal/blockly"
	"iotplatform/internal/gen/ir"
)

// IfGenerator emits an empty conditional on a placeholder condition
type IfGenerator struct{}

func (g *IfGenerator) BlockType() BlockType {
	return BlockControlsIf
}

func (g *IfGenerator) Generate(node *blockly.BlockNode, ctx *GeneratorContext) (ir.Node, error) {
	return ir.If(ir.Id("condition")), nil
}

type CompareGenerator struct{}

func (g *CompareGenerator) BlockType() BlockType {
	return BlockLogicCompare
}

func (g *CompareGenerator) Generate(node *blockly.BlockNode, ctx *GeneratorContext) (ir.Node, error) {
	return ir.Eq(ir.Id("a"), ir.Id("b")), nil
}

// LogicOperationGenerator emits a conjunction; the emitter picks `and` or `&&`
type LogicOperationGenerator struct{}

func (g *LogicOperationGenerator) BlockType() BlockType {
	return BlockLogicOperation
}

func (g *LogicOperationGenerator) Generate(node *blockly.BlockNode, ctx *GeneratorContext) (ir.Node, error) {
	return ir.And(ir.Id("a"), ir.Id("b")), nil
}

// BooleanGenerator always emits true; the BOOL field is not read
type BooleanGenerator struct{}

func (g *BooleanGenerator) BlockType() BlockType {
	return BlockLogicBoolean
}

func (g *BooleanGenerator) Generate(node *blockly.BlockNode, ctx *GeneratorContext) (ir.Node, error) {
	return ir.True(), nil
}
