package gen

import (
	"iotplatform/internal/blockly"
	"iotplatform/internal/gen/ir"
)

const loopVar = "i"

// RepeatGenerator emits a ten-iteration counted loop
type RepeatGenerator struct{}

func (g *RepeatGenerator) BlockType() BlockType {
	return BlockControlsRepeat
}

func (g *RepeatGenerator) Generate(node *blockly.BlockNode, ctx *GeneratorContext) (ir.Node, error) {
	return ir.Repeat(loopVar, 10), nil
}

type WhileGenerator struct{}

func (g *WhileGenerator) BlockType() BlockType {
	return BlockControlsWhile
}

func (g *WhileGenerator) Generate(node *blockly.BlockNode, ctx *GeneratorContext) (ir.Node, error) {
	return ir.While(ir.Id("condition")), nil
}

// ForGenerator emits a loop over 1..10 inclusive
type ForGenerator struct{}

func (g *ForGenerator) BlockType() BlockType {
	return BlockControlsFor
}

func (g *ForGenerator) Generate(node *blockly.BlockNode, ctx *GeneratorContext) (ir.Node, error) {
	return ir.ForInclusive(loopVar, 1, 10), nil
}
