package gen

import (
	"iotplatform/internal/blockly"
	"iotplatform/internal/gen/ir"
)

const (
	defaultVisionModel = "mobilenet"
	speechGreeting     = "Hello"
)

type ImageClassifyGenerator struct{}

func (g *ImageClassifyGenerator) BlockType() BlockType {
	return BlockImageClassify
}

func (g *ImageClassifyGenerator) Generate(node *blockly.BlockNode, ctx *GeneratorContext) (ir.Node, error) {
	model := node.Field("MODEL", defaultVisionModel)
	if ctx.Python() {
		return ir.Call("ai_classify_image", ir.Lit(model)), nil
	}
	return ir.Call("classifyImage", ir.Lit(model)), nil
}

type TextToSpeechGenerator struct{}

func (g *TextToSpeechGenerator) BlockType() BlockType {
	return BlockTextToSpeech
}

func (g *TextToSpeechGenerator) Generate(node *blockly.BlockNode, ctx *GeneratorContext) (ir.Node, error) {
	if ctx.Python() {
		return ir.Call("ai_text_to_speech", ir.Lit(speechGreeting)), nil
	}
	return ir.ExprStatement(ir.Call("textToSpeech", ir.Lit(speechGreeting))), nil
}
