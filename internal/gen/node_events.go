package gen

import (
	"fmt"
	"strconv"
	"strings"

	"iotplatform/internal/blockly"
	"iotplatform/internal/gen/ir"
)

const (
	defaultDelayMS = "1000"
	importTime     = "import time"
)

// OnStartGenerator defines and immediately calls a start hook in Python.
// On boards the hook is the sketch's setup().
type OnStartGenerator struct{}

func (g *OnStartGenerator) BlockType() BlockType {
	return BlockOnStart
}

func (g *OnStartGenerator) Generate(node *blockly.BlockNode, ctx *GeneratorContext) (ir.Node, error) {
	if ctx.Python() {
		return ir.FragmentOf(
			ir.NewFunc("on_start").Build(),
			ir.ExprStatement(ir.Call("on_start")),
		), nil
	}
	return ir.NewFunc("setup").Returns("void").Build(), nil
}

// DelayGenerator converts MS to seconds for Python's time.sleep.
// Board targets pass MS through untouched.
type DelayGenerator struct{}

func (g *DelayGenerator) BlockType() BlockType {
	return BlockDelay
}

func (g *DelayGenerator) Generate(node *blockly.BlockNode, ctx *GeneratorContext) (ir.Node, error) {
	ms := node.Field("MS", defaultDelayMS)
	if !ctx.Python() {
		return ir.ExprStatement(ir.Call("delay", ir.Raw(ms))), nil
	}

	millis, err := strconv.ParseInt(strings.TrimSpace(ms), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid literal for delay MS: %q", ms)
	}
	ctx.AddImport(importTime)
	return ir.Call("time.sleep", ir.Raw(pythonFloat(float64(millis)/1000))), nil
}
