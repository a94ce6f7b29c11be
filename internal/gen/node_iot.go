package gen

import (
	"iotplatform/internal/blockly"
	"iotplatform/internal/gen/ir"
)

// Field defaults for the IoT blocks
const (
	defaultDigitalPin = "2"
	defaultDigitalVal = "HIGH"
	defaultAnalogPin  = "0"
	defaultLedPin     = "13"
	defaultLedState   = "ON"
	defaultSensor     = "DHT11"
	defaultSensorPin  = "4"
	ledStateOn        = "ON"
	boardLevelHigh    = "HIGH"
	boardLevelLow     = "LOW"
	analogPinPrefix   = "A"
)

type DigitalReadGenerator struct{}

func (g *DigitalReadGenerator) BlockType() BlockType {
	return BlockDigitalRead
}

func (g *DigitalReadGenerator) Generate(node *blockly.BlockNode, ctx *GeneratorContext) (ir.Node, error) {
	pin := node.Field("PIN", defaultDigitalPin)
	if ctx.Python() {
		return ir.Call("digital_read", ir.Raw(pin)), nil
	}
	return ir.Call("digitalRead", ir.Raw(pin)), nil
}

// DigitalWriteGenerator passes VALUE as a string in Python and as a board constant elsewhere
type DigitalWriteGenerator struct{}

func (g *DigitalWriteGenerator) BlockType() BlockType {
	return BlockDigitalWrite
}

func (g *DigitalWriteGenerator) Generate(node *blockly.BlockNode, ctx *GeneratorContext) (ir.Node, error) {
	pin := node.Field("PIN", defaultDigitalPin)
	value := node.Field("VALUE", defaultDigitalVal)
	if ctx.Python() {
		return ir.Call("digital_write", ir.Raw(pin), ir.Lit(value)), nil
	}
	return ir.ExprStatement(ir.Call("digitalWrite", ir.Raw(pin), ir.Raw(value))), nil
}

// AnalogReadGenerator addresses analog pins as A<n> on boards
type AnalogReadGenerator struct{}

func (g *AnalogReadGenerator) BlockType() BlockType {
	return BlockAnalogRead
}

func (g *AnalogReadGenerator) Generate(node *blockly.BlockNode, ctx *GeneratorContext) (ir.Node, error) {
	pin := node.Field("PIN", defaultAnalogPin)
	if ctx.Python() {
		return ir.Call("analog_read", ir.Raw(pin)), nil
	}
	return ir.Call("analogRead", ir.Raw(analogPinPrefix+pin)), nil
}

// LedSetGenerator maps STATE=ON to HIGH and anything else to LOW on boards
type LedSetGenerator struct{}

func (g *LedSetGenerator) BlockType() BlockType {
	return BlockLedSet
}

func (g *LedSetGenerator) Generate(node *blockly.BlockNode, ctx *GeneratorContext) (ir.Node, error) {
	pin := node.Field("PIN", defaultLedPin)
	state := node.Field("STATE", defaultLedState)
	if ctx.Python() {
		return ir.Call("led_set", ir.Raw(pin), ir.Lit(state)), nil
	}
	level := boardLevelLow
	if state == ledStateOn {
		level = boardLevelHigh
	}
	return ir.ExprStatement(ir.Call("digitalWrite", ir.Raw(pin), ir.Raw(level))), nil
}

// ReadTemperatureGenerator names the sensor model only in Python; board libraries infer it
type ReadTemperatureGenerator struct{}

func (g *ReadTemperatureGenerator) BlockType() BlockType {
	return BlockReadTemperature
}

func (g *ReadTemperatureGenerator) Generate(node *blockly.BlockNode, ctx *GeneratorContext) (ir.Node, error) {
	sensor := node.Field("SENSOR", defaultSensor)
	pin := node.Field("PIN", defaultSensorPin)
	if ctx.Python() {
		return ir.Call("read_temperature", ir.Lit(sensor), ir.Raw(pin)), nil
	}
	return ir.Call("readTemperature", ir.Raw(pin)), nil
}
