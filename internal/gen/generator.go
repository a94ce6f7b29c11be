package gen

import (
	"sort"

	"iotplatform/internal/blockly"
	"iotplatform/internal/gen/ir"
)

// BlockType is the Blockly type attribute of a block
type BlockType string

const (
	// Logic
	BlockControlsIf     BlockType = "controls_if"
	BlockLogicCompare   BlockType = "logic_compare"
	BlockLogicOperation BlockType = "logic_operation"
	BlockLogicBoolean   BlockType = "logic_boolean"

	// Loops
	BlockControlsRepeat BlockType = "controls_repeat_ext"
	BlockControlsWhile  BlockType = "controls_whileUntil"
	BlockControlsFor    BlockType = "controls_for"

	// Math
	BlockMathNumber     BlockType = "math_number"
	BlockMathArithmetic BlockType = "math_arithmetic"

	// Text
	BlockText      BlockType = "text"
	BlockTextPrint BlockType = "text_print"

	// IoT
	BlockDigitalRead     BlockType = "iot_digital_read"
	BlockDigitalWrite    BlockType = "iot_digital_write"
	BlockAnalogRead      BlockType = "iot_analog_read"
	BlockLedSet          BlockType = "iot_led_set"
	BlockReadTemperature BlockType = "iot_read_temperature"

	// AI
	BlockImageClassify BlockType = "ai_image_classify"
	BlockTextToSpeech  BlockType = "ai_text_to_speech"

	// Events
	BlockOnStart BlockType = "event_on_start"
	BlockDelay   BlockType = "time_delay"
)

// BlockGenerator produces the fragment for one block type
type BlockGenerator interface {
	// BlockType returns the type of block this generator handles
	BlockType() BlockType

	// Generate returns the fragment for the block, or nil for an empty fragment.
	// Handlers may record imports on ctx and must not keep any other state.
	Generate(node *blockly.BlockNode, ctx *GeneratorContext) (ir.Node, error)
}

// Registry holds all registered generators
type Registry struct {
	generators map[BlockType]BlockGenerator
}

// NewRegistry creates a new generator registry
func NewRegistry() *Registry {
	return &Registry{
		generators: make(map[BlockType]BlockGenerator),
	}
}

// Register registers a generator for a block type, replacing any previous one
func (r *Registry) Register(gen BlockGenerator) {
	r.generators[gen.BlockType()] = gen
}

// Get returns the generator for a block type
func (r *Registry) Get(blockType BlockType) (BlockGenerator, bool) {
	gen, ok := r.generators[blockType]
	return gen, ok
}

// Types returns the registered block types sorted by name
func (r *Registry) Types() []BlockType {
	types := make([]BlockType, 0, len(r.generators))
	for t := range r.generators {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// DefaultRegistry is the default generator registry
var DefaultRegistry = NewRegistry()

// RegisterGenerator registers a generator with the default registry
func RegisterGenerator(gen BlockGenerator) {
	DefaultRegistry.Register(gen)
}

// init registers all built-in generators
func init() {
	RegisterGenerator(&IfGenerator{})
	RegisterGenerator(&CompareGenerator{})
	RegisterGenerator(&LogicOperationGenerator{})
	RegisterGenerator(&BooleanGenerator{})

	RegisterGenerator(&RepeatGenerator{})
	RegisterGenerator(&WhileGenerator{})
	RegisterGenerator(&ForGenerator{})

	RegisterGenerator(&NumberGenerator{})
	RegisterGenerator(&ArithmeticGenerator{})

	RegisterGenerator(&TextGenerator{})
	RegisterGenerator(&PrintGenerator{})

	RegisterGenerator(&DigitalReadGenerator{})
	RegisterGenerator(&DigitalWriteGenerator{})
	RegisterGenerator(&AnalogReadGenerator{})
	RegisterGenerator(&LedSetGenerator{})
	RegisterGenerator(&ReadTemperatureGenerator{})

	RegisterGenerator(&ImageClassifyGenerator{})
	RegisterGenerator(&TextToSpeechGenerator{})

	RegisterGenerator(&OnStartGenerator{})
	RegisterGenerator(&DelayGenerator{})
}
