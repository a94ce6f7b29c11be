package gen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"iotplatform/internal/blockly"
	"iotplatform/internal/gen/ir"
)

// WarningInvalidDocument is reported when the block document is not well-formed
const WarningInvalidDocument = "Invalid XML format, using empty template"

// Request is one code generation call
type Request struct {
	// Document is the Blockly XML workspace. Empty or whitespace-only is legal.
	Document     string
	Language     Language
	TargetDevice string
}

// Result is the generated program. Code is never empty.
type Result struct {
	Code     string   `json:"code"`
	Language Language `json:"language"`
	Warnings []string `json:"warnings"`
}

// GenerationError is returned when a block handler or the emitter fails.
// Malformed documents never produce one; they degrade to the empty template.
type GenerationError struct {
	BlockType BlockType
	BlockID   string
	Err       error
}

func (e *GenerationError) Error() string {
	return e.Err.Error()
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Generator maps block documents to source code through a registry.
// A Generator holds no per-call state and is safe for concurrent use.
type Generator struct {
	Registry *Registry
	Logger   zerolog.Logger
}

// NewGenerator creates a generator over the default registry with logging disabled
func NewGenerator() *Generator {
	return &Generator{
		Registry: DefaultRegistry,
		Logger:   zerolog.Nop(),
	}
}

var defaultGenerator = NewGenerator()

// Generate runs req through the default generator
func Generate(req Request) (Result, error) {
	return defaultGenerator.Generate(req)
}

// Generate parses req.Document and assembles a program for req.Language
func (g *Generator) Generate(req Request) (Result, error) {
	lang := req.Language
	if lang == "" {
		lang = DefaultLanguage
	}
	spec, err := lang.spec()
	if err != nil {
		return Result{}, err
	}

	result := Result{Language: lang, Warnings: []string{}}

	if strings.TrimSpace(req.Document) == "" {
		result.Code = EmptyTemplate(lang)
		return result, nil
	}

	nodes, err := blockly.Parse(req.Document)
	if err != nil {
		g.Logger.Debug().Err(err).Str("language", lang.String()).Msg("block document rejected, falling back to empty template")
		result.Code = EmptyTemplate(lang)
		result.Warnings = append(result.Warnings, WarningInvalidDocument)
		return result, nil
	}

	ctx := NewGeneratorContext(lang, req.TargetDevice)
	fragments, err := g.GenerateNodes(nodes, ctx)
	if err != nil {
		return Result{}, err
	}
	if len(fragments) == 0 {
		result.Code = EmptyTemplate(lang)
		return result, nil
	}

	result.Code = assemble(spec, ctx, fragments)
	g.Logger.Debug().
		Str("language", lang.String()).
		Int("blocks", len(nodes)).
		Int("fragments", len(fragments)).
		Msg("code generated")
	return result, nil
}

// GenerateNodes renders the fragment of every node in order. Unknown block
// types and empty fragments are skipped.
func (g *Generator) GenerateNodes(nodes []*blockly.BlockNode, ctx *GeneratorContext) ([]string, error) {
	dialect := ctx.Language.Dialect()
	fragments := make([]string, 0, len(nodes))

	for _, node := range nodes {
		gen, ok := g.Registry.Get(BlockType(node.Type))
		if !ok {
			continue
		}

		fragment, err := g.generateNode(gen, node, ctx, dialect)
		if err != nil {
			return nil, err
		}
		if fragment == "" {
			continue
		}
		fragments = append(fragments, fragment)
	}

	return fragments, nil
}

func (g *Generator) generateNode(gen BlockGenerator, node *blockly.BlockNode, ctx *GeneratorContext, dialect ir.Dialect) (fragment string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &GenerationError{BlockType: gen.BlockType(), BlockID: node.ID, Err: fmt.Errorf("%v", r)}
		}
	}()

	n, err := gen.Generate(node, ctx)
	if err != nil {
		return "", wrapGenerationError(gen, node, err)
	}
	if n == nil {
		return "", nil
	}

	fragment, err = ir.Emit(n, dialect)
	if err != nil {
		return "", wrapGenerationError(gen, node, err)
	}
	return fragment, nil
}

func wrapGenerationError(gen BlockGenerator, node *blockly.BlockNode, err error) error {
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return err
	}
	return &GenerationError{BlockType: gen.BlockType(), BlockID: node.ID, Err: err}
}

func assemble(spec languageSpec, ctx *GeneratorContext, fragments []string) string {
	var b strings.Builder
	b.WriteString(spec.banner)
	if spec.withImports && len(ctx.Imports) > 0 {
		b.WriteString(strings.Join(ctx.SortedImports(), "\n"))
		b.WriteString("\n\n")
	}
	b.WriteString(strings.Join(fragments, "\n"))
	return b.String()
}
