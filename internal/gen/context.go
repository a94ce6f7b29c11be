package gen

import "sort"

// GeneratorContext holds the state of one generation call.
// It is created per call and dropped after assembly; never share it between requests.
type GeneratorContext struct {
	Language Language

	// TargetDevice is carried for device-specific code paths.
	// No block handler branches on it yet.
	TargetDevice string

	// Imports collects header lines required by the blocks seen so far
	Imports map[string]struct{}
}

// NewGeneratorContext creates a new generator context
func NewGeneratorContext(lang Language, targetDevice string) *GeneratorContext {
	return &GeneratorContext{
		Language:     lang,
		TargetDevice: targetDevice,
		Imports:      make(map[string]struct{}),
	}
}

// AddImport records a header line for the primary language. Other targets have no import section.
func (ctx *GeneratorContext) AddImport(line string) {
	if ctx.Language != LanguagePython {
		return
	}
	ctx.Imports[line] = struct{}{}
}

// SortedImports returns the collected header lines in byte order
func (ctx *GeneratorContext) SortedImports() []string {
	out := make([]string, 0, len(ctx.Imports))
	for line := range ctx.Imports {
		out = append(out, line)
	}
	sort.Strings(out)
	return out
}

// Python reports whether fragments are written for the primary language
func (ctx *GeneratorContext) Python() bool {
	return ctx.Language == LanguagePython
}
