package gen

import (
	"errors"
	"fmt"
	"strings"

	"iotplatform/internal/gen/ir"
)

// Language is a code generation target
type Language string

const (
	// LanguagePython is the primary target: general-purpose scripting
	LanguagePython Language = "python"
	// LanguageCpp is the embedded target: Arduino-style C++
	LanguageCpp Language = "cpp"
	// LanguageJavaScript is the scripting-for-web target
	LanguageJavaScript Language = "javascript"
)

// DefaultLanguage is used when a request names no language
const DefaultLanguage = LanguagePython

var ErrUnsupportedLanguage = errors.New("unsupported language")

// languageSpec is everything the assembler needs to know about one target.
// Adding a target means adding one entry here and one empty-program template.
type languageSpec struct {
	dialect     ir.Dialect
	banner      string
	withImports bool
	template    string // file under templates/
}

var languages = map[Language]languageSpec{
	LanguagePython: {
		dialect:     ir.DialectPython,
		banner:      "# IoT & AI Visual Platform\n# Generated Python Code\n\n",
		withImports: true,
		template:    "empty.py",
	},
	LanguageCpp: {
		dialect:  ir.DialectC,
		banner:   "// IoT & AI Visual Platform\n// Generated Arduino C++ Code\n\n",
		template: "empty.cpp",
	},
	LanguageJavaScript: {
		dialect:  ir.DialectC,
		banner:   "// IoT & AI Visual Platform\n// Generated JavaScript Code\n\n",
		template: "empty.js",
	},
}

// Languages returns the supported targets in a stable order
func Languages() []Language {
	return []Language{LanguagePython, LanguageCpp, LanguageJavaScript}
}

// ParseLanguage maps a request value to a Language. The empty string selects the default.
func ParseLanguage(s string) (Language, error) {
	v := Language(strings.ToLower(strings.TrimSpace(s)))
	if v == "" {
		return DefaultLanguage, nil
	}
	if _, ok := languages[v]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, s)
	}
	return v, nil
}

// Dialect returns the surface syntax used for block fragments.
// The web target shares the C-style fragments.
func (l Language) Dialect() ir.Dialect {
	return languages[l].dialect
}

func (l Language) String() string {
	return string(l)
}

func (l Language) spec() (languageSpec, error) {
	s, ok := languages[l]
	if !ok {
		return languageSpec{}, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, string(l))
	}
	return s, nil
}
