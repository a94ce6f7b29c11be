package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_PythonTemplatesParse(t *testing.T) {
	report := Validate(EmptyTemplate(LanguagePython), LanguagePython)
	assert.True(t, report.Valid, "diagnostics: %v", report.Diagnostics)
	assert.Empty(t, report.Diagnostics)

	for _, name := range TemplateNames() {
		tmpl, err := LookupTemplate(name, LanguagePython)
		require.NoError(t, err)
		assert.True(t, Validate(tmpl.Code, LanguagePython).Valid, "template %s", name)
	}
}

func TestValidate_PythonSyntaxErrors(t *testing.T) {
	broken := map[string]string{
		"unclosed call": "print(\"hello\"\n",
		"missing colon": "if True\n    pass\n",
		"bad def":       "def setup(:\n    pass\n",
		"dangling op":   "x = 1 +\n",
		"empty if":      "if x:\n",
		"empty def":     "def f():\n",
		"empty handler": "def on_start():\n",
		"comment body":  "while True:\n# idle\n",
		"print stmt":    "print \"hello\"\n",
		"exec stmt":     "exec \"x = 1\"\n",
		"module break":  "break\n",
		"module cont":   "continue\n",
		"loop else":     "for i in range(3):\n    pass\nelse:\n    break\n",
		"func in loop":  "while True:\n    def f():\n        break\n",
		"module return": "return 1\n",
		"class return":  "class A:\n    return 1\n",
		"tab mix":       "if x:\n        a = 1\n\tb = 2\n",
		"tab header":    "if x:\n\tif y:\n        a = 1\n",
		"bad dedent":    "if x:\n        a = 1\n    b = 2\n",
		"module indent": "  x = 1\n",
	}

	for name, code := range broken {
		t.Run(name, func(t *testing.T) {
			report := Validate(code, LanguagePython)
			assert.False(t, report.Valid)
			assert.NotEmpty(t, report.Diagnostics)
		})
	}
}

func TestValidate_PythonStructureAccepted(t *testing.T) {
	valid := map[string]string{
		"break in for":     "for i in range(3):\n    if i == 1:\n        break\n",
		"continue in loop": "while True:\n    continue\n",
		"break in nested":  "for i in range(3):\n    try:\n        pass\n    finally:\n        break\n",
		"return in def":    "def f():\n    for i in range(3):\n        return i\n",
		"method return":    "class A:\n    def f(self):\n        return 1\n",
		"one line suite":   "if x: pass\n",
		"semicolons":       "a = 1; b = 2\n",
		"comment dedent":   "def f():\n    x = 1\n# note\n    return x\n",
		"tabs only":        "if x:\n\ta = 1\n\tb = 2\n",
		"print call":       "print(\"hello\")\n",
		"loop else":        "for i in range(3):\n    pass\nelse:\n    x = 1\n",
	}

	for name, code := range valid {
		t.Run(name, func(t *testing.T) {
			report := Validate(code, LanguagePython)
			assert.True(t, report.Valid, "diagnostics: %v", report.Diagnostics)
		})
	}
}

func TestValidate_PythonStructureDiagnostics(t *testing.T) {
	report := Validate("x = 1\nif x:\n", LanguagePython)
	require.False(t, report.Valid)
	assert.Regexp(t, `^\d+:\d+: expected an indented block$`, report.Diagnostics[0])

	report = Validate("break\n", LanguagePython)
	require.False(t, report.Valid)
	assert.Equal(t, []string{"1:1: 'break' outside loop"}, report.Diagnostics)
}

func TestValidate_PythonDiagnosticsCarryPosition(t *testing.T) {
	report := Validate("x = 1\ny = (2\n", LanguagePython)
	require.False(t, report.Valid)
	assert.Regexp(t, `^\d+:\d+: `, report.Diagnostics[0])
}

func TestValidate_PythonWithoutTrailingNewline(t *testing.T) {
	assert.True(t, Validate("time.sleep(0.5)", LanguagePython).Valid)
}

func TestValidate_OtherLanguagesOnlyCheckBlankness(t *testing.T) {
	for _, lang := range []Language{LanguageCpp, LanguageJavaScript} {
		assert.True(t, Validate("this is { not valid code", lang).Valid)
		assert.True(t, Validate(EmptyTemplate(lang), lang).Valid)
		assert.False(t, Validate("", lang).Valid)
		assert.False(t, Validate(" \n\t", lang).Valid)
	}
}

func TestValidateRequest(t *testing.T) {
	t.Run("valid program", func(t *testing.T) {
		res := ValidateRequest(Request{Document: workspace(block("time_delay", nil)), Language: LanguagePython})
		assert.True(t, res.Valid)
		assert.Empty(t, res.Errors)
		assert.Empty(t, res.Warnings)
	})

	t.Run("malformed document keeps warning", func(t *testing.T) {
		res := ValidateRequest(Request{Document: "<xml>", Language: LanguagePython})
		assert.True(t, res.Valid)
		assert.Equal(t, []string{WarningInvalidDocument}, res.Warnings)
	})

	t.Run("syntax error", func(t *testing.T) {
		// Field text is quoted without escaping.
		res := ValidateRequest(Request{Document: workspace(block("text", map[string]string{"TEXT": "a\"b"})), Language: LanguagePython})
		assert.False(t, res.Valid)
		assert.Equal(t, []string{ErrorSyntax}, res.Errors)
	})

	t.Run("generation failure", func(t *testing.T) {
		res := ValidateRequest(Request{Document: workspace(block("time_delay", map[string]string{"MS": "soon"})), Language: LanguagePython})
		assert.False(t, res.Valid)
		assert.Empty(t, res.Warnings)
		require.Len(t, res.Errors, 1)
		assert.Contains(t, res.Errors[0], "soon")
	})

	t.Run("board code", func(t *testing.T) {
		res := ValidateRequest(Request{Document: workspace(block("controls_if", nil)), Language: LanguageCpp})
		assert.True(t, res.Valid)
	})
}
