package gen

import (
	"embed"
	"path"
)

//go:embed templates
var templateFS embed.FS

// EmptyTemplate returns the program served when a document has no usable blocks.
// It panics on an unsupported language.
func EmptyTemplate(lang Language) string {
	spec, err := lang.spec()
	if err != nil {
		panic(err)
	}
	return mustReadTemplate(spec.template)
}

func mustReadTemplate(name string) string {
	data, err := templateFS.ReadFile(path.Join("templates", name))
	if err != nil {
		panic(err)
	}
	return string(data)
}
