package gen

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

var (
	ErrTemplateNotFound            = errors.New("template not found")
	ErrTemplateLanguageUnavailable = errors.New("template not available in language")
)

// CodeTemplate is one example program of the catalogue in one language
type CodeTemplate struct {
	Name        string   `json:"template"`
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Language    Language `json:"language"`
	Code        string   `json:"code"`
}

// TemplateLanguageError names the language a known template lacks
type TemplateLanguageError struct {
	Name     string
	Language Language
}

func (e *TemplateLanguageError) Error() string {
	return fmt.Sprintf("Template not available in %s", e.Language)
}

func (e *TemplateLanguageError) Unwrap() error {
	return ErrTemplateLanguageUnavailable
}

type catalogueEntry struct {
	Title       string              `yaml:"title"`
	Description string              `yaml:"description"`
	Languages   map[Language]string `yaml:"languages"`
}

type catalogueFile struct {
	Templates map[string]catalogueEntry `yaml:"templates"`
}

var (
	catalogueOnce sync.Once
	catalogue     catalogueFile
)

func loadCatalogue() catalogueFile {
	catalogueOnce.Do(func() {
		if err := yaml.Unmarshal([]byte(mustReadTemplate("catalogue.yaml")), &catalogue); err != nil {
			panic(fmt.Errorf("failed to decode template catalogue: %w", err))
		}
	})
	return catalogue
}

// LookupTemplate returns the named example program in lang
func LookupTemplate(name string, lang Language) (CodeTemplate, error) {
	if lang == "" {
		lang = DefaultLanguage
	}

	entry, ok := loadCatalogue().Templates[name]
	if !ok {
		return CodeTemplate{}, fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}
	file, ok := entry.Languages[lang]
	if !ok {
		return CodeTemplate{}, &TemplateLanguageError{Name: name, Language: lang}
	}

	return CodeTemplate{
		Name:        name,
		Title:       entry.Title,
		Description: entry.Description,
		Language:    lang,
		Code:        mustReadTemplate("catalogue/" + file),
	}, nil
}

// TemplateNames returns the catalogue's template names sorted
func TemplateNames() []string {
	entries := loadCatalogue().Templates
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TemplateLanguages returns the languages a template is available in
func TemplateLanguages(name string) ([]Language, error) {
	entry, ok := loadCatalogue().Templates[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}
	langs := make([]Language, 0, len(entry.Languages))
	for _, l := range Languages() {
		if _, ok := entry.Languages[l]; ok {
			langs = append(langs, l)
		}
	}
	return langs, nil
}
