package gen

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateNames(t *testing.T) {
	assert.Equal(t, []string{"ai_classify", "blink", "temperature"}, TemplateNames())
}

func TestLookupTemplate(t *testing.T) {
	tmpl, err := LookupTemplate("blink", LanguageCpp)
	require.NoError(t, err)
	assert.Equal(t, "blink", tmpl.Name)
	assert.Equal(t, LanguageCpp, tmpl.Language)
	assert.True(t, strings.HasPrefix(tmpl.Code, "// LED Blink Example\n"))
	assert.Contains(t, tmpl.Code, "digitalWrite(LED_PIN, HIGH);")

	tmpl, err = LookupTemplate("temperature", "")
	require.NoError(t, err)
	assert.Equal(t, LanguagePython, tmpl.Language)
	assert.Contains(t, tmpl.Code, `read_temperature("DHT11", SENSOR_PIN)`)
}

func TestLookupTemplate_UnknownName(t *testing.T) {
	_, err := LookupTemplate("traffic_light", LanguagePython)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTemplateNotFound))
	assert.False(t, errors.Is(err, ErrTemplateLanguageUnavailable))
}

func TestLookupTemplate_LanguageUnavailable(t *testing.T) {
	_, err := LookupTemplate("ai_classify", LanguageJavaScript)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTemplateLanguageUnavailable))
	assert.False(t, errors.Is(err, ErrTemplateNotFound))
	assert.Equal(t, "Template not available in javascript", err.Error())

	// Languages outside the generator's set are still a lookup concern.
	_, err = LookupTemplate("blink", "rust")
	assert.EqualError(t, err, "Template not available in rust")
}

func TestTemplateLanguages(t *testing.T) {
	langs, err := TemplateLanguages("blink")
	require.NoError(t, err)
	assert.Equal(t, []Language{LanguagePython, LanguageCpp}, langs)

	_, err = TemplateLanguages("nope")
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}
