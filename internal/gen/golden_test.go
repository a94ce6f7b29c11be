package gen

import (
	"os"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
)

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestGolden_EmptyTemplates(t *testing.T) {
	g := newGoldie(t)
	for _, lang := range Languages() {
		res, err := Generate(Request{Language: lang})
		require.NoError(t, err)
		g.Assert(t, "empty_"+lang.String(), []byte(res.Code))
	}
}

func TestGolden_LedWorkspace(t *testing.T) {
	doc, err := os.ReadFile("testdata/led_workspace.xml")
	require.NoError(t, err)

	g := newGoldie(t)
	for _, lang := range Languages() {
		res, err := Generate(Request{Document: string(doc), Language: lang, TargetDevice: "arduino"})
		require.NoError(t, err)
		require.Empty(t, res.Warnings)
		g.Assert(t, "led_workspace_"+lang.String(), []byte(res.Code))
	}
}
