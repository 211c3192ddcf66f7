package coerce_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pageforge/internal/coerce"
	"pageforge/internal/domain"
	"pageforge/internal/registry"
)

const pngDataURI = "data:image/png;base64,iVBORw0KGgo="

func lookup(t *testing.T, typ string) domain.ComponentDefinition {
	t.Helper()
	def, ok := registry.Default().Lookup(typ)
	require.True(t, ok)
	return def
}

func TestEqual(t *testing.T) {
	cases := []struct {
		name string
		a, b any
		want bool
	}{
		{"nil vs empty string", nil, "", true},
		{"empty vs nil", "", nil, true},
		{"same string", "a", "a", true},
		{"different string", "a", "b", false},
		{"int vs float", 1, 1.0, true},
		{"NaN vs NaN", math.NaN(), math.NaN(), true},
		{"NaN vs number", math.NaN(), 1.0, false},
		{"number vs numeric string", 1.0, "1", false},
		{"bool", true, true, true},
		{"bool differs", true, false, false},
		{"empty vs zero", "", 0.0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, coerce.Equal(tc.a, tc.b))
		})
	}
}

func TestChanged_OnlyComparesUpdateKeys(t *testing.T) {
	current := domain.Props{"title": "A", "subtitle": "B"}
	assert.False(t, coerce.Changed(current, domain.Props{"title": "A"}))
	assert.False(t, coerce.Changed(current, domain.Props{}))
	assert.True(t, coerce.Changed(current, domain.Props{"title": "C"}))

	withEmpty := domain.Props{"subtitle": nil}
	assert.False(t, coerce.Changed(withEmpty, domain.Props{"subtitle": ""}))
}

func TestMerge_DoesNotMutateInputs(t *testing.T) {
	current := domain.Props{"title": "A", "level": 1.0}
	merged := coerce.Merge(current, domain.Props{"title": "B"})

	assert.Equal(t, "A", current["title"])
	assert.Equal(t, "B", merged["title"])
	assert.Equal(t, 1.0, merged["level"])
}

func TestValue_Number(t *testing.T) {
	p := domain.PropertyDefinition{Name: "width", Type: domain.PropertyTypeNumber, DefaultValue: 600.0}

	assert.Equal(t, 320.0, coerce.Value(p, "320"))
	assert.Equal(t, 12.5, coerce.Value(p, " 12.5 "))
	assert.Equal(t, 42.0, coerce.Value(p, 42))
	assert.Equal(t, 600.0, coerce.Value(p, "abc"))
	assert.Equal(t, 600.0, coerce.Value(p, "NaN"))
	assert.Equal(t, 600.0, coerce.Value(p, nil))

	noDefault := domain.PropertyDefinition{Name: "n", Type: domain.PropertyTypeNumber}
	assert.Equal(t, 0.0, coerce.Value(noDefault, "oops"))
}

func TestValue_Select(t *testing.T) {
	header := lookup(t, registry.TypeHeader)
	level, _ := header.Property("level")
	assert.Equal(t, 3.0, coerce.Value(level, "3"))
	assert.Equal(t, 1.0, coerce.Value(level, "h3"))
	assert.Equal(t, 1.0, coerce.Value(level, "9"), "values outside the options fall back")

	alignment, _ := header.Property("alignment")
	assert.Equal(t, "center", coerce.Value(alignment, "center"))

	button := lookup(t, registry.TypeButton)
	newTab, _ := button.Property("linkOpenInNewTab")
	assert.Equal(t, false, coerce.Value(newTab, "false"))
	assert.Equal(t, true, coerce.Value(newTab, "true"))
	assert.Equal(t, false, coerce.Value(newTab, "yes"), "only the literal true decodes to true")
}

func TestValue_StringKinds(t *testing.T) {
	p := domain.PropertyDefinition{Name: "title", Type: domain.PropertyTypeText}
	assert.Equal(t, "hello", coerce.Value(p, "hello"))
	assert.Equal(t, "", coerce.Value(p, nil))
	assert.Equal(t, "7", coerce.Value(p, 7))
}

func TestForm_DropsTransientAndActionFields(t *testing.T) {
	def := lookup(t, registry.TypeAiTextGenerator)
	out := coerce.Form(def, map[string]any{
		"userProvidedPrompt": "Write about Go",
		"aiActionButton":     "clicked",
		"unknown":            "x",
	}, def.DefaultProps)

	assert.Equal(t, domain.Props{"userProvidedPrompt": "Write about Go"}, out)
}

func TestForm_EmptyFileKeepsStoredDataURI(t *testing.T) {
	def := lookup(t, registry.TypeImage)
	current := coerce.Merge(def.DefaultProps, domain.Props{"src": pngDataURI})

	out := coerce.Form(def, map[string]any{"src": "", registry.ImageURLField: "", "alt": "Logo"}, current)

	assert.NotContains(t, out, "src")
	assert.Equal(t, "Logo", out["alt"])
	assert.False(t, coerce.Changed(current, domain.Props{"src": coerce.Merge(current, out)["src"]}))
}

func TestForm_ImagePrecedence(t *testing.T) {
	def := lookup(t, registry.TypeImage)
	stored := coerce.Merge(def.DefaultProps, domain.Props{"src": "https://cdn.example.com/old.png"})

	out := coerce.Form(def, map[string]any{"src": pngDataURI, registry.ImageURLField: "https://example.com/new.png"}, stored)
	assert.Equal(t, pngDataURI, out["src"], "a fresh upload wins")

	out = coerce.Form(def, map[string]any{"src": "", registry.ImageURLField: "https://example.com/new.png"}, stored)
	assert.Equal(t, "https://example.com/new.png", out["src"])

	out = coerce.Form(def, map[string]any{"src": "data:image/png;base64,%%%", registry.ImageURLField: ""}, stored)
	assert.NotContains(t, out, "src", "a malformed upload keeps the stored URL")
}

func TestForm_NumbersFallBackToDefault(t *testing.T) {
	def := lookup(t, registry.TypeImage)
	out := coerce.Form(def, map[string]any{"width": "", "height": "250"}, def.DefaultProps)
	assert.Equal(t, 600.0, out["width"])
	assert.Equal(t, 250.0, out["height"])
}

func TestValidate(t *testing.T) {
	def := lookup(t, registry.TypeHeader)

	got, err := coerce.Validate(def, domain.Props{"title": "Sale Now", "level": 2})
	require.NoError(t, err)
	assert.Equal(t, domain.Props{"title": "Sale Now", "level": 2.0}, got)

	_, err = coerce.Validate(def, domain.Props{"bogus": 1})
	assert.ErrorIs(t, err, coerce.ErrUnknownProperty)

	_, err = coerce.Validate(def, domain.Props{"title": 5})
	assert.ErrorIs(t, err, coerce.ErrInvalidPropertyValue)

	_, err = coerce.Validate(def, domain.Props{"level": 9})
	assert.ErrorIs(t, err, coerce.ErrInvalidPropertyValue)

	_, err = coerce.Validate(def, domain.Props{"level": "2"})
	assert.ErrorIs(t, err, coerce.ErrInvalidPropertyValue)

	img := lookup(t, registry.TypeImage)
	_, err = coerce.Validate(img, domain.Props{registry.ImageURLField: "https://example.com"})
	assert.ErrorIs(t, err, coerce.ErrUnknownProperty, "transient fields never persist")

	_, err = coerce.Validate(img, domain.Props{"width": math.NaN()})
	assert.ErrorIs(t, err, coerce.ErrInvalidPropertyValue)
}

func TestValidate_FileProperty(t *testing.T) {
	img := lookup(t, registry.TypeImage)

	for _, bad := range []any{"", nil, "not a uri", "ftp://example.com/a.png", "data:image/png;base64,%%%", 42} {
		_, err := coerce.Validate(img, domain.Props{"src": bad})
		assert.ErrorIs(t, err, coerce.ErrInvalidPropertyValue, "src=%v", bad)
	}

	got, err := coerce.Validate(img, domain.Props{"src": pngDataURI})
	require.NoError(t, err)
	assert.Equal(t, pngDataURI, got["src"])

	got, err = coerce.Validate(img, domain.Props{"src": "https://cdn.example.com/a.png"})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/a.png", got["src"])
}

func TestResolveImageSource(t *testing.T) {
	const fallback = registry.ImagePlaceholderSrc

	assert.Equal(t, pngDataURI, coerce.ResolveImageSource(pngDataURI, "", "https://x.test/a.png", fallback))
	assert.Equal(t, pngDataURI, coerce.ResolveImageSource("", "", pngDataURI, fallback))
	assert.Equal(t, "https://x.test/a.png", coerce.ResolveImageSource("", "", "https://x.test/a.png", fallback))
	assert.Equal(t, fallback, coerce.ResolveImageSource("", "", "", fallback))
	assert.Equal(t, fallback, coerce.ResolveImageSource("", "not a url", "ftp://x.test/a.png", fallback))
}

func TestIsImageDataURI(t *testing.T) {
	assert.True(t, coerce.IsImageDataURI(pngDataURI))
	assert.False(t, coerce.IsImageDataURI("data:text/plain;base64,aGk="))
	assert.False(t, coerce.IsImageDataURI("data:image/png,rawbytes"))
	assert.False(t, coerce.IsImageDataURI("data:image/png;base64,"))
	assert.False(t, coerce.IsImageDataURI(""))
}
