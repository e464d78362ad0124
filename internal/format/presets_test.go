package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresetRegistryDefaults(t *testing.T) {
	registry := NewPresetRegistry()

	for _, name := range []string{"compact", "detailed", "csv", "json", "ids", "progress"} {
		preset, err := registry.Get(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, preset.Name)
		assert.NoError(t, ValidateTemplate(preset.Template))
	}

	_, err := registry.Get("nope")
	assert.Error(t, err)
}

func TestPresetTemplatesResolve(t *testing.T) {
	registry := NewPresetRegistry()
	engine := NewTemplateEngine()
	ctx := VariableContext{Order: sampleOrder(), Lookup: sampleLookup()}

	for _, preset := range registry.List() {
		_, err := engine.Substitute(preset.Template, ctx)
		assert.NoError(t, err, preset.Name)
	}
}

func TestPresetRegister(t *testing.T) {
	registry := NewPresetRegistry()
	before := len(registry.List())

	require.NoError(t, registry.Register(Preset{Name: "mine", Template: "{{id}}"}))
	assert.Len(t, registry.List(), before+1)

	preset, err := registry.Get("mine")
	require.NoError(t, err)
	assert.Equal(t, "{{id}}", preset.Template)

	// Overwriting keeps the registration order stable.
	require.NoError(t, registry.Register(Preset{Name: "mine", Template: "#{{id}}"}))
	assert.Len(t, registry.List(), before+1)

	assert.Error(t, registry.Register(Preset{Template: "{{id}}"}))
	assert.Error(t, registry.Register(Preset{Name: "empty"}))
}
