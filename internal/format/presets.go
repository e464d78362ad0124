package format

import "fmt"

// Preset represents a template preset with name, template string, and description.
type Preset struct {
	Name        string
	Template    string
	Description string
}

// PresetRegistry manages template presets.
type PresetRegistry interface {
	// Get returns a preset by name.
	Get(name string) (*Preset, error)

	// List returns all available presets.
	List() []Preset

	// Register adds a new preset.
	Register(preset Preset) error
}

type presetRegistry struct {
	presets map[string]Preset
	order   []string
}

// NewPresetRegistry creates a new preset registry with all default presets.
func NewPresetRegistry() PresetRegistry {
	registry := &presetRegistry{
		presets: make(map[string]Preset),
		order:   []string{},
	}
	registry.registerDefaults()
	return registry
}

func (pr *presetRegistry) registerDefaults() {
	presets := []Preset{
		{
			Name:        "compact",
			Template:    "#{{id}} {{buyer}} {{total}}",
			Description: "Compact format with id, buyer, and total",
		},
		{
			Name:        "detailed",
			Template:    "#{{id}} [{{status}}] {{buyer}} <{{email}}> {{total}} | {{item-list}}",
			Description: "Detailed format with status, contact, and line items",
		},
		{
			Name:        "csv",
			Template:    "{{id}},{{status}},{{buyer}},{{email}},{{total}},{{item-count}}",
			Description: "Comma-separated format for spreadsheets",
		},
		{
			Name:        "json",
			Template:    `{"id":{{id}},"status":"{{status}}","buyer":"{{buyer}}","total":"{{total}}"}`,
			Description: "JSON format for programmatic consumption",
		},
		{
			Name:        "ids",
			Template:    "{{id}}",
			Description: "Only order ids, one per line",
		},
		{
			Name:        "progress",
			Template:    "#{{id}} {{buyer}}: {{done-count}}/{{item-count}} done, {{paid-count}} paid",
			Description: "Per-order annotation progress",
		},
	}

	for _, preset := range presets {
		pr.presets[preset.Name] = preset
		pr.order = append(pr.order, preset.Name)
	}
}

// Get returns a preset by name, or an error if not found.
func (pr *presetRegistry) Get(name string) (*Preset, error) {
	preset, ok := pr.presets[name]
	if !ok {
		return nil, fmt.Errorf("preset not found: %s", name)
	}
	return &preset, nil
}

// List returns all available presets in registration order.
func (pr *presetRegistry) List() []Preset {
	result := make([]Preset, 0, len(pr.order))
	for _, name := range pr.order {
		if preset, ok := pr.presets[name]; ok {
			result = append(result, preset)
		}
	}
	return result
}

// Register adds a new preset or overwrites an existing one.
func (pr *presetRegistry) Register(preset Preset) error {
	if preset.Name == "" {
		return fmt.Errorf("preset name cannot be empty")
	}
	if preset.Template == "" {
		return fmt.Errorf("preset template cannot be empty")
	}

	if _, exists := pr.presets[preset.Name]; !exists {
		pr.order = append(pr.order, preset.Name)
	}
	pr.presets[preset.Name] = preset
	return nil
}
