package model

import "strings"

// ContainerPreset is a named container size with optional spacing defaults.
type ContainerPreset struct {
	Name      string  `yaml:"name" json:"name"`
	Width     float64 `yaml:"width" json:"width"`
	Height    float64 `yaml:"height" json:"height"`
	Padding   float64 `yaml:"padding,omitempty" json:"padding,omitempty"`
	Gap       float64 `yaml:"gap,omitempty" json:"gap,omitempty"`
	IsBuiltIn bool    `yaml:"-" json:"-"`
}

// BuiltinPresets returns the presets shipped with the tool. Page sizes are in
// PostScript points.
func BuiltinPresets() []ContainerPreset {
	return []ContainerPreset{
		{Name: "a4", Width: 595, Height: 842, Padding: 36, IsBuiltIn: true},
		{Name: "a4-landscape", Width: 842, Height: 595, Padding: 36, IsBuiltIn: true},
		{Name: "letter", Width: 612, Height: 792, Padding: 36, IsBuiltIn: true},
		{Name: "hd", Width: 1920, Height: 1080, IsBuiltIn: true},
		{Name: "dashboard", Width: 1280, Height: 800, Padding: 8, Gap: 8, IsBuiltIn: true},
		{Name: "square", Width: 1000, Height: 1000, IsBuiltIn: true},
	}
}

// FindPreset looks a preset up by name, ignoring case.
func FindPreset(presets []ContainerPreset, name string) (ContainerPreset, bool) {
	for _, p := range presets {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return ContainerPreset{}, false
}

// ApplyTo sets the container size and spacing of opts from the preset.
func (p ContainerPreset) ApplyTo(opts *PackingOptions) {
	opts.ContainerWidth = p.Width
	opts.ContainerHeight = p.Height
	opts.Padding = p.Padding
	opts.Gap = p.Gap
}
