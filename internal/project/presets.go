package project

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/piwi3910/packlayout/internal/model"
)

// DefaultPresetsPath returns the default file path for custom container presets.
// This is located at ~/.packlayout/presets.yaml.
func DefaultPresetsPath() string {
	return filepath.Join(DefaultConfigDir(), "presets.yaml")
}

// SaveCustomPresets writes custom presets to a YAML file.
func SaveCustomPresets(path string, presets []model.ContainerPreset) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(presets)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadCustomPresets reads custom presets from a YAML file.
// Returns an empty slice if the file does not exist.
func LoadCustomPresets(path string) ([]model.ContainerPreset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.ContainerPreset{}, nil
		}
		return nil, err
	}

	var presets []model.ContainerPreset
	if err := yaml.Unmarshal(data, &presets); err != nil {
		return nil, err
	}
	for _, p := range presets {
		if strings.TrimSpace(p.Name) == "" {
			return nil, errors.New("custom preset has no name")
		}
	}
	if presets == nil {
		presets = []model.ContainerPreset{}
	}
	return presets, nil
}

// MergePresets returns the built-in presets followed by custom ones.
// A custom preset replaces a built-in preset of the same name.
func MergePresets(custom []model.ContainerPreset) []model.ContainerPreset {
	merged := model.BuiltinPresets()
	for _, c := range custom {
		replaced := false
		for i := range merged {
			if strings.EqualFold(merged[i].Name, c.Name) {
				merged[i] = c
				replaced = true
				break
			}
		}
		if !replaced {
			merged = append(merged, c)
		}
	}
	return merged
}
