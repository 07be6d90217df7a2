package seed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Preset is a named seeding profile loaded from a YAML file. It lets a
// developer keep a few repeatable dataset shapes around instead of
// remembering flag combinations.
type Preset struct {
	Name    string `yaml:"name"`
	Users   int    `yaml:"users"`
	Posts   int    `yaml:"posts"`
	MaxDays int    `yaml:"max_days"`
	Clean   bool   `yaml:"clean"`
}

// PresetFile is the on-disk format: a list of presets.
type PresetFile struct {
	Presets []Preset `yaml:"presets"`
}

// LoadPreset reads the preset file at path and returns the preset with the
// given name.
func LoadPreset(path, name string) (*Preset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read preset file: %w", err)
	}

	var file PresetFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse preset file: %w", err)
	}

	for _, p := range file.Presets {
		if p.Name == name {
			preset := p
			return &preset, nil
		}
	}
	return nil, fmt.Errorf("preset %q not found in %s", name, path)
}

// Options converts the preset into seeder options.
func (p *Preset) Options() Options {
	return Options{
		NumUsers:    p.Users,
		NumPosts:    p.Posts,
		MaxDays:     p.MaxDays,
		ShouldClean: p.Clean,
	}
}
