package manifest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Animation describes one animation's frame range in the scene timeline.
// EndFrame is exclusive: an animation spanning scene frames 1..19 is
// declared as startFrame 1, endFrame 20 and yields 19 frames.
type Animation struct {
	Name       string `yaml:"name"`
	Tag        string `yaml:"tag"`
	StartFrame int    `yaml:"startFrame"`
	EndFrame   int    `yaml:"endFrame"`
	Columns    int    `yaml:"columns"`
}

// Length returns the number of frames the animation renders.
func (a Animation) Length() int {
	return a.EndFrame - a.StartFrame
}

// Manifest is the run description read from the animations YAML file.
type Manifest struct {
	Scene      string      `yaml:"scene"`
	Image      string      `yaml:"image"`
	Animations []Animation `yaml:"animations"`
}

// Load reads and validates a manifest file.
func Load(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("read manifest: %w", err)
	}

	m, err := Parse(data)
	if err != nil {
		return Manifest{}, fmt.Errorf("manifest %s: %w", path, err)
	}
	return m, nil
}

// Parse decodes and validates manifest YAML.
func Parse(data []byte) (Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("parse: %w", err)
	}
	if err := m.validate(); err != nil {
		return Manifest{}, err
	}
	return m, nil
}

func (m Manifest) validate() error {
	if m.Scene == "" {
		return fmt.Errorf("scene must not be empty")
	}
	if m.Image == "" {
		return fmt.Errorf("image must not be empty")
	}

	seen := make(map[string]bool, len(m.Animations))
	for i, a := range m.Animations {
		if a.Name == "" {
			return fmt.Errorf("animation %d: name must not be empty", i)
		}
		if seen[a.Name] {
			return fmt.Errorf("animation %q declared twice", a.Name)
		}
		seen[a.Name] = true

		if a.EndFrame < a.StartFrame {
			return fmt.Errorf("animation %q: endFrame %d before startFrame %d",
				a.Name, a.EndFrame, a.StartFrame)
		}
		if a.Columns < 0 {
			return fmt.Errorf("animation %q: columns must not be negative", a.Name)
		}
	}
	return nil
}

// Tags groups animation names by their tag. Untagged animations are
// excluded.
func (m Manifest) Tags() map[string][]string {
	tags := map[string][]string{}
	for _, a := range m.Animations {
		if a.Tag == "" {
			continue
		}
		tags[a.Tag] = append(tags[a.Tag], a.Name)
	}
	return tags
}
