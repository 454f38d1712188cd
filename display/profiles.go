package display

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed devices.yaml
var staticContent embed.FS

// Profile describes one known panel model
type Profile struct {
	Name   string `yaml:"name"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	// Mono panels only show black and white, the composer output is
	// dithered by the driver in that case
	Mono bool `yaml:"mono"`
}

type profileFile struct {
	Profiles []Profile `yaml:"profiles"`
}

// LoadProfile resolves a configured display type against the embedded
// device registry
func LoadProfile(name string) (Profile, error) {
	raw, err := staticContent.ReadFile("devices.yaml")
	if err != nil {
		return Profile{}, fmt.Errorf("reading device registry: %w", err)
	}
	var file profileFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return Profile{}, fmt.Errorf("parsing device registry: %w", err)
	}
	for _, p := range file.Profiles {
		if p.Name == name {
			return p, nil
		}
	}
	return Profile{}, fmt.Errorf("unknown display type %q", name)
}
