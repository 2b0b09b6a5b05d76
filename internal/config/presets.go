package config

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/gradloop/internal/rgb"
	"gopkg.in/yaml.v3"
)

//go:embed presets.yaml
var presetData []byte

var ErrUnknownPreset = errors.New("unknown preset")

var Presets = mustLoadPresets(presetData)

func mustLoadPresets(data []byte) map[string]*Config {
	p, err := LoadPresets(data)
	if err != nil {
		panic(err)
	}
	return p
}

// LoadPresets decodes a YAML mapping of preset name to config. Fields left out
// of a preset keep their defaults.
func LoadPresets(data []byte) (map[string]*Config, error) {
	var raw map[string]yaml.Node
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	out := make(map[string]*Config, len(raw))
	for name, node := range raw {
		cfg := DefaultConfig()
		if err := node.Decode(cfg); err != nil {
			return nil, fmt.Errorf("preset %s: %w", name, err)
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("preset %s: %w", name, err)
		}
		for _, c := range []string{cfg.Start, cfg.End} {
			if _, err := rgb.Parse(c); err != nil {
				return nil, fmt.Errorf("preset %s: %w", name, err)
			}
		}
		out[name] = cfg
	}
	return out, nil
}

func GetPreset(name string) (*Config, error) {
	cfg, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownPreset, name, ListPresets())
	}
	c := *cfg
	return &c, nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
