package config

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/attractor/internal/attractor"
)

// Preset is a known attractor that can be rendered without searching.
type Preset struct {
	Map          string
	Coefficients attractor.Coefficients
	Initial      attractor.Point
	Iterations   int
	Intensity    uint8
	Description  string
}

var Presets = map[string]Preset{
	"polynomial": {
		Map: "quadratic",
		Coefficients: attractor.Coefficients{
			0.0729852587368, -1.68857268682, -1.166860477639, 0.2863106166977,
			-0.0445719720327, 0.0826547849819, 0.01543763415003, 0.1840016466031,
			-0.0380851641908, -0.1846254576796, 1.477639301224, -1.024867016233,
		},
		Initial:     attractor.Point{X: 0.123976285, Y: -0.017531803},
		Iterations:  1000000,
		Intensity:   2,
		Description: "quadratic polynomial attractor",
	},
	"clifford": {
		Map:          "clifford",
		Coefficients: attractor.Coefficients{-2, -2.4, 1.1, -0.9},
		Initial:      attractor.Point{X: 0.1, Y: 0.1},
		Iterations:   1000000,
		Intensity:    2,
		Description:  "clifford attractor",
	},
	"clifford-wings": {
		Map:          "clifford",
		Coefficients: attractor.Coefficients{-1.4, 1.6, 1.0, 0.7},
		Initial:      attractor.Point{X: 0.1, Y: 0.1},
		Iterations:   1000000,
		Intensity:    2,
		Description:  "clifford attractor, folded wings",
	},
}

// GetPreset looks name up in presets, either the built-in Presets or a
// set returned by LoadPresets.
func GetPreset(presets map[string]Preset, name string) (Preset, error) {
	p, ok := presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("unknown preset: %s (available: %v)", name, ListPresets(presets))
	}
	return p, nil
}

func ListPresets(presets map[string]Preset) []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type presetFile struct {
	Map          string    `yaml:"map"`
	Coefficients []float64 `yaml:"coefficients"`
	X            float64   `yaml:"x"`
	Y            float64   `yaml:"y"`
	Iterations   int       `yaml:"iterations"`
	Intensity    uint8     `yaml:"intensity"`
	Description  string    `yaml:"description"`
}

// LoadPresets reads a YAML mapping of preset name to preset and merges it
// over the built-in presets. Missing coefficients are zero.
func LoadPresets(path string) (map[string]Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]presetFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	merged := make(map[string]Preset, len(Presets)+len(raw))
	for name, p := range Presets {
		merged[name] = p
	}
	for name, f := range raw {
		if len(f.Coefficients) > attractor.NumCoefficients {
			return nil, fmt.Errorf("preset %s: %d coefficients, at most %d allowed", name, len(f.Coefficients), attractor.NumCoefficients)
		}
		p := Preset{
			Map:         f.Map,
			Initial:     attractor.Point{X: f.X, Y: f.Y},
			Iterations:  f.Iterations,
			Intensity:   f.Intensity,
			Description: f.Description,
		}
		copy(p.Coefficients[:], f.Coefficients)
		merged[name] = p
	}
	return merged, nil
}
