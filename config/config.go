// Package config loads the optional YAML descriptor for an enhancement
// run. Everything in it has a sane default; command line flags override
// whatever the file sets.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/godeepar/enhance"
)

// Run ... one enhancement run descriptor
type Run struct {
	// Scale must match the mesh scale of the upstream conversion step.
	Scale float64 `yaml:"scale"`

	// Seed fixes the placement randomness; zero means time-seeded.
	Seed int64 `yaml:"seed"`

	// GeoJSON, when set, is where the extracted features get exported.
	GeoJSON string `yaml:"geojson"`

	// Models overrides the stock proxy model catalog.
	Models enhance.Catalog `yaml:"models"`
}

// Default returns a run descriptor with the stock catalog and unit scale.
func Default() Run {
	return Run{
		Scale:  1.0,
		Models: enhance.DefaultCatalog(),
	}
}

// Load reads a YAML run descriptor, filling anything unset with defaults.
func Load(path string) (Run, error) {
	run := Default()

	raw, err := os.ReadFile(path)
	if err != nil {
		return run, fmt.Errorf("[Load] in pkg [config] encountered: %v", err)
	}

	if err := yaml.Unmarshal(raw, &run); err != nil {
		return run, fmt.Errorf("[Load] in pkg [config] encountered: %v", err)
	}

	if run.Scale == 0 {
		run.Scale = 1.0
	}
	stock := enhance.DefaultCatalog()
	if run.Models.Bench == "" {
		run.Models.Bench = stock.Bench
	}
	if run.Models.Deciduous == "" {
		run.Models.Deciduous = stock.Deciduous
	}
	if run.Models.Coniferous == "" {
		run.Models.Coniferous = stock.Coniferous
	}

	return run, nil
}
