package config

import (
	"fmt"
	"os"

	"solar-sizer/internal/catalog"

	"gopkg.in/yaml.v3"
)

// CatalogFile is the YAML shape of a catalog override file. Every list is
// optional; an omitted list keeps the built-in sizes.
type CatalogFile struct {
	Inverters      []float64       `yaml:"inverters"`
	MPPT           []float64       `yaml:"mppt"`
	SCC            []float64       `yaml:"scc"`
	DCBreakers     []float64       `yaml:"dc_breakers"`
	ACBreakers     []float64       `yaml:"ac_breakers"`
	Balancers      []float64       `yaml:"balancers"`
	Fuses          []float64       `yaml:"fuses"`
	SystemVoltages []float64       `yaml:"system_voltages"`
	PanelSizes     []float64       `yaml:"panel_sizes"`
	Cables         []catalog.Cable `yaml:"cables"`
}

// LoadCatalogFile reads a catalog file on top of catalog.Default() and
// validates the result.
func LoadCatalogFile(path string) (*catalog.Set, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f CatalogFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", path, err)
	}
	set := f.Apply(catalog.Default())
	if err := set.Validate(); err != nil {
		return nil, fmt.Errorf("catalog file %s: %w", path, err)
	}
	return set, nil
}

// Apply overlays the non-empty lists of f onto base.
func (f CatalogFile) Apply(base *catalog.Set) *catalog.Set {
	out := *base
	overlay := func(dst *catalog.Catalog, sizes []float64) {
		if len(sizes) > 0 {
			dst.Sizes = sizes
		}
	}
	overlay(&out.Inverters, f.Inverters)
	overlay(&out.MPPT, f.MPPT)
	overlay(&out.SCC, f.SCC)
	overlay(&out.DCBreakers, f.DCBreakers)
	overlay(&out.ACBreakers, f.ACBreakers)
	overlay(&out.Balancers, f.Balancers)
	overlay(&out.Fuses, f.Fuses)
	overlay(&out.SystemVoltages, f.SystemVoltages)
	overlay(&out.PanelSizes, f.PanelSizes)
	if len(f.Cables) > 0 {
		out.Cables = catalog.NewCableCatalog(f.Cables)
	}
	return &out
}
