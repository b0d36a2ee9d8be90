package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"solar-sizer/internal/catalog"
	"solar-sizer/internal/data"
	"solar-sizer/internal/model"
	"solar-sizer/internal/sizing"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	// Optional: reference table of known appliances (Appliances.csv layout).
	ApplianceFile string `yaml:"appliance_file"`
	// Optional: component catalogs. Lists missing from the file keep the built-in sizes.
	CatalogFile string `yaml:"catalog_file"`
	// Optional: saved load schedule used by the CLI when --ledger is not given.
	LedgerFile string `yaml:"ledger_file"`

	Parameters model.SolarParameters `yaml:"parameters"`
	Constants  sizing.Constants      `yaml:"constants"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Parameters: model.DefaultSolarParameters(),
		Constants:  sizing.DefaultConstants(),
	}
}

// Load reads, defaults and validates a config file. Constants start from
// sizing.DefaultConstants and only keys present in the file replace them, so an
// explicit 0 (for balancer_fraction or min_balancer_amps) is kept. Parameters
// left at zero fall back to model.DefaultSolarParameters.
func Load(path string) (*Config, error) {
	c := &Config{Constants: sizing.DefaultConstants()}
	if err := read(path, c); err != nil {
		return nil, err
	}
	c.Parameters = MergeParameters(model.DefaultSolarParameters(), c.Parameters)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked reads the file and resolves relative paths, but applies no
// defaults and does not validate.
func LoadUnchecked(path string) (*Config, error) {
	var c Config
	if err := read(path, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// read decodes the file over c; keys missing from the file leave c untouched.
func read(path string, c *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	dir := filepath.Dir(path)
	c.ApplianceFile = resolve(dir, c.ApplianceFile)
	c.CatalogFile = resolve(dir, c.CatalogFile)
	c.LedgerFile = resolve(dir, c.LedgerFile)
	return nil
}

// resolve prefers interpreting relative paths against the config file directory,
// falling back to the path as given (relative to cwd) if that doesn't exist.
func resolve(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	cand := filepath.Join(dir, p)
	if _, err := os.Stat(cand); err == nil {
		return cand
	}
	return p
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if err := c.Parameters.Validate(); err != nil {
		return fmt.Errorf("parameters invalid: %w", err)
	}
	if err := c.Constants.Validate(); err != nil {
		return fmt.Errorf("constants invalid: %w", err)
	}
	return nil
}

// Engine builds a sizing engine from the catalog file (or the built-in
// catalogs) and the configured constants.
func (c *Config) Engine() (*sizing.Engine, error) {
	set := catalog.Default()
	if c.CatalogFile != "" {
		var err error
		if set, err = LoadCatalogFile(c.CatalogFile); err != nil {
			return nil, err
		}
	}
	return sizing.New(set, c.Constants)
}

// Appliances loads the reference table. It returns nil, nil when no file is
// configured; a nil table answers every lookup with "unknown".
func (c *Config) Appliances() (*data.ApplianceTable, error) {
	if c.ApplianceFile == "" {
		return nil, nil
	}
	return data.LoadApplianceCSV(c.ApplianceFile)
}

// MergeParameters overlays non-zero fields from override onto base.
func MergeParameters(base, override model.SolarParameters) model.SolarParameters {
	out := base
	if override.SystemVoltage != 0 {
		out.SystemVoltage = override.SystemVoltage
	}
	if override.DepthOfDischargePercent != 0 {
		out.DepthOfDischargePercent = override.DepthOfDischargePercent
	}
	if override.PanelSizeWatts != 0 {
		out.PanelSizeWatts = override.PanelSizeWatts
	}
	return out
}
