package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"solar-sizer/internal/model"
	"solar-sizer/internal/sizing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0644))
	return p
}

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := write(t, dir, "config.yaml", `
parameters:
  system_voltage: 24
constants:
  cable_margin: 1.0
`)
	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, model.SolarParameters{SystemVoltage: 24, DepthOfDischargePercent: 50, PanelSizeWatts: 100}, c.Parameters)
	want := sizing.DefaultConstants()
	want.CableMargin = 1.0
	assert.Equal(t, want, c.Constants)
}

func TestLoadKeepsExplicitZeroConstants(t *testing.T) {
	path := write(t, t.TempDir(), "config.yaml", `
constants:
  balancer_fraction: 0
  min_balancer_amps: 0
`)
	c, err := Load(path)
	require.NoError(t, err)
	assert.Zero(t, c.Constants.BalancerFraction)
	assert.Zero(t, c.Constants.MinBalancerAmps)
	assert.Equal(t, sizing.DefaultConstants().SunHours, c.Constants.SunHours)

	// A zero margin is still rejected rather than silently defaulted.
	path = write(t, t.TempDir(), "config.yaml", "constants:\n  cable_margin: 0\n")
	_, err = Load(path)
	var cerr *model.ConfigurationError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "cable_margin", cerr.Field)
}

func TestLoadRejectsBadParameters(t *testing.T) {
	path := write(t, t.TempDir(), "config.yaml", `
parameters:
  depth_of_discharge_percent: 150
`)
	_, err := Load(path)
	var verr *model.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "depth_of_discharge_percent", verr.Field)

	c, err := LoadUnchecked(path)
	require.NoError(t, err)
	assert.Equal(t, 150.0, c.Parameters.DepthOfDischargePercent)
}

func TestLoadResolvesRelativePaths(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "Appliances.csv", "Appliance,Rated Power (W),Surge Power (W),Efficiency (%),Power Factor (PF)\nFan,75,150,85,0.9\n")
	write(t, dir, "catalog.yaml", "inverters: [500, 1000, 2000]\n")
	path := write(t, dir, "config.yaml", "appliance_file: Appliances.csv\ncatalog_file: catalog.yaml\nledger_file: missing.csv\n")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Appliances.csv"), c.ApplianceFile)
	assert.Equal(t, filepath.Join(dir, "catalog.yaml"), c.CatalogFile)
	assert.Equal(t, "missing.csv", c.LedgerFile)

	tbl, err := c.Appliances()
	require.NoError(t, err)
	_, ok := tbl.Lookup("Fan")
	assert.True(t, ok)

	engine, err := c.Engine()
	require.NoError(t, err)
	assert.Equal(t, []float64{500, 1000, 2000}, engine.Catalogs().Inverters.Sizes)
	assert.Equal(t, "inverters", engine.Catalogs().Inverters.Name)
	assert.NotEmpty(t, engine.Catalogs().Cables.Sizes)
}

func TestLoadCatalogFile(t *testing.T) {
	dir := t.TempDir()
	path := write(t, dir, "catalog.yaml", `
fuses: [10, 20]
cables:
  - size_mm2: 4
    ampacity_a: 26
  - size_mm2: 6
    ampacity_a: 32
    awg: "10"
`)
	set, err := LoadCatalogFile(path)
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 20}, set.Fuses.Sizes)
	assert.Equal(t, []float64{4, 6}, set.Cables.Sizes)
	assert.Equal(t, "10", set.Cables.AWG[6])

	bad := write(t, dir, "bad.yaml", "mppt: [30, 20]\n")
	_, err = LoadCatalogFile(bad)
	var cerr *model.ConfigurationError
	assert.True(t, errors.As(err, &cerr))
}

func TestDefaultConfigIsValid(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	tbl, err := c.Appliances()
	require.NoError(t, err)
	assert.Nil(t, tbl)
}

func TestMergeParameters(t *testing.T) {
	got := MergeParameters(model.DefaultSolarParameters(), model.SolarParameters{PanelSizeWatts: 300})
	assert.Equal(t, 12.0, got.SystemVoltage)
	assert.Equal(t, 300.0, got.PanelSizeWatts)
}

func TestLoadServer(t *testing.T) {
	t.Setenv("API_PORT", "9090")
	t.Setenv("PLAN_TTL", "90m")
	t.Setenv("DEBUG", "notabool")
	t.Setenv("API_ENV", "production")

	s := LoadServer()
	assert.Equal(t, "9090", s.Port)
	assert.Equal(t, 90*time.Minute, s.PlanTTL)
	assert.False(t, s.Debug)
	assert.True(t, s.Production())
}

func TestExampleConfig(t *testing.T) {
	c, err := Load(filepath.Join("..", "..", "examples", "config.yaml"))
	require.NoError(t, err)

	engine, err := c.Engine()
	require.NoError(t, err)
	require.NoError(t, engine.CheckParameters(c.Parameters))
	assert.Equal(t, 10000.0, engine.Catalogs().Inverters.Max())

	tbl, err := c.Appliances()
	require.NoError(t, err)
	assert.Equal(t, 16, tbl.Len())
}
