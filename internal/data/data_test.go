package data

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"solar-sizer/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleAppliances = `Appliance,Rated Power (W),Surge Power (W),Efficiency (%),Power Factor (PF)
Refrigerator,150,600,90,0.85
Ceiling Fan,75,150,85%,0.9
Broken,abc,1,1,1
LED Bulb,10,10,95,0.9
Refrigerator,999,999,1,1
,10,10,10,1
`

func TestReadApplianceCSV(t *testing.T) {
	tbl, err := ReadApplianceCSV(strings.NewReader(sampleAppliances))
	require.NoError(t, err)
	assert.Equal(t, 3, tbl.Len())

	s, ok := tbl.Lookup("Refrigerator")
	require.True(t, ok)
	assert.Equal(t, model.ApplianceSpec{
		Name: "Refrigerator", RatedPowerWatts: 150, SurgePowerWatts: 600, EfficiencyPercent: 90, PowerFactor: 0.85,
	}, s)

	s, ok = tbl.Lookup("Ceiling Fan")
	require.True(t, ok)
	assert.Equal(t, 85.0, s.EfficiencyPercent)

	_, ok = tbl.Lookup("Broken")
	assert.False(t, ok)
	_, ok = tbl.Lookup("refrigerator")
	assert.False(t, ok)

	assert.Equal(t, []string{"Ceiling Fan", "LED Bulb", "Refrigerator"}, tbl.Names())
}

func TestReadApplianceCSVMissingColumn(t *testing.T) {
	_, err := ReadApplianceCSV(strings.NewReader("Appliance,Rated Power (W)\nFan,75\n"))
	assert.ErrorContains(t, err, "Surge Power (W)")
}

func TestSearch(t *testing.T) {
	tbl, err := ReadApplianceCSV(strings.NewReader(sampleAppliances))
	require.NoError(t, err)

	got := tbl.Search("ce")
	require.Len(t, got, 1)
	assert.Equal(t, "Ceiling Fan", got[0].Name)

	assert.Len(t, tbl.Search(""), 3)
	assert.Empty(t, tbl.Search("x"))

	var nilTable *ApplianceTable
	assert.Nil(t, nilTable.Search("a"))
	_, ok := nilTable.Lookup("a")
	assert.False(t, ok)
}

func TestLoadApplianceCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Appliances.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleAppliances), 0644))

	tbl, err := LoadApplianceCSV(path)
	require.NoError(t, err)
	assert.Equal(t, 3, tbl.Len())

	_, err = LoadApplianceCSV(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestTotalsJSON(t *testing.T) {
	dir := t.TempDir()

	tl, ok := LoadTotalsJSON(filepath.Join(dir, "total_load.json"))
	assert.False(t, ok)
	assert.Equal(t, DefaultTotalWattage, tl.TotalWattage)
	assert.Equal(t, DefaultAverageUsageHours, tl.AverageUsageHours)

	corrupt := filepath.Join(dir, "corrupt.json")
	require.NoError(t, os.WriteFile(corrupt, []byte("{"), 0644))
	_, ok = LoadTotalsJSON(corrupt)
	assert.False(t, ok)

	want := TotalLoadFrom(model.LedgerTotals{
		TotalWattage: 400, TotalUsageHours: 30, ApplianceCount: 5, TotalConsumptionKWh: 2.5,
	})
	assert.Equal(t, 6.0, want.AverageUsageHours)

	path := filepath.Join(dir, "out", "total_load.json")
	require.NoError(t, SaveTotalsJSON(want, path))
	got, ok := LoadTotalsJSON(path)
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestTotalLoadLedgerTotals(t *testing.T) {
	saved := TotalLoadFrom(model.LedgerTotals{
		TotalWattage: 400, TotalUsageHours: 30, ApplianceCount: 5, TotalConsumptionKWh: 2.5,
	})
	got := saved.LedgerTotals()
	assert.Equal(t, model.LedgerTotals{
		TotalWattage: 400, TotalUsageHours: 30, ApplianceCount: 5, TotalConsumptionKWh: 2.5,
	}, got)
	assert.Equal(t, 6.0, got.AverageUsageHours())

	// The fallback summary has no consumption figure; it is derived.
	def, ok := LoadTotalsJSON(filepath.Join(t.TempDir(), "missing.json"))
	require.False(t, ok)
	got = def.LedgerTotals()
	assert.InDelta(t, 0.3, got.TotalConsumptionKWh, 1e-12)
	assert.Equal(t, 1, got.ApplianceCount)
	assert.Equal(t, DefaultAverageUsageHours, got.AverageUsageHours())
	assert.True(t, got.HasLoad())

	assert.False(t, TotalLoad{}.LedgerTotals().HasLoad())
}
