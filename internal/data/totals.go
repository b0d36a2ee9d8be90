package data

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"solar-sizer/internal/model"
)

// Fallbacks used by the generation-set window when no load file exists yet.
const (
	DefaultTotalWattage      = 50.0
	DefaultAverageUsageHours = 6.0
)

// TotalLoad is the load summary handed from the ledger to the sizing window.
type TotalLoad struct {
	TotalWattage        float64 `json:"total_wattage"`
	AverageUsageHours   float64 `json:"average_usage_hours"`
	TotalUsageHours     float64 `json:"total_usage_hours"`
	ApplianceCount      int     `json:"appliance_count"`
	TotalConsumptionKWh float64 `json:"total_consumption_kwh"`
}

// TotalLoadFrom summarises ledger totals for the sizing window.
func TotalLoadFrom(t model.LedgerTotals) TotalLoad {
	return TotalLoad{
		TotalWattage:        t.TotalWattage,
		AverageUsageHours:   t.AverageUsageHours(),
		TotalUsageHours:     t.TotalUsageHours,
		ApplianceCount:      t.ApplianceCount,
		TotalConsumptionKWh: t.TotalConsumptionKWh,
	}
}

// LedgerTotals converts a summary back into ledger totals for the sizing
// engine. Summaries that carry only wattage and average hours (the defaults, or
// files written by hand) get a daily consumption of wattage x hours and count
// as a single appliance.
func (tl TotalLoad) LedgerTotals() model.LedgerTotals {
	t := model.LedgerTotals{
		TotalWattage:        tl.TotalWattage,
		TotalUsageHours:     tl.TotalUsageHours,
		ApplianceCount:      tl.ApplianceCount,
		TotalConsumptionKWh: tl.TotalConsumptionKWh,
	}
	if t.ApplianceCount <= 0 {
		t.ApplianceCount = 1
		t.TotalUsageHours = tl.AverageUsageHours
	}
	if t.TotalConsumptionKWh <= 0 {
		t.TotalConsumptionKWh = tl.TotalWattage * tl.AverageUsageHours / 1000
	}
	return t
}

// LoadTotalsJSON reads a load summary. A missing or corrupt file is not an
// error: the defaults are returned with ok=false.
func LoadTotalsJSON(path string) (TotalLoad, bool) {
	def := TotalLoad{TotalWattage: DefaultTotalWattage, AverageUsageHours: DefaultAverageUsageHours}
	raw, err := os.ReadFile(path)
	if err != nil {
		return def, false
	}
	var tl TotalLoad
	if err := json.Unmarshal(raw, &tl); err != nil {
		return def, false
	}
	return tl, true
}

// SaveTotalsJSON writes a load summary, creating the directory if needed.
func SaveTotalsJSON(tl TotalLoad, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	raw, err := json.MarshalIndent(tl, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal load totals: %w", err)
	}

	if err := os.WriteFile(path, raw, 0644); err != nil {
		return fmt.Errorf("failed to write load totals file: %w", err)
	}
	return nil
}
