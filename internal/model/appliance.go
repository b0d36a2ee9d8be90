package model

import (
	"math"

	"github.com/shopspring/decimal"
)

// Defaults applied to appliances that are not in the reference table.
const (
	DefaultEfficiencyPercent = 100.0
	DefaultPowerFactor       = 1.0
	DefaultUsageHours        = 6.0
	DefaultCount             = 1
	MaxUsageHours            = 24.0
)

// ApplianceSpec is one record of the appliance reference table.
type ApplianceSpec struct {
	Name              string  `json:"name"`
	RatedPowerWatts   float64 `json:"rated_power_watts"`
	SurgePowerWatts   float64 `json:"surge_power_watts"`
	EfficiencyPercent float64 `json:"efficiency_percent"`
	PowerFactor       float64 `json:"power_factor"`
}

// ApplianceEntry is one line item of the load ledger.
// Units:
// - RatedPowerWatts, SurgePowerWatts: W
// - PowerFactor: (0,1]
// - EfficiencyPercent: (0,100]
// - UsageHours: hours per day
type ApplianceEntry struct {
	Name              string  `json:"name"`
	RatedPowerWatts   float64 `json:"rated_power_watts"`
	PowerFactor       float64 `json:"power_factor"`
	EfficiencyPercent float64 `json:"efficiency_percent"`
	SurgePowerWatts   float64 `json:"surge_power_watts"`
	UsageHours        float64 `json:"usage_hours"`
	Count             int     `json:"count"`
}

// ConsumptionKWh is the daily energy drawn by the entry.
func (e ApplianceEntry) ConsumptionKWh() float64 {
	return e.consumption().InexactFloat64()
}

// consumption is rated * hours * count * pf * eff/100 / 1000, in exact decimal.
func (e ApplianceEntry) consumption() decimal.Decimal {
	return decimal.NewFromFloat(e.RatedPowerWatts).
		Mul(decimal.NewFromFloat(e.UsageHours)).
		Mul(decimal.NewFromInt(int64(e.Count))).
		Mul(decimal.NewFromFloat(e.PowerFactor)).
		Mul(decimal.NewFromFloat(e.EfficiencyPercent)).
		Div(decimal.NewFromInt(100_000))
}

// Validate checks every field against the ranges the sizing math relies on.
func (e ApplianceEntry) Validate() error {
	if !finite(e.RatedPowerWatts) || e.RatedPowerWatts <= 0 {
		return invalid("rated_power", "must be > 0")
	}
	if !finite(e.PowerFactor) || e.PowerFactor <= 0 || e.PowerFactor > 1 {
		return invalid("power_factor", "must be in (0, 1]")
	}
	if !finite(e.EfficiencyPercent) || e.EfficiencyPercent <= 0 || e.EfficiencyPercent > 100 {
		return invalid("efficiency", "must be in (0, 100]")
	}
	if !finite(e.SurgePowerWatts) || e.SurgePowerWatts < e.RatedPowerWatts {
		return invalid("surge_power", "must be >= rated power")
	}
	if !finite(e.UsageHours) || e.UsageHours <= 0 || e.UsageHours > MaxUsageHours {
		return invalid("usage_hours", "must be in (0, %g]", MaxUsageHours)
	}
	if e.Count < 1 {
		return invalid("count", "must be >= 1")
	}
	return nil
}

// ApplyDefaults fills surge, efficiency and power factor for an appliance that
// has no reference record.
func (e *ApplianceEntry) ApplyDefaults() {
	e.SurgePowerWatts = e.RatedPowerWatts
	e.EfficiencyPercent = DefaultEfficiencyPercent
	e.PowerFactor = DefaultPowerFactor
}

// ApplySpec copies the reference characteristics of an appliance onto the entry.
// Rated power is left alone; it is always the user's choice.
func (e *ApplianceEntry) ApplySpec(s ApplianceSpec) {
	e.SurgePowerWatts = s.SurgePowerWatts
	e.EfficiencyPercent = s.EfficiencyPercent
	e.PowerFactor = s.PowerFactor
	if e.EfficiencyPercent <= 0 {
		e.EfficiencyPercent = DefaultEfficiencyPercent
	}
	if e.PowerFactor <= 0 {
		e.PowerFactor = DefaultPowerFactor
	}
	e.ClampSurge()
}

// ClampSurge keeps surge power at or above rated power.
func (e *ApplianceEntry) ClampSurge() {
	if e.SurgePowerWatts < e.RatedPowerWatts {
		e.SurgePowerWatts = e.RatedPowerWatts
	}
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
