package model

import "github.com/shopspring/decimal"

// LedgerTotals aggregates every entry of a ledger.
type LedgerTotals struct {
	TotalWattage        float64 `json:"total_wattage"`
	TotalUsageHours     float64 `json:"total_usage_hours"`
	ApplianceCount      int     `json:"appliance_count"`
	TotalConsumptionKWh float64 `json:"total_consumption_kwh"`
}

// AverageUsageHours is the count-weighted mean daily usage, 0 for an empty ledger.
func (t LedgerTotals) AverageUsageHours() float64 {
	if t.ApplianceCount == 0 {
		return 0
	}
	return t.TotalUsageHours / float64(t.ApplianceCount)
}

// HasLoad reports whether there is anything to size.
func (t LedgerTotals) HasLoad() bool {
	return t.TotalConsumptionKWh > 0 && t.TotalWattage > 0
}

// SumEntries computes totals from scratch. Entries that fail validation are
// excluded. Sums are exact, so the result does not depend on entry order.
func SumEntries(entries []ApplianceEntry) LedgerTotals {
	var watts, hours, kwh decimal.Decimal
	count := 0
	for _, e := range entries {
		if e.Validate() != nil {
			continue
		}
		n := decimal.NewFromInt(int64(e.Count))
		watts = watts.Add(decimal.NewFromFloat(e.RatedPowerWatts).Mul(n))
		hours = hours.Add(decimal.NewFromFloat(e.UsageHours).Mul(n))
		kwh = kwh.Add(e.consumption())
		count += e.Count
	}
	return LedgerTotals{
		TotalWattage:        watts.InexactFloat64(),
		TotalUsageHours:     hours.InexactFloat64(),
		ApplianceCount:      count,
		TotalConsumptionKWh: kwh.InexactFloat64(),
	}
}
