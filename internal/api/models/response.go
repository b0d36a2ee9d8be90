package models

import (
	"time"

	"solar-sizer/internal/model"
	"solar-sizer/internal/sizing"
)

// PlanResponse is the full state of a plan.
type PlanResponse struct {
	ID         string                `json:"id"`
	Name       string                `json:"name,omitempty"`
	CreatedAt  time.Time             `json:"created_at"`
	UpdatedAt  time.Time             `json:"updated_at"`
	Parameters model.SolarParameters `json:"parameters"`
	Entries    []EntryRow            `json:"entries"`
	Totals     TotalsResponse        `json:"totals"`
	Sizing     *SizingResponse       `json:"sizing,omitempty"`
	Skipped    bool                  `json:"skipped"` // no load yet, so nothing was sized
}

// EntryRow is one ledger line in display order.
type EntryRow struct {
	Index             int     `json:"index"`
	Name              string  `json:"name"`
	RatedPowerWatts   float64 `json:"rated_power_w"`
	PowerFactor       float64 `json:"power_factor"`
	EfficiencyPercent float64 `json:"efficiency_percent"`
	SurgePowerWatts   float64 `json:"surge_power_w"`
	UsageHours        float64 `json:"usage_hours"`
	Count             int     `json:"count"`
	ConsumptionKWh    float64 `json:"consumption_kwh"`
}

// TotalsResponse carries the ledger totals plus the derived average.
type TotalsResponse struct {
	TotalWattage        float64 `json:"total_wattage"`
	TotalUsageHours     float64 `json:"total_usage_hours"`
	AverageUsageHours   float64 `json:"average_usage_hours"`
	ApplianceCount      int     `json:"appliance_count"`
	TotalConsumptionKWh float64 `json:"total_consumption_kwh"`
}

// SizingResponse is the sized generation set.
type SizingResponse struct {
	Parameters         model.SolarParameters `json:"parameters"`
	DailyConsumptionWh float64               `json:"daily_consumption_wh"`
	BatteryAh          float64               `json:"battery_ah"`
	BatteryBankWh      float64               `json:"battery_bank_wh"`

	PVCapacityRequiredWatts float64 `json:"pv_capacity_required_w"`
	PanelCount              int     `json:"panel_count"`
	TotalPVCapacityWatts    float64 `json:"total_pv_capacity_w"`
	PVCurrent               float64 `json:"pv_current_a"`
	InverterACCurrent       float64 `json:"inverter_ac_current_a"`
	InverterDCCurrent       float64 `json:"inverter_dc_current_a"`

	Cable      CableInfo      `json:"cable"`
	ACCable    CableInfo      `json:"ac_cable"`
	Components []ComponentRow `json:"components"`
	Overflows  []string       `json:"overflows,omitempty"`
}

// ComponentRow is one line of the bill of components.
type ComponentRow struct {
	Name     string  `json:"name"`
	Unit     string  `json:"unit"`
	Required float64 `json:"required"`
	Selected string  `json:"selected"` // "1000", or "> 60000" when the catalog is exceeded
	Exceeded bool    `json:"exceeded"`
}

// CableInfo details the selected cable.
type CableInfo struct {
	SizeMM2      float64 `json:"size_mm2"`
	AmpacityA    float64 `json:"ampacity_a"`
	OhmsPerMeter float64 `json:"ohms_per_meter,omitempty"`
	AWG          string  `json:"awg,omitempty"`
}

// SizingResultResponse answers the stateless POST /api/v1/sizing.
type SizingResultResponse struct {
	Entries []EntryRow      `json:"entries"`
	Totals  TotalsResponse  `json:"totals"`
	Sizing  *SizingResponse `json:"sizing,omitempty"`
	Skipped bool            `json:"skipped"`
}

// ImportResponse reports a load schedule upload.
type ImportResponse struct {
	Imported    int          `json:"imported"`
	SkippedRows int          `json:"skipped_rows"`
	Plan        PlanResponse `json:"plan"`
}

// AddApplianceResponse returns the new entry's consumption along with the plan.
type AddApplianceResponse struct {
	ConsumptionKWh float64      `json:"consumption_kwh"`
	Plan           PlanResponse `json:"plan"`
}

// CatalogInfo describes one component catalog.
type CatalogInfo struct {
	Name  string    `json:"name"`
	Unit  string    `json:"unit"`
	Sizes []float64 `json:"sizes"`
}

// CatalogsResponse lists the catalogs and constants the engine uses.
type CatalogsResponse struct {
	Catalogs  []CatalogInfo    `json:"catalogs"`
	Cables    []CableInfo      `json:"cables"`
	Constants sizing.Constants `json:"constants"`
}

// ApplianceInfo is one reference-table record.
type ApplianceInfo struct {
	Name              string  `json:"name"`
	RatedPowerWatts   float64 `json:"rated_power_w"`
	SurgePowerWatts   float64 `json:"surge_power_w"`
	EfficiencyPercent float64 `json:"efficiency_percent"`
	PowerFactor       float64 `json:"power_factor"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
