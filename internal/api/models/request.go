package models

// ApplianceInput is one appliance line as typed by the user.
// Usage hours and count are optional and fall back to 6 h and 1.
type ApplianceInput struct {
	Name       string   `json:"name"`
	RatedPower float64  `json:"rated_power"`
	UsageHours *float64 `json:"usage_hours,omitempty"`
	Count      *float64 `json:"count,omitempty"`
}

// ParametersInput holds the solar parameters. Omitted fields keep their
// current (or default) value.
type ParametersInput struct {
	SystemVoltage           float64 `json:"system_voltage,omitempty"`
	DepthOfDischargePercent float64 `json:"depth_of_discharge_percent,omitempty"`
	PanelSizeWatts          float64 `json:"panel_size_watts,omitempty"`
}

// SizingRequest is the body of the stateless POST /api/v1/sizing.
type SizingRequest struct {
	Appliances []ApplianceInput `json:"appliances" binding:"required"`
	Parameters ParametersInput  `json:"parameters,omitempty"`
}

// CreatePlanRequest is the body of POST /api/v1/plans. Every field is optional.
type CreatePlanRequest struct {
	Name       string           `json:"name,omitempty"`
	Parameters ParametersInput  `json:"parameters,omitempty"`
	Appliances []ApplianceInput `json:"appliances,omitempty"`
}

// UpdateApplianceRequest edits one field of one entry.
type UpdateApplianceRequest struct {
	Field string `json:"field" binding:"required"` // "name", "rated_power", "usage_hours"
	Value string `json:"value"`
}

// RemoveAppliancesRequest selects entries by index.
type RemoveAppliancesRequest struct {
	Indices []int `json:"indices"`
}

// SearchAppliancesRequest is the query of GET /api/v1/appliances.
type SearchAppliancesRequest struct {
	Prefix string `form:"prefix"`
}
