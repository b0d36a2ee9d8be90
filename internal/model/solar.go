package model

// SolarParameters is the user-chosen system configuration.
// Units:
// - SystemVoltage: V DC (one of the supported bus voltages)
// - DepthOfDischargePercent: 0..100
// - PanelSizeWatts: W per panel (one of the supported panel sizes)
type SolarParameters struct {
	SystemVoltage           float64 `json:"system_voltage" yaml:"system_voltage"`
	DepthOfDischargePercent float64 `json:"depth_of_discharge_percent" yaml:"depth_of_discharge_percent"`
	PanelSizeWatts          float64 `json:"panel_size_watts" yaml:"panel_size_watts"`
}

// DefaultSolarParameters are the values a new plan starts from.
func DefaultSolarParameters() SolarParameters {
	return SolarParameters{
		SystemVoltage:           12,
		DepthOfDischargePercent: 50,
		PanelSizeWatts:          100,
	}
}

// Validate checks the ranges that do not depend on a catalog.
// Zero voltage or depth of discharge is a ConfigurationError since the
// sizing math would divide by zero.
func (p SolarParameters) Validate() error {
	if !finite(p.SystemVoltage) || p.SystemVoltage <= 0 {
		return &ConfigurationError{Field: "system_voltage", Message: "must be > 0"}
	}
	if !finite(p.DepthOfDischargePercent) || p.DepthOfDischargePercent <= 0 {
		return &ConfigurationError{Field: "depth_of_discharge_percent", Message: "must be > 0"}
	}
	if p.DepthOfDischargePercent > 100 {
		return invalid("depth_of_discharge_percent", "must be <= 100")
	}
	if !finite(p.PanelSizeWatts) || p.PanelSizeWatts <= 0 {
		return invalid("panel_size_watts", "must be > 0")
	}
	return nil
}
