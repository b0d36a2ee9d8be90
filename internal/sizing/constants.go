package sizing

import (
	"fmt"

	"solar-sizer/internal/model"
)

// Constants are the engineering factors applied at each sizing step.
// Margins are multipliers (1.25 = 25% headroom).
type Constants struct {
	SunHours         float64 `yaml:"sun_hours" json:"sun_hours"`
	BatteryMargin    float64 `yaml:"battery_margin" json:"battery_margin"`
	InverterMargin   float64 `yaml:"inverter_margin" json:"inverter_margin"`
	PVMargin         float64 `yaml:"pv_margin" json:"pv_margin"`
	PerformanceRatio float64 `yaml:"performance_ratio" json:"performance_ratio"`
	ACVoltage        float64 `yaml:"ac_voltage" json:"ac_voltage"`
	DCBreakerMargin  float64 `yaml:"dc_breaker_margin" json:"dc_breaker_margin"`
	ACBreakerMargin  float64 `yaml:"ac_breaker_margin" json:"ac_breaker_margin"`
	// CableMargin 1.0 sizes the cable for the bare inverter DC current.
	CableMargin      float64 `yaml:"cable_margin" json:"cable_margin"`
	FuseMargin       float64 `yaml:"fuse_margin" json:"fuse_margin"`
	BalancerFraction float64 `yaml:"balancer_fraction" json:"balancer_fraction"`
	MinBalancerAmps  float64 `yaml:"min_balancer_amps" json:"min_balancer_amps"`
}

// DefaultConstants returns the factors used when no config overrides them.
func DefaultConstants() Constants {
	return Constants{
		SunHours:         5.5,
		BatteryMargin:    1.20,
		InverterMargin:   1.25,
		PVMargin:         1.20,
		PerformanceRatio: 0.80,
		ACVoltage:        230,
		DCBreakerMargin:  1.20,
		ACBreakerMargin:  1.25,
		CableMargin:      1.25,
		FuseMargin:       1.25,
		BalancerFraction: 0.05,
		MinBalancerAmps:  5,
	}
}

// Validate rejects factors that would zero out or divide by zero.
func (c Constants) Validate() error {
	positive := []struct {
		name string
		v    float64
	}{
		{"sun_hours", c.SunHours},
		{"battery_margin", c.BatteryMargin},
		{"inverter_margin", c.InverterMargin},
		{"pv_margin", c.PVMargin},
		{"performance_ratio", c.PerformanceRatio},
		{"ac_voltage", c.ACVoltage},
		{"dc_breaker_margin", c.DCBreakerMargin},
		{"ac_breaker_margin", c.ACBreakerMargin},
		{"cable_margin", c.CableMargin},
		{"fuse_margin", c.FuseMargin},
	}
	for _, p := range positive {
		if p.v <= 0 {
			return &model.ConfigurationError{Field: p.name, Message: fmt.Sprintf("must be > 0, got %g", p.v)}
		}
	}
	if c.PerformanceRatio > 1 {
		return &model.ConfigurationError{Field: "performance_ratio", Message: "must be <= 1"}
	}
	if c.BalancerFraction < 0 || c.MinBalancerAmps < 0 {
		return &model.ConfigurationError{Field: "balancer", Message: "fraction and minimum must be >= 0"}
	}
	return nil
}
