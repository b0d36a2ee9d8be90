// Package sizing turns ledger totals and solar parameters into a bill of
// generation-set components.
package sizing

import (
	"fmt"
	"math"

	"solar-sizer/internal/catalog"
	"solar-sizer/internal/model"
)

// maxPanels bounds the panel count so it always fits an int.
const maxPanels = math.MaxInt32

// Engine is stateless apart from its catalogs and constants, which it never mutates.
type Engine struct {
	catalogs  *catalog.Set
	constants Constants
}

// New returns an engine over the given catalogs. A nil set uses catalog.Default().
func New(set *catalog.Set, constants Constants) (*Engine, error) {
	if set == nil {
		set = catalog.Default()
	}
	if err := set.Validate(); err != nil {
		return nil, err
	}
	if err := constants.Validate(); err != nil {
		return nil, err
	}
	return &Engine{catalogs: set, constants: constants}, nil
}

func (e *Engine) Catalogs() *catalog.Set { return e.catalogs }

func (e *Engine) Constants() Constants { return e.constants }

// CheckParameters validates params against the supported voltages and panel sizes.
func (e *Engine) CheckParameters(p model.SolarParameters) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if !e.catalogs.SystemVoltages.Contains(p.SystemVoltage) {
		return &model.ValidationError{
			Field:   "system_voltage",
			Message: fmt.Sprintf("%g V is not a supported system voltage", p.SystemVoltage),
		}
	}
	if !e.catalogs.PanelSizes.Contains(p.PanelSizeWatts) {
		return &model.ValidationError{
			Field:   "panel_size_watts",
			Message: fmt.Sprintf("%g W is not a supported panel size", p.PanelSizeWatts),
		}
	}
	return nil
}

// Compute sizes every component. Each step feeds the next:
// daily energy -> battery, peak load -> inverter, daily energy -> PV array ->
// PV current -> charge controllers and DC breaker, inverter -> AC breaker,
// DC and AC cables and fuse, battery -> balancer.
//
// It returns model.ErrComputationSkipped when there is no load, and a
// ValidationError or ConfigurationError for unusable parameters.
func (e *Engine) Compute(totals model.LedgerTotals, p model.SolarParameters) (*Result, error) {
	if err := e.CheckParameters(p); err != nil {
		return nil, err
	}
	if !totals.HasLoad() {
		return nil, model.ErrComputationSkipped
	}
	k := e.constants
	cat := e.catalogs

	dailyWh := totals.TotalConsumptionKWh * 1000
	batteryAh := dailyWh * k.BatteryMargin / (p.SystemVoltage * p.DepthOfDischargePercent / 100)

	inverter := cat.Inverters.Select(totals.TotalWattage * k.InverterMargin)

	pvRequired := dailyWh * k.PVMargin / (k.SunHours * k.PerformanceRatio)
	count := math.Ceil(pvRequired / p.PanelSizeWatts)
	if math.IsNaN(count) || math.IsInf(count, 0) || count > maxPanels {
		return nil, &model.ConfigurationError{
			Field:   "pv_array",
			Message: fmt.Sprintf("%g W of PV cannot be built from %g W panels", pvRequired, p.PanelSizeWatts),
		}
	}
	panels := int(count)

	pvCurrent := float64(panels) * (p.PanelSizeWatts / p.SystemVoltage)

	inverterW := inverter.Effective()
	acCurrent := inverterW / k.ACVoltage
	dcCurrent := inverterW / p.SystemVoltage

	return &Result{
		Totals:     totals,
		Parameters: p,

		DailyConsumptionWh: dailyWh,
		BatteryAh:          batteryAh,
		BatteryBankWh:      batteryAh * p.SystemVoltage,

		Inverter: inverter,

		PVCapacityRequiredWatts: pvRequired,
		PanelCount:              panels,
		TotalPVCapacityWatts:    float64(panels) * p.PanelSizeWatts,
		PVCurrent:               pvCurrent,

		MPPT:      cat.MPPT.Select(pvCurrent),
		SCC:       cat.SCC.Select(pvCurrent),
		DCBreaker: cat.DCBreakers.Select(pvCurrent * k.DCBreakerMargin),

		InverterACCurrent: acCurrent,
		ACBreaker:         cat.ACBreakers.Select(acCurrent * k.ACBreakerMargin),

		InverterDCCurrent: dcCurrent,
		Cable:             cat.Cables.Select(dcCurrent * k.CableMargin),
		ACCable:           cat.Cables.Select(acCurrent * k.CableMargin),

		Balancer: cat.Balancers.Select(math.Max(batteryAh*k.BalancerFraction, k.MinBalancerAmps)),
		Fuse:     cat.Fuses.Select(dcCurrent * k.FuseMargin),
	}, nil
}
