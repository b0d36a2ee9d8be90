package main

import (
	"errors"
	"fmt"

	"solar-sizer/internal/config"
	"solar-sizer/internal/ledger"
	"solar-sizer/internal/model"
	"solar-sizer/internal/planner"
	"solar-sizer/internal/sizing"

	"github.com/spf13/pflag"
)

// Demo:
// - Build a small household load schedule
// - Size a generation set for it
// - Edit the schedule and change the system voltage to show every change re-sizes
func main() {
	cfgPath := pflag.String("config", "", "Path to YAML config (optional)")
	outCSV := pflag.StringP("out", "o", "", "Optional path to write the sized components as CSV")
	pflag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		if cfg, err = config.Load(*cfgPath); err != nil {
			panic(err)
		}
	}
	engine, err := cfg.Engine()
	if err != nil {
		panic(err)
	}
	table, err := cfg.Appliances()
	if err != nil {
		panic(err)
	}

	params := model.SolarParameters{SystemVoltage: 24, DepthOfDischargePercent: 50, PanelSizeWatts: 300}
	plan, err := planner.NewPlan("demo", engine, table, params)
	if err != nil {
		panic(err)
	}

	household := []ledger.Candidate{
		{Name: "Refrigerator", RatedPower: "150", UsageHours: "24"},
		{Name: "LED Bulb", RatedPower: "10", UsageHours: "5", Count: "6"},
		{Name: "Ceiling Fan", RatedPower: "75", UsageHours: "8", Count: "2"},
		{Name: "Television", RatedPower: "120", UsageHours: "4"},
		{Name: "Water Pump", RatedPower: "750", UsageHours: "1"},
	}
	for _, c := range household {
		kwh, err := plan.AddAppliance(c)
		if err != nil {
			panic(err)
		}
		fmt.Printf("%-14s %6s W x %-2s  %.4f kWh/day\n", c.Name, c.RatedPower, orOne(c.Count), kwh)
	}
	show(plan)

	fmt.Println("\n-- pump runs 3 h a day, system moved to 48 V --")
	if err := plan.UpdateAppliance(4, ledger.FieldUsageHours, "3"); err != nil {
		panic(err)
	}
	if err := plan.SetParameters(model.SolarParameters{SystemVoltage: 48, DepthOfDischargePercent: 50, PanelSizeWatts: 300}); err != nil {
		panic(err)
	}
	show(plan)

	// Unsupported voltages are rejected and the last result stays in place.
	err = plan.SetParameters(model.SolarParameters{SystemVoltage: 13, DepthOfDischargePercent: 50, PanelSizeWatts: 300})
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		fmt.Printf("\nrejected: %v (still sized for %g V)\n", verr, plan.Parameters().SystemVoltage)
	}

	if *outCSV != "" {
		if err := sizing.WriteResultCSV(*outCSV, plan.Result()); err != nil {
			panic(err)
		}
		fmt.Printf("\nwrote %s\n", *outCSV)
	}
}

func show(p *planner.Plan) {
	t := p.Totals()
	fmt.Printf("\ntotal %g W, %.3f kWh/day over %d appliances\n", t.TotalWattage, t.TotalConsumptionKWh, t.ApplianceCount)
	res := p.Result()
	if res == nil {
		fmt.Println("nothing to size")
		return
	}
	for _, c := range res.Components() {
		flag := ""
		if c.Exceeded {
			flag = "  (exceeds catalog)"
		}
		fmt.Printf("  %-11s %10s %s%s\n", c.Name, c.Selected, c.Unit, flag)
	}
	fmt.Printf("  dc cable %s mm2 for %.0f A, ac cable %s mm2 for %.1f A\n",
		res.Cable, res.InverterDCCurrent, res.ACCable, res.InverterACCurrent)
}

func orOne(s string) string {
	if s == "" {
		return "1"
	}
	return s
}
