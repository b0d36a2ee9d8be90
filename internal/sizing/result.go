package sizing

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"solar-sizer/internal/catalog"
	"solar-sizer/internal/model"
)

// Result is the sized bill of components. Every catalog pick carries the raw
// requirement that drove it.
type Result struct {
	Totals     model.LedgerTotals
	Parameters model.SolarParameters

	DailyConsumptionWh float64
	BatteryAh          float64
	BatteryBankWh      float64

	Inverter catalog.Selection

	PVCapacityRequiredWatts float64
	PanelCount              int
	TotalPVCapacityWatts    float64
	PVCurrent               float64

	MPPT      catalog.Selection
	SCC       catalog.Selection
	DCBreaker catalog.Selection

	InverterACCurrent float64
	ACBreaker         catalog.Selection

	InverterDCCurrent float64

	// Cable runs between battery bank and inverter, ACCable from the inverter to the loads.
	Cable   catalog.CableSelection
	ACCable catalog.CableSelection

	Balancer catalog.Selection
	Fuse     catalog.Selection
}

// Component is one row of the bill, for display and export.
type Component struct {
	Name     string
	Unit     string
	Required float64
	Selected string
	Exceeded bool
}

// Components lists the result in display order.
func (r *Result) Components() []Component {
	sel := func(name, unit string, s catalog.Selection) Component {
		return Component{Name: name, Unit: unit, Required: s.Required, Selected: s.String(), Exceeded: s.Exceeded}
	}
	cable := func(name string, s catalog.CableSelection) Component {
		return Component{Name: name, Unit: "mm2", Required: s.Required, Selected: s.String(), Exceeded: s.Exceeded}
	}
	return []Component{
		{Name: "battery", Unit: "Ah", Required: r.BatteryAh, Selected: strconv.FormatFloat(r.BatteryAh, 'f', 1, 64)},
		sel("inverter", "W", r.Inverter),
		{
			Name:     "pv_array",
			Unit:     "W",
			Required: r.PVCapacityRequiredWatts,
			Selected: strconv.Itoa(r.PanelCount) + " x " + strconv.FormatFloat(r.Parameters.PanelSizeWatts, 'f', -1, 64),
		},
		sel("mppt", "A", r.MPPT),
		sel("scc", "A", r.SCC),
		sel("dc_breaker", "A", r.DCBreaker),
		sel("ac_breaker", "A", r.ACBreaker),
		cable("dc_cable", r.Cable),
		cable("ac_cable", r.ACCable),
		sel("balancer", "A", r.Balancer),
		sel("fuse", "A", r.Fuse),
	}
}

// Overflows names the components whose requirement exceeded their catalog.
func (r *Result) Overflows() []string {
	var out []string
	for _, c := range r.Components() {
		if c.Exceeded {
			out = append(out, c.Name)
		}
	}
	return out
}

// WriteResultCSV writes one row per component.
func WriteResultCSV(path string, r *Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return EncodeCSV(f, r)
}

func EncodeCSV(out io.Writer, r *Result) error {
	w := csv.NewWriter(out)
	if err := w.Write([]string{"component", "unit", "required", "selected", "exceeds_catalog"}); err != nil {
		return err
	}
	for _, c := range r.Components() {
		row := []string{
			c.Name,
			c.Unit,
			fmtFloat(c.Required),
			c.Selected,
			strconv.FormatBool(c.Exceeded),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
