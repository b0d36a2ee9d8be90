package catalog

import "fmt"

// Set bundles every catalog the sizing engine consults.
type Set struct {
	Inverters      Catalog
	MPPT           Catalog
	SCC            Catalog
	DCBreakers     Catalog
	ACBreakers     Catalog
	Balancers      Catalog
	Fuses          Catalog
	SystemVoltages Catalog
	PanelSizes     Catalog
	Cables         CableCatalog
}

// Catalogs lists the plain numeric catalogs in a stable order.
func (s *Set) Catalogs() []Catalog {
	return []Catalog{
		s.Inverters, s.MPPT, s.SCC, s.DCBreakers, s.ACBreakers,
		s.Balancers, s.Fuses, s.SystemVoltages, s.PanelSizes,
	}
}

// Validate checks every catalog in the set and returns the first error.
func (s *Set) Validate() error {
	for _, c := range s.Catalogs() {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	if err := s.Cables.Validate(); err != nil {
		return fmt.Errorf("cable catalog: %w", err)
	}
	return nil
}

// Default returns the built-in catalogs, based on sizes commonly available
// for residential and small commercial off-grid systems.
func Default() *Set {
	return &Set{
		Inverters: Catalog{Name: "inverters", Unit: "W", Sizes: []float64{
			100, 125, 150, 200, 250, 300, 350, 400, 500, 600, 750, 1000, 1500, 2000, 2500, 3000,
			4000, 5000, 6000, 8000, 10000, 15000, 20000, 25000, 30000, 40000, 50000, 60000,
		}},
		MPPT: Catalog{Name: "mppt", Unit: "A", Sizes: []float64{
			10, 15, 20, 25, 30, 40, 50, 60, 80, 100, 120, 150, 200, 250, 300, 400, 500, 600,
		}},
		SCC: Catalog{Name: "scc", Unit: "A", Sizes: []float64{
			10, 15, 20, 25, 30, 40, 50, 60, 80, 100, 120, 150, 200, 250, 300, 400, 500,
		}},
		DCBreakers: Catalog{Name: "dc_breakers", Unit: "A", Sizes: []float64{
			10, 16, 20, 25, 30, 32, 40, 50, 60, 80, 100, 120, 150, 200, 250, 300, 400, 500,
		}},
		ACBreakers: Catalog{Name: "ac_breakers", Unit: "A", Sizes: []float64{
			10, 15, 16, 20, 25, 30, 32, 40, 50, 60, 70, 80, 100, 120, 150, 200, 250, 300, 400, 500,
		}},
		Balancers: Catalog{Name: "balancers", Unit: "A", Sizes: []float64{
			5, 10, 15, 20, 25, 30, 40, 50, 60, 80, 100, 120, 150, 200,
		}},
		Fuses: Catalog{Name: "fuses", Unit: "A", Sizes: []float64{
			5, 7.5, 10, 15, 20, 25, 30, 40, 50, 60, 80, 100, 120, 150, 200,
		}},
		SystemVoltages: Catalog{Name: "system_voltages", Unit: "V", Sizes: []float64{
			3, 5, 7, 9, 12, 24, 36, 48, 60, 72, 84, 96, 108,
		}},
		PanelSizes: Catalog{Name: "panel_sizes", Unit: "W", Sizes: []float64{
			10, 20, 40, 70, 100, 150, 200, 250, 300, 350, 400, 450, 500, 550, 600,
		}},
		Cables: NewCableCatalog(DefaultCables()),
	}
}

// DefaultCables is the copper conductor table: ampacity depends on installation
// conditions, resistance on temperature and construction.
func DefaultCables() []Cable {
	return []Cable{
		{SizeMM2: 1.5, AmpacityA: 14, OhmsPerMeter: 0.0121, AWG: "16"},
		{SizeMM2: 2.5, AmpacityA: 20, OhmsPerMeter: 0.0077, AWG: "14"},
		{SizeMM2: 4, AmpacityA: 26, OhmsPerMeter: 0.0048, AWG: "12"},
		{SizeMM2: 6, AmpacityA: 32, OhmsPerMeter: 0.0032, AWG: "10"},
		{SizeMM2: 10, AmpacityA: 44, OhmsPerMeter: 0.0019, AWG: "8"},
		{SizeMM2: 16, AmpacityA: 55, OhmsPerMeter: 0.0012, AWG: "6"},
		{SizeMM2: 25, AmpacityA: 70, OhmsPerMeter: 0.00077, AWG: "4"},
		{SizeMM2: 35, AmpacityA: 85, OhmsPerMeter: 0.00055, AWG: "2"},
		{SizeMM2: 50, AmpacityA: 100, OhmsPerMeter: 0.00039, AWG: "1"},
		{SizeMM2: 70, AmpacityA: 125, OhmsPerMeter: 0.00028, AWG: "0"},
		{SizeMM2: 95, AmpacityA: 150, OhmsPerMeter: 0.00023, AWG: "00"},
		{SizeMM2: 120, AmpacityA: 170, OhmsPerMeter: 0.00019, AWG: "000"},
		{SizeMM2: 150, AmpacityA: 200, OhmsPerMeter: 0.00016, AWG: "0000"},
		{SizeMM2: 185, AmpacityA: 230, OhmsPerMeter: 0.00013},
		{SizeMM2: 240, AmpacityA: 300, OhmsPerMeter: 0.00010},
		{SizeMM2: 300, AmpacityA: 350, OhmsPerMeter: 0.00008},
		{SizeMM2: 400, AmpacityA: 400, OhmsPerMeter: 0.00006},
		{SizeMM2: 500, AmpacityA: 500, OhmsPerMeter: 0.00005},
		{SizeMM2: 600, AmpacityA: 600, OhmsPerMeter: 0.00004},
		{SizeMM2: 750, AmpacityA: 700, OhmsPerMeter: 0.000035},
		{SizeMM2: 900, AmpacityA: 800, OhmsPerMeter: 0.000030},
		{SizeMM2: 1200, AmpacityA: 1000, OhmsPerMeter: 0.000024},
	}
}
