package catalog

import "solar-sizer/internal/model"

// Cable describes one conductor cross-section.
type Cable struct {
	SizeMM2      float64 `json:"size_mm2" yaml:"size_mm2"`
	AmpacityA    float64 `json:"ampacity_a" yaml:"ampacity_a"`
	OhmsPerMeter float64 `json:"ohms_per_meter,omitempty" yaml:"ohms_per_meter"`
	AWG          string  `json:"awg,omitempty" yaml:"awg"`
}

// CableSelection is the outcome of an ampacity lookup.
// On overflow Cable is the largest size in the catalog.
type CableSelection struct {
	Required float64 `json:"required"`
	Cable    Cable   `json:"cable"`
	Exceeded bool    `json:"exceeded"`
}

// CableCatalog is the ordered list of cable sizes plus the tables keyed by size.
// The ampacity table, not the cross-section, decides what a cable can carry.
type CableCatalog struct {
	Sizes      []float64
	Ampacity   map[float64]float64
	Resistance map[float64]float64
	AWG        map[float64]string
}

// NewCableCatalog indexes a list of cables in the order given.
func NewCableCatalog(cables []Cable) CableCatalog {
	c := CableCatalog{
		Sizes:      make([]float64, 0, len(cables)),
		Ampacity:   make(map[float64]float64, len(cables)),
		Resistance: make(map[float64]float64, len(cables)),
		AWG:        make(map[float64]string, len(cables)),
	}
	for _, cb := range cables {
		c.Sizes = append(c.Sizes, cb.SizeMM2)
		c.Ampacity[cb.SizeMM2] = cb.AmpacityA
		if cb.OhmsPerMeter > 0 {
			c.Resistance[cb.SizeMM2] = cb.OhmsPerMeter
		}
		if cb.AWG != "" {
			c.AWG[cb.SizeMM2] = cb.AWG
		}
	}
	return c
}

// SelectByAmpacity returns the first size (in catalog order) whose rated
// ampacity is >= required. Sizes without an ampacity entry are never chosen.
// When nothing is large enough the selection is flagged Exceeded and carries
// the largest size.
func SelectByAmpacity(required float64, sizes []float64, ampacity map[float64]float64) CableSelection {
	for _, s := range sizes {
		a, ok := ampacity[s]
		if !ok {
			continue
		}
		if required <= a {
			return CableSelection{Required: required, Cable: Cable{SizeMM2: s, AmpacityA: a}}
		}
	}
	sel := CableSelection{Required: required, Exceeded: true}
	if len(sizes) > 0 {
		largest := sizes[len(sizes)-1]
		sel.Cable = Cable{SizeMM2: largest, AmpacityA: ampacity[largest]}
	}
	return sel
}

// Select runs SelectByAmpacity and fills in resistance and AWG for the chosen size.
func (c CableCatalog) Select(required float64) CableSelection {
	sel := SelectByAmpacity(required, c.Sizes, c.Ampacity)
	sel.Cable.OhmsPerMeter = c.Resistance[sel.Cable.SizeMM2]
	sel.Cable.AWG = c.AWG[sel.Cable.SizeMM2]
	return sel
}

// Cables lists the catalog back in order.
func (c CableCatalog) Cables() []Cable {
	out := make([]Cable, 0, len(c.Sizes))
	for _, s := range c.Sizes {
		out = append(out, Cable{
			SizeMM2:      s,
			AmpacityA:    c.Ampacity[s],
			OhmsPerMeter: c.Resistance[s],
			AWG:          c.AWG[s],
		})
	}
	return out
}

// Validate requires a non-empty ascending size list with a positive ampacity
// for every size.
func (c CableCatalog) Validate() error {
	if len(c.Sizes) == 0 {
		return &model.ConfigurationError{Field: "cables", Message: "catalog is empty"}
	}
	for _, s := range c.Sizes {
		if c.Ampacity[s] <= 0 {
			return &model.ConfigurationError{Field: "cables", Message: "every cable needs a positive ampacity rating"}
		}
	}
	return ascending("cables", c.Sizes)
}

func (s CableSelection) String() string {
	if s.Exceeded {
		return "> " + formatSize(s.Cable.SizeMM2)
	}
	return formatSize(s.Cable.SizeMM2)
}
