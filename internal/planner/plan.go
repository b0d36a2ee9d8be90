// Package planner ties one ledger, its solar parameters and the sizing engine
// together, and keeps the last result that was successfully computed.
package planner

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"solar-sizer/internal/ledger"
	"solar-sizer/internal/model"
	"solar-sizer/internal/sizing"
)

// Plan is one user's load schedule plus generation-set sizing.
// A Plan is not safe for concurrent use; Store serializes access.
type Plan struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time

	ledger *ledger.Ledger
	engine *sizing.Engine
	params model.SolarParameters

	result  *sizing.Result
	skipped bool
}

// NewPlan creates an empty plan. params must pass engine.CheckParameters.
func NewPlan(name string, engine *sizing.Engine, ref ledger.Reference, params model.SolarParameters) (*Plan, error) {
	if err := engine.CheckParameters(params); err != nil {
		return nil, err
	}
	now := time.Now()
	p := &Plan{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
		ledger:    ledger.New(ref),
		engine:    engine,
		params:    params,
	}
	if err := p.resize(); err != nil {
		return nil, err
	}
	return p, nil
}

// AddAppliance adds an entry and resizes. It returns the entry's consumption.
func (p *Plan) AddAppliance(c ledger.Candidate) (float64, error) {
	_, kwh, err := p.ledger.AddEntry(c)
	if err != nil {
		return 0, err
	}
	return kwh, p.touch()
}

// ImportAppliances appends saved entries, skipping invalid ones, and resizes once.
func (p *Plan) ImportAppliances(entries []model.ApplianceEntry) (int, error) {
	skipped := 0
	for _, e := range entries {
		if _, err := p.ledger.Append(e); err != nil {
			skipped++
		}
	}
	return skipped, p.touch()
}

func (p *Plan) UpdateAppliance(index int, field ledger.Field, value string) error {
	if _, err := p.ledger.UpdateEntry(index, field, value); err != nil {
		return err
	}
	return p.touch()
}

func (p *Plan) RemoveAppliances(indices []int) error {
	if _, err := p.ledger.RemoveEntries(indices); err != nil {
		return err
	}
	return p.touch()
}

// SetParameters replaces the solar parameters. Invalid parameters are rejected
// and the previously published result is kept as it was.
func (p *Plan) SetParameters(params model.SolarParameters) error {
	if err := p.engine.CheckParameters(params); err != nil {
		return err
	}
	p.params = params
	return p.touch()
}

func (p *Plan) Parameters() model.SolarParameters { return p.params }

func (p *Plan) Totals() model.LedgerTotals { return p.ledger.Totals() }

func (p *Plan) Entries() []model.ApplianceEntry { return p.ledger.Entries() }

// Result returns the last computed sizing. It is nil when the ledger has no
// load yet, in which case Skipped reports true.
func (p *Plan) Result() *sizing.Result { return p.result }

func (p *Plan) Skipped() bool { return p.skipped }

func (p *Plan) touch() error {
	p.UpdatedAt = time.Now()
	return p.resize()
}

func (p *Plan) resize() error {
	res, err := p.engine.Compute(p.ledger.Totals(), p.params)
	switch {
	case errors.Is(err, model.ErrComputationSkipped):
		p.result = nil
		p.skipped = true
		return nil
	case err != nil:
		return err
	}
	p.result = res
	p.skipped = false
	return nil
}
