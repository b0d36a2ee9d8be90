package planner

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solar-sizer/internal/ledger"
	"solar-sizer/internal/model"
	"solar-sizer/internal/sizing"
)

func newPlan(t *testing.T) *Plan {
	t.Helper()
	engine, err := sizing.New(nil, sizing.DefaultConstants())
	require.NoError(t, err)
	p, err := NewPlan("cabin", engine, nil, model.SolarParameters{
		SystemVoltage: 24, DepthOfDischargePercent: 50, PanelSizeWatts: 300,
	})
	require.NoError(t, err)
	return p
}

func TestPlanLifecycle(t *testing.T) {
	p := newPlan(t)
	assert.True(t, p.Skipped())
	assert.Nil(t, p.Result())

	kwh, err := p.AddAppliance(ledger.Candidate{Name: "Radio", RatedPower: "100", UsageHours: "6", Count: "1"})
	require.NoError(t, err)
	assert.InDelta(t, 0.6, kwh, 1e-12)
	require.NotNil(t, p.Result())
	assert.False(t, p.Skipped())
	assert.Equal(t, p.Totals(), p.Result().Totals)

	_, err = p.AddAppliance(ledger.Candidate{Name: "Fridge", RatedPower: "700", UsageHours: "7.714285714285714", Count: "1"})
	require.NoError(t, err)
	assert.Equal(t, 1000.0, p.Result().Inverter.Value)

	require.NoError(t, p.UpdateAppliance(0, ledger.FieldRatedPower, "200"))
	assert.Equal(t, 900.0, p.Result().Totals.TotalWattage)

	require.NoError(t, p.RemoveAppliances([]int{0, 1}))
	assert.Nil(t, p.Result())
	assert.True(t, p.Skipped())
}

func TestPlanKeepsResultOnBadParameters(t *testing.T) {
	p := newPlan(t)
	_, err := p.AddAppliance(ledger.Candidate{Name: "Radio", RatedPower: "100", UsageHours: "6", Count: "1"})
	require.NoError(t, err)
	before := p.Result()
	params := p.Parameters()

	err = p.SetParameters(model.SolarParameters{SystemVoltage: 0, DepthOfDischargePercent: 50, PanelSizeWatts: 300})
	var cfgErr *model.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Same(t, before, p.Result())
	assert.Equal(t, params, p.Parameters())

	require.NoError(t, p.SetParameters(model.SolarParameters{SystemVoltage: 48, DepthOfDischargePercent: 80, PanelSizeWatts: 400}))
	assert.NotSame(t, before, p.Result())
	assert.Equal(t, 48.0, p.Result().Parameters.SystemVoltage)
}

func TestPlanRejectedEditsDoNotResize(t *testing.T) {
	p := newPlan(t)
	_, err := p.AddAppliance(ledger.Candidate{Name: "Radio", RatedPower: "100", UsageHours: "6", Count: "1"})
	require.NoError(t, err)
	before := p.Result()

	_, err = p.AddAppliance(ledger.Candidate{Name: "Radio", RatedPower: "x"})
	assert.Error(t, err)
	assert.ErrorIs(t, p.RemoveAppliances(nil), model.ErrEmptySelection)
	assert.Error(t, p.UpdateAppliance(0, ledger.FieldUsageHours, "-1"))
	assert.Same(t, before, p.Result())
}

func TestImportAppliances(t *testing.T) {
	p := newPlan(t)
	skipped, err := p.ImportAppliances([]model.ApplianceEntry{
		{Name: "Fan", RatedPowerWatts: 75, PowerFactor: 0.9, EfficiencyPercent: 85, SurgePowerWatts: 150, UsageHours: 8, Count: 2},
		{Name: "Bad", RatedPowerWatts: 0, Count: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, skipped)
	assert.Len(t, p.Entries(), 1)
	assert.NotNil(t, p.Result())
}

func TestStore(t *testing.T) {
	s := NewStore(time.Minute, nil)
	p := newPlan(t)
	s.Put(p)
	assert.Equal(t, 1, s.Len())

	called := false
	require.NoError(t, s.Do(p.ID, func(got *Plan) error {
		called = true
		assert.Same(t, p, got)
		return nil
	}))
	assert.True(t, called)

	boom := errors.New("boom")
	assert.ErrorIs(t, s.Do(p.ID, func(*Plan) error { return boom }), boom)

	assert.ErrorIs(t, s.Do(uuid.New(), func(*Plan) error { return nil }), ErrNotFound)

	assert.Equal(t, 0, s.sweep(time.Now()))
	assert.Equal(t, 1, s.sweep(time.Now().Add(2*time.Minute)))
	assert.ErrorIs(t, s.Do(p.ID, func(*Plan) error { return nil }), ErrNotFound)

	s.Put(p)
	require.NoError(t, s.Delete(p.ID))
	assert.ErrorIs(t, s.Delete(p.ID), ErrNotFound)
}
