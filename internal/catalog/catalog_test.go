package catalog

import (
	"errors"
	"testing"

	"solar-sizer/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectCeiling(t *testing.T) {
	sizes := []float64{500, 750, 1000, 1500, 2000}

	t.Run("exact match", func(t *testing.T) {
		sel := SelectCeiling(1000, sizes)
		assert.False(t, sel.Exceeded)
		assert.Equal(t, 1000.0, sel.Value)
		assert.Equal(t, 1000.0, sel.Required)
	})

	t.Run("rounds up to next size", func(t *testing.T) {
		sel := SelectCeiling(1000.01, sizes)
		assert.False(t, sel.Exceeded)
		assert.Equal(t, 1500.0, sel.Value)
	})

	t.Run("zero picks the minimum", func(t *testing.T) {
		sel := SelectCeiling(0, sizes)
		assert.False(t, sel.Exceeded)
		assert.Equal(t, 500.0, sel.Value)
	})

	t.Run("overflow carries max", func(t *testing.T) {
		sel := SelectCeiling(2500, sizes)
		assert.True(t, sel.Exceeded)
		assert.Equal(t, 2000.0, sel.Value)
		assert.Equal(t, 2500.0, sel.Effective())
		assert.Equal(t, "> 2000", sel.String())
	})

	t.Run("empty catalog overflows", func(t *testing.T) {
		sel := SelectCeiling(1, nil)
		assert.True(t, sel.Exceeded)
		assert.Equal(t, 0.0, sel.Value)
	})
}

func TestSelectCeilingMonotonic(t *testing.T) {
	sizes := Default().Inverters.Sizes
	prev := SelectCeiling(0, sizes)
	for req := 0.0; req <= 70000; req += 37.5 {
		sel := SelectCeiling(req, sizes)
		if prev.Exceeded {
			assert.True(t, sel.Exceeded, "required=%v", req)
		} else if !sel.Exceeded {
			assert.GreaterOrEqual(t, sel.Value, prev.Value, "required=%v", req)
		}
		if !sel.Exceeded {
			assert.GreaterOrEqual(t, sel.Value, req)
		}
		prev = sel
	}
}

func TestSelectCeilingSmallest(t *testing.T) {
	sizes := Default().DCBreakers.Sizes
	for _, req := range []float64{1, 10, 10.5, 31, 32, 33, 499, 500} {
		sel := SelectCeiling(req, sizes)
		require.False(t, sel.Exceeded)
		for _, s := range sizes {
			if s >= req {
				assert.Equal(t, s, sel.Value, "required=%v", req)
				break
			}
		}
	}
}

func TestSelectByAmpacity(t *testing.T) {
	cables := NewCableCatalog(DefaultCables())

	t.Run("first cable that carries the current", func(t *testing.T) {
		sel := cables.Select(30)
		assert.False(t, sel.Exceeded)
		assert.Equal(t, 6.0, sel.Cable.SizeMM2)
		assert.Equal(t, 32.0, sel.Cable.AmpacityA)
		assert.Equal(t, 0.0032, sel.Cable.OhmsPerMeter)
		assert.Equal(t, "10", sel.Cable.AWG)
	})

	t.Run("exact ampacity", func(t *testing.T) {
		sel := cables.Select(100)
		assert.Equal(t, 50.0, sel.Cable.SizeMM2)
	})

	t.Run("overflow carries largest", func(t *testing.T) {
		sel := cables.Select(1500)
		assert.True(t, sel.Exceeded)
		assert.Equal(t, 1200.0, sel.Cable.SizeMM2)
		assert.Equal(t, "> 1200", sel.String())
	})

	t.Run("ampacity table is the authority", func(t *testing.T) {
		sizes := []float64{4, 6, 10}
		amp := map[float64]float64{4: 40, 6: 30, 10: 60}
		sel := SelectByAmpacity(35, sizes, amp)
		assert.Equal(t, 4.0, sel.Cable.SizeMM2)

		sel = SelectByAmpacity(45, sizes, amp)
		assert.Equal(t, 10.0, sel.Cable.SizeMM2)
	})

	t.Run("sizes without a rating are skipped", func(t *testing.T) {
		sel := SelectByAmpacity(5, []float64{1.5, 2.5}, map[float64]float64{2.5: 20})
		assert.False(t, sel.Exceeded)
		assert.Equal(t, 2.5, sel.Cable.SizeMM2)
	})
}

func TestValidate(t *testing.T) {
	require.NoError(t, Default().Validate())

	err := Catalog{Name: "fuses", Sizes: []float64{5, 10, 10}}.Validate()
	var cfgErr *model.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "fuses", cfgErr.Field)

	err = Catalog{Name: "mppt"}.Validate()
	assert.True(t, errors.As(err, &cfgErr))

	err = NewCableCatalog([]Cable{{SizeMM2: 1.5}}).Validate()
	assert.True(t, errors.As(err, &cfgErr))
}

func TestCablesRoundTrip(t *testing.T) {
	in := DefaultCables()
	assert.Equal(t, in, NewCableCatalog(in).Cables())
}
