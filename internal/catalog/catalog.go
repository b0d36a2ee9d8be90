// Package catalog holds the discrete standard sizes each component family is
// sold in, and the ceiling lookup every sizing step uses to pick a part.
package catalog

import (
	"fmt"
	"strconv"

	"solar-sizer/internal/model"
)

// Catalog is an ascending sequence of supported sizes for one component family.
type Catalog struct {
	Name  string
	Unit  string
	Sizes []float64
}

// Selection is the outcome of a ceiling lookup.
// When Exceeded is set, Value carries the catalog maximum and the requirement
// is larger than anything the catalog offers.
type Selection struct {
	Required float64 `json:"required"`
	Value    float64 `json:"value"`
	Exceeded bool    `json:"exceeded"`
}

// SelectCeiling returns the smallest size >= required. If required exceeds
// every size, the result is flagged Exceeded and carries the largest size.
// sizes must be ascending and non-empty.
func SelectCeiling(required float64, sizes []float64) Selection {
	for _, s := range sizes {
		if s >= required {
			return Selection{Required: required, Value: s}
		}
	}
	sel := Selection{Required: required, Exceeded: true}
	if len(sizes) > 0 {
		sel.Value = sizes[len(sizes)-1]
	}
	return sel
}

// Select is SelectCeiling over this catalog.
func (c Catalog) Select(required float64) Selection {
	return SelectCeiling(required, c.Sizes)
}

// Max returns the largest size, or 0 for an empty catalog.
func (c Catalog) Max() float64 {
	if len(c.Sizes) == 0 {
		return 0
	}
	return c.Sizes[len(c.Sizes)-1]
}

// Contains reports whether v is one of the catalog sizes.
func (c Catalog) Contains(v float64) bool {
	for _, s := range c.Sizes {
		if s == v {
			return true
		}
	}
	return false
}

// Validate rejects empty catalogs and catalogs that are not strictly ascending,
// since the ceiling lookup stops at the first match.
func (c Catalog) Validate() error {
	if len(c.Sizes) == 0 {
		return &model.ConfigurationError{Field: c.Name, Message: "catalog is empty"}
	}
	return ascending(c.Name, c.Sizes)
}

// Effective is the value downstream steps should use: the selected size, or
// the raw requirement when the catalog overflowed.
func (s Selection) Effective() float64 {
	if s.Exceeded {
		return s.Required
	}
	return s.Value
}

func (s Selection) String() string {
	if s.Exceeded {
		return "> " + formatSize(s.Value)
	}
	return formatSize(s.Value)
}

func ascending(name string, sizes []float64) error {
	for i := 1; i < len(sizes); i++ {
		if sizes[i] <= sizes[i-1] {
			return &model.ConfigurationError{
				Field:   name,
				Message: fmt.Sprintf("sizes must be strictly ascending (index %d: %g after %g)", i, sizes[i], sizes[i-1]),
			}
		}
	}
	return nil
}

func formatSize(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
