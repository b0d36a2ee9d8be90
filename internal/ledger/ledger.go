// Package ledger keeps the ordered list of appliance entries for a plan and the
// totals derived from them.
//
// Totals are never patched incrementally: every mutation rescans all entries,
// so edits and deletes cannot leave them out of step with the entries.
package ledger

import (
	"math"
	"slices"
	"strconv"
	"strings"

	"solar-sizer/internal/model"
)

// Reference looks up the known characteristics of an appliance by name.
type Reference interface {
	Lookup(name string) (model.ApplianceSpec, bool)
}

// Field names an inline-editable column.
type Field string

const (
	FieldName       Field = "name"
	FieldRatedPower Field = "rated_power"
	FieldUsageHours Field = "usage_hours"
)

// EditableFields lists the columns UpdateEntry accepts.
var EditableFields = []Field{FieldName, FieldRatedPower, FieldUsageHours}

// Editable reports whether f is one of EditableFields.
func (f Field) Editable() bool {
	return slices.Contains(EditableFields, f)
}

// Candidate is raw user input for a new entry.
type Candidate struct {
	Name       string
	RatedPower string
	UsageHours string
	Count      string
}

// Ledger owns the appliance entries of one plan.
type Ledger struct {
	ref     Reference
	entries []model.ApplianceEntry
	totals  model.LedgerTotals
}

// New creates an empty ledger. ref may be nil, in which case every appliance
// gets the manual defaults.
func New(ref Reference) *Ledger {
	return &Ledger{ref: ref}
}

// AddEntry validates a candidate, appends it and returns the new totals along
// with the entry's daily consumption. Nothing changes when an error is returned.
func (l *Ledger) AddEntry(c Candidate) (model.LedgerTotals, float64, error) {
	rated, err := parsePositive("rated_power", c.RatedPower)
	if err != nil {
		return l.totals, 0, err
	}

	hours := model.DefaultUsageHours
	if v, err := parseFloat(c.UsageHours); err == nil {
		hours = v
	}
	count := model.DefaultCount
	if v, err := parseFloat(c.Count); err == nil {
		count = int(math.Round(v))
	}

	e := model.ApplianceEntry{
		Name:            strings.TrimSpace(c.Name),
		RatedPowerWatts: rated,
		UsageHours:      hours,
		Count:           count,
	}
	if spec, ok := l.lookup(e.Name); ok {
		e.ApplySpec(spec)
	} else {
		e.ApplyDefaults()
	}
	if err := e.Validate(); err != nil {
		return l.totals, 0, err
	}

	l.entries = append(l.entries, e)
	l.RecomputeTotals()
	return l.totals, e.ConsumptionKWh(), nil
}

// Append adds a fully specified entry, e.g. one read back from a saved ledger.
func (l *Ledger) Append(e model.ApplianceEntry) (model.LedgerTotals, error) {
	if err := e.Validate(); err != nil {
		return l.totals, err
	}
	l.entries = append(l.entries, e)
	l.RecomputeTotals()
	return l.totals, nil
}

// UpdateEntry edits one whitelisted field of the entry at index.
func (l *Ledger) UpdateEntry(index int, field Field, value string) (model.LedgerTotals, error) {
	if !field.Editable() {
		return l.totals, &model.ValidationError{Field: string(field), Message: "field is not editable"}
	}
	if index < 0 || index >= len(l.entries) {
		return l.totals, &model.ValidationError{Field: "index", Message: "out of range: " + strconv.Itoa(index)}
	}
	e := l.entries[index]

	switch field {
	case FieldName:
		e.Name = strings.TrimSpace(value)
		if spec, ok := l.lookup(e.Name); ok {
			e.ApplySpec(spec)
		}
	case FieldRatedPower:
		v, err := parsePositive(string(field), value)
		if err != nil {
			return l.totals, err
		}
		e.RatedPowerWatts = v
		e.ClampSurge()
	case FieldUsageHours:
		v, err := parsePositive(string(field), value)
		if err != nil {
			return l.totals, err
		}
		e.UsageHours = v
	}

	if err := e.Validate(); err != nil {
		return l.totals, err
	}
	l.entries[index] = e
	l.RecomputeTotals()
	return l.totals, nil
}

// RemoveEntries deletes the entries at the given indices. Duplicate indices
// are ignored. An empty selection returns model.ErrEmptySelection.
func (l *Ledger) RemoveEntries(indices []int) (model.LedgerTotals, error) {
	if len(indices) == 0 {
		return l.totals, model.ErrEmptySelection
	}
	drop := make(map[int]bool, len(indices))
	for _, i := range indices {
		if i < 0 || i >= len(l.entries) {
			return l.totals, &model.ValidationError{Field: "index", Message: "out of range: " + strconv.Itoa(i)}
		}
		drop[i] = true
	}

	kept := make([]model.ApplianceEntry, 0, len(l.entries)-len(drop))
	for i, e := range l.entries {
		if !drop[i] {
			kept = append(kept, e)
		}
	}
	l.entries = kept
	l.RecomputeTotals()
	return l.totals, nil
}

// RecomputeTotals rebuilds the totals from the current entries.
func (l *Ledger) RecomputeTotals() model.LedgerTotals {
	l.totals = model.SumEntries(l.entries)
	return l.totals
}

// Totals returns the current totals snapshot.
func (l *Ledger) Totals() model.LedgerTotals {
	return l.totals
}

// Entries returns a copy of the entries in ledger order.
func (l *Ledger) Entries() []model.ApplianceEntry {
	out := make([]model.ApplianceEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *Ledger) Len() int {
	return len(l.entries)
}

func (l *Ledger) lookup(name string) (model.ApplianceSpec, bool) {
	if l.ref == nil || name == "" {
		return model.ApplianceSpec{}, false
	}
	return l.ref.Lookup(name)
}

func parseFloat(s string) (float64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	return strconv.ParseFloat(s, 64)
}

func parsePositive(field, s string) (float64, error) {
	v, err := parseFloat(s)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &model.ValidationError{Field: field, Message: "please enter a numeric value"}
	}
	if v <= 0 {
		return 0, &model.ValidationError{Field: field, Message: "must be > 0"}
	}
	return v, nil
}
