package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"solar-sizer/internal/model"
)

// Appliance reference CSV columns.
const (
	colAppliance   = "Appliance"
	colRatedPower  = "Rated Power (W)"
	colSurgePower  = "Surge Power (W)"
	colEfficiency  = "Efficiency (%)"
	colPowerFactor = "Power Factor (PF)"
)

// ApplianceTable is the read-only appliance reference table, kept in file order.
type ApplianceTable struct {
	specs  []model.ApplianceSpec
	byName map[string]int
}

// NewApplianceTable indexes specs by name. Later duplicates are ignored.
func NewApplianceTable(specs []model.ApplianceSpec) *ApplianceTable {
	t := &ApplianceTable{byName: make(map[string]int, len(specs))}
	for _, s := range specs {
		if _, dup := t.byName[s.Name]; dup {
			continue
		}
		t.byName[s.Name] = len(t.specs)
		t.specs = append(t.specs, s)
	}
	return t
}

// LoadApplianceCSV reads the appliance reference table. Columns are matched by
// header name; rows with missing or non-numeric values are skipped.
func LoadApplianceCSV(path string) (*ApplianceTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open appliance file: %w", err)
	}
	defer f.Close()

	t, err := ReadApplianceCSV(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse appliance file %s: %w", path, err)
	}
	return t, nil
}

func ReadApplianceCSV(in io.Reader) (*ApplianceTable, error) {
	r := csv.NewReader(in)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, err
	}
	idx := map[string]int{}
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}
	for _, col := range []string{colAppliance, colRatedPower, colSurgePower, colEfficiency, colPowerFactor} {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("missing column %q", col)
		}
	}

	var specs []model.ApplianceSpec
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		s, ok := parseSpec(rec, idx)
		if !ok {
			continue
		}
		specs = append(specs, s)
	}
	return NewApplianceTable(specs), nil
}

// Lookup returns the reference record for an exact appliance name.
func (t *ApplianceTable) Lookup(name string) (model.ApplianceSpec, bool) {
	if t == nil {
		return model.ApplianceSpec{}, false
	}
	i, ok := t.byName[name]
	if !ok {
		return model.ApplianceSpec{}, false
	}
	return t.specs[i], true
}

// Search returns appliances whose name starts with prefix (case-insensitive),
// in file order. An empty prefix returns everything.
func (t *ApplianceTable) Search(prefix string) []model.ApplianceSpec {
	if t == nil {
		return nil
	}
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	out := make([]model.ApplianceSpec, 0)
	for _, s := range t.specs {
		if strings.HasPrefix(strings.ToLower(s.Name), prefix) {
			out = append(out, s)
		}
	}
	return out
}

// Names lists appliance names alphabetically.
func (t *ApplianceTable) Names() []string {
	if t == nil {
		return nil
	}
	names := make([]string, 0, len(t.specs))
	for _, s := range t.specs {
		names = append(names, s.Name)
	}
	sort.Strings(names)
	return names
}

func (t *ApplianceTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.specs)
}

func parseSpec(rec []string, idx map[string]int) (model.ApplianceSpec, bool) {
	field := func(col string) string {
		i := idx[col]
		if i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}
	num := func(col string) (float64, bool) {
		s := strings.TrimSuffix(strings.ReplaceAll(field(col), ",", ""), "%")
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		return v, err == nil
	}

	s := model.ApplianceSpec{Name: field(colAppliance)}
	if s.Name == "" {
		return s, false
	}
	var ok bool
	if s.RatedPowerWatts, ok = num(colRatedPower); !ok {
		return s, false
	}
	if s.SurgePowerWatts, ok = num(colSurgePower); !ok {
		return s, false
	}
	if s.EfficiencyPercent, ok = num(colEfficiency); !ok {
		return s, false
	}
	if s.PowerFactor, ok = num(colPowerFactor); !ok {
		return s, false
	}
	return s, true
}
