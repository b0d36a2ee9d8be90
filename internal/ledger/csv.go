package ledger

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"solar-sizer/internal/model"
)

// Header is the column layout of a saved load schedule.
var Header = []string{
	"Appliance",
	"Rated Power (W)",
	"Power Factor (PF)",
	"Efficiency (%)",
	"Surge Power (W)",
	"Usage Hours",
	"Appliance Count",
	"Consumption (kWh)",
}

// ErrNoEntries is returned when saving an empty ledger.
var ErrNoEntries = errors.New("there are no appliances to save")

// WriteCSV saves the entries as a load schedule.
func WriteCSV(path string, entries []model.ApplianceEntry) error {
	if len(entries) == 0 {
		return ErrNoEntries
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := Encode(f, entries); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Encode writes the header and one row per entry.
func Encode(out io.Writer, entries []model.ApplianceEntry) error {
	w := csv.NewWriter(out)
	if err := w.Write(Header); err != nil {
		return err
	}
	for _, e := range entries {
		row := []string{
			e.Name,
			fmtFloat(e.RatedPowerWatts),
			strconv.FormatFloat(e.PowerFactor, 'f', 2, 64),
			fmtFloat(e.EfficiencyPercent),
			fmtFloat(e.SurgePowerWatts),
			fmtFloat(e.UsageHours),
			strconv.Itoa(e.Count),
			strconv.FormatFloat(e.ConsumptionKWh(), 'f', 4, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// ReadCSV loads a saved load schedule. Rows whose numeric columns do not parse,
// or which do not describe a valid entry, are skipped and counted.
func ReadCSV(path string) ([]model.ApplianceEntry, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()
	return Decode(f)
}

// Decode is ReadCSV over an arbitrary reader.
func Decode(in io.Reader) ([]model.ApplianceEntry, int, error) {
	r := csv.NewReader(in)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, 0, err
	}
	if len(records) > 0 && len(records[0]) > 0 && strings.EqualFold(strings.TrimSpace(records[0][0]), Header[0]) {
		records = records[1:]
	}

	entries := make([]model.ApplianceEntry, 0, len(records))
	skipped := 0
	for _, rec := range records {
		e, err := parseRow(rec)
		if err != nil {
			skipped++
			continue
		}
		entries = append(entries, e)
	}
	return entries, skipped, nil
}

// Load builds a ledger from a saved load schedule.
func Load(path string, ref Reference) (*Ledger, int, error) {
	entries, skipped, err := ReadCSV(path)
	if err != nil {
		return nil, 0, err
	}
	l := New(ref)
	l.entries = entries
	l.RecomputeTotals()
	return l, skipped, nil
}

func parseRow(rec []string) (model.ApplianceEntry, error) {
	if len(rec) < 7 {
		return model.ApplianceEntry{}, fmt.Errorf("expected at least 7 columns, got %d", len(rec))
	}
	nums := make([]float64, 6)
	for i := range nums {
		v, err := parseFloat(strings.TrimSuffix(strings.TrimSpace(rec[i+1]), "%"))
		if err != nil {
			return model.ApplianceEntry{}, err
		}
		nums[i] = v
	}
	e := model.ApplianceEntry{
		Name:              strings.TrimSpace(rec[0]),
		RatedPowerWatts:   nums[0],
		PowerFactor:       nums[1],
		EfficiencyPercent: nums[2],
		SurgePowerWatts:   nums[3],
		UsageHours:        nums[4],
		Count:             int(nums[5]),
	}
	if float64(e.Count) != nums[5] {
		return model.ApplianceEntry{}, fmt.Errorf("count %v is not a whole number", nums[5])
	}
	return e, e.Validate()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
