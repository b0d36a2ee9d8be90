package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"solar-sizer/internal/config"
	"solar-sizer/internal/data"
	"solar-sizer/internal/ledger"
	"solar-sizer/internal/model"
	"solar-sizer/internal/sizing"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

var logger = zap.NewNop()

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "size":
		cmdSize(os.Args[2:])
	case "add":
		cmdAdd(os.Args[2:])
	case "remove":
		cmdRemove(os.Args[2:])
	case "appliances":
		cmdAppliances(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli add --ledger load_Sched.csv --name Refrigerator --power 150 --hours 24 [--count 1]")
	fmt.Println("  cli remove --ledger load_Sched.csv --index 0,2")
	fmt.Println("  cli size --ledger load_Sched.csv [--voltage 24 --dod 50 --panel 300] [--out results/sizing.csv] [--totals total_load.json]")
	fmt.Println("  cli size --from-totals total_load.json [--voltage 24]")
	fmt.Println("  cli appliances [--prefix ref]")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - every subcommand accepts --config examples/config.yaml and -v for verbose logs")
	fmt.Println("  - known appliances take surge power, efficiency and power factor from the appliance table")
}

// common flags shared by every subcommand.
type common struct {
	cfgPath    string
	ledgerPath string
	verbose    bool
}

func newFlagSet(name string, c *common) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ExitOnError)
	fs.StringVar(&c.cfgPath, "config", "", "Path to YAML config")
	fs.StringVar(&c.ledgerPath, "ledger", "", "Path to the load schedule CSV (default: ledger_file from config, else load_Sched.csv)")
	fs.BoolVarP(&c.verbose, "verbose", "v", false, "Verbose logging")
	return fs
}

// setup builds the logger and loads the config named by the common flags.
func (c *common) setup() *config.Config {
	zc := zap.NewDevelopmentConfig()
	if !c.verbose {
		zc.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	if l, err := zc.Build(); err == nil {
		logger = l
	}

	cfg := config.Default()
	if c.cfgPath != "" {
		var err error
		if cfg, err = config.Load(c.cfgPath); err != nil {
			fail("load config", err)
		}
	}
	if c.ledgerPath == "" {
		c.ledgerPath = cfg.LedgerFile
	}
	if c.ledgerPath == "" {
		c.ledgerPath = "load_Sched.csv"
	}
	return cfg
}

func cmdAdd(args []string) {
	var c common
	fs := newFlagSet("add", &c)
	name := fs.String("name", "", "Appliance name")
	power := fs.String("power", "", "Rated power in W (required)")
	hours := fs.String("hours", "", "Usage hours per day (default 6)")
	count := fs.String("count", "", "Number of identical appliances (default 1)")
	_ = fs.Parse(args)

	cfg := c.setup()
	l := openLedger(cfg, c.ledgerPath, true)

	totals, kwh, err := l.AddEntry(ledger.Candidate{Name: *name, RatedPower: *power, UsageHours: *hours, Count: *count})
	if err != nil {
		fail("add appliance", err)
	}
	saveLedger(l, c.ledgerPath)

	fmt.Printf("added %q: %.4f kWh/day\n", *name, kwh)
	printTotals(totals)
}

func cmdRemove(args []string) {
	var c common
	fs := newFlagSet("remove", &c)
	indices := fs.IntSlice("index", nil, "Zero-based entry indices to remove (comma separated)")
	_ = fs.Parse(args)

	cfg := c.setup()
	l := openLedger(cfg, c.ledgerPath, false)

	totals, err := l.RemoveEntries(*indices)
	if err != nil {
		fail("remove appliances", err)
	}
	saveLedger(l, c.ledgerPath)

	fmt.Printf("removed %d entr(ies), %d left\n", len(dedupe(*indices)), l.Len())
	printTotals(totals)
}

func cmdSize(args []string) {
	var c common
	fs := newFlagSet("size", &c)
	voltage := fs.Float64("voltage", 0, "System voltage in V (default from config)")
	dod := fs.Float64("dod", 0, "Battery depth of discharge in % (default from config)")
	panel := fs.Float64("panel", 0, "Panel size in W (default from config)")
	outPath := fs.StringP("out", "o", "", "Optional: write the sized components as CSV")
	totalsPath := fs.String("totals", "", "Optional: write the load summary as JSON (total_load.json)")
	fromTotals := fs.String("from-totals", "", "Size from a saved load summary (total_load.json) instead of the ledger")
	_ = fs.Parse(args)

	cfg := c.setup()
	engine, err := cfg.Engine()
	if err != nil {
		fail("build sizing engine", err)
	}

	var totals model.LedgerTotals
	if *fromTotals != "" {
		tl, ok := data.LoadTotalsJSON(*fromTotals)
		if !ok {
			logger.Warn("load summary unreadable, using defaults", zap.String("path", *fromTotals))
			fmt.Printf("no load summary at %s; using %g W for %g h\n", *fromTotals, tl.TotalWattage, tl.AverageUsageHours)
		}
		totals = tl.LedgerTotals()
	} else {
		totals = openLedger(cfg, c.ledgerPath, false).Totals()
	}

	params := config.MergeParameters(cfg.Parameters, model.SolarParameters{
		SystemVoltage:           *voltage,
		DepthOfDischargePercent: *dod,
		PanelSizeWatts:          *panel,
	})

	printTotals(totals)
	if *totalsPath != "" {
		if err := data.SaveTotalsJSON(data.TotalLoadFrom(totals), *totalsPath); err != nil {
			fail("write load summary", err)
		}
	}

	res, err := engine.Compute(totals, params)
	if errors.Is(err, model.ErrComputationSkipped) {
		fmt.Println("no load to size yet; add appliances first")
		return
	}
	if err != nil {
		fail("size", err)
	}
	printResult(res)

	if *outPath != "" {
		if err := os.MkdirAll(filepath.Dir(*outPath), 0755); err != nil {
			fail("create output directory", err)
		}
		if err := sizing.WriteResultCSV(*outPath, res); err != nil {
			fail("write result", err)
		}
		fmt.Printf("wrote %s\n", *outPath)
	}
}

func cmdAppliances(args []string) {
	var c common
	fs := newFlagSet("appliances", &c)
	prefix := fs.String("prefix", "", "Only list appliances whose name starts with this")
	_ = fs.Parse(args)

	cfg := c.setup()
	table, err := cfg.Appliances()
	if err != nil {
		fail("load appliance table", err)
	}
	if table == nil {
		fmt.Println("no appliance_file configured")
		return
	}
	fmt.Printf("%-28s %10s %10s %8s %6s\n", "appliance", "rated_w", "surge_w", "eff_%", "pf")
	for _, s := range table.Search(*prefix) {
		fmt.Printf("%-28s %10.1f %10.1f %8.1f %6.2f\n", s.Name, s.RatedPowerWatts, s.SurgePowerWatts, s.EfficiencyPercent, s.PowerFactor)
	}
}

// openLedger reads the load schedule at path. A missing file is an empty
// ledger when allowMissing is set.
func openLedger(cfg *config.Config, path string, allowMissing bool) *ledger.Ledger {
	table, err := cfg.Appliances()
	if err != nil {
		fail("load appliance table", err)
	}
	l, skipped, err := ledger.Load(path, table)
	if errors.Is(err, os.ErrNotExist) && allowMissing {
		logger.Info("starting a new load schedule", zap.String("path", path))
		return ledger.New(table)
	}
	if err != nil {
		fail("read load schedule", err)
	}
	if skipped > 0 {
		logger.Warn("skipped unreadable rows", zap.String("path", path), zap.Int("rows", skipped))
	}
	return l
}

// saveLedger writes the schedule back. An emptied ledger keeps just the header.
func saveLedger(l *ledger.Ledger, path string) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			fail("create ledger directory", err)
		}
	}
	err := ledger.WriteCSV(path, l.Entries())
	if errors.Is(err, ledger.ErrNoEntries) {
		err = writeHeaderOnly(path)
	}
	if err != nil {
		fail("save load schedule", err)
	}
	logger.Info("load schedule saved", zap.String("path", path), zap.Int("entries", l.Len()))
}

func writeHeaderOnly(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return ledger.Encode(f, nil)
}

func printTotals(t model.LedgerTotals) {
	fmt.Printf("appliances: %d  total wattage: %s W  total usage: %s h  consumption: %.4f kWh/day\n",
		t.ApplianceCount, fmtNum(t.TotalWattage), fmtNum(t.TotalUsageHours), t.TotalConsumptionKWh)
}

func printResult(r *sizing.Result) {
	p := r.Parameters
	fmt.Printf("\nsystem %s V, depth of discharge %s %%, %s W panels\n",
		fmtNum(p.SystemVoltage), fmtNum(p.DepthOfDischargePercent), fmtNum(p.PanelSizeWatts))
	fmt.Printf("daily energy %.0f Wh, battery bank %.0f Wh, PV current %.2f A\n\n",
		r.DailyConsumptionWh, r.BatteryBankWh, r.PVCurrent)

	fmt.Printf("%-12s %6s %14s %14s\n", "component", "unit", "required", "selected")
	for _, comp := range r.Components() {
		fmt.Printf("%-12s %6s %14.2f %14s\n", comp.Name, comp.Unit, comp.Required, comp.Selected)
	}
	if ov := r.Overflows(); len(ov) > 0 {
		fmt.Printf("\nwarning: requirement exceeds the largest catalog size for %v\n", ov)
	}
}

func fail(what string, err error) {
	logger.Error(what, zap.Error(err))
	fmt.Fprintf(os.Stderr, "%s: %v\n", what, err)
	os.Exit(1)
}

func dedupe(xs []int) map[int]bool {
	m := make(map[int]bool, len(xs))
	for _, x := range xs {
		m[x] = true
	}
	return m
}

func fmtNum(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
