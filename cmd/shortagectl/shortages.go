package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"
	"time"

	"donormatch/internal/engine"
	"donormatch/internal/geo"
	"donormatch/internal/platform/config"
	"donormatch/internal/platform/logger"
	"donormatch/internal/shortage"
	"donormatch/internal/source"
	"donormatch/internal/source/sqlite"
)

type shortageOutput struct {
	AsOf       time.Time           `json:"as_of"`
	Thresholds shortage.Thresholds `json:"thresholds"`
	Donors     int                 `json:"donors"`
	Eligible   int                 `json:"eligible"`
	Unmapped   int                 `json:"unmapped"`
	Shortages  []shortage.Flag     `json:"shortages"`
}

func runShortages(ctx context.Context, out io.Writer, args []string) error {
	fs := flag.NewFlagSet("shortages", flag.ContinueOnError)
	fs.SetOutput(out)
	dbPath := fs.String("db", "donormatch.db", "SQLite export to read")
	threshold := fs.Int("threshold", shortage.DefaultThreshold, "eligible donors below which a cell is critical")
	overrides := fs.String("overrides", "", "per-group thresholds, e.g. O-=8,AB-=3")
	levelName := fs.String("level", "", "only report this level (division, district, upazila)")
	asOfRaw := fs.String("as-of", "", "evaluate as of this date (YYYY-MM-DD), default now")
	asJSON := fs.Bool("json", false, "print JSON instead of a table")
	verbose := fs.Bool("v", false, "log progress to stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}

	thresholds := shortage.Uniform(*threshold)
	if *overrides != "" {
		o, err := shortage.ParseOverrides(*overrides)
		if err != nil {
			return err
		}
		thresholds.Overrides = o
	}
	var level geo.Level
	if *levelName != "" {
		var err error
		if level, err = geo.ParseLevel(*levelName); err != nil {
			return err
		}
	}
	asOf := time.Now().UTC()
	if *asOfRaw != "" {
		var err error
		if asOf, err = time.Parse(time.DateOnly, *asOfRaw); err != nil {
			return fmt.Errorf("parse -as-of: %w", err)
		}
	}

	log := cliLogger(*verbose)
	store, err := sqlite.Open(*dbPath, sqlite.WithLogger(log))
	if err != nil {
		return err
	}
	defer store.Close()

	loader, err := source.NewLoader(store, store, store, source.WithLogger(log))
	if err != nil {
		return err
	}
	snap, err := loader.Load(ctx)
	if err != nil {
		return err
	}
	svc, err := engine.New(engine.WithThresholds(thresholds), engine.WithLogger(log))
	if err != nil {
		return err
	}
	report, err := svc.BuildReport(ctx, snap, asOf)
	if err != nil {
		return err
	}

	flags := report.Shortages
	if level != "" {
		filtered := make([]shortage.Flag, 0, len(flags))
		for _, f := range flags {
			if f.Unit.Level == level {
				filtered = append(filtered, f)
			}
		}
		flags = filtered
	}

	result := shortageOutput{
		AsOf:       report.AsOf,
		Thresholds: report.Thresholds,
		Donors:     report.Totals.Total,
		Eligible:   report.Totals.Eligible,
		Unmapped:   report.Unmapped,
		Shortages:  flags,
	}
	if *asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	return printTable(out, result)
}

func printTable(out io.Writer, r shortageOutput) error {
	fmt.Fprintf(out, "as of %s: %d donors, %d eligible, %d unmapped, %d shortages\n\n",
		r.AsOf.Format(time.DateOnly), r.Donors, r.Eligible, r.Unmapped, len(r.Shortages))
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "LEVEL\tDIVISION\tDISTRICT\tUPAZILA\tGROUP\tELIGIBLE\tTHRESHOLD")
	for _, f := range r.Shortages {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\t%d\n",
			f.Unit.Level, f.Unit.Division, dash(f.Unit.District), dash(f.Unit.Upazila),
			f.BloodGroup, f.Count, f.Threshold)
	}
	return tw.Flush()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func cliLogger(verbose bool) *slog.Logger {
	level := "warn"
	if verbose {
		level = "debug"
	}
	return logger.NewWithWriter(stderr, config.Log{Level: level, Format: "text"})
}
