// Package publish turns engine reports into per-division shortage messages
// for downstream consumers.
package publish

import (
	"context"
	"log/slog"
	"time"

	"donormatch/internal/engine"
	"donormatch/internal/geo"
	"donormatch/internal/shortage"
)

// Message is the shortage state of one division at one instant. A message
// with no flags tells consumers the division is clear.
type Message struct {
	AsOf       time.Time           `json:"as_of"`
	Division   string              `json:"division"`
	Flags      []shortage.Flag     `json:"flags"`
	Thresholds shortage.Thresholds `json:"thresholds"`
}

// Messages splits a report's shortage flags by division. Every division in
// divisions, plus the Unmapped bucket, gets a message even when it has no
// flags, so a consumer keyed by division sees each alert clear. Flags under
// any other division get a message of their own after the rest.
func Messages(report *engine.Report, divisions []string) []Message {
	keys := append([]string(nil), divisions...)
	if !contains(keys, geo.Unmapped) {
		keys = append(keys, geo.Unmapped)
	}

	byDivision := make(map[string][]shortage.Flag, len(keys))
	for _, f := range report.Shortages {
		div := f.Unit.Division
		if _, seen := byDivision[div]; !seen && !contains(keys, div) {
			keys = append(keys, div)
		}
		byDivision[div] = append(byDivision[div], f)
	}

	out := make([]Message, 0, len(keys))
	for _, div := range keys {
		flags := byDivision[div]
		if flags == nil {
			flags = []shortage.Flag{}
		}
		out = append(out, Message{
			AsOf:       report.AsOf,
			Division:   div,
			Flags:      flags,
			Thresholds: report.Thresholds,
		})
	}
	return out
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// LogPublisher writes a one-line shortage summary per report. It is the
// publisher used when no broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, report *engine.Report) error {
	level := slog.LevelInfo
	if len(report.Shortages) > 0 {
		level = slog.LevelWarn
	}
	p.logger.Log(ctx, level, "shortage report",
		"as_of", report.AsOf.Format(time.RFC3339),
		"shortage_count", len(report.Shortages),
		"eligible_total", report.Totals.Eligible,
		"donor_total", report.Totals.Total,
		"unmapped_count", report.Unmapped,
	)
	return nil
}
