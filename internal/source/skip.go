package source

import (
	"context"
	"io"
	"log/slog"
)

// Record kinds, as labelled on skipped rows.
const (
	KindDonor   = "donor"
	KindRequest = "request"
	KindBooking = "booking"
)

// RowSkipper drops a malformed row from a listing. The row is logged and
// counted and the listing carries on, so one bad record upstream does not
// stop every refresh.
type RowSkipper struct {
	source  string
	logger  *slog.Logger
	metrics *Metrics
}

// NewRowSkipper builds a skipper for one named source. A nil logger discards;
// nil metrics count nothing.
func NewRowSkipper(source string, logger *slog.Logger, metrics *Metrics) *RowSkipper {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &RowSkipper{source: source, logger: logger, metrics: metrics}
}

func (s *RowSkipper) Skip(ctx context.Context, kind string, err error) {
	s.metrics.incRowSkipped(s.source, kind)
	s.logger.WarnContext(ctx, "skipping malformed source row",
		"source", s.source,
		"kind", kind,
		"error", err,
	)
}
