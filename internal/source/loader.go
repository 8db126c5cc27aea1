package source

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"donormatch/internal/donor/models"
	"donormatch/internal/engine"
	id "donormatch/pkg/domain"
)

// Loader assembles an engine.Snapshot from the three sources.
type Loader struct {
	donors   DonorSource
	requests RequestSource
	bookings BookingSource
	logger   *slog.Logger
	clock    func() time.Time
}

type LoaderOption func(*Loader)

func WithLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) {
		l.logger = logger
	}
}

// WithClock sets the clock used to stamp LoadedAt.
func WithClock(clock func() time.Time) LoaderOption {
	return func(l *Loader) {
		if clock != nil {
			l.clock = clock
		}
	}
}

// NewLoader requires a donor source. Requests and bookings are optional: a
// nil source contributes nothing.
func NewLoader(donors DonorSource, requests RequestSource, bookings BookingSource, opts ...LoaderOption) (*Loader, error) {
	if donors == nil {
		return nil, fmt.Errorf("donor source is required")
	}
	l := &Loader{
		donors:   donors,
		requests: requests,
		bookings: bookings,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Load fetches donors, requests and active bookings concurrently and merges
// bookings onto donors. Any source failing fails the whole load; a partial
// snapshot would report false shortages.
func (l *Loader) Load(ctx context.Context) (engine.Snapshot, error) {
	start := l.clock()
	var (
		donors   []models.Donor
		requests []models.DonationRequest
		bookings map[id.DonorID]models.Booking
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		donors, err = l.donors.ListDonors(gctx)
		if err != nil {
			return fmt.Errorf("list donors: %w", err)
		}
		return nil
	})
	if l.requests != nil {
		g.Go(func() error {
			var err error
			requests, err = l.requests.ListRequests(gctx)
			if err != nil {
				return fmt.Errorf("list requests: %w", err)
			}
			return nil
		})
	}
	if l.bookings != nil {
		g.Go(func() error {
			var err error
			bookings, err = l.bookings.ActiveBookings(gctx)
			if err != nil {
				return fmt.Errorf("list active bookings: %w", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return engine.Snapshot{}, err
	}

	orphans := MergeBookings(donors, bookings)
	if orphans > 0 {
		l.logger.WarnContext(ctx, "bookings reference unknown donors", "orphan_count", orphans)
	}

	snap := engine.Snapshot{Donors: donors, Requests: requests, LoadedAt: l.clock()}
	l.logger.DebugContext(ctx, "snapshot loaded",
		"donor_count", len(donors),
		"request_count", len(requests),
		"booking_count", len(bookings),
		"duration_ms", snap.LoadedAt.Sub(start).Milliseconds(),
	)
	return snap, nil
}

// MergeBookings sets ActiveBooking on every donor that has one, replacing
// whatever the donor source supplied. It returns the number of bookings whose
// donor is not in the list. A donor ID listed twice counts once.
func MergeBookings(donors []models.Donor, bookings map[id.DonorID]models.Booking) int {
	if bookings == nil {
		return 0
	}
	matched := make(map[id.DonorID]struct{}, len(bookings))
	for i := range donors {
		donors[i].ActiveBooking = nil
		if b, ok := bookings[donors[i].ID]; ok {
			booking := b
			donors[i].ActiveBooking = &booking
			matched[donors[i].ID] = struct{}{}
		}
	}
	return len(bookings) - len(matched)
}
