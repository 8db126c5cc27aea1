// Package sqlite reads an offline registry export. The export carries the
// same three record kinds as the live sources in one file, so the CLI can
// compute a report without network access.
package sqlite

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"donormatch/internal/donor/models"
	"donormatch/internal/source"
	id "donormatch/pkg/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS donors (
	id                  TEXT PRIMARY KEY,
	date_of_birth       DATE,
	weight_kg           REAL,
	blood_group         TEXT,
	district            TEXT,
	upazila             TEXT,
	last_donation_date  DATE,
	manual_availability BOOLEAN NOT NULL DEFAULT 1,
	account_active      BOOLEAN NOT NULL DEFAULT 1
);
CREATE TABLE IF NOT EXISTS donation_requests (
	id           TEXT PRIMARY KEY,
	blood_group  TEXT,
	district     TEXT,
	upazila      TEXT,
	status       TEXT NOT NULL,
	donor_id     TEXT,
	created_at   TIMESTAMP NOT NULL,
	completed_at TIMESTAMP
);
CREATE TABLE IF NOT EXISTS bookings (
	id         TEXT PRIMARY KEY,
	donor_id   TEXT NOT NULL UNIQUE,
	request_id TEXT NOT NULL,
	state      TEXT NOT NULL
);
`

// Store reads all three record kinds from one SQLite file.
type Store struct {
	db      *sqlx.DB
	logger  *slog.Logger
	metrics *source.Metrics
	skipper *source.RowSkipper
}

type Option func(*Store)

// WithLogger sets where skipped rows are reported.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithMetrics counts skipped rows.
func WithMetrics(m *source.Metrics) Option {
	return func(s *Store) {
		s.metrics = m
	}
}

// Open opens (or creates) an export file and ensures the schema exists.
func Open(path string, opts ...Option) (*Store, error) {
	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite export %s: %w", path, err)
	}
	// One connection: an in-memory database is per connection, and the
	// export is read by a single process anyway.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create export schema: %w", err)
	}
	s := &Store{db: db}
	for _, opt := range opts {
		opt(s)
	}
	s.skipper = source.NewRowSkipper("sqlite", s.logger, s.metrics)
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ListDonors(ctx context.Context) ([]models.Donor, error) {
	var rows []source.DonorRecord
	const q = `SELECT id, date_of_birth, weight_kg, blood_group, district, upazila,
		last_donation_date, manual_availability, account_active FROM donors ORDER BY rowid`
	if err := s.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, fmt.Errorf("select donors: %w", err)
	}
	donors := make([]models.Donor, 0, len(rows))
	for _, r := range rows {
		d, err := r.ToDonor()
		if err != nil {
			s.skipper.Skip(ctx, source.KindDonor, err)
			continue
		}
		donors = append(donors, d)
	}
	return donors, nil
}

func (s *Store) ListRequests(ctx context.Context) ([]models.DonationRequest, error) {
	var rows []source.RequestRecord
	const q = `SELECT id, blood_group, district, upazila, status, donor_id, created_at, completed_at
		FROM donation_requests ORDER BY created_at, id`
	if err := s.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, fmt.Errorf("select donation requests: %w", err)
	}
	requests := make([]models.DonationRequest, 0, len(rows))
	for _, r := range rows {
		req, err := r.ToRequest()
		if err != nil {
			s.skipper.Skip(ctx, source.KindRequest, err)
			continue
		}
		requests = append(requests, req)
	}
	return requests, nil
}

func (s *Store) ActiveBookings(ctx context.Context) (map[id.DonorID]models.Booking, error) {
	var rows []source.BookingRecord
	if err := s.db.SelectContext(ctx, &rows, `SELECT id, donor_id, request_id, state FROM bookings`); err != nil {
		return nil, fmt.Errorf("select bookings: %w", err)
	}
	out := make(map[id.DonorID]models.Booking, len(rows))
	for _, r := range rows {
		donorID, b, err := r.ToBooking()
		if err != nil {
			s.skipper.Skip(ctx, source.KindBooking, err)
			continue
		}
		out[donorID] = b
	}
	return out, nil
}
