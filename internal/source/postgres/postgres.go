package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
	"time"

	"github.com/lib/pq"

	"donormatch/internal/donor/models"
	"donormatch/internal/source"
)

//go:embed schema.sql
var schema string

// DefaultRequestWindow bounds how far back request history is read. It
// covers the dashboard's twelve-month completion trend with a month to spare.
const DefaultRequestWindow = 13 * 30 * 24 * time.Hour

// Store reads donors and donation requests from PostgreSQL.
type Store struct {
	db            *sql.DB
	clock         func() time.Time
	requestWindow time.Duration
	logger        *slog.Logger
	metrics       *source.Metrics
	skipper       *source.RowSkipper
}

// Option configures a Store instance.
type Option func(*Store)

// WithClock sets the clock function for testability.
func WithClock(clock func() time.Time) Option {
	return func(s *Store) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithRequestWindow changes how much closed request history is read. Open
// requests are always read regardless of age.
func WithRequestWindow(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.requestWindow = d
		}
	}
}

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

// New constructs a PostgreSQL-backed donor and request source.
func New(db *sql.DB, opts ...Option) *Store {
	s := &Store{
		db:            db,
		clock:         time.Now,
		requestWindow: DefaultRequestWindow,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	s.skipper = source.NewRowSkipper("postgres", s.logger, s.metrics)
	return s
}

// Migrate creates the tables if they do not exist. Production databases are
// owned by the registry; this exists for local runs and integration tests.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate donor schema: %w", err)
	}
	return nil
}

// ListDonors reads every donor row.
func (s *Store) ListDonors(ctx context.Context) ([]models.Donor, error) {
	query := `
		SELECT id, date_of_birth, weight_kg, blood_group, district, upazila,
		       last_donation_date, manual_availability, account_active
		FROM donors
		ORDER BY id
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query donors: %w", err)
	}
	defer rows.Close()

	donors := make([]models.Donor, 0)
	for rows.Next() {
		var r source.DonorRecord
		if err := rows.Scan(
			&r.ID, &r.DateOfBirth, &r.WeightKg, &r.BloodGroup, &r.District, &r.Upazila,
			&r.LastDonationDate, &r.ManualAvailability, &r.AccountActive,
		); err != nil {
			return nil, fmt.Errorf("scan donor: %w", err)
		}
		d, err := r.ToDonor()
		if err != nil {
			s.skipper.Skip(ctx, source.KindDonor, err)
			continue
		}
		donors = append(donors, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate donors: %w", err)
	}
	return donors, nil
}

// ListRequests reads open requests and closed requests created inside the
// request window.
func (s *Store) ListRequests(ctx context.Context) ([]models.DonationRequest, error) {
	since := s.clock().Add(-s.requestWindow)
	open := pq.Array([]string{
		string(models.RequestPending),
		string(models.RequestScheduled),
		string(models.RequestInProgress),
	})
	query := `
		SELECT id, blood_group, district, upazila, status, donor_id, created_at, completed_at
		FROM donation_requests
		WHERE status = ANY($1) OR created_at >= $2
		ORDER BY created_at, id
	`
	rows, err := s.db.QueryContext(ctx, query, open, since)
	if err != nil {
		return nil, fmt.Errorf("query donation requests: %w", err)
	}
	defer rows.Close()

	requests := make([]models.DonationRequest, 0)
	for rows.Next() {
		var r source.RequestRecord
		if err := rows.Scan(
			&r.ID, &r.BloodGroup, &r.District, &r.Upazila, &r.Status, &r.DonorID, &r.CreatedAt, &r.CompletedAt,
		); err != nil {
			return nil, fmt.Errorf("scan donation request: %w", err)
		}
		req, err := r.ToRequest()
		if err != nil {
			s.skipper.Skip(ctx, source.KindRequest, err)
			continue
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate donation requests: %w", err)
	}
	return requests, nil
}
