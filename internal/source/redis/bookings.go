package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"donormatch/internal/donor/models"
	"donormatch/internal/source"
	id "donormatch/pkg/domain"
)

// DefaultBookingsKey is the hash the booking service keeps active bookings
// in: field = donor ID, value = JSON booking.
const DefaultBookingsKey = "donormatch:bookings"

// BookingStore reads active bookings from a Redis hash.
type BookingStore struct {
	client  *redis.Client
	key     string
	logger  *slog.Logger
	metrics *source.Metrics
	skipper *source.RowSkipper
}

type Option func(*BookingStore)

// WithKey overrides the hash key.
func WithKey(key string) Option {
	return func(s *BookingStore) {
		if key != "" {
			s.key = key
		}
	}
}

// WithLogger sets where skipped entries are reported.
func WithLogger(logger *slog.Logger) Option {
	return func(s *BookingStore) {
		s.logger = logger
	}
}

// WithMetrics counts skipped entries.
func WithMetrics(m *source.Metrics) Option {
	return func(s *BookingStore) {
		s.metrics = m
	}
}

func NewBookingStore(client *redis.Client, opts ...Option) *BookingStore {
	s := &BookingStore{client: client, key: DefaultBookingsKey}
	for _, opt := range opts {
		opt(s)
	}
	s.skipper = source.NewRowSkipper("redis", s.logger, s.metrics)
	return s
}

// ActiveBookings reads the whole hash in one round trip. Entries that do not
// decode are skipped; the donor then simply has no active booking.
func (s *BookingStore) ActiveBookings(ctx context.Context) (map[id.DonorID]models.Booking, error) {
	fields, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, fmt.Errorf("read bookings hash: %w", err)
	}
	out := make(map[id.DonorID]models.Booking, len(fields))
	for donor, raw := range fields {
		var rec source.BookingRecord
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			s.skipper.Skip(ctx, source.KindBooking, fmt.Errorf("decode booking for donor %s: %w", donor, err))
			continue
		}
		rec.DonorID = donor
		donorID, booking, err := rec.ToBooking()
		if err != nil {
			s.skipper.Skip(ctx, source.KindBooking, err)
			continue
		}
		out[donorID] = booking
	}
	return out, nil
}

// PutBooking writes one booking. The engine itself never calls this; it is
// used to seed local environments and tests.
func (s *BookingStore) PutBooking(ctx context.Context, donorID id.DonorID, b models.Booking) error {
	raw, err := json.Marshal(source.BookingRecord{
		ID:        b.ID.String(),
		RequestID: b.RequestID.String(),
		State:     string(b.State),
	})
	if err != nil {
		return fmt.Errorf("encode booking: %w", err)
	}
	if err := s.client.HSet(ctx, s.key, donorID.String(), raw).Err(); err != nil {
		return fmt.Errorf("write booking: %w", err)
	}
	return nil
}

// ClearBooking removes a donor's booking.
func (s *BookingStore) ClearBooking(ctx context.Context, donorID id.DonorID) error {
	if err := s.client.HDel(ctx, s.key, donorID.String()).Err(); err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	return nil
}
