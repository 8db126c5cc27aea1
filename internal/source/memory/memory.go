package memory

import (
	"context"
	"sync"

	"donormatch/internal/donor/models"
	id "donormatch/pkg/domain"
)

// Store is an in-memory donor, request and booking source for tests and
// demos. Reads return copies so callers cannot alias stored records.
type Store struct {
	mu       sync.RWMutex
	donors   map[id.DonorID]models.Donor
	order    []id.DonorID
	requests []models.DonationRequest
	bookings map[id.DonorID]models.Booking
}

func New() *Store {
	return &Store{
		donors:   make(map[id.DonorID]models.Donor),
		bookings: make(map[id.DonorID]models.Booking),
	}
}

// PutDonors inserts or replaces donors, keeping first-insert order.
func (s *Store) PutDonors(donors ...models.Donor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range donors {
		if _, ok := s.donors[d.ID]; !ok {
			s.order = append(s.order, d.ID)
		}
		s.donors[d.ID] = d.Clone()
	}
}

func (s *Store) PutRequests(requests ...models.DonationRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, models.CloneRequests(requests)...)
}

func (s *Store) PutBooking(donorID id.DonorID, b models.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings[donorID] = b
}

func (s *Store) ClearBooking(donorID id.DonorID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.bookings, donorID)
}

func (s *Store) ListDonors(_ context.Context) ([]models.Donor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Donor, 0, len(s.order))
	for _, donorID := range s.order {
		out = append(out, s.donors[donorID].Clone())
	}
	return out, nil
}

func (s *Store) ListRequests(_ context.Context) ([]models.DonationRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.CloneRequests(s.requests), nil
}

func (s *Store) ActiveBookings(_ context.Context) (map[id.DonorID]models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[id.DonorID]models.Booking, len(s.bookings))
	for k, v := range s.bookings {
		out[k] = v
	}
	return out, nil
}
