// Package source loads the read-only snapshots the engine computes over.
// The engine never writes donor, request or booking records; every
// implementation here is a reader.
package source

import (
	"context"

	"donormatch/internal/donor/models"
	id "donormatch/pkg/domain"
)

// DonorSource lists donor registry records. Active bookings are not expected
// on the returned donors; the Loader attaches them from a BookingSource.
type DonorSource interface {
	ListDonors(ctx context.Context) ([]models.Donor, error)
}

// RequestSource lists blood requests, open and historical.
type RequestSource interface {
	ListRequests(ctx context.Context) ([]models.DonationRequest, error)
}

// BookingSource returns the active booking per donor.
type BookingSource interface {
	ActiveBookings(ctx context.Context) (map[id.DonorID]models.Booking, error)
}
