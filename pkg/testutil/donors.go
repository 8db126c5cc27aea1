package testutil

import (
	"time"

	"donormatch/internal/donor/models"
	id "donormatch/pkg/domain"
)

// Date returns UTC midnight of the given calendar day.
func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DonorBuilder builds donors for tests. The zero-argument default is a
// complete, active, available O+ donor in Savar, Dhaka who has never donated.
type DonorBuilder struct {
	donor models.Donor
}

// Donor starts a builder with the default donor.
func Donor() *DonorBuilder {
	return &DonorBuilder{donor: models.Donor{
		ID:                 id.NewDonorID(),
		DateOfBirth:        Date(1990, time.January, 1),
		WeightKg:           70,
		BloodGroup:         models.GroupOPos,
		Location:           models.Location{District: "Dhaka", Upazila: "Savar"},
		ManualAvailability: true,
		AccountActive:      true,
	}}
}

func (b *DonorBuilder) ID(donorID id.DonorID) *DonorBuilder {
	b.donor.ID = donorID
	return b
}

func (b *DonorBuilder) BornOn(t time.Time) *DonorBuilder {
	b.donor.DateOfBirth = t
	return b
}

func (b *DonorBuilder) Weight(kg float64) *DonorBuilder {
	b.donor.WeightKg = kg
	return b
}

func (b *DonorBuilder) Group(g models.BloodGroup) *DonorBuilder {
	b.donor.BloodGroup = g
	return b
}

// In places the donor with a district hint.
func (b *DonorBuilder) In(district, upazila string) *DonorBuilder {
	b.donor.Location = models.Location{District: district, Upazila: upazila}
	return b
}

// At places the donor by upazila only, without a district hint.
func (b *DonorBuilder) At(upazila string) *DonorBuilder {
	b.donor.Location = models.Location{Upazila: upazila}
	return b
}

func (b *DonorBuilder) LastDonated(t time.Time) *DonorBuilder {
	b.donor.LastDonationDate = &t
	return b
}

// Unavailable turns the donor's manual availability flag off.
func (b *DonorBuilder) Unavailable() *DonorBuilder {
	b.donor.ManualAvailability = false
	return b
}

func (b *DonorBuilder) Inactive() *DonorBuilder {
	b.donor.AccountActive = false
	return b
}

// Booked gives the donor an active booking in the given state.
func (b *DonorBuilder) Booked(state models.BookingState) *DonorBuilder {
	b.donor.ActiveBooking = &models.Booking{
		ID:        id.NewBookingID(),
		RequestID: id.NewRequestID(),
		State:     state,
	}
	return b
}

func (b *DonorBuilder) Build() models.Donor {
	return b.donor.Clone()
}

// Donors builds n copies of the builder's donor, each with its own ID.
func (b *DonorBuilder) Donors(n int) []models.Donor {
	out := make([]models.Donor, n)
	for i := range out {
		d := b.donor.Clone()
		d.ID = id.NewDonorID()
		out[i] = d
	}
	return out
}
