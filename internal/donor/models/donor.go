package models

import (
	"time"

	id "donormatch/pkg/domain"
)

// Location is where a donor lives or a request originates. District is an
// optional hint; it is needed to disambiguate upazila names shared between
// districts.
type Location struct {
	District string `json:"district,omitempty"`
	Upazila  string `json:"upazila"`
}

// BookingState is the state of a donor's active booking.
type BookingState string

const (
	BookingBooked     BookingState = "booked"
	BookingInProgress BookingState = "in_progress"
)

// IsValid checks if the booking state is one of the supported enum values.
func (s BookingState) IsValid() bool {
	return s == BookingBooked || s == BookingInProgress
}

// Booking references the donation slot a donor is currently committed to.
type Booking struct {
	ID        id.BookingID `json:"id"`
	RequestID id.RequestID `json:"request_id"`
	State     BookingState `json:"state"`
}

// Donor is a registry record as seen by the engine. The engine never writes it.
//
// Invariants:
//   - A zero DateOfBirth or a non-positive WeightKg means the field is missing;
//     such donors are counted but never evaluated as eligible
//   - ActiveBooking is nil unless the donor is committed to a slot
//   - There is no stored status field: availability is always derived
type Donor struct {
	ID                 id.DonorID `json:"id"`
	DateOfBirth        time.Time  `json:"date_of_birth"`
	WeightKg           float64    `json:"weight_kg"`
	BloodGroup         BloodGroup `json:"blood_group"`
	Location           Location   `json:"location"`
	LastDonationDate   *time.Time `json:"last_donation_date,omitempty"`
	ManualAvailability bool       `json:"manual_availability"`
	AccountActive      bool       `json:"account_active"`
	ActiveBooking      *Booking   `json:"active_booking,omitempty"`
}

// HasCompleteProfile reports whether the fields the eligibility rules need
// are present.
func (d *Donor) HasCompleteProfile() bool {
	return !d.DateOfBirth.IsZero() && d.WeightKg > 0
}

// Clone returns a deep copy so derived computations can never alias the
// caller's pointers.
func (d Donor) Clone() Donor {
	if d.LastDonationDate != nil {
		t := *d.LastDonationDate
		d.LastDonationDate = &t
	}
	if d.ActiveBooking != nil {
		b := *d.ActiveBooking
		d.ActiveBooking = &b
	}
	return d
}

// CloneDonors deep-copies a snapshot.
func CloneDonors(donors []Donor) []Donor {
	out := make([]Donor, len(donors))
	for i := range donors {
		out[i] = donors[i].Clone()
	}
	return out
}
