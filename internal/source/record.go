package source

import (
	"database/sql"
	"fmt"
	"time"

	"donormatch/internal/donor/models"
	id "donormatch/pkg/domain"
)

// DonorRecord is the flat row shape shared by the SQL sources. Nullable
// columns map to the fields the eligibility rules treat as missing.
type DonorRecord struct {
	ID                 string          `db:"id"`
	DateOfBirth        sql.NullTime    `db:"date_of_birth"`
	WeightKg           sql.NullFloat64 `db:"weight_kg"`
	BloodGroup         sql.NullString  `db:"blood_group"`
	District           sql.NullString  `db:"district"`
	Upazila            sql.NullString  `db:"upazila"`
	LastDonationDate   sql.NullTime    `db:"last_donation_date"`
	ManualAvailability bool            `db:"manual_availability"`
	AccountActive      bool            `db:"account_active"`
}

// ToDonor converts a row. A malformed blood group is kept verbatim so the
// aggregator buckets it as unknown instead of the record disappearing.
func (r DonorRecord) ToDonor() (models.Donor, error) {
	donorID, err := id.ParseDonorID(r.ID)
	if err != nil {
		return models.Donor{}, fmt.Errorf("donor row %q: %w", r.ID, err)
	}
	d := models.Donor{
		ID:                 donorID,
		WeightKg:           r.WeightKg.Float64,
		BloodGroup:         ParseGroup(r.BloodGroup.String),
		Location:           models.Location{District: r.District.String, Upazila: r.Upazila.String},
		ManualAvailability: r.ManualAvailability,
		AccountActive:      r.AccountActive,
	}
	if r.DateOfBirth.Valid {
		d.DateOfBirth = r.DateOfBirth.Time
	}
	if r.LastDonationDate.Valid {
		t := r.LastDonationDate.Time
		d.LastDonationDate = &t
	}
	return d, nil
}

// RequestRecord is the flat row shape of a donation request.
type RequestRecord struct {
	ID          string         `db:"id"`
	BloodGroup  sql.NullString `db:"blood_group"`
	District    sql.NullString `db:"district"`
	Upazila     sql.NullString `db:"upazila"`
	Status      string         `db:"status"`
	DonorID     sql.NullString `db:"donor_id"`
	CreatedAt   time.Time      `db:"created_at"`
	CompletedAt sql.NullTime   `db:"completed_at"`
}

// ToRequest converts a row. A status this build does not know is kept
// verbatim: such a request is never open, scheduled or completed, so it adds
// no demand and no funnel progress but still shows in request trends.
func (r RequestRecord) ToRequest() (models.DonationRequest, error) {
	requestID, err := id.ParseRequestID(r.ID)
	if err != nil {
		return models.DonationRequest{}, fmt.Errorf("request row %q: %w", r.ID, err)
	}
	req := models.DonationRequest{
		ID:         requestID,
		BloodGroup: ParseGroup(r.BloodGroup.String),
		Location:   models.Location{District: r.District.String, Upazila: r.Upazila.String},
		Status:     models.RequestStatus(r.Status),
		CreatedAt:  r.CreatedAt,
	}
	if r.DonorID.Valid && r.DonorID.String != "" {
		donorID, err := id.ParseDonorID(r.DonorID.String)
		if err != nil {
			return models.DonationRequest{}, fmt.Errorf("request row %q: %w", r.ID, err)
		}
		req.DonorID = &donorID
	}
	if r.CompletedAt.Valid {
		t := r.CompletedAt.Time
		req.CompletedAt = &t
	}
	return req, nil
}

// BookingRecord is the flat row shape of an active booking.
type BookingRecord struct {
	ID        string `db:"id" json:"id"`
	DonorID   string `db:"donor_id" json:"donor_id,omitempty"`
	RequestID string `db:"request_id" json:"request_id"`
	State     string `db:"state" json:"state"`
}

func (r BookingRecord) ToBooking() (id.DonorID, models.Booking, error) {
	donorID, err := id.ParseDonorID(r.DonorID)
	if err != nil {
		return id.DonorID{}, models.Booking{}, fmt.Errorf("booking %q: %w", r.ID, err)
	}
	bookingID, err := id.ParseBookingID(r.ID)
	if err != nil {
		return id.DonorID{}, models.Booking{}, fmt.Errorf("booking %q: %w", r.ID, err)
	}
	requestID, err := id.ParseRequestID(r.RequestID)
	if err != nil {
		return id.DonorID{}, models.Booking{}, fmt.Errorf("booking %q: %w", r.ID, err)
	}
	state := models.BookingState(r.State)
	if !state.IsValid() {
		return id.DonorID{}, models.Booking{}, fmt.Errorf("booking %q: unknown state %q", r.ID, r.State)
	}
	return donorID, models.Booking{ID: bookingID, RequestID: requestID, State: state}, nil
}

// ParseGroup normalizes a stored blood group, keeping unparseable values as-is.
func ParseGroup(raw string) models.BloodGroup {
	if g, err := models.ParseBloodGroup(raw); err == nil {
		return g
	}
	return models.BloodGroup(raw)
}
