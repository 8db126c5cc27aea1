package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"donormatch/internal/donor/models"
)

type donorRow struct {
	ID                 string          `db:"id"`
	DateOfBirth        sql.NullTime    `db:"date_of_birth"`
	WeightKg           sql.NullFloat64 `db:"weight_kg"`
	BloodGroup         string          `db:"blood_group"`
	District           string          `db:"district"`
	Upazila            string          `db:"upazila"`
	LastDonationDate   sql.NullTime    `db:"last_donation_date"`
	ManualAvailability bool            `db:"manual_availability"`
	AccountActive      bool            `db:"account_active"`
}

type requestRow struct {
	ID          string         `db:"id"`
	BloodGroup  string         `db:"blood_group"`
	District    string         `db:"district"`
	Upazila     string         `db:"upazila"`
	Status      string         `db:"status"`
	DonorID     sql.NullString `db:"donor_id"`
	CreatedAt   time.Time      `db:"created_at"`
	CompletedAt sql.NullTime   `db:"completed_at"`
}

type bookingRow struct {
	ID        string `db:"id"`
	DonorID   string `db:"donor_id"`
	RequestID string `db:"request_id"`
	State     string `db:"state"`
}

// Export writes a snapshot into the file in one transaction, replacing any
// rows with the same IDs. Active bookings are taken from the donors.
func (s *Store) Export(ctx context.Context, donors []models.Donor, requests []models.DonationRequest) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin export: %w", err)
	}
	defer tx.Rollback()

	var bookings []bookingRow
	for _, d := range donors {
		row := donorRow{
			ID:                 d.ID.String(),
			WeightKg:           sql.NullFloat64{Float64: d.WeightKg, Valid: d.WeightKg > 0},
			BloodGroup:         string(d.BloodGroup),
			District:           d.Location.District,
			Upazila:            d.Location.Upazila,
			ManualAvailability: d.ManualAvailability,
			AccountActive:      d.AccountActive,
		}
		if !d.DateOfBirth.IsZero() {
			row.DateOfBirth = sql.NullTime{Time: d.DateOfBirth, Valid: true}
		}
		if d.LastDonationDate != nil {
			row.LastDonationDate = sql.NullTime{Time: *d.LastDonationDate, Valid: true}
		}
		if _, err := tx.NamedExecContext(ctx, `
			INSERT OR REPLACE INTO donors (
				id, date_of_birth, weight_kg, blood_group, district, upazila,
				last_donation_date, manual_availability, account_active
			) VALUES (
				:id, :date_of_birth, :weight_kg, :blood_group, :district, :upazila,
				:last_donation_date, :manual_availability, :account_active
			)`, row); err != nil {
			return fmt.Errorf("export donor %s: %w", d.ID, err)
		}
		if d.ActiveBooking != nil {
			bookings = append(bookings, bookingRow{
				ID:        d.ActiveBooking.ID.String(),
				DonorID:   d.ID.String(),
				RequestID: d.ActiveBooking.RequestID.String(),
				State:     string(d.ActiveBooking.State),
			})
		}
	}

	for _, r := range requests {
		row := requestRow{
			ID:         r.ID.String(),
			BloodGroup: string(r.BloodGroup),
			District:   r.Location.District,
			Upazila:    r.Location.Upazila,
			Status:     string(r.Status),
			CreatedAt:  r.CreatedAt,
		}
		if r.DonorID != nil {
			row.DonorID = sql.NullString{String: r.DonorID.String(), Valid: true}
		}
		if r.CompletedAt != nil {
			row.CompletedAt = sql.NullTime{Time: *r.CompletedAt, Valid: true}
		}
		if _, err := tx.NamedExecContext(ctx, `
			INSERT OR REPLACE INTO donation_requests (
				id, blood_group, district, upazila, status, donor_id, created_at, completed_at
			) VALUES (
				:id, :blood_group, :district, :upazila, :status, :donor_id, :created_at, :completed_at
			)`, row); err != nil {
			return fmt.Errorf("export request %s: %w", r.ID, err)
		}
	}

	if len(bookings) > 0 {
		if _, err := tx.NamedExecContext(ctx, `
			INSERT OR REPLACE INTO bookings (id, donor_id, request_id, state)
			VALUES (:id, :donor_id, :request_id, :state)`, bookings); err != nil {
			return fmt.Errorf("export bookings: %w", err)
		}
	}
	return tx.Commit()
}
