package availability

import (
	"fmt"
	"time"

	"donormatch/internal/donor/models"
	"donormatch/pkg/platform/sentinel"
)

// allowed lists the lifecycle edges between derived statuses. Unavailable and
// Inactive are reachable from every state; Inactive has no way out here
// because reactivation happens in the account system.
var allowed = map[Status][]Status{
	StatusEligible:    {StatusBooked},
	StatusBooked:      {StatusInProgress, StatusEligible},
	StatusInProgress:  {StatusEligible},
	StatusUnavailable: {StatusEligible},
	StatusInactive:    {},
}

// CanTransitionTo reports whether two successive derivations for the same
// donor describe a legal lifecycle step. Staying in place is always legal.
func (s Status) CanTransitionTo(next Status) bool {
	if !s.IsValid() || !next.IsValid() {
		return false
	}
	if s == next {
		return true
	}
	if s == StatusInactive {
		return false
	}
	if next == StatusUnavailable || next == StatusInactive {
		return true
	}
	for _, to := range allowed[s] {
		if to == next {
			return true
		}
	}
	return false
}

// ApplyDonationCompletion returns a copy of the donor as it looks after a
// completed donation: LastDonationDate set and the booking released. The
// donor must be in progress. The input is left untouched; the engine is
// expected to be re-queried with the returned record.
func ApplyDonationCompletion(donor models.Donor, completedAt time.Time) (models.Donor, error) {
	if donor.ActiveBooking == nil || donor.ActiveBooking.State != models.BookingInProgress {
		return donor, fmt.Errorf("complete donation for donor %s: no donation in progress: %w", donor.ID, sentinel.ErrInvalidState)
	}
	out := donor.Clone()
	t := completedAt
	out.LastDonationDate = &t
	out.ActiveBooking = nil
	return out, nil
}

// ApplyBookingCancellation returns a copy of the donor with the booking
// released. Status falls back to Eligible or Unavailable on the next derivation.
func ApplyBookingCancellation(donor models.Donor) (models.Donor, error) {
	if donor.ActiveBooking == nil {
		return donor, fmt.Errorf("cancel booking for donor %s: no active booking: %w", donor.ID, sentinel.ErrInvalidState)
	}
	out := donor.Clone()
	out.ActiveBooking = nil
	return out, nil
}
