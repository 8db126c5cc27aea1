package availability

import (
	"time"

	"donormatch/internal/donor/models"
	"donormatch/internal/eligibility"
)

// Status is a donor's operational matchability. It is never stored or set
// directly; callers always derive it from the donor's source fields.
type Status string

const (
	StatusEligible    Status = "eligible"
	StatusBooked      Status = "booked"
	StatusInProgress  Status = "in_progress"
	StatusUnavailable Status = "unavailable"
	StatusInactive    Status = "inactive"
)

// Statuses lists every status in lifecycle order.
var Statuses = []Status{StatusEligible, StatusBooked, StatusInProgress, StatusUnavailable, StatusInactive}

// IsValid checks if the status is one of the supported enum values.
func (s Status) IsValid() bool {
	switch s {
	case StatusEligible, StatusBooked, StatusInProgress, StatusUnavailable, StatusInactive:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// DeriveStatus computes availability from eligibility and the donor's
// manual flag, account state and active booking. First match wins:
//
//  1. inactive account          -> Inactive
//  2. booking in progress       -> InProgress
//  3. booking held              -> Booked
//  4. manual flag off           -> Unavailable
//  5. medically eligible        -> Eligible
//  6. otherwise                 -> Unavailable
//
// An ineligible donor is never Eligible, whatever the manual flag says.
func DeriveStatus(result eligibility.Result, donor models.Donor) Status {
	if !donor.AccountActive {
		return StatusInactive
	}
	if donor.ActiveBooking != nil {
		switch donor.ActiveBooking.State {
		case models.BookingInProgress:
			return StatusInProgress
		case models.BookingBooked:
			return StatusBooked
		}
	}
	if !donor.ManualAvailability {
		return StatusUnavailable
	}
	if result.IsEligible {
		return StatusEligible
	}
	return StatusUnavailable
}

// StatusOf evaluates eligibility with the given policy and derives status.
func StatusOf(policy eligibility.Policy, donor models.Donor, asOf time.Time) Status {
	return DeriveStatus(policy.Evaluate(donor, asOf), donor)
}
