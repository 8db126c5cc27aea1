package eligibility

import (
	"time"

	"donormatch/internal/donor/models"
)

// Evaluate applies the default policy. See Policy.Evaluate.
func Evaluate(donor models.Donor, asOf time.Time) Result {
	return DefaultPolicy.Evaluate(donor, asOf)
}

// Evaluate applies the eligibility rule chain to a donor as of a given date.
// This is pure domain logic - no I/O, no clock reads.
//
// Rule priority (fail-fast):
//  1. Profile completeness - the remaining rules need DOB and weight
//  2. Age within [MinAge, MaxAge]
//  3. Weight at least MinWeightKg
//  4. Donation interval of at least MinDonationInterval days
func (p Policy) Evaluate(donor models.Donor, asOf time.Time) Result {
	if !donor.HasCompleteProfile() {
		return Result{Reason: ReasonIncompleteProfile}
	}

	age := AgeOn(donor.DateOfBirth, asOf)
	if age < p.MinAge || age > p.MaxAge {
		return Result{Reason: ReasonAgeOutOfRange}
	}

	if donor.WeightKg < p.MinWeightKg {
		return Result{Reason: ReasonUnderweight}
	}

	if donor.LastDonationDate != nil {
		if DaysBetween(*donor.LastDonationDate, asOf) < p.MinDonationInterval {
			next := civilDate(*donor.LastDonationDate).AddDate(0, 0, p.MinDonationInterval)
			return Result{Reason: ReasonTooSoonSinceLastDonation, NextEligibleDate: &next}
		}
	}

	return Result{IsEligible: true, Reason: ReasonEligible}
}

// AgeOn returns completed years between birth and asOf. The year difference
// is reduced by one until the birthday has been reached in asOf's year.
func AgeOn(birth, asOf time.Time) int {
	b, a := civilDate(birth), civilDate(asOf)
	age := a.Year() - b.Year()
	if a.Month() < b.Month() || (a.Month() == b.Month() && a.Day() < b.Day()) {
		age--
	}
	return age
}

// DaysBetween counts calendar days from one date to another, ignoring the
// time of day. Negative when to is before from.
func DaysBetween(from, to time.Time) int {
	return int(civilDate(to).Sub(civilDate(from)).Hours() / 24)
}

// civilDate strips the clock and zone, keeping the calendar date the caller
// sees in the value's own location.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
