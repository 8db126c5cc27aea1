package eligibility

import "time"

// Reason explains an eligibility outcome. Ineligible results carry the first
// rule that failed.
type Reason string

const (
	ReasonEligible                 Reason = "eligible"
	ReasonIncompleteProfile        Reason = "incomplete_profile"
	ReasonAgeOutOfRange            Reason = "age_out_of_range"
	ReasonUnderweight              Reason = "underweight"
	ReasonTooSoonSinceLastDonation Reason = "too_soon_since_last_donation"
)

// Result is derived on every query and never stored.
type Result struct {
	IsEligible       bool       `json:"is_eligible"`
	Reason           Reason     `json:"reason"`
	NextEligibleDate *time.Time `json:"next_eligible_date"`
}

// Policy holds the medical thresholds. DefaultPolicy follows the WHO
// whole-blood guidance and is applied uniformly to every caller.
type Policy struct {
	MinAge              int
	MaxAge              int
	MinWeightKg         float64
	MinDonationInterval int // days
}

// DefaultPolicy: age 18-60 inclusive, at least 50 kg, 120 days between donations.
var DefaultPolicy = Policy{
	MinAge:              18,
	MaxAge:              60,
	MinWeightKg:         50,
	MinDonationInterval: 120,
}
