package dashboard

import (
	"time"

	"donormatch/internal/availability"
	"donormatch/internal/donor/models"
	"donormatch/internal/eligibility"
)

// GroupSupply is how many donors could serve a recipient group right now.
type GroupSupply struct {
	Recipient        models.BloodGroup `json:"recipient"`
	CompatibleDonors int               `json:"compatible_donors"`
	AvailableDonors  int               `json:"available_donors"`
	OpenRequests     int               `json:"open_requests"`
}

// CompatibleSupply counts, for every recipient group, the eligible and the
// currently available donors whose red cells are compatible, alongside open
// demand for that group.
func CompatibleSupply(policy eligibility.Policy, donors []models.Donor, requests []models.DonationRequest, asOf time.Time) []GroupSupply {
	eligibleByGroup := make(map[models.BloodGroup]int)
	availableByGroup := make(map[models.BloodGroup]int)
	for _, d := range donors {
		if !d.BloodGroup.IsValid() {
			continue
		}
		res := policy.Evaluate(d, asOf)
		if res.IsEligible {
			eligibleByGroup[d.BloodGroup]++
		}
		if availability.DeriveStatus(res, d) == availability.StatusEligible {
			availableByGroup[d.BloodGroup]++
		}
	}
	openByGroup := make(map[models.BloodGroup]int)
	for _, r := range requests {
		if r.Status.IsOpen() && r.BloodGroup.IsValid() {
			openByGroup[r.BloodGroup]++
		}
	}

	out := make([]GroupSupply, 0, len(models.BloodGroups))
	for _, recipient := range models.BloodGroups {
		s := GroupSupply{Recipient: recipient, OpenRequests: openByGroup[recipient]}
		for _, donor := range models.BloodGroups {
			if donor.CanDonateTo(recipient) {
				s.CompatibleDonors += eligibleByGroup[donor]
				s.AvailableDonors += availableByGroup[donor]
			}
		}
		out = append(out, s)
	}
	return out
}
