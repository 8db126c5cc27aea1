package dashboard

import (
	"github.com/shopspring/decimal"

	"donormatch/internal/donor/models"
)

// PercentPlaces is the precision every percentage is rounded to.
const PercentPlaces = 2

var hundred = decimal.NewFromInt(100)

// Percent returns part/whole*100 rounded half-up to PercentPlaces. A zero
// whole yields zero. Every share goes through this one function so no group is
// rounded differently from another.
func Percent(part, whole int) decimal.Decimal {
	if whole == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(part)).
		Mul(hundred).
		Div(decimal.NewFromInt(int64(whole))).
		Round(PercentPlaces)
}

// GroupShare is one blood group's slice of the donor base.
type GroupShare struct {
	BloodGroup models.BloodGroup `json:"blood_group"`
	Count      int               `json:"count"`
	Percent    decimal.Decimal   `json:"percent"`
}

// Distribution breaks donors down by blood group. All eight groups are always
// present; records with a missing or malformed group appear as a trailing
// unknown row only when there are any.
//
// Shares are rounded independently, so they sum to 100 within
// (groups-1) units of the last decimal place.
func Distribution(donors []models.Donor) []GroupShare {
	counts := make(map[models.BloodGroup]int, len(models.BloodGroups))
	for _, d := range donors {
		if d.BloodGroup.IsValid() {
			counts[d.BloodGroup]++
		} else {
			counts[models.GroupUnknown]++
		}
	}
	return DistributionOf(counts, len(donors))
}

// DistributionOf builds shares from precomputed counts.
func DistributionOf(counts map[models.BloodGroup]int, total int) []GroupShare {
	out := make([]GroupShare, 0, len(models.BloodGroups)+1)
	for _, g := range models.BloodGroups {
		out = append(out, GroupShare{BloodGroup: g, Count: counts[g], Percent: Percent(counts[g], total)})
	}
	if n := counts[models.GroupUnknown]; n > 0 {
		out = append(out, GroupShare{BloodGroup: models.GroupUnknown, Count: n, Percent: Percent(n, total)})
	}
	return out
}

// SumPercent adds the shares, for reconciliation checks.
func SumPercent(shares []GroupShare) decimal.Decimal {
	sum := decimal.Zero
	for _, s := range shares {
		sum = sum.Add(s.Percent)
	}
	return sum
}
