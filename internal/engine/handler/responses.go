package handler

import (
	"time"

	"donormatch/internal/aggregate"
	"donormatch/internal/availability"
	"donormatch/internal/dashboard"
	"donormatch/internal/eligibility"
	"donormatch/internal/geo"
	"donormatch/internal/shortage"
	id "donormatch/pkg/domain"
)

type SummaryResponse struct {
	AsOf          time.Time        `json:"as_of"`
	Totals        aggregate.Totals `json:"totals"`
	Unmapped      int              `json:"unmapped"`
	ShortageCount int              `json:"shortage_count"`
}

type DistributionResponse struct {
	AsOf  time.Time        `json:"as_of"`
	Level geo.Level        `json:"level"`
	Cells []aggregate.Cell `json:"cells"`
}

type ShortagesResponse struct {
	AsOf       time.Time           `json:"as_of"`
	Thresholds shortage.Thresholds `json:"thresholds"`
	Shortages  []shortage.Flag     `json:"shortages"`
}

type FunnelResponse struct {
	AsOf   time.Time               `json:"as_of"`
	Stages []dashboard.FunnelStage `json:"stages"`
}

type BloodGroupsResponse struct {
	AsOf   time.Time               `json:"as_of"`
	Shares []dashboard.GroupShare  `json:"shares"`
	Supply []dashboard.GroupSupply `json:"supply"`
}

type TrendsResponse struct {
	AsOf        time.Time               `json:"as_of"`
	Series      string                  `json:"series"`
	Granularity dashboard.Granularity   `json:"granularity"`
	Buckets     []dashboard.TrendBucket `json:"buckets"`
}

// EligibilityResponse is one donor's eligibility and operational status.
// SnapshotAsOf says how fresh the donor record is.
type EligibilityResponse struct {
	DonorID          id.DonorID          `json:"donor_id"`
	AsOf             time.Time           `json:"as_of"`
	IsEligible       bool                `json:"is_eligible"`
	Reason           eligibility.Reason  `json:"reason"`
	NextEligibleDate *time.Time          `json:"next_eligible_date"`
	Status           availability.Status `json:"status"`
	SnapshotAsOf     time.Time           `json:"snapshot_as_of"`
}
