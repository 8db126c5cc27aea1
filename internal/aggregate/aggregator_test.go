package aggregate

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"donormatch/internal/donor/models"
	"donormatch/internal/eligibility"
	"donormatch/internal/geo"
	id "donormatch/pkg/domain"
	"donormatch/pkg/testutil"
)

var asOf = testutil.Date(2024, time.January, 1)

type AggregatorSuite struct {
	suite.Suite
	agg *Aggregator
}

func TestAggregatorSuite(t *testing.T) {
	suite.Run(t, new(AggregatorSuite))
}

func (s *AggregatorSuite) SetupTest() {
	s.agg = New(nil)
}

func (s *AggregatorSuite) find(cells []Cell, u geo.Unit, g models.BloodGroup) (Cell, bool) {
	for _, c := range cells {
		if c.Unit == u && c.BloodGroup == g {
			return c, true
		}
	}
	return Cell{}, false
}

func (s *AggregatorSuite) mixedDonors() []models.Donor {
	var donors []models.Donor
	donors = append(donors, testutil.Donor().In("Dhaka", "Savar").Group(models.GroupAPos).Donors(3)...)
	donors = append(donors, testutil.Donor().At("Dumuria").Group(models.GroupONeg).Donors(2)...)
	donors = append(donors, testutil.Donor().In("Satkhira", "Kaliganj").Group(models.GroupONeg).Build())
	donors = append(donors, testutil.Donor().At("Kaliganj").Group(models.GroupBPos).Build())
	donors = append(donors, testutil.Donor().At("Nonexistent Place").Group(models.GroupABNeg).Build())
	donors = append(donors, testutil.Donor().At("Savar").Group("Z+").Build())
	donors = append(donors, testutil.Donor().At("Savar").Weight(0).Build())
	donors = append(donors, testutil.Donor().At("Savar").LastDonated(asOf.AddDate(0, 0, -5)).Build())
	return donors
}

// =============================================================================
// Reconciliation
// =============================================================================

func (s *AggregatorSuite) TestUnknownUpazilaLandsInUnmapped() {
	donor := testutil.Donor().At("Nonexistent Place").Group(models.GroupBNeg).Build()

	cells := s.agg.Aggregate([]models.Donor{donor}, asOf)

	c, ok := s.find(cells, geo.Unit{Level: geo.LevelDivision, Division: geo.Unmapped}, models.GroupBNeg)
	s.Require().True(ok)
	s.Equal(1, c.TotalCount)
	s.Equal(1, c.EligibleCount)
	s.Equal(1, Sum(cells, geo.LevelDivision).Total)
}

func (s *AggregatorSuite) TestTotalsReconcileAtEveryLevel() {
	donors := s.mixedDonors()
	cells := s.agg.Aggregate(donors, asOf)

	for _, level := range geo.Levels {
		s.Run(string(level), func() {
			s.Equal(len(donors), Sum(cells, level).Total)
		})
	}
}

func (s *AggregatorSuite) TestDivisionIsSumOfDistricts() {
	cells := s.agg.Aggregate(s.mixedDonors(), asOf)

	rolled := make(map[cellKey]Cell)
	for _, c := range Filter(cells, geo.LevelDistrict) {
		k := cellKey{unit: c.Unit.Parent(), group: c.BloodGroup}
		r := rolled[k]
		r.TotalCount += c.TotalCount
		r.EligibleCount += c.EligibleCount
		r.IncompleteCount += c.IncompleteCount
		rolled[k] = r
	}
	divisions := Filter(cells, geo.LevelDivision)
	s.Len(rolled, len(divisions))
	for _, d := range divisions {
		r := rolled[cellKey{unit: d.Unit, group: d.BloodGroup}]
		s.Equal(d.TotalCount, r.TotalCount, "%v %s", d.Unit, d.BloodGroup)
		s.Equal(d.EligibleCount, r.EligibleCount, "%v %s", d.Unit, d.BloodGroup)
		s.Equal(d.IncompleteCount, r.IncompleteCount, "%v %s", d.Unit, d.BloodGroup)
	}
}

func (s *AggregatorSuite) TestCountInvariants() {
	for _, c := range s.agg.Aggregate(s.mixedDonors(), asOf) {
		s.LessOrEqual(c.EligibleCount+c.IncompleteCount, c.TotalCount, "%v %s", c.Unit, c.BloodGroup)
	}
}

func (s *AggregatorSuite) TestOneCellPerUnitAndGroup() {
	seen := make(map[cellKey]bool)
	for _, c := range s.agg.Aggregate(s.mixedDonors(), asOf) {
		k := cellKey{unit: c.Unit, group: c.BloodGroup}
		s.False(seen[k], "duplicate cell %v %s", c.Unit, c.BloodGroup)
		seen[k] = true
	}
}

// =============================================================================
// Counting
// =============================================================================

func (s *AggregatorSuite) TestCounts() {
	cells := s.agg.Aggregate(s.mixedDonors(), asOf)
	savar := geo.Unit{Level: geo.LevelUpazila, Division: "Dhaka", District: "Dhaka", Upazila: "Savar"}

	s.Run("eligible donors are counted", func() {
		c, ok := s.find(cells, savar, models.GroupAPos)
		s.Require().True(ok)
		s.Equal(3, c.TotalCount)
		s.Equal(3, c.EligibleCount)
	})

	s.Run("recent donor is counted but not eligible", func() {
		c, ok := s.find(cells, savar, models.GroupOPos)
		s.Require().True(ok)
		s.Equal(2, c.TotalCount, "incomplete and recent O+ donors")
		s.Equal(0, c.EligibleCount)
		s.Equal(1, c.IncompleteCount)
	})

	s.Run("malformed blood group goes to the unknown bucket", func() {
		c, ok := s.find(cells, savar, models.GroupUnknown)
		s.Require().True(ok)
		s.Equal(1, c.TotalCount)
		s.Equal(1, c.IncompleteCount)
		s.Equal(0, c.EligibleCount)
	})

	s.Run("district hint resolves a shared upazila name", func() {
		c, ok := s.find(cells, geo.Unit{Level: geo.LevelDistrict, Division: "Khulna", District: "Satkhira"}, models.GroupONeg)
		s.Require().True(ok)
		s.Equal(1, c.TotalCount)
	})

	s.Run("ambiguous upazila without a hint is unmapped", func() {
		c, ok := s.find(cells, geo.Unit{Level: geo.LevelDivision, Division: geo.Unmapped}, models.GroupBPos)
		s.Require().True(ok)
		s.Equal(1, c.TotalCount)
	})
}

func (s *AggregatorSuite) TestSparseByDefault() {
	cells := s.agg.Aggregate(nil, asOf)
	s.Empty(cells)
	s.NotNil(cells)
}

func (s *AggregatorSuite) TestDenseGrid() {
	dense := New(nil, WithDenseGrid(geo.LevelDivision, geo.LevelDistrict))

	cells := dense.Aggregate([]models.Donor{testutil.Donor().At("Savar").Build()}, asOf)

	s.Len(Filter(cells, geo.LevelDivision), 8*len(models.BloodGroups))
	s.Len(Filter(cells, geo.LevelDistrict), 64*len(models.BloodGroups))
	s.Len(Filter(cells, geo.LevelUpazila), 1)

	c, ok := s.find(cells, geo.Unit{Level: geo.LevelDistrict, Division: "Khulna", District: "Narail"}, models.GroupABNeg)
	s.Require().True(ok)
	s.Zero(c.TotalCount)
}

func (s *AggregatorSuite) TestOpenDemand() {
	donorID := id.NewDonorID()
	requests := []models.DonationRequest{
		{ID: id.NewRequestID(), BloodGroup: models.GroupONeg, Location: models.Location{Upazila: "Dumuria"}, Status: models.RequestPending},
		{ID: id.NewRequestID(), BloodGroup: models.GroupONeg, Location: models.Location{Upazila: "Dumuria"}, Status: models.RequestScheduled, DonorID: &donorID},
		{ID: id.NewRequestID(), BloodGroup: models.GroupONeg, Location: models.Location{Upazila: "Dumuria"}, Status: models.RequestCompleted},
		{ID: id.NewRequestID(), BloodGroup: models.GroupONeg, Location: models.Location{Upazila: "Dumuria"}, Status: models.RequestCancelled},
	}

	cells := s.agg.AggregateDemand(nil, requests, asOf)

	c, ok := s.find(cells, geo.Unit{Level: geo.LevelDivision, Division: "Khulna"}, models.GroupONeg)
	s.Require().True(ok)
	s.Equal(2, c.OpenRequestCount)
	s.Zero(c.TotalCount)
	s.Equal(2, Sum(cells, geo.LevelUpazila).OpenRequests)
}

func (s *AggregatorSuite) TestPolicyOverride() {
	policy := eligibility.DefaultPolicy
	policy.MinWeightKg = 40
	lenient := New(nil, WithPolicy(policy))
	donor := testutil.Donor().Weight(45).Build()

	strictCells := Filter(s.agg.Aggregate([]models.Donor{donor}, asOf), geo.LevelDivision)
	lenientCells := Filter(lenient.Aggregate([]models.Donor{donor}, asOf), geo.LevelDivision)

	s.Equal(0, strictCells[0].EligibleCount)
	s.Equal(1, lenientCells[0].EligibleCount)
}

func (s *AggregatorSuite) TestConcurrentPasses() {
	donors := s.mixedDonors()
	want := s.agg.Aggregate(donors, asOf)
	SortCells(want)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got := s.agg.Aggregate(donors, asOf)
			SortCells(got)
			s.Equal(want, got)
		}()
	}
	wg.Wait()
}
