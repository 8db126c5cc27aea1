package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"donormatch/internal/availability"
	"donormatch/internal/dashboard"
	"donormatch/internal/donor/models"
	"donormatch/internal/eligibility"
	"donormatch/internal/engine"
	"donormatch/internal/geo"
	"donormatch/internal/refresh"
	id "donormatch/pkg/domain"
	"donormatch/pkg/requestcontext"
	"donormatch/pkg/testutil"
)

type staticReports struct {
	report *engine.Report
}

func (s staticReports) Latest() (*engine.Report, error) {
	if s.report == nil {
		return nil, refresh.ErrNoReport
	}
	return s.report, nil
}

type HandlerSuite struct {
	suite.Suite
	asOf   time.Time
	recent models.Donor
	report *engine.Report
	router chi.Router
	svc    *engine.Service
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.asOf = testutil.Date(2024, time.March, 1)

	var err error
	s.svc, err = engine.New()
	s.Require().NoError(err)

	s.recent = testutil.Donor().LastDonated(testutil.Date(2024, time.January, 1)).Build()
	donors := append(testutil.Donor().Donors(3), s.recent)

	completed := func(at time.Time) models.DonationRequest {
		return models.DonationRequest{
			ID:          id.NewRequestID(),
			BloodGroup:  models.GroupOPos,
			Location:    models.Location{District: "Dhaka", Upazila: "Savar"},
			Status:      models.RequestCompleted,
			CreatedAt:   at.AddDate(0, 0, -3),
			CompletedAt: &at,
		}
	}
	requests := []models.DonationRequest{
		completed(testutil.Date(2024, time.January, 5)),
		completed(testutil.Date(2024, time.February, 10)),
		{
			ID:         id.NewRequestID(),
			BloodGroup: models.GroupOPos,
			Location:   models.Location{District: "Dhaka", Upazila: "Savar"},
			Status:     models.RequestPending,
			CreatedAt:  testutil.Date(2024, time.February, 20),
		},
	}

	s.report, err = s.svc.BuildReport(context.Background(), engine.Snapshot{Donors: donors, Requests: requests}, s.asOf)
	s.Require().NoError(err)
	s.mount(staticReports{report: s.report})
}

func (s *HandlerSuite) mount(reports Reports) {
	h := New(reports, s.svc, WithClock(func() time.Time { return s.asOf }))
	s.router = chi.NewRouter()
	h.Register(s.router)
}

func (s *HandlerSuite) get(path string) *http.Request {
	return testutil.NewRequest(s.T(), http.MethodGet, path)
}

// =============================================================================
// Inventory
// =============================================================================

func (s *HandlerSuite) TestSummary() {
	rr := testutil.DoRequest(s.router, s.get("/inventory/summary"))
	testutil.AssertStatusOK(s.T(), rr)

	resp := testutil.UnmarshalResponse[SummaryResponse](s.T(), rr)
	s.Equal(4, resp.Totals.Total)
	s.Equal(3, resp.Totals.Eligible)
	s.Equal(1, resp.Totals.OpenRequests)
	s.True(resp.AsOf.Equal(s.asOf))
}

func (s *HandlerSuite) TestDistribution() {
	s.Run("defaults to division level", func() {
		rr := testutil.DoRequest(s.router, s.get("/inventory/distribution"))
		testutil.AssertStatusOK(s.T(), rr)

		resp := testutil.UnmarshalResponse[DistributionResponse](s.T(), rr)
		s.Equal(geo.LevelDivision, resp.Level)
		s.Require().Len(resp.Cells, 1)
		s.Equal("Dhaka", resp.Cells[0].Unit.Division)
	})

	s.Run("district level", func() {
		rr := testutil.DoRequest(s.router, s.get("/inventory/distribution?level=District"))
		testutil.AssertStatusOK(s.T(), rr)

		resp := testutil.UnmarshalResponse[DistributionResponse](s.T(), rr)
		s.Equal(geo.LevelDistrict, resp.Level)
		s.Require().Len(resp.Cells, 1)
		cell := resp.Cells[0]
		s.Equal("Dhaka", cell.Unit.District)
		s.Equal(models.GroupOPos, cell.BloodGroup)
		s.Equal(4, cell.TotalCount)
		s.Equal(3, cell.EligibleCount)
		s.Equal(1, cell.OpenRequestCount)
	})

	s.Run("unknown level is rejected", func() {
		rr := testutil.DoRequest(s.router, s.get("/inventory/distribution?level=village"))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})
}

func (s *HandlerSuite) TestShortages() {
	s.Run("all levels", func() {
		rr := testutil.DoRequest(s.router, s.get("/inventory/shortages"))
		testutil.AssertStatusOK(s.T(), rr)

		resp := testutil.UnmarshalResponse[ShortagesResponse](s.T(), rr)
		s.Len(resp.Shortages, len(s.report.Shortages))
		s.Equal(5, resp.Thresholds.Default)
	})

	s.Run("filtered to districts", func() {
		rr := testutil.DoRequest(s.router, s.get("/inventory/shortages?level=district"))
		testutil.AssertStatusOK(s.T(), rr)

		resp := testutil.UnmarshalResponse[ShortagesResponse](s.T(), rr)
		s.Require().NotEmpty(resp.Shortages)
		for _, f := range resp.Shortages {
			s.Equal(geo.LevelDistrict, f.Unit.Level)
		}
	})
}

func (s *HandlerSuite) TestFunnelAndBloodGroups() {
	rr := testutil.DoRequest(s.router, s.get("/inventory/funnel"))
	testutil.AssertStatusOK(s.T(), rr)
	funnel := testutil.UnmarshalResponse[FunnelResponse](s.T(), rr)
	s.Require().NotEmpty(funnel.Stages)
	s.Equal(4, funnel.Stages[0].Count)

	rr = testutil.DoRequest(s.router, s.get("/inventory/blood-groups"))
	testutil.AssertStatusOK(s.T(), rr)
	groups := testutil.UnmarshalResponse[BloodGroupsResponse](s.T(), rr)
	s.Len(groups.Shares, len(models.BloodGroups))
	for _, share := range groups.Shares {
		if share.BloodGroup == models.GroupOPos {
			s.Equal("100", share.Percent.String())
		}
	}
}

func (s *HandlerSuite) TestTrends() {
	s.Run("monthly completions by default", func() {
		rr := testutil.DoRequest(s.router, s.get("/inventory/trends"))
		testutil.AssertStatusOK(s.T(), rr)

		resp := testutil.UnmarshalResponse[TrendsResponse](s.T(), rr)
		s.Equal(dashboard.GranularityMonth, resp.Granularity)
		s.Equal("completions", resp.Series)
		s.Require().Len(resp.Buckets, 12)
		total := 0
		for _, b := range resp.Buckets {
			total += b.Count
		}
		s.Equal(2, total)
	})

	s.Run("request series over an explicit range", func() {
		rr := testutil.DoRequest(s.router, s.get("/inventory/trends?series=requests&granularity=month&from=2024-01-01&to=2024-02-29"))
		testutil.AssertStatusOK(s.T(), rr)

		resp := testutil.UnmarshalResponse[TrendsResponse](s.T(), rr)
		s.Require().Len(resp.Buckets, 2)
		s.Equal(1, resp.Buckets[0].Count)
		s.Equal(2, resp.Buckets[1].Count)
	})

	s.Run("month-end range still covers twelve months", func() {
		rr := testutil.DoRequest(s.router, s.get("/inventory/trends?to=2024-03-31"))
		testutil.AssertStatusOK(s.T(), rr)

		resp := testutil.UnmarshalResponse[TrendsResponse](s.T(), rr)
		s.Require().Len(resp.Buckets, 12)
		s.Equal(testutil.Date(2023, time.April, 1), resp.Buckets[0].Start.UTC())
		s.Equal(testutil.Date(2024, time.March, 1), resp.Buckets[11].Start.UTC())
	})

	s.Run("invalid queries", func() {
		for _, q := range []string{
			"granularity=year",
			"series=donors",
			"from=01-01-2024",
			"from=2024-03-01&to=2024-01-01",
		} {
			rr := testutil.DoRequest(s.router, s.get("/inventory/trends?"+q))
			testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
		}
	})
}

func (s *HandlerSuite) TestNotLoadedYet() {
	s.mount(staticReports{})

	rr := testutil.DoRequest(s.router, s.get("/inventory/summary"))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusServiceUnavailable, "unavailable")
}

// =============================================================================
// Donor eligibility
// =============================================================================

func (s *HandlerSuite) TestDonorEligibility() {
	s.Run("recent donor is not yet eligible", func() {
		rr := testutil.DoRequest(s.router, s.get("/donors/"+s.recent.ID.String()+"/eligibility"))
		testutil.AssertStatusOK(s.T(), rr)

		resp := testutil.UnmarshalResponse[EligibilityResponse](s.T(), rr)
		s.Equal(s.recent.ID, resp.DonorID)
		s.False(resp.IsEligible)
		s.Equal(eligibility.ReasonTooSoonSinceLastDonation, resp.Reason)
		s.Require().NotNil(resp.NextEligibleDate)
		s.True(resp.NextEligibleDate.Equal(testutil.Date(2024, time.April, 30)))
		s.Equal(availability.StatusUnavailable, resp.Status)
	})

	s.Run("unknown donor", func() {
		rr := testutil.DoRequest(s.router, s.get("/donors/"+id.NewDonorID().String()+"/eligibility"))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
	})

	s.Run("malformed id", func() {
		rr := testutil.DoRequest(s.router, s.get("/donors/not-a-uuid/eligibility"))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})
}

func (s *HandlerSuite) TestDonorEligibilityUsesRequestTime() {
	req := s.get("/donors/" + s.recent.ID.String() + "/eligibility")
	req = req.WithContext(requestcontext.WithTime(req.Context(), testutil.Date(2024, time.May, 1)))

	rr := testutil.DoRequest(s.router, req)
	testutil.AssertStatusOK(s.T(), rr)

	resp := testutil.UnmarshalResponse[EligibilityResponse](s.T(), rr)
	s.True(resp.IsEligible)
	s.Equal(availability.StatusEligible, resp.Status)
}

func (s *HandlerSuite) TestDonorEligibilityDirect() {
	h := New(staticReports{report: s.report}, s.svc, WithClock(func() time.Time { return s.asOf }))
	req := testutil.WithURLParam(s.get("/donors/x/eligibility"), "donorID", s.recent.ID.String())

	rr := httptest.NewRecorder()
	h.HandleDonorEligibility(rr, req)

	testutil.AssertStatusOK(s.T(), rr)
	testutil.AssertJSONHasKey(s.T(), rr, "next_eligible_date")
}
