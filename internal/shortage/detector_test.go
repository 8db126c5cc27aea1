package shortage

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"donormatch/internal/aggregate"
	"donormatch/internal/donor/models"
	"donormatch/internal/geo"
	"donormatch/pkg/testutil"
)

var asOf = testutil.Date(2024, time.January, 1)

type DetectorSuite struct {
	suite.Suite
	index *geo.Index
	dense *aggregate.Aggregator
}

func TestDetectorSuite(t *testing.T) {
	suite.Run(t, new(DetectorSuite))
}

func (s *DetectorSuite) SetupTest() {
	s.index = geo.Default()
	s.dense = aggregate.New(s.index, aggregate.WithDenseGrid(geo.LevelDivision, geo.LevelDistrict))
}

func (s *DetectorSuite) flagFor(flags []Flag, u geo.Unit, g models.BloodGroup) (Flag, bool) {
	for _, f := range flags {
		if f.Unit == u && f.BloodGroup == g {
			return f, true
		}
	}
	return Flag{}, false
}

// =============================================================================
// Detection
// =============================================================================

func (s *DetectorSuite) TestDivisionAboveThresholdWhileDistrictsAreShort() {
	short := map[string]bool{"Jashore": true, "Khulna": true, "Satkhira": true}
	var donors []models.Donor
	for _, division := range s.index.Divisions() {
		for _, district := range s.index.Districts(division) {
			n := 5
			switch {
			case short[district]:
				n = 2
			case division == "Khulna":
				n = 0
			}
			upazila := s.index.Upazilas(district)[0]
			donors = append(donors, testutil.Donor().In(district, upazila).Group(models.GroupONeg).Donors(n)...)
		}
	}

	flags, err := Detect(s.dense.Aggregate(donors, asOf), Uniform(5))
	s.Require().NoError(err)

	khulna := geo.Unit{Level: geo.LevelDivision, Division: "Khulna"}
	_, flagged := s.flagFor(flags, khulna, models.GroupONeg)
	s.False(flagged, "division total of 6 is above the threshold")

	for district := range short {
		f, ok := s.flagFor(flags, geo.Unit{Level: geo.LevelDistrict, Division: "Khulna", District: district}, models.GroupONeg)
		s.True(ok, district)
		s.Equal(2, f.Count)
		s.Equal(5, f.Threshold)
	}

	_, ok := s.flagFor(flags, geo.Unit{Level: geo.LevelDistrict, Division: "Dhaka", District: "Gazipur"}, models.GroupONeg)
	s.False(ok, "count equal to the threshold is not short")
}

func (s *DetectorSuite) TestFlagIffBelowThreshold() {
	var cells []aggregate.Cell
	for n := range 10 {
		cells = append(cells, aggregate.Cell{
			Unit:          geo.Unit{Level: geo.LevelDistrict, Division: "Dhaka", District: s.index.Districts("Dhaka")[n]},
			BloodGroup:    models.GroupAPos,
			EligibleCount: n,
		})
	}

	for _, threshold := range []int{1, 3, 5, 9} {
		flags, err := Detect(cells, Uniform(threshold))
		s.Require().NoError(err)
		s.Len(flags, threshold, "threshold %d", threshold)
		for _, f := range flags {
			s.Less(f.Count, threshold)
		}
	}
}

func (s *DetectorSuite) TestUnknownGroupIsNeverFlagged() {
	cells := []aggregate.Cell{{
		Unit:       geo.Unit{Level: geo.LevelDivision, Division: geo.Unmapped},
		BloodGroup: models.GroupUnknown,
		TotalCount: 3,
	}}
	flags, err := Detect(cells, DefaultThresholds())
	s.Require().NoError(err)
	s.Empty(flags)
}

func (s *DetectorSuite) TestOverrides() {
	cells := []aggregate.Cell{
		{Unit: geo.Unit{Level: geo.LevelDivision, Division: "Sylhet"}, BloodGroup: models.GroupONeg, EligibleCount: 6},
		{Unit: geo.Unit{Level: geo.LevelDivision, Division: "Sylhet"}, BloodGroup: models.GroupOPos, EligibleCount: 6},
	}
	t := Thresholds{Default: 5, Overrides: map[models.BloodGroup]int{models.GroupONeg: 8}}

	flags, err := Detect(cells, t)
	s.Require().NoError(err)
	s.Require().Len(flags, 1)
	s.Equal(models.GroupONeg, flags[0].BloodGroup)
	s.Equal(8, flags[0].Threshold)
}

func (s *DetectorSuite) TestEmptyInput() {
	flags, err := Detect(nil, DefaultThresholds())
	s.Require().NoError(err)
	s.NotNil(flags)
	s.Empty(flags)
}

// =============================================================================
// Threshold Validation
// =============================================================================

func (s *DetectorSuite) TestNonPositiveThresholdIsRejected() {
	cells := s.dense.Aggregate(nil, asOf)

	for _, threshold := range []int{0, -1} {
		flags, err := Detect(cells, Uniform(threshold))
		s.Require().Error(err)
		s.True(errors.Is(err, ErrInvalidThreshold))
		s.NotNil(flags)
		s.Empty(flags, "threshold %d yields no flags", threshold)
	}
}

func (s *DetectorSuite) TestInvalidOverride() {
	_, err := Detect(nil, Thresholds{Default: 5, Overrides: map[models.BloodGroup]int{models.GroupABNeg: 0}})
	s.ErrorIs(err, ErrInvalidThreshold)

	_, err = Detect(nil, Thresholds{Default: 5, Overrides: map[models.BloodGroup]int{"C+": 3}})
	s.Error(err)
}

func TestParseOverrides(t *testing.T) {
	got, err := ParseOverrides(" O-=8, ab+ = 3,,")
	require.NoError(t, err)
	assert.Equal(t, map[models.BloodGroup]int{models.GroupONeg: 8, models.GroupABPos: 3}, got)

	got, err = ParseOverrides("")
	require.NoError(t, err)
	assert.Empty(t, got)

	for _, bad := range []string{"O-", "Q+=3", "O-=many"} {
		_, err := ParseOverrides(bad)
		assert.Error(t, err, bad)
	}
}

func TestSort(t *testing.T) {
	flags := []Flag{
		{Unit: geo.Unit{Level: geo.LevelDistrict, Division: "Dhaka", District: "Gazipur"}, BloodGroup: models.GroupONeg},
		{Unit: geo.Unit{Level: geo.LevelDivision, Division: geo.Unmapped}, BloodGroup: models.GroupAPos},
		{Unit: geo.Unit{Level: geo.LevelDivision, Division: "Dhaka"}, BloodGroup: models.GroupONeg},
		{Unit: geo.Unit{Level: geo.LevelDivision, Division: "Dhaka"}, BloodGroup: models.GroupAPos},
	}
	Sort(flags)

	assert.Equal(t, "Dhaka", flags[0].Unit.Name())
	assert.Equal(t, models.GroupAPos, flags[0].BloodGroup)
	assert.Equal(t, models.GroupONeg, flags[1].BloodGroup)
	assert.Equal(t, geo.Unmapped, flags[2].Unit.Name())
	assert.Equal(t, "Gazipur", flags[3].Unit.Name())
}
