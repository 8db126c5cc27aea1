package dashboard

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"donormatch/internal/donor/models"
	"donormatch/pkg/testutil"
)

func TestPercent(t *testing.T) {
	tests := []struct {
		part, whole int
		want        string
	}{
		{1, 3, "33.33"},
		{2, 3, "66.67"},
		{1, 8, "12.5"},
		{1, 200, "0.5"},
		{1, 800, "0.13"},
		{0, 5, "0"},
		{5, 0, "0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Percent(tt.part, tt.whole).String(), "%d/%d", tt.part, tt.whole)
	}
}

func TestDistribution(t *testing.T) {
	var donors []models.Donor
	donors = append(donors, testutil.Donor().Group(models.GroupOPos).Donors(3)...)
	donors = append(donors, testutil.Donor().Group(models.GroupANeg).Donors(2)...)
	donors = append(donors, testutil.Donor().Group(models.GroupABNeg).Build())
	donors = append(donors, testutil.Donor().Group("").Build())

	shares := Distribution(donors)

	t.Run("all groups present in display order", func(t *testing.T) {
		require.Len(t, shares, len(models.BloodGroups)+1)
		for i, g := range models.BloodGroups {
			assert.Equal(t, g, shares[i].BloodGroup)
		}
		assert.Equal(t, models.GroupUnknown, shares[len(shares)-1].BloodGroup)
	})

	t.Run("counts and shares", func(t *testing.T) {
		byGroup := make(map[models.BloodGroup]GroupShare)
		for _, s := range shares {
			byGroup[s.BloodGroup] = s
		}
		assert.Equal(t, 3, byGroup[models.GroupOPos].Count)
		assert.Equal(t, "42.86", byGroup[models.GroupOPos].Percent.String())
		assert.Equal(t, "28.57", byGroup[models.GroupANeg].Percent.String())
		assert.Equal(t, "14.29", byGroup[models.GroupABNeg].Percent.String())
		assert.Equal(t, "14.29", byGroup[models.GroupUnknown].Percent.String())
		assert.True(t, byGroup[models.GroupBPos].Percent.IsZero())
	})

	t.Run("shares sum to 100 within rounding", func(t *testing.T) {
		diff := SumPercent(shares).Sub(decimal.NewFromInt(100)).Abs()
		tolerance := decimal.New(1, -PercentPlaces).Mul(decimal.NewFromInt(int64(len(shares) - 1)))
		assert.True(t, diff.LessThanOrEqual(tolerance), "diff %s", diff)
	})
}

func TestDistribution_NoUnknownRowWhenClean(t *testing.T) {
	shares := Distribution(testutil.Donor().Donors(4))
	assert.Len(t, shares, len(models.BloodGroups))
	assert.Equal(t, "100", SumPercent(shares).String())
}

func TestDistribution_Empty(t *testing.T) {
	shares := Distribution(nil)
	require.Len(t, shares, len(models.BloodGroups))
	for _, s := range shares {
		assert.Zero(t, s.Count)
		assert.True(t, s.Percent.IsZero())
	}
}
