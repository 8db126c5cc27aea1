package eligibility

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"donormatch/pkg/testutil"
)

var asOf = testutil.Date(2024, time.January, 1)

func TestEvaluate_Scenarios(t *testing.T) {
	t.Run("young donor under the weight floor", func(t *testing.T) {
		donor := testutil.Donor().BornOn(testutil.Date(2005, time.June, 15)).Weight(45).Build()

		result := Evaluate(donor, asOf)

		assert.False(t, result.IsEligible)
		assert.Equal(t, ReasonUnderweight, result.Reason)
		assert.Nil(t, result.NextEligibleDate)
	})

	t.Run("past donation outside the interval", func(t *testing.T) {
		donor := testutil.Donor().
			BornOn(testutil.Date(1990, time.January, 1)).
			Weight(70).
			LastDonated(testutil.Date(2023, time.August, 1)).
			Build()

		result := Evaluate(donor, asOf)

		assert.True(t, result.IsEligible)
		assert.Equal(t, ReasonEligible, result.Reason)
		assert.Nil(t, result.NextEligibleDate)
	})
}

func TestEvaluate_RulePriority(t *testing.T) {
	tests := []struct {
		name   string
		build  func() *testutil.DonorBuilder
		reason Reason
	}{
		{
			name:   "missing date of birth",
			build:  func() *testutil.DonorBuilder { return testutil.Donor().BornOn(time.Time{}) },
			reason: ReasonIncompleteProfile,
		},
		{
			name:   "missing weight",
			build:  func() *testutil.DonorBuilder { return testutil.Donor().Weight(0) },
			reason: ReasonIncompleteProfile,
		},
		{
			name: "age is checked before weight",
			build: func() *testutil.DonorBuilder {
				return testutil.Donor().BornOn(testutil.Date(2010, time.March, 1)).Weight(30)
			},
			reason: ReasonAgeOutOfRange,
		},
		{
			name: "weight is checked before the interval",
			build: func() *testutil.DonorBuilder {
				return testutil.Donor().Weight(40).LastDonated(asOf.AddDate(0, 0, -10))
			},
			reason: ReasonUnderweight,
		},
		{
			name: "interval",
			build: func() *testutil.DonorBuilder {
				return testutil.Donor().LastDonated(asOf.AddDate(0, 0, -10))
			},
			reason: ReasonTooSoonSinceLastDonation,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Evaluate(tt.build().Build(), asOf)
			assert.False(t, result.IsEligible)
			assert.Equal(t, tt.reason, result.Reason)
		})
	}
}

func TestEvaluate_AgeBoundaries(t *testing.T) {
	tests := []struct {
		name     string
		born     time.Time
		eligible bool
	}{
		{"turns 18 today", testutil.Date(2006, time.January, 1), true},
		{"turns 18 tomorrow", testutil.Date(2006, time.January, 2), false},
		{"60 years old", testutil.Date(1963, time.June, 15), true},
		{"61 years old", testutil.Date(1963, time.January, 1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Evaluate(testutil.Donor().BornOn(tt.born).Build(), asOf)
			assert.Equal(t, tt.eligible, result.IsEligible)
			if !tt.eligible {
				assert.Equal(t, ReasonAgeOutOfRange, result.Reason)
			}
		})
	}
}

func TestEvaluate_UnderweightNeverEligible(t *testing.T) {
	for _, kg := range []float64{0.1, 10, 30, 45, 49, 49.99} {
		result := Evaluate(testutil.Donor().Weight(kg).Build(), asOf)
		assert.False(t, result.IsEligible, "weight %v", kg)
		assert.Equal(t, ReasonUnderweight, result.Reason, "weight %v", kg)
	}

	result := Evaluate(testutil.Donor().Weight(50).Build(), asOf)
	assert.True(t, result.IsEligible, "50 kg is the floor, inclusive")
}

func TestEvaluate_DonationInterval(t *testing.T) {
	t.Run("exactly 120 days is eligible", func(t *testing.T) {
		last := testutil.Date(2023, time.September, 3)
		require.Equal(t, 120, DaysBetween(last, asOf))

		result := Evaluate(testutil.Donor().LastDonated(last).Build(), asOf)
		assert.True(t, result.IsEligible)
		assert.Nil(t, result.NextEligibleDate)
	})

	t.Run("119 days is too soon", func(t *testing.T) {
		last := testutil.Date(2023, time.September, 4)

		result := Evaluate(testutil.Donor().LastDonated(last).Build(), asOf)
		assert.False(t, result.IsEligible)
		assert.Equal(t, ReasonTooSoonSinceLastDonation, result.Reason)
		require.NotNil(t, result.NextEligibleDate)
		assert.Equal(t, last.AddDate(0, 0, 120), *result.NextEligibleDate)
		assert.Equal(t, testutil.Date(2024, time.January, 2), *result.NextEligibleDate)
	})

	t.Run("time of day is ignored", func(t *testing.T) {
		last := time.Date(2023, time.September, 3, 23, 59, 0, 0, time.UTC)
		now := time.Date(2024, time.January, 1, 0, 1, 0, 0, time.UTC)

		assert.True(t, Evaluate(testutil.Donor().LastDonated(last).Build(), now).IsEligible)
	})

	t.Run("next date is always after asOf", func(t *testing.T) {
		for days := 0; days < 120; days++ {
			result := Evaluate(testutil.Donor().LastDonated(asOf.AddDate(0, 0, -days)).Build(), asOf)
			require.NotNil(t, result.NextEligibleDate, "days=%d", days)
			assert.True(t, result.NextEligibleDate.After(asOf), "days=%d", days)
		}
	})
}

func TestPolicy_Custom(t *testing.T) {
	p := Policy{MinAge: 17, MaxAge: 65, MinWeightKg: 45, MinDonationInterval: 90}

	donor := testutil.Donor().
		BornOn(testutil.Date(2006, time.June, 1)).
		Weight(47).
		LastDonated(asOf.AddDate(0, 0, -90)).
		Build()

	assert.True(t, p.Evaluate(donor, asOf).IsEligible)
	assert.False(t, Evaluate(donor, asOf).IsEligible)
}

func TestAgeOn(t *testing.T) {
	born := testutil.Date(2000, time.February, 29)
	assert.Equal(t, 23, AgeOn(born, testutil.Date(2024, time.February, 28)))
	assert.Equal(t, 24, AgeOn(born, testutil.Date(2024, time.February, 29)))
	assert.Equal(t, 22, AgeOn(born, testutil.Date(2023, time.February, 28)))
	assert.Equal(t, 23, AgeOn(born, testutil.Date(2023, time.March, 1)))
}
