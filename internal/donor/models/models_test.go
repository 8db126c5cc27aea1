package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "donormatch/pkg/domain-errors"
)

func TestParseBloodGroup(t *testing.T) {
	tests := map[string]BloodGroup{
		"O-":          GroupONeg,
		" ab+ ":       GroupABPos,
		"o neg":       GroupONeg,
		"A positive":  GroupAPos,
		"B+ve":        GroupBPos,
		"AB Negative": GroupABNeg,
	}
	for in, want := range tests {
		got, err := ParseBloodGroup(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, bad := range []string{"", "C+", "O", "A++"} {
		_, err := ParseBloodGroup(bad)
		require.Error(t, err, bad)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	}
}

func TestCanDonateTo(t *testing.T) {
	for _, recipient := range BloodGroups {
		assert.True(t, GroupONeg.CanDonateTo(recipient), "O- gives to %s", recipient)
		assert.True(t, recipient.CanDonateTo(GroupABPos), "%s gives to AB+", recipient)
	}
	assert.False(t, GroupAPos.CanDonateTo(GroupANeg))
	assert.False(t, GroupBNeg.CanDonateTo(GroupANeg))
	assert.True(t, GroupANeg.CanDonateTo(GroupABNeg))
	assert.False(t, GroupABNeg.CanDonateTo(GroupONeg))
	assert.False(t, GroupUnknown.CanDonateTo(GroupABPos))
}

func TestDonorClone(t *testing.T) {
	last := time.Date(2023, time.May, 1, 0, 0, 0, 0, time.UTC)
	d := Donor{LastDonationDate: &last, ActiveBooking: &Booking{State: BookingBooked}}

	c := d.Clone()
	*c.LastDonationDate = last.AddDate(1, 0, 0)
	c.ActiveBooking.State = BookingInProgress

	assert.Equal(t, last, *d.LastDonationDate)
	assert.Equal(t, BookingBooked, d.ActiveBooking.State)
}

func TestHasCompleteProfile(t *testing.T) {
	d := Donor{DateOfBirth: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC), WeightKg: 60}
	assert.True(t, d.HasCompleteProfile())

	d.WeightKg = 0
	assert.False(t, d.HasCompleteProfile())

	d.WeightKg = 60
	d.DateOfBirth = time.Time{}
	assert.False(t, d.HasCompleteProfile())
}

func TestRequestStatus_IsOpen(t *testing.T) {
	assert.True(t, RequestPending.IsOpen())
	assert.True(t, RequestInProgress.IsOpen())
	assert.False(t, RequestCompleted.IsOpen())
	assert.False(t, RequestCancelled.IsOpen())
}
