package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    VerificationStatus
		to      VerificationStatus
		allowed bool
	}{
		{"unverified to pending", StatusUnverified, StatusPending, true},
		{"unverified to approved", StatusUnverified, StatusApproved, false},
		{"unverified to rejected", StatusUnverified, StatusRejected, false},
		{"pending to approved", StatusPending, StatusApproved, true},
		{"pending to rejected", StatusPending, StatusRejected, true},
		{"pending to pending", StatusPending, StatusPending, false},
		{"pending to unverified", StatusPending, StatusUnverified, false},
		{"rejected to pending", StatusRejected, StatusPending, true},
		{"rejected to approved", StatusRejected, StatusApproved, false},
		{"approved is terminal", StatusApproved, StatusPending, false},
		{"approved to rejected", StatusApproved, StatusRejected, false},
		{"approved to unverified", StatusApproved, StatusUnverified, false},
		{"unknown from", VerificationStatus("bogus"), StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.to))
		})
	}
}

func TestVerificationStatusIsValid(t *testing.T) {
	for _, s := range []VerificationStatus{StatusUnverified, StatusPending, StatusApproved, StatusRejected} {
		assert.True(t, s.IsValid())
	}
	assert.False(t, VerificationStatus("").IsValid())
	assert.False(t, VerificationStatus("verified").IsValid())
}

func TestVerificationStatusIsTerminal(t *testing.T) {
	assert.True(t, StatusApproved.IsTerminal())
	assert.False(t, StatusRejected.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusUnverified.IsTerminal())
}

func TestDoctorVisibility(t *testing.T) {
	d := &Doctor{Status: StatusPending}
	assert.False(t, d.IsApproved())
	assert.True(t, d.IsActionable())

	d.Status = StatusApproved
	assert.True(t, d.IsApproved())
	assert.False(t, d.IsActionable())
}

func TestIsValidSpecialty(t *testing.T) {
	assert.True(t, IsValidSpecialty("Cardiology"))
	assert.True(t, IsValidSpecialty("Other"))
	assert.False(t, IsValidSpecialty("cardiology"))
	assert.False(t, IsValidSpecialty(""))
	assert.False(t, IsValidSpecialty("Astrology"))
}

func TestIsValidExperienceBucket(t *testing.T) {
	for _, b := range ExperienceBuckets {
		assert.True(t, IsValidExperienceBucket(b))
	}
	assert.False(t, IsValidExperienceBucket("3"))
	assert.False(t, IsValidExperienceBucket("21+"))
	assert.False(t, IsValidExperienceBucket(""))
}
