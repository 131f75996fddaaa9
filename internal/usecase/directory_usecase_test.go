package usecase

import (
	"context"
	"testing"
	"time"

	"medfi-backend/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDirectoryUsecase(t *testing.T, repo *fakeDoctorRepo) *directoryUsecase {
	return &directoryUsecase{
		db:         newTestDB(t),
		log:        newTestLogger(),
		doctorRepo: repo,
		now: func() time.Time {
			return time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
		},
	}
}

func TestListApprovedFiltersStatus(t *testing.T) {
	repo := &fakeDoctorRepo{doctors: []entity.Doctor{
		{WalletAddress: "0xa", Status: entity.StatusApproved, Specialty: "Cardiology"},
		{WalletAddress: "0xb", Status: entity.StatusPending, Specialty: "Cardiology"},
		{WalletAddress: "0xc", Status: entity.StatusApproved, Specialty: "Neurology"},
	}}
	u := newTestDirectoryUsecase(t, repo)

	list, err := u.ListApproved(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 2, list.Total)

	list, err = u.ListApproved(context.Background(), "Neurology")
	require.NoError(t, err)
	require.Equal(t, 1, list.Total)
	assert.Equal(t, "0xc", list.Doctors[0].WalletAddress)
}

func TestGetApprovedByAddressHidesUnapproved(t *testing.T) {
	repo := &fakeDoctorRepo{doctors: []entity.Doctor{
		{WalletAddress: "0xpending", Status: entity.StatusPending},
	}}
	u := newTestDirectoryUsecase(t, repo)

	// A pending record and a missing one look identical from outside.
	_, err := u.GetApprovedByAddress(context.Background(), "0xpending")
	assert.ErrorIs(t, err, ErrDoctorNotFound)

	_, err = u.GetApprovedByAddress(context.Background(), "0xmissing")
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestGetApprovedByAddressRelated(t *testing.T) {
	repo := &fakeDoctorRepo{doctors: []entity.Doctor{
		{WalletAddress: "0xa", Status: entity.StatusApproved, Specialty: "Cardiology"},
		{WalletAddress: "0xb", Status: entity.StatusApproved, Specialty: "Cardiology"},
		{WalletAddress: "0xc", Status: entity.StatusApproved, Specialty: "Cardiology"},
		{WalletAddress: "0xd", Status: entity.StatusApproved, Specialty: "Cardiology"},
		{WalletAddress: "0xe", Status: entity.StatusApproved, Specialty: "Cardiology"},
		{WalletAddress: "0xf", Status: entity.StatusApproved, Specialty: "Neurology"},
	}}
	u := newTestDirectoryUsecase(t, repo)

	detail, err := u.GetApprovedByAddress(context.Background(), "0xa")
	require.NoError(t, err)

	require.Len(t, detail.Related, relatedDoctorsLimit)
	for _, card := range detail.Related {
		assert.NotEqual(t, "0xa", card.WalletAddress)
		assert.Equal(t, "Cardiology", card.Specialty)
	}
}

func TestBookingSlotsRequiresApproval(t *testing.T) {
	repo := &fakeDoctorRepo{doctors: []entity.Doctor{
		{WalletAddress: "0xrejected", Status: entity.StatusRejected},
	}}
	u := newTestDirectoryUsecase(t, repo)

	_, err := u.BookingSlots(context.Background(), "0xrejected")
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestBuildBookingSlots(t *testing.T) {
	now := time.Date(2026, 3, 2, 15, 30, 0, 0, time.UTC) // a Monday

	slots := buildBookingSlots(now)

	require.Len(t, slots.Dates, 7)
	assert.Equal(t, "Mon", slots.Dates[0].Day)
	assert.Equal(t, "2026-03-02", slots.Dates[0].FullDate)
	assert.Equal(t, "Sun", slots.Dates[6].Day)
	assert.Equal(t, "2026-03-08", slots.Dates[6].FullDate)

	require.Len(t, slots.Times, 20)
	assert.Equal(t, "08:00 AM", slots.Times[0])
	assert.Equal(t, "08:30 AM", slots.Times[1])
	assert.Equal(t, "12:00 PM", slots.Times[8])
	assert.Equal(t, "05:30 PM", slots.Times[19])
}

func TestBuildBookingSlotsCrossesMonthBoundary(t *testing.T) {
	now := time.Date(2026, 2, 27, 0, 0, 0, 0, time.UTC)

	slots := buildBookingSlots(now)

	require.Len(t, slots.Dates, 7)
	assert.Equal(t, 2, slots.Dates[0].Month)
	assert.Equal(t, 3, slots.Dates[6].Month)
	assert.Equal(t, "2026-03-05", slots.Dates[6].FullDate)
}

func TestBookingPrefill(t *testing.T) {
	repo := &fakeDoctorRepo{doctors: []entity.Doctor{
		{
			WalletAddress:   "0xa",
			Status:          entity.StatusApproved,
			FirstName:       "Jane",
			LastName:        "Doe",
			Specialty:       "Cardiology",
			ConsultationFee: "80",
		},
	}}
	u := newTestDirectoryUsecase(t, repo)

	prefill, err := u.BookingPrefill(context.Background(), "0xa", "2026-03-05", "09:30 AM")
	require.NoError(t, err)

	assert.Equal(t, "0xa", prefill.DoctorID)
	assert.Equal(t, "Jane Doe", prefill.DoctorName)
	assert.Equal(t, "Cardiology", prefill.Specialty)
	assert.Equal(t, "2026-03-05", prefill.Date)
	assert.Equal(t, "09:30 AM", prefill.Time)
	assert.Equal(t, "80", prefill.Fee)
}

func TestBookingPrefillDefaultFee(t *testing.T) {
	repo := &fakeDoctorRepo{doctors: []entity.Doctor{
		{WalletAddress: "0xa", Status: entity.StatusApproved, FirstName: "Jane", LastName: "Doe"},
	}}
	u := newTestDirectoryUsecase(t, repo)

	prefill, err := u.BookingPrefill(context.Background(), "0xa", "", "")
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultConsultationFee, prefill.Fee)
}
