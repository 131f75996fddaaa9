package usecase

import (
	"context"
	"testing"

	"medfi-backend/internal/delivery/dto"
	"medfi-backend/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func professionalReq(specialty, years string) *dto.ProfessionalStepRequest {
	return &dto.ProfessionalStepRequest{
		Specialty:       specialty,
		LicenseNumber:   "LIC-1",
		YearsExperience: years,
		Hospital:        "General",
		Bio:             "bio",
	}
}

func completeDoctor(status entity.VerificationStatus) entity.Doctor {
	return entity.Doctor{
		WalletAddress:   "0xdoc",
		FirstName:       "Jane",
		LastName:        "Doe",
		Email:           "jane@example.com",
		Phone:           "+123456",
		Country:         "Canada",
		ProfileImage:    "https://cdn.example/p.jpg",
		Specialty:       "Cardiology",
		LicenseNumber:   "LIC-1",
		YearsExperience: "6-10",
		Hospital:        "General",
		Bio:             "bio",
		IDDocument:      "https://cdn.example/id.jpg",
		SelfieImage:     "https://cdn.example/s.jpg",
		Status:          status,
	}
}

func TestStepCompletion(t *testing.T) {
	assert.False(t, PersonalStepComplete(nil))
	assert.False(t, ProfessionalStepComplete(nil))
	assert.False(t, VerificationStepComplete(nil))

	d := completeDoctor(entity.StatusUnverified)
	assert.True(t, PersonalStepComplete(&d))
	assert.True(t, ProfessionalStepComplete(&d))
	assert.True(t, VerificationStepComplete(&d))

	// Any missing field blocks its step, never a neighbor's.
	partial := completeDoctor(entity.StatusUnverified)
	partial.Phone = ""
	assert.False(t, PersonalStepComplete(&partial))
	assert.True(t, ProfessionalStepComplete(&partial))

	partial = completeDoctor(entity.StatusUnverified)
	partial.Bio = ""
	assert.False(t, ProfessionalStepComplete(&partial))
	assert.True(t, VerificationStepComplete(&partial))

	partial = completeDoctor(entity.StatusUnverified)
	partial.SelfieImage = ""
	assert.False(t, VerificationStepComplete(&partial))
	assert.True(t, PersonalStepComplete(&partial))
}

func newTestOnboardingUsecase(t *testing.T, repo *fakeDoctorRepo) *onboardingUsecase {
	return &onboardingUsecase{
		db:         newTestDB(t),
		log:        newTestLogger(),
		doctorRepo: repo,
	}
}

func TestGetApplicationAbsentRecord(t *testing.T) {
	u := newTestOnboardingUsecase(t, &fakeDoctorRepo{})

	app, err := u.GetApplication(context.Background(), "0xnew")
	require.NoError(t, err)

	assert.Equal(t, "0xnew", app.Doctor.WalletAddress)
	assert.Equal(t, string(entity.StatusUnverified), app.Doctor.Status)
	assert.False(t, app.Steps.Personal)
	assert.False(t, app.Steps.Professional)
	assert.False(t, app.Steps.Verification)
	assert.False(t, app.CanSubmit)
}

func TestGetApplicationCanSubmit(t *testing.T) {
	for _, tt := range []struct {
		status    entity.VerificationStatus
		canSubmit bool
	}{
		{entity.StatusUnverified, true},
		{entity.StatusRejected, true},
		{entity.StatusPending, false},
		{entity.StatusApproved, false},
	} {
		d := completeDoctor(tt.status)
		u := newTestOnboardingUsecase(t, &fakeDoctorRepo{doctors: []entity.Doctor{d}})

		app, err := u.GetApplication(context.Background(), d.WalletAddress)
		require.NoError(t, err)
		assert.Equal(t, tt.canSubmit, app.CanSubmit, "status %s", tt.status)
	}
}

func TestSubmitGuards(t *testing.T) {
	t.Run("no record", func(t *testing.T) {
		u := newTestOnboardingUsecase(t, &fakeDoctorRepo{})
		_, err := u.Submit(context.Background(), "0xnew")
		assert.ErrorIs(t, err, ErrApplicationIncomplete)
	})

	t.Run("incomplete steps", func(t *testing.T) {
		d := completeDoctor(entity.StatusUnverified)
		d.IDDocument = ""
		u := newTestOnboardingUsecase(t, &fakeDoctorRepo{doctors: []entity.Doctor{d}})

		_, err := u.Submit(context.Background(), d.WalletAddress)
		assert.ErrorIs(t, err, ErrApplicationIncomplete)
	})

	t.Run("already pending", func(t *testing.T) {
		d := completeDoctor(entity.StatusPending)
		u := newTestOnboardingUsecase(t, &fakeDoctorRepo{doctors: []entity.Doctor{d}})

		_, err := u.Submit(context.Background(), d.WalletAddress)
		assert.ErrorIs(t, err, ErrAlreadyUnderReview)
	})

	t.Run("already approved", func(t *testing.T) {
		d := completeDoctor(entity.StatusApproved)
		u := newTestOnboardingUsecase(t, &fakeDoctorRepo{doctors: []entity.Doctor{d}})

		_, err := u.Submit(context.Background(), d.WalletAddress)
		assert.ErrorIs(t, err, ErrAlreadyApproved)
	})
}

func TestSaveProfessionalRejectsUnknownOptions(t *testing.T) {
	u := newTestOnboardingUsecase(t, &fakeDoctorRepo{})

	_, err := u.SaveProfessional(context.Background(), "0xdoc", professionalReq("Astrology", "6-10"))
	assert.ErrorIs(t, err, ErrUnknownSpecialty)

	_, err = u.SaveProfessional(context.Background(), "0xdoc", professionalReq("Cardiology", "7"))
	assert.ErrorIs(t, err, ErrUnknownExperienceRange)
}

func TestAttachUploadRejectsUnknownField(t *testing.T) {
	u := newTestOnboardingUsecase(t, &fakeDoctorRepo{})

	_, err := u.AttachUpload(context.Background(), "0xdoc", "status", "f.jpg", []byte("x"))
	assert.ErrorIs(t, err, ErrUnknownUploadField)
}
