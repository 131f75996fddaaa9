package usecase

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"medfi-backend/internal/converter"
	"medfi-backend/internal/delivery/dto"
	"medfi-backend/internal/domain/entity"
	"medfi-backend/internal/domain/repository"
	"medfi-backend/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrUnknownSpecialty       = errors.New("unknown specialty")
	ErrUnknownExperienceRange = errors.New("unknown years of experience range")
	ErrUnknownUploadField     = errors.New("unknown upload field")
	ErrApplicationIncomplete  = errors.New("application is incomplete")
	ErrAlreadyUnderReview     = errors.New("application is already under review")
	ErrAlreadyApproved        = errors.New("application is already approved")
	ErrStatusChanged          = errors.New("application status changed, reload and retry")
)

// Upload target fields the wizard may write. Keys are the public field
// names, values the doctor table columns.
var uploadFields = map[string]string{
	"profile_image": "profile_image",
	"id_document":   "id_document",
	"selfie_image":  "selfie_image",
}

// MediaUploader is the media store contract: bytes in, permanent URL out.
type MediaUploader interface {
	Upload(ctx context.Context, filename string, data []byte) (string, error)
}

type OnboardingUsecase interface {
	GetApplication(ctx context.Context, address string) (*dto.ApplicationResponse, error)
	SavePersonal(ctx context.Context, address string, req *dto.PersonalStepRequest) (*dto.ApplicationResponse, error)
	SaveProfessional(ctx context.Context, address string, req *dto.ProfessionalStepRequest) (*dto.ApplicationResponse, error)
	SaveVerification(ctx context.Context, address string, req *dto.VerificationStepRequest) (*dto.ApplicationResponse, error)
	AttachUpload(ctx context.Context, address, field, filename string, data []byte) (*dto.UploadResponse, error)
	CaptureSelfie(ctx context.Context, address string, data []byte, mimeType string) (*dto.UploadResponse, error)
	Submit(ctx context.Context, address string) (*dto.DoctorResponse, error)
}

type onboardingUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	doctorRepo   repository.DoctorRepository
	auditService service.AuditService
	uploader     MediaUploader
	snapshots    *service.SnapshotService
}

func NewOnboardingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	auditService service.AuditService,
	uploader MediaUploader,
	snapshots *service.SnapshotService,
) OnboardingUsecase {
	return &onboardingUsecase{
		db:           db,
		log:          log,
		doctorRepo:   doctorRepo,
		auditService: auditService,
		uploader:     uploader,
		snapshots:    snapshots,
	}
}

// Step gating. A step is complete when every one of its fields is
// non-empty on the stored record; the wizard cannot advance past an
// incomplete step and Submit refuses until all three pass.

// PersonalStepComplete reports whether wizard step 1 is complete.
func PersonalStepComplete(d *entity.Doctor) bool {
	if d == nil {
		return false
	}
	return d.FirstName != "" && d.LastName != "" && d.Email != "" &&
		d.Phone != "" && d.Country != "" && d.ProfileImage != ""
}

// ProfessionalStepComplete reports whether wizard step 2 is complete.
func ProfessionalStepComplete(d *entity.Doctor) bool {
	if d == nil {
		return false
	}
	return d.Specialty != "" && d.LicenseNumber != "" &&
		d.YearsExperience != "" && d.Hospital != "" && d.Bio != ""
}

// VerificationStepComplete reports whether wizard step 3 is complete.
func VerificationStepComplete(d *entity.Doctor) bool {
	if d == nil {
		return false
	}
	return d.IDDocument != "" && d.SelfieImage != ""
}

func stepCompletion(d *entity.Doctor) dto.StepCompletion {
	return dto.StepCompletion{
		Personal:     PersonalStepComplete(d),
		Professional: ProfessionalStepComplete(d),
		Verification: VerificationStepComplete(d),
	}
}

func (u *onboardingUsecase) applicationResponse(d *entity.Doctor) *dto.ApplicationResponse {
	steps := stepCompletion(d)
	canSubmit := steps.Personal && steps.Professional && steps.Verification &&
		d != nil && entity.CanTransition(d.Status, entity.StatusPending)

	return &dto.ApplicationResponse{
		Doctor:    converter.DoctorToResponse(d),
		Steps:     steps,
		CanSubmit: canSubmit,
	}
}

// GetApplication returns the wizard prefill. An absent record comes
// back as a blank unverified draft rather than an error.
func (u *onboardingUsecase) GetApplication(ctx context.Context, address string) (*dto.ApplicationResponse, error) {
	doctor, err := u.doctorRepo.FindByAddress(u.db.WithContext(ctx), address)
	if err != nil {
		u.log.Warnf("Failed to find doctor record: %+v", err)
		return nil, err
	}
	if doctor == nil {
		doctor = &entity.Doctor{WalletAddress: address, Status: entity.StatusUnverified}
	}
	return u.applicationResponse(doctor), nil
}

// saveStep merges the provided columns and returns the refreshed
// application state. Fields not in the map stay untouched, so entering
// one step never discards data from the others.
func (u *onboardingUsecase) saveStep(ctx context.Context, address string, fields map[string]interface{}) (*dto.ApplicationResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.doctorRepo.Merge(tx, address, fields); err != nil {
		u.log.Warnf("Failed to merge doctor draft: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogChange(tx, nil, address, entity.AuditActionDoctorDraft, nil, fields); err != nil {
		// Don't fail the write for audit log errors
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	doctor, err := u.doctorRepo.FindByAddress(tx, address)
	if err != nil {
		u.log.Warnf("Failed to reload doctor record: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.snapshots.NotifyChanged(ctx)

	return u.applicationResponse(doctor), nil
}

func (u *onboardingUsecase) SavePersonal(ctx context.Context, address string, req *dto.PersonalStepRequest) (*dto.ApplicationResponse, error) {
	return u.saveStep(ctx, address, map[string]interface{}{
		"first_name":    req.FirstName,
		"last_name":     req.LastName,
		"email":         req.Email,
		"phone":         req.Phone,
		"country":       req.Country,
		"profile_image": req.ProfileImage,
	})
}

func (u *onboardingUsecase) SaveProfessional(ctx context.Context, address string, req *dto.ProfessionalStepRequest) (*dto.ApplicationResponse, error) {
	if !entity.IsValidSpecialty(req.Specialty) {
		return nil, ErrUnknownSpecialty
	}
	if !entity.IsValidExperienceBucket(req.YearsExperience) {
		return nil, ErrUnknownExperienceRange
	}

	return u.saveStep(ctx, address, map[string]interface{}{
		"specialty":        req.Specialty,
		"license_number":   req.LicenseNumber,
		"years_experience": req.YearsExperience,
		"hospital":         req.Hospital,
		"bio":              req.Bio,
	})
}

func (u *onboardingUsecase) SaveVerification(ctx context.Context, address string, req *dto.VerificationStepRequest) (*dto.ApplicationResponse, error) {
	return u.saveStep(ctx, address, map[string]interface{}{
		"id_document":  req.IDDocument,
		"selfie_image": req.SelfieImage,
	})
}

// AttachUpload sends the file to the media store and, only on success,
// merges the returned URL into the named field. A failed upload leaves
// the field at its previous value.
func (u *onboardingUsecase) AttachUpload(ctx context.Context, address, field, filename string, data []byte) (*dto.UploadResponse, error) {
	column, ok := uploadFields[field]
	if !ok {
		return nil, ErrUnknownUploadField
	}

	url, err := u.uploader.Upload(ctx, filename, data)
	if err != nil {
		u.log.Warnf("Failed to upload %s for %s: %+v", field, address, err)
		return nil, err
	}

	if err := u.doctorRepo.Merge(u.db.WithContext(ctx), address, map[string]interface{}{column: url}); err != nil {
		u.log.Warnf("Failed to store %s url: %+v", field, err)
		return nil, err
	}

	u.snapshots.NotifyChanged(ctx)

	return &dto.UploadResponse{Field: field, URL: url}, nil
}

// CaptureSelfie routes a captured camera frame through the media store.
// When the upload fails, the frame is kept as an inline data URI so the
// verification step can still complete; the trade is losing a stable
// CDN link for that image.
func (u *onboardingUsecase) CaptureSelfie(ctx context.Context, address string, data []byte, mimeType string) (*dto.UploadResponse, error) {
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	url, uploadErr := u.uploader.Upload(ctx, "selfie.jpg", data)
	fallback := false
	if uploadErr != nil {
		u.log.Warnf("Selfie upload failed, falling back to data URI: %+v", uploadErr)
		url = fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
		fallback = true
	}

	if err := u.doctorRepo.Merge(u.db.WithContext(ctx), address, map[string]interface{}{"selfie_image": url}); err != nil {
		u.log.Warnf("Failed to store selfie image: %+v", err)
		return nil, err
	}

	u.snapshots.NotifyChanged(ctx)

	return &dto.UploadResponse{Field: "selfie_image", URL: url, Fallback: fallback}, nil
}

// Submit performs the pending transition. Status and submittedAt change
// in the same conditional write that is guarded on the current status,
// so no interrupted submission can leave a half-written pending record.
// A rejected record re-enters pending with a fresh submittedAt; the old
// reviewedAt is kept, the full decision history lives in the audit log.
func (u *onboardingUsecase) Submit(ctx context.Context, address string) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindByAddress(u.db.WithContext(ctx), address)
	if err != nil {
		u.log.Warnf("Failed to find doctor record: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrApplicationIncomplete
	}

	switch doctor.Status {
	case entity.StatusApproved:
		return nil, ErrAlreadyApproved
	case entity.StatusPending:
		return nil, ErrAlreadyUnderReview
	}

	steps := stepCompletion(doctor)
	if !steps.Personal || !steps.Professional || !steps.Verification {
		return nil, ErrApplicationIncomplete
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	rows, err := u.doctorRepo.TransitionStatus(tx, address, doctor.Status, entity.StatusPending, map[string]interface{}{
		"submitted_at": nowUTC(),
	})
	if err != nil {
		u.log.Warnf("Failed to submit application: %+v", err)
		return nil, err
	}
	if rows == 0 {
		// Status moved underneath us between read and write.
		return nil, ErrStatusChanged
	}

	if err := u.auditService.LogChange(tx, nil, address, entity.AuditActionDoctorSubmit, string(doctor.Status), string(entity.StatusPending)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	updated, err := u.doctorRepo.FindByAddress(tx, address)
	if err != nil {
		u.log.Warnf("Failed to reload doctor record: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.snapshots.NotifyChanged(ctx)
	u.log.Infof("Doctor application submitted: wallet=%s", address)

	return converter.DoctorToResponse(updated), nil
}
