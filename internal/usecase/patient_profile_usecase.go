package usecase

import (
	"context"

	"medfi-backend/internal/converter"
	"medfi-backend/internal/delivery/dto"
	"medfi-backend/internal/domain/entity"
	"medfi-backend/internal/domain/repository"
	"medfi-backend/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type PatientProfileUsecase interface {
	Get(ctx context.Context, address string) (*dto.PatientProfileResponse, error)
	Save(ctx context.Context, address string, req *dto.PatientProfileRequest) (*dto.PatientResponse, error)
}

type patientProfileUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	patientRepo  repository.PatientRepository
	auditService service.AuditService
}

func NewPatientProfileUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	auditService service.AuditService,
) PatientProfileUsecase {
	return &patientProfileUsecase{
		db:           db,
		log:          log,
		patientRepo:  patientRepo,
		auditService: auditService,
	}
}

// Get reports whether a profile exists for the wallet and returns it
// when present. Absence is state, not an error: the front end uses it
// to choose between the create form and the profile page.
func (u *patientProfileUsecase) Get(ctx context.Context, address string) (*dto.PatientProfileResponse, error) {
	patient, err := u.patientRepo.FindByAddress(u.db.WithContext(ctx), address)
	if err != nil {
		u.log.Warnf("Failed to find patient record: %+v", err)
		return nil, err
	}

	return &dto.PatientProfileResponse{
		HasProfile: patient != nil,
		Profile:    converter.PatientToResponse(patient),
	}, nil
}

// Save merge-writes the profile form. The same call serves create and
// edit; optional fields arrive empty and still overwrite, matching the
// single-form flow where every field is always submitted together.
func (u *patientProfileUsecase) Save(ctx context.Context, address string, req *dto.PatientProfileRequest) (*dto.PatientResponse, error) {
	fields := map[string]interface{}{
		"name":              req.Name,
		"email":             req.Email,
		"phone":             req.Phone,
		"date_of_birth":     req.DateOfBirth,
		"gender":            req.Gender,
		"address":           req.Address,
		"about":             req.About,
		"blood_type":        req.BloodType,
		"allergies":         req.Allergies,
		"conditions":        req.Conditions,
		"emergency_contact": req.EmergencyContact,
		"emergency_phone":   req.EmergencyPhone,
		"profile_image":     req.ProfileImage,
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.patientRepo.Merge(tx, address, fields); err != nil {
		u.log.Warnf("Failed to merge patient profile: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogChange(tx, nil, address, entity.AuditActionPatientProfile, nil, fields); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	patient, err := u.patientRepo.FindByAddress(tx, address)
	if err != nil {
		u.log.Warnf("Failed to reload patient record: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.PatientToResponse(patient), nil
}
