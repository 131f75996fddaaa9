package converter

import (
	"time"

	"medfi-backend/internal/delivery/dto"
	"medfi-backend/internal/domain/entity"
)

// PatientToResponse converts a Patient entity to the PatientResponse DTO.
func PatientToResponse(p *entity.Patient) *dto.PatientResponse {
	if p == nil {
		return nil
	}

	return &dto.PatientResponse{
		WalletAddress:    p.WalletAddress,
		Name:             p.Name,
		Email:            p.Email,
		Phone:            p.Phone,
		DateOfBirth:      p.DateOfBirth,
		Gender:           p.Gender,
		Address:          p.Address,
		About:            p.About,
		BloodType:        p.BloodType,
		Allergies:        p.Allergies,
		Conditions:       p.Conditions,
		EmergencyContact: p.EmergencyContact,
		EmergencyPhone:   p.EmergencyPhone,
		ProfileImage:     p.ProfileImage,
		CreatedAt:        p.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:        p.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
