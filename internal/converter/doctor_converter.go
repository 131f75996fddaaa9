package converter

import (
	"time"

	"medfi-backend/internal/delivery/dto"
	"medfi-backend/internal/domain/entity"
)

// Display defaults live here and nowhere else. Views render whatever
// the converter hands them; the stored record may legitimately have
// these fields empty.

func ratingOrDefault(d *entity.Doctor) string {
	if d.Rating == "" {
		return entity.DefaultRating
	}
	return d.Rating
}

func feeOrDefault(d *entity.Doctor) string {
	if d.ConsultationFee == "" {
		return entity.DefaultConsultationFee
	}
	return d.ConsultationFee
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// DoctorToResponse converts a Doctor entity to the full DoctorResponse DTO.
func DoctorToResponse(d *entity.Doctor) *dto.DoctorResponse {
	if d == nil {
		return nil
	}

	return &dto.DoctorResponse{
		WalletAddress:   d.WalletAddress,
		FirstName:       d.FirstName,
		LastName:        d.LastName,
		Email:           d.Email,
		Phone:           d.Phone,
		Country:         d.Country,
		ProfileImage:    d.ProfileImage,
		Specialty:       d.Specialty,
		LicenseNumber:   d.LicenseNumber,
		YearsExperience: d.YearsExperience,
		Hospital:        d.Hospital,
		Bio:             d.Bio,
		IDDocument:      d.IDDocument,
		SelfieImage:     d.SelfieImage,
		Status:          string(d.Status),
		SubmittedAt:     formatTime(d.SubmittedAt),
		ReviewedAt:      formatTime(d.ReviewedAt),
		Rating:          ratingOrDefault(d),
		Reviews:         d.Reviews,
		ConsultationFee: feeOrDefault(d),
		CreatedAt:       d.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:       d.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// DoctorsToResponses converts a slice of Doctor entities to full DTOs.
func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i := range doctors {
		responses[i] = *DoctorToResponse(&doctors[i])
	}
	return responses
}

// DoctorToCard converts a Doctor entity to the public card projection.
func DoctorToCard(d *entity.Doctor) dto.DoctorCardResponse {
	return dto.DoctorCardResponse{
		WalletAddress:   d.WalletAddress,
		FirstName:       d.FirstName,
		LastName:        d.LastName,
		Specialty:       d.Specialty,
		ProfileImage:    d.ProfileImage,
		Rating:          ratingOrDefault(d),
		Reviews:         d.Reviews,
		YearsExperience: d.YearsExperience,
		ConsultationFee: feeOrDefault(d),
	}
}

// DoctorsToCards converts a slice of Doctor entities to card projections.
func DoctorsToCards(doctors []entity.Doctor) []dto.DoctorCardResponse {
	cards := make([]dto.DoctorCardResponse, len(doctors))
	for i := range doctors {
		cards[i] = DoctorToCard(&doctors[i])
	}
	return cards
}

// DoctorToDetail converts a Doctor entity plus its specialty siblings
// to the public detail payload.
func DoctorToDetail(d *entity.Doctor, related []entity.Doctor) *dto.DoctorDetailResponse {
	if d == nil {
		return nil
	}

	return &dto.DoctorDetailResponse{
		WalletAddress:   d.WalletAddress,
		FirstName:       d.FirstName,
		LastName:        d.LastName,
		Specialty:       d.Specialty,
		ProfileImage:    d.ProfileImage,
		Hospital:        d.Hospital,
		Country:         d.Country,
		Bio:             d.Bio,
		YearsExperience: d.YearsExperience,
		Rating:          ratingOrDefault(d),
		Reviews:         d.Reviews,
		ConsultationFee: feeOrDefault(d),
		Related:         DoctorsToCards(related),
	}
}
