package dto

// Request DTOs

// PatientProfileRequest is the single-step create/edit form. Optional
// fields left empty are not written, so edits merge into the record.
type PatientProfileRequest struct {
	Name             string `json:"name" validate:"required"`
	Email            string `json:"email" validate:"required,email"`
	Phone            string `json:"phone" validate:"required"`
	DateOfBirth      string `json:"date_of_birth" validate:"required"`
	Gender           string `json:"gender" validate:"omitempty"`
	Address          string `json:"address" validate:"omitempty"`
	About            string `json:"about" validate:"omitempty"`
	BloodType        string `json:"blood_type" validate:"omitempty"`
	Allergies        string `json:"allergies" validate:"omitempty"`
	Conditions       string `json:"conditions" validate:"omitempty"`
	EmergencyContact string `json:"emergency_contact" validate:"omitempty"`
	EmergencyPhone   string `json:"emergency_phone" validate:"omitempty"`
	ProfileImage     string `json:"profile_image" validate:"omitempty"`
}

// Response DTOs

type PatientResponse struct {
	WalletAddress    string `json:"wallet_address"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	DateOfBirth      string `json:"date_of_birth"`
	Gender           string `json:"gender"`
	Address          string `json:"address"`
	About            string `json:"about"`
	BloodType        string `json:"blood_type"`
	Allergies        string `json:"allergies"`
	Conditions       string `json:"conditions"`
	EmergencyContact string `json:"emergency_contact"`
	EmergencyPhone   string `json:"emergency_phone"`
	ProfileImage     string `json:"profile_image"`
	CreatedAt        string `json:"created_at,omitempty"`
	UpdatedAt        string `json:"updated_at,omitempty"`
}

// PatientProfileResponse wraps the record with its only piece of state:
// whether it exists at all.
type PatientProfileResponse struct {
	HasProfile bool             `json:"has_profile"`
	Profile    *PatientResponse `json:"profile,omitempty"`
}
