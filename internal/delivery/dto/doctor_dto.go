package dto

// Wizard step requests. Each step persists as its own merge-write, so
// navigating between steps never loses data entered elsewhere.

type PersonalStepRequest struct {
	FirstName    string `json:"first_name" validate:"required"`
	LastName     string `json:"last_name" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone" validate:"required"`
	Country      string `json:"country" validate:"required"`
	ProfileImage string `json:"profile_image" validate:"required,min=1"`
}

type ProfessionalStepRequest struct {
	Specialty       string `json:"specialty" validate:"required"`
	LicenseNumber   string `json:"license_number" validate:"required"`
	YearsExperience string `json:"years_experience" validate:"required"`
	Hospital        string `json:"hospital" validate:"required"`
	Bio             string `json:"bio" validate:"required"`
}

type VerificationStepRequest struct {
	IDDocument  string `json:"id_document" validate:"required"`
	SelfieImage string `json:"selfie_image" validate:"required"`
}

// Response DTOs

// DoctorResponse is the full record as the owner or an admin sees it.
type DoctorResponse struct {
	WalletAddress   string `json:"wallet_address"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Country         string `json:"country"`
	ProfileImage    string `json:"profile_image"`
	Specialty       string `json:"specialty"`
	LicenseNumber   string `json:"license_number"`
	YearsExperience string `json:"years_experience"`
	Hospital        string `json:"hospital"`
	Bio             string `json:"bio"`
	IDDocument      string `json:"id_document"`
	SelfieImage     string `json:"selfie_image"`
	Status          string `json:"status"`
	SubmittedAt     string `json:"submitted_at,omitempty"`
	ReviewedAt      string `json:"reviewed_at,omitempty"`
	Rating          string `json:"rating"`
	Reviews         int    `json:"reviews"`
	ConsultationFee string `json:"consultation_fee"`
	CreatedAt       string `json:"created_at,omitempty"`
	UpdatedAt       string `json:"updated_at,omitempty"`
}

// StepCompletion mirrors the wizard's gating: a step unlocks Next only
// when all of its fields are present on the stored record.
type StepCompletion struct {
	Personal     bool `json:"personal"`
	Professional bool `json:"professional"`
	Verification bool `json:"verification"`
}

// ApplicationResponse is the wizard prefill payload.
type ApplicationResponse struct {
	Doctor    *DoctorResponse `json:"doctor"`
	Steps     StepCompletion  `json:"steps"`
	CanSubmit bool            `json:"can_submit"`
}

// UploadResponse reports where an uploaded document landed. Fallback is
// true when the media store failed and the value is an inline data URI.
type UploadResponse struct {
	Field    string `json:"field"`
	URL      string `json:"url"`
	Fallback bool   `json:"fallback"`
}
