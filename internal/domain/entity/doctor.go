package entity

import (
	"time"
)

// VerificationStatus is the review state of a doctor record
type VerificationStatus string

const (
	StatusUnverified VerificationStatus = "unverified"
	StatusPending    VerificationStatus = "pending"
	StatusApproved   VerificationStatus = "approved"
	StatusRejected   VerificationStatus = "rejected"
)

// IsValid reports whether s is one of the four review states.
func (s VerificationStatus) IsValid() bool {
	switch s {
	case StatusUnverified, StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is defined from s.
// Approved is terminal; rejected allows resubmission.
func (s VerificationStatus) IsTerminal() bool {
	return s == StatusApproved
}

// CanTransition reports whether the status lifecycle allows from -> to.
// unverified -> pending (wizard submit), pending -> approved|rejected
// (admin decision), rejected -> pending (resubmission). Nothing leaves
// approved.
func CanTransition(from, to VerificationStatus) bool {
	switch from {
	case StatusUnverified:
		return to == StatusPending
	case StatusPending:
		return to == StatusApproved || to == StatusRejected
	case StatusRejected:
		return to == StatusPending
	}
	return false
}

// Doctor represents a doctor record, keyed by wallet address.
// The wallet address IS the record key; there is no separate id.
type Doctor struct {
	WalletAddress string `gorm:"type:varchar(128);primaryKey" json:"wallet_address"`

	// Personal (wizard step 1)
	FirstName    string `gorm:"type:varchar(100)" json:"first_name"`
	LastName     string `gorm:"type:varchar(100)" json:"last_name"`
	Email        string `gorm:"type:varchar(255);index" json:"email"`
	Phone        string `gorm:"type:varchar(50)" json:"phone"`
	Country      string `gorm:"type:varchar(100)" json:"country"`
	ProfileImage string `gorm:"type:text" json:"profile_image"`

	// Professional (wizard step 2)
	Specialty       string `gorm:"type:varchar(100);index" json:"specialty"`
	LicenseNumber   string `gorm:"type:varchar(100)" json:"license_number"`
	YearsExperience string `gorm:"type:varchar(10)" json:"years_experience"`
	Hospital        string `gorm:"type:varchar(255)" json:"hospital"`
	Bio             string `gorm:"type:text" json:"bio"`

	// Verification documents (wizard step 3). SelfieImage may hold an
	// inline data URI when the media store upload failed at capture time.
	IDDocument  string `gorm:"column:id_document;type:text" json:"id_document"`
	SelfieImage string `gorm:"type:text" json:"selfie_image"`

	// Review state
	Status      VerificationStatus `gorm:"type:varchar(20);not null;default:'unverified';index" json:"status"`
	SubmittedAt *time.Time         `gorm:"index" json:"submitted_at,omitempty"`
	ReviewedAt  *time.Time         `json:"reviewed_at,omitempty"`

	// Display-only fields, filled with defaults at the converter when absent
	Rating          string `gorm:"type:varchar(10)" json:"rating,omitempty"`
	Reviews         int    `json:"reviews"`
	ConsultationFee string `gorm:"type:varchar(20)" json:"consultation_fee,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Doctor) TableName() string {
	return "doctors"
}

// IsApproved reports whether the record is publicly visible.
// Directory and booking views must only ever show approved doctors.
func (d *Doctor) IsApproved() bool {
	return d.Status == StatusApproved
}

// IsActionable reports whether an admin decision applies to this record.
func (d *Doctor) IsActionable() bool {
	return d.Status == StatusPending
}

// Specialties is the fixed specialty list offered by the wizard.
var Specialties = []string{
	"Cardiology", "Dermatology", "Emergency Medicine", "Family Medicine",
	"Gastroenterology", "Internal Medicine", "Neurology", "Obstetrics/Gynecology",
	"Oncology", "Ophthalmology", "Orthopedics", "Pediatrics", "Psychiatry",
	"Radiology", "Surgery", "Urology", "Dentistry", "Midwifery", "Nursing",
	"Physiotherapy", "Other",
}

// ExperienceBuckets are the allowed yearsExperience ranges.
var ExperienceBuckets = []string{"0-1", "2-5", "6-10", "11-15", "16-20", "20+"}

// Countries is the country list offered by the wizard.
var Countries = []string{
	"United States", "United Kingdom", "Canada", "Australia", "Germany",
	"France", "Nigeria", "South Africa", "India", "Brazil", "Mexico", "Other",
}

// IsValidSpecialty reports whether s is in the fixed specialty list.
func IsValidSpecialty(s string) bool {
	for _, v := range Specialties {
		if v == s {
			return true
		}
	}
	return false
}

// IsValidExperienceBucket reports whether s is an allowed range.
func IsValidExperienceBucket(s string) bool {
	for _, v := range ExperienceBuckets {
		if v == s {
			return true
		}
	}
	return false
}

// Display defaults applied when the stored record has no value.
const (
	DefaultRating          = "5.0"
	DefaultReviews         = 0
	DefaultConsultationFee = "50"
)
