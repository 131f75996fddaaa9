package entity

import "time"

// Patient represents a patient record, keyed by wallet address.
// Unlike doctors there is no review lifecycle; the record either exists
// or it does not.
type Patient struct {
	WalletAddress string `gorm:"type:varchar(128);primaryKey" json:"wallet_address"`

	Name        string `gorm:"type:varchar(200)" json:"name"`
	Email       string `gorm:"type:varchar(255)" json:"email"`
	Phone       string `gorm:"type:varchar(50)" json:"phone"`
	DateOfBirth string `gorm:"type:varchar(20)" json:"date_of_birth"`
	Gender      string `gorm:"type:varchar(20)" json:"gender"`
	Address     string `gorm:"type:text" json:"address"`
	About       string `gorm:"type:text" json:"about"`

	// Medical information, free text as entered
	BloodType  string `gorm:"type:varchar(10)" json:"blood_type"`
	Allergies  string `gorm:"type:text" json:"allergies"`
	Conditions string `gorm:"type:text" json:"conditions"`

	EmergencyContact string `gorm:"type:varchar(200)" json:"emergency_contact"`
	EmergencyPhone   string `gorm:"type:varchar(50)" json:"emergency_phone"`

	ProfileImage string `gorm:"type:text" json:"profile_image"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Patient) TableName() string {
	return "patients"
}
