package repository

import (
	"medfi-backend/internal/domain/entity"

	"gorm.io/gorm"
)

type PatientRepository interface {
	// FindByAddress returns the record for a wallet address, or nil when absent.
	FindByAddress(db *gorm.DB, address string) (*entity.Patient, error)

	// Merge shallow-merges fields into the record for address, creating
	// it when absent.
	Merge(db *gorm.DB, address string, fields map[string]interface{}) error
}
