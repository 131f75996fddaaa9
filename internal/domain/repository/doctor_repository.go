package repository

import (
	"medfi-backend/internal/domain/entity"

	"gorm.io/gorm"
)

type DoctorRepository interface {
	// FindByAddress returns the record for a wallet address, or nil when absent.
	FindByAddress(db *gorm.DB, address string) (*entity.Doctor, error)

	// FindAll returns records matching the filter, ordered by
	// submitted_at descending with never-submitted records last.
	FindAll(db *gorm.DB, filter entity.DoctorFilter) ([]entity.Doctor, error)

	// CountByStatus returns the number of records per review status.
	CountByStatus(db *gorm.DB) (map[entity.VerificationStatus]int64, error)

	// Merge shallow-merges fields into the record for address, creating
	// it when absent. Fields not present in the map are never touched.
	Merge(db *gorm.DB, address string, fields map[string]interface{}) error

	// TransitionStatus performs a conditional status write: the update
	// applies only when the stored status equals from. Returns the
	// number of rows changed (0 means the record was not in from).
	TransitionStatus(db *gorm.DB, address string, from, to entity.VerificationStatus, fields map[string]interface{}) (int64, error)
}
