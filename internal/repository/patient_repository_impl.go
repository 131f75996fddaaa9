package repository

import (
	"errors"
	"time"

	"medfi-backend/internal/domain/entity"
	domainRepo "medfi-backend/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type patientRepository struct{}

func NewPatientRepository() domainRepo.PatientRepository {
	return &patientRepository{}
}

func (r *patientRepository) FindByAddress(db *gorm.DB, address string) (*entity.Patient, error) {
	var patient entity.Patient
	err := db.Where("wallet_address = ?", address).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) Merge(db *gorm.DB, address string, fields map[string]interface{}) error {
	now := time.Now().UTC()

	assignments := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		assignments[k] = v
	}
	assignments["updated_at"] = now

	values := make(map[string]interface{}, len(assignments)+2)
	for k, v := range assignments {
		values[k] = v
	}
	values["wallet_address"] = address
	values["created_at"] = now

	return db.Model(&entity.Patient{}).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "wallet_address"}},
			DoUpdates: clause.Assignments(assignments),
		}).
		Create(values).Error
}
