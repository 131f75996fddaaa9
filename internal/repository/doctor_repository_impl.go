package repository

import (
	"errors"
	"time"

	"medfi-backend/internal/domain/entity"
	domainRepo "medfi-backend/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type doctorRepository struct{}

func NewDoctorRepository() domainRepo.DoctorRepository {
	return &doctorRepository{}
}

func (r *doctorRepository) FindByAddress(db *gorm.DB, address string) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := db.Where("wallet_address = ?", address).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) FindAll(db *gorm.DB, filter entity.DoctorFilter) ([]entity.Doctor, error) {
	var doctors []entity.Doctor

	query := db.Model(&entity.Doctor{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Specialty != "" {
		query = query.Where("specialty = ?", filter.Specialty)
	}
	if filter.Exclude != "" {
		query = query.Where("wallet_address <> ?", filter.Exclude)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	// Never-submitted records sort after everything that went through review.
	err := query.Order("submitted_at DESC NULLS LAST").Find(&doctors).Error
	if err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *doctorRepository) CountByStatus(db *gorm.DB) (map[entity.VerificationStatus]int64, error) {
	type row struct {
		Status entity.VerificationStatus
		Total  int64
	}
	var rows []row

	err := db.Model(&entity.Doctor{}).
		Select("status, COUNT(*) as total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[entity.VerificationStatus]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Total
	}
	return counts, nil
}

// Merge performs a single-statement upsert: insert the record when the
// wallet address is new, otherwise update exactly the provided columns.
// Columns absent from fields are never written, so repeated merges
// accumulate instead of overwrite. updated_at changes on every merge,
// created_at only on the insert path.
func (r *doctorRepository) Merge(db *gorm.DB, address string, fields map[string]interface{}) error {
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

	return db.Model(&entity.Doctor{}).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "wallet_address"}},
			DoUpdates: clause.Assignments(assignments),
		}).
		Create(values).Error
}

// TransitionStatus is a check-and-set write: the status columns change
// only when the stored status still equals from. A zero row count tells
// the caller the record moved on (or never was) in the meantime.
func (r *doctorRepository) TransitionStatus(db *gorm.DB, address string, from, to entity.VerificationStatus, fields map[string]interface{}) (int64, error) {
	values := make(map[string]interface{}, len(fields)+2)
	for k, v := range fields {
		values[k] = v
	}
	values["status"] = to
	values["updated_at"] = time.Now().UTC()

	res := db.Model(&entity.Doctor{}).
		Where("wallet_address = ? AND status = ?", address, from).
		Updates(values)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
