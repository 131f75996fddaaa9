package repository

import (
	"medfi-backend/internal/domain/entity"
	domainRepo "medfi-backend/internal/domain/repository"

	"gorm.io/gorm"
)

type auditLogRepository struct{}

func NewAuditLogRepository() domainRepo.AuditLogRepository {
	return &auditLogRepository{}
}

func (r *auditLogRepository) Create(db *gorm.DB, log *entity.AuditLog) error {
	return db.Create(log).Error
}

func (r *auditLogRepository) FindByWallet(db *gorm.DB, wallet string) ([]entity.AuditLog, error) {
	var logs []entity.AuditLog
	err := db.Where("wallet = ?", wallet).Order("created_at DESC").Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}
