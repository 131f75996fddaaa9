package repository

import (
	"medfi-backend/internal/domain/entity"

	"gorm.io/gorm"
)

type AuditLogRepository interface {
	Create(db *gorm.DB, log *entity.AuditLog) error
	FindByWallet(db *gorm.DB, wallet string) ([]entity.AuditLog, error)
}
