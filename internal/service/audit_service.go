package service

import (
	"medfi-backend/internal/domain/entity"
	"medfi-backend/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AuditService records who changed which record and what the change
// was. Decision history survives resubmission here even though the
// doctor record itself only keeps the latest reviewedAt.
type AuditService interface {
	LogChange(tx *gorm.DB, adminID *uuid.UUID, wallet string, action string, oldValue, newValue interface{}) error
}

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		log:       log,
		auditRepo: auditRepo,
	}
}

func (s *auditService) LogChange(tx *gorm.DB, adminID *uuid.UUID, wallet string, action string, oldValue, newValue interface{}) error {
	metadata := entity.JSON{
		"old_value": oldValue,
		"new_value": newValue,
	}

	auditLog := &entity.AuditLog{
		AdminID:  adminID,
		Wallet:   wallet,
		Action:   action,
		Metadata: metadata,
	}

	if err := s.auditRepo.Create(tx, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}

	return nil
}
