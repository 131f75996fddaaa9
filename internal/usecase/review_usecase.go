package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"medfi-backend/internal/converter"
	"medfi-backend/internal/delivery/dto"
	"medfi-backend/internal/domain/entity"
	"medfi-backend/internal/domain/repository"
	"medfi-backend/internal/service"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrDoctorNotFound     = errors.New("doctor not found")
	ErrNotPending         = errors.New("application is not pending review")
	ErrInvalidDecision    = errors.New("decision must be approved or rejected")
	ErrDecisionInProgress = errors.New("another decision is in progress for this application")
)

// decisionLockTTL bounds how long a wallet stays locked if the holder
// dies before releasing.
const decisionLockTTL = 10 * time.Second

// locker is the single-flight guard in front of Decide. Redis backs it
// in production so the guard holds across instances.
type locker interface {
	Acquire(ctx context.Context, key, owner string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

type redisLocker struct {
	client *redis.Client
}

func (l *redisLocker) Acquire(ctx context.Context, key, owner string, ttl time.Duration) (bool, error) {
	return l.client.SetNX(ctx, key, owner, ttl).Result()
}

func (l *redisLocker) Release(ctx context.Context, key string) error {
	return l.client.Del(ctx, key).Err()
}

// statusFilter maps the console's status query to a repository filter.
// "all" and "" both mean no narrowing; anything else filters literally.
func statusFilter(status string) entity.VerificationStatus {
	if status == "all" {
		return ""
	}
	return entity.VerificationStatus(status)
}

type ReviewUsecase interface {
	ListAll(ctx context.Context, status string) (*dto.ReviewListResponse, error)
	Stats(ctx context.Context) (*dto.ReviewStatsResponse, error)
	GetDetail(ctx context.Context, address string) (*dto.ReviewDetailResponse, error)
	History(ctx context.Context, address string) (*dto.ReviewHistoryResponse, error)
	Decide(ctx context.Context, adminID uuid.UUID, address string, req *dto.DecisionRequest) (*dto.DoctorResponse, error)
	Watch(ctx context.Context, status string) (*service.Subscription, error)
	Unwatch(sub *service.Subscription)
}

type reviewUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	doctorRepo   repository.DoctorRepository
	auditLogRepo repository.AuditLogRepository
	auditService service.AuditService
	snapshots    *service.SnapshotService
	locks        locker
}

func NewReviewUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	auditLogRepo repository.AuditLogRepository,
	auditService service.AuditService,
	snapshots *service.SnapshotService,
	redisClient *redis.Client,
) ReviewUsecase {
	return &reviewUsecase{
		db:           db,
		log:          log,
		doctorRepo:   doctorRepo,
		auditLogRepo: auditLogRepo,
		auditService: auditService,
		snapshots:    snapshots,
		locks:        &redisLocker{client: redisClient},
	}
}

// ListAll returns every application, newest submission first, optionally
// narrowed to one status. "all" and "" both mean no narrowing; unknown
// status values return an empty list rather than an error, the same as
// a filter nothing matches.
func (u *reviewUsecase) ListAll(ctx context.Context, status string) (*dto.ReviewListResponse, error) {
	filter := entity.DoctorFilter{Status: statusFilter(status)}

	doctors, err := u.doctorRepo.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list doctor applications: %+v", err)
		return nil, err
	}

	return &dto.ReviewListResponse{
		Doctors: converter.DoctorsToResponses(doctors),
		Total:   len(doctors),
	}, nil
}

func (u *reviewUsecase) Stats(ctx context.Context) (*dto.ReviewStatsResponse, error) {
	counts, err := u.doctorRepo.CountByStatus(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to count doctor applications: %+v", err)
		return nil, err
	}

	stats := &dto.ReviewStatsResponse{
		Pending:  counts[entity.StatusPending],
		Approved: counts[entity.StatusApproved],
		Rejected: counts[entity.StatusRejected],
	}
	for _, n := range counts {
		stats.Total += n
	}

	return stats, nil
}

func (u *reviewUsecase) GetDetail(ctx context.Context, address string) (*dto.ReviewDetailResponse, error) {
	doctor, err := u.doctorRepo.FindByAddress(u.db.WithContext(ctx), address)
	if err != nil {
		u.log.Warnf("Failed to find doctor record: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	return &dto.ReviewDetailResponse{
		Doctor:     converter.DoctorToResponse(doctor),
		Actionable: doctor.IsActionable(),
	}, nil
}

// History returns the application's audit trail, newest first. Unlike
// the record's reviewedAt, the trail keeps every submission and
// decision across resubmissions.
func (u *reviewUsecase) History(ctx context.Context, address string) (*dto.ReviewHistoryResponse, error) {
	doctor, err := u.doctorRepo.FindByAddress(u.db.WithContext(ctx), address)
	if err != nil {
		u.log.Warnf("Failed to find doctor record: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	logs, err := u.auditLogRepo.FindByWallet(u.db.WithContext(ctx), address)
	if err != nil {
		u.log.Warnf("Failed to load audit trail: %+v", err)
		return nil, err
	}

	entries := make([]dto.AuditEntryResponse, len(logs))
	for i, l := range logs {
		entry := dto.AuditEntryResponse{
			ID:        l.ID,
			Action:    l.Action,
			Metadata:  l.Metadata,
			CreatedAt: l.CreatedAt.UTC().Format(time.RFC3339),
		}
		if l.AdminID != nil {
			entry.AdminID = l.AdminID.String()
		}
		entries[i] = entry
	}

	return &dto.ReviewHistoryResponse{Wallet: address, Entries: entries}, nil
}

// Decide settles a pending application. Two guards keep concurrent
// reviewers from double-deciding: a short per-wallet Redis lock, and a
// conditional write that only applies while the row is still pending.
// The loser of any race gets ErrNotPending or ErrDecisionInProgress,
// never a silent overwrite.
func (u *reviewUsecase) Decide(ctx context.Context, adminID uuid.UUID, address string, req *dto.DecisionRequest) (*dto.DoctorResponse, error) {
	var to entity.VerificationStatus
	switch req.Decision {
	case string(entity.StatusApproved):
		to = entity.StatusApproved
	case string(entity.StatusRejected):
		to = entity.StatusRejected
	default:
		return nil, ErrInvalidDecision
	}

	lockKey := fmt.Sprintf("review_lock:%s", address)
	locked, err := u.locks.Acquire(ctx, lockKey, adminID.String(), decisionLockTTL)
	if err != nil {
		u.log.Warnf("Failed to acquire decision lock: %+v", err)
		return nil, err
	}
	if !locked {
		return nil, ErrDecisionInProgress
	}
	defer func() {
		if err := u.locks.Release(context.WithoutCancel(ctx), lockKey); err != nil {
			u.log.Warnf("Failed to release decision lock: %+v", err)
		}
	}()

	doctor, err := u.doctorRepo.FindByAddress(u.db.WithContext(ctx), address)
	if err != nil {
		u.log.Warnf("Failed to find doctor record: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	if !doctor.IsActionable() {
		return nil, ErrNotPending
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	rows, err := u.doctorRepo.TransitionStatus(tx, address, entity.StatusPending, to, map[string]interface{}{
		"reviewed_at": nowUTC(),
	})
	if err != nil {
		u.log.Warnf("Failed to apply review decision: %+v", err)
		return nil, err
	}
	if rows == 0 {
		return nil, ErrNotPending
	}

	action := entity.AuditActionDoctorApprove
	if to == entity.StatusRejected {
		action = entity.AuditActionDoctorReject
	}
	if err := u.auditService.LogChange(tx, &adminID, address, action, string(entity.StatusPending), string(to)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	updated, err := u.doctorRepo.FindByAddress(tx, address)
	if err != nil {
		u.log.Warnf("Failed to reload doctor record: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.snapshots.NotifyChanged(ctx)
	u.log.Infof("Doctor application %s: wallet=%s admin=%s", to, address, adminID)

	return converter.DoctorToResponse(updated), nil
}

// Watch opens a live subscription over the applications list. The first
// snapshot arrives immediately; callers must Unsubscribe when done.
func (u *reviewUsecase) Watch(ctx context.Context, status string) (*service.Subscription, error) {
	return u.snapshots.Subscribe(entity.DoctorFilter{Status: statusFilter(status)})
}

// Unwatch releases a subscription opened by Watch.
func (u *reviewUsecase) Unwatch(sub *service.Subscription) {
	u.snapshots.Unsubscribe(sub)
}
