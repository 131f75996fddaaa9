package usecase

import (
	"context"
	"time"

	"medfi-backend/internal/converter"
	"medfi-backend/internal/delivery/dto"
	"medfi-backend/internal/domain/entity"
	"medfi-backend/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	relatedDoctorsLimit = 3

	bookingDays      = 7
	bookingFirstHour = 8
	bookingLastHour  = 18
)

type DirectoryUsecase interface {
	ListApproved(ctx context.Context, specialty string) (*dto.DirectoryListResponse, error)
	GetApprovedByAddress(ctx context.Context, address string) (*dto.DoctorDetailResponse, error)
	BookingSlots(ctx context.Context, address string) (*dto.BookingSlotsResponse, error)
	BookingPrefill(ctx context.Context, address, date, timeSlot string) (*dto.BookingPrefillResponse, error)
}

type directoryUsecase struct {
	db         *gorm.DB
	log        *logrus.Logger
	doctorRepo repository.DoctorRepository
	now        func() time.Time
}

func NewDirectoryUsecase(db *gorm.DB, log *logrus.Logger, doctorRepo repository.DoctorRepository) DirectoryUsecase {
	return &directoryUsecase{
		db:         db,
		log:        log,
		doctorRepo: doctorRepo,
		now:        time.Now,
	}
}

// ListApproved returns the public directory grid, optionally narrowed
// to one specialty. Only approved doctors ever leave this layer.
func (u *directoryUsecase) ListApproved(ctx context.Context, specialty string) (*dto.DirectoryListResponse, error) {
	filter := entity.DoctorFilter{
		Status:    entity.StatusApproved,
		Specialty: specialty,
	}

	doctors, err := u.doctorRepo.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list approved doctors: %+v", err)
		return nil, err
	}

	return &dto.DirectoryListResponse{
		Doctors: converter.DoctorsToCards(doctors),
		Total:   len(doctors),
	}, nil
}

// GetApprovedByAddress returns the public detail page. A record that is
// absent and a record that exists but is not approved are the same
// not-found to callers, so the public surface leaks nothing about
// in-flight applications.
func (u *directoryUsecase) GetApprovedByAddress(ctx context.Context, address string) (*dto.DoctorDetailResponse, error) {
	doctor, err := u.findApproved(ctx, address)
	if err != nil {
		return nil, err
	}

	related, err := u.doctorRepo.FindAll(u.db.WithContext(ctx), entity.DoctorFilter{
		Status:    entity.StatusApproved,
		Specialty: doctor.Specialty,
		Exclude:   doctor.WalletAddress,
		Limit:     relatedDoctorsLimit,
	})
	if err != nil {
		u.log.Warnf("Failed to find related doctors: %+v", err)
		return nil, err
	}

	return converter.DoctorToDetail(doctor, related), nil
}

// BookingSlots returns the slot grid for one doctor: the next seven
// days crossed with half-hour times from 08:00 to 18:00. The grid is
// generated, not stored; no availability is tracked yet.
func (u *directoryUsecase) BookingSlots(ctx context.Context, address string) (*dto.BookingSlotsResponse, error) {
	if _, err := u.findApproved(ctx, address); err != nil {
		return nil, err
	}

	return buildBookingSlots(u.now()), nil
}

func buildBookingSlots(now time.Time) *dto.BookingSlotsResponse {
	today := now.UTC()
	dates := make([]dto.BookingDate, 0, bookingDays)
	for i := 0; i < bookingDays; i++ {
		d := today.AddDate(0, 0, i)
		dates = append(dates, dto.BookingDate{
			Day:      d.Format("Mon"),
			Date:     d.Day(),
			Month:    int(d.Month()),
			FullDate: d.Format("2006-01-02"),
		})
	}

	times := make([]string, 0, (bookingLastHour-bookingFirstHour)*2)
	for hour := bookingFirstHour; hour < bookingLastHour; hour++ {
		for _, minute := range []int{0, 30} {
			t := time.Date(0, 1, 1, hour, minute, 0, 0, time.UTC)
			times = append(times, t.Format("03:04 PM"))
		}
	}

	return &dto.BookingSlotsResponse{Dates: dates, Times: times}
}

// BookingPrefill packages the parameters the booking destination needs.
// Nothing is persisted; the chosen slot only travels in the response.
func (u *directoryUsecase) BookingPrefill(ctx context.Context, address, date, timeSlot string) (*dto.BookingPrefillResponse, error) {
	doctor, err := u.findApproved(ctx, address)
	if err != nil {
		return nil, err
	}

	return &dto.BookingPrefillResponse{
		DoctorID:   doctor.WalletAddress,
		DoctorName: doctor.FirstName + " " + doctor.LastName,
		Specialty:  doctor.Specialty,
		Date:       date,
		Time:       timeSlot,
		Fee:        converter.DoctorToCard(doctor).ConsultationFee,
	}, nil
}

func (u *directoryUsecase) findApproved(ctx context.Context, address string) (*entity.Doctor, error) {
	doctor, err := u.doctorRepo.FindByAddress(u.db.WithContext(ctx), address)
	if err != nil {
		u.log.Warnf("Failed to find doctor record: %+v", err)
		return nil, err
	}
	if doctor == nil || !doctor.IsApproved() {
		return nil, ErrDoctorNotFound
	}
	return doctor, nil
}
