package service

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"medfi-backend/internal/domain/entity"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubDoctorRepo struct {
	mu      sync.Mutex
	doctors []entity.Doctor
}

func (s *stubDoctorRepo) setDoctors(doctors []entity.Doctor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doctors = doctors
}

func (s *stubDoctorRepo) FindByAddress(db *gorm.DB, address string) (*entity.Doctor, error) {
	return nil, nil
}

func (s *stubDoctorRepo) FindAll(db *gorm.DB, filter entity.DoctorFilter) ([]entity.Doctor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []entity.Doctor
	for _, d := range s.doctors {
		if filter.Status != "" && d.Status != filter.Status {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (s *stubDoctorRepo) CountByStatus(db *gorm.DB) (map[entity.VerificationStatus]int64, error) {
	return nil, nil
}

func (s *stubDoctorRepo) Merge(db *gorm.DB, address string, fields map[string]interface{}) error {
	return nil
}

func (s *stubDoctorRepo) TransitionStatus(db *gorm.DB, address string, from, to entity.VerificationStatus, fields map[string]interface{}) (int64, error) {
	return 0, nil
}

func newTestSnapshotService(repo *stubDoctorRepo) *SnapshotService {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewSnapshotService(nil, log, repo, nil)
}

func receiveSnapshot(t *testing.T, sub *Subscription) []entity.Doctor {
	t.Helper()
	select {
	case snapshot := <-sub.C:
		return snapshot
	case <-sub.Done():
		t.Fatal("subscription released unexpectedly")
		return nil
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for snapshot")
		return nil
	}
}

func requireDone(t *testing.T, sub *Subscription) {
	t.Helper()
	select {
	case <-sub.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for subscription release")
	}
}

func TestSubscribeFiresImmediately(t *testing.T) {
	repo := &stubDoctorRepo{doctors: []entity.Doctor{
		{WalletAddress: "0xa", Status: entity.StatusPending},
	}}
	svc := newTestSnapshotService(repo)
	defer svc.Stop()

	sub, err := svc.Subscribe(entity.DoctorFilter{})
	require.NoError(t, err)
	defer svc.Unsubscribe(sub)

	snapshot := receiveSnapshot(t, sub)
	require.Len(t, snapshot, 1)
	assert.Equal(t, "0xa", snapshot[0].WalletAddress)
}

func TestNotifyChangedPushesFreshSnapshot(t *testing.T) {
	repo := &stubDoctorRepo{doctors: []entity.Doctor{
		{WalletAddress: "0xa", Status: entity.StatusPending},
	}}
	svc := newTestSnapshotService(repo)
	defer svc.Stop()

	sub, err := svc.Subscribe(entity.DoctorFilter{Status: entity.StatusPending})
	require.NoError(t, err)
	defer svc.Unsubscribe(sub)

	receiveSnapshot(t, sub)

	repo.setDoctors([]entity.Doctor{
		{WalletAddress: "0xa", Status: entity.StatusPending},
		{WalletAddress: "0xb", Status: entity.StatusPending},
		{WalletAddress: "0xc", Status: entity.StatusApproved},
	})
	svc.NotifyChanged(context.Background())

	snapshot := receiveSnapshot(t, sub)
	require.Len(t, snapshot, 2)
}

func TestUnsubscribeSignalsDone(t *testing.T) {
	svc := newTestSnapshotService(&stubDoctorRepo{})
	defer svc.Stop()

	sub, err := svc.Subscribe(entity.DoctorFilter{})
	require.NoError(t, err)

	receiveSnapshot(t, sub)
	assert.Equal(t, 1, svc.SubscriberCount())

	svc.Unsubscribe(sub)
	assert.Equal(t, 0, svc.SubscriberCount())
	requireDone(t, sub)

	// A second Unsubscribe is a no-op.
	svc.Unsubscribe(sub)
}

func TestUnsubscribeDuringBlockedPush(t *testing.T) {
	repo := &stubDoctorRepo{doctors: []entity.Doctor{
		{WalletAddress: "0xa", Status: entity.StatusPending},
	}}
	svc := newTestSnapshotService(repo)
	defer svc.Stop()

	sub, err := svc.Subscribe(entity.DoctorFilter{})
	require.NoError(t, err)

	// The undrained initial snapshot keeps the buffer full, so the
	// next push blocks inside the fanout.
	pushed := make(chan struct{})
	go func() {
		svc.NotifyChanged(context.Background())
		close(pushed)
	}()

	time.Sleep(50 * time.Millisecond)
	svc.Unsubscribe(sub)

	select {
	case <-pushed:
	case <-time.After(2 * time.Second):
		t.Fatal("fanout did not return after unsubscribe")
	}
	requireDone(t, sub)
}

func TestStopReleasesAllSubscriptions(t *testing.T) {
	svc := newTestSnapshotService(&stubDoctorRepo{})

	sub, err := svc.Subscribe(entity.DoctorFilter{})
	require.NoError(t, err)
	receiveSnapshot(t, sub)

	svc.Stop()
	svc.Stop() // idempotent

	requireDone(t, sub)
	assert.Equal(t, 0, svc.SubscriberCount())
}
