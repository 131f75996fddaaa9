package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"medfi-backend/internal/domain/entity"
	"medfi-backend/internal/domain/repository"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// DoctorsChangedChannel is the Redis pub/sub channel announcing that
// some doctor record changed. The payload carries no delta; receivers
// re-query and push full snapshots, so a lost or duplicated message
// costs at most one redundant refresh.
const DoctorsChangedChannel = "medfi:doctors:changed"

// pushTimeout bounds how long a snapshot push waits on a slow consumer
// before the subscription is dropped.
const pushTimeout = 1 * time.Second

// Subscription is a live query over the doctors collection. C receives
// the full current result set immediately after subscribing and again
// after every change. Release through SnapshotService.Unsubscribe.
//
// C is never closed: a fanout may be mid-send when the subscription is
// released, and a close would panic that sender. Termination is
// signalled through Done instead.
type Subscription struct {
	C      chan []entity.Doctor
	filter entity.DoctorFilter

	done     chan struct{}
	stopOnce sync.Once
}

// Done is closed once the subscription is released; no further
// snapshots arrive after it fires.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

func (s *Subscription) stop() {
	s.stopOnce.Do(func() {
		close(s.done)
	})
}

// SnapshotService is the observer half of the store: writers call
// NotifyChanged after a doctor write, and every subscriber gets the
// complete matching result set pushed. With a Redis client attached,
// change announcements fan out across instances.
type SnapshotService struct {
	db         *gorm.DB
	log        *logrus.Logger
	doctorRepo repository.DoctorRepository

	// nil disables cross-instance fan-out; local subscribers still work
	redisClient *redis.Client

	mu   sync.Mutex
	subs map[*Subscription]struct{}

	stopChan chan struct{}
	stopped  atomic.Bool
	wg       sync.WaitGroup
}

func NewSnapshotService(db *gorm.DB, log *logrus.Logger, doctorRepo repository.DoctorRepository, redisClient *redis.Client) *SnapshotService {
	svc := &SnapshotService{
		db:          db,
		log:         log,
		doctorRepo:  doctorRepo,
		redisClient: redisClient,
		subs:        make(map[*Subscription]struct{}),
		stopChan:    make(chan struct{}),
	}

	if redisClient != nil {
		svc.wg.Add(1)
		go svc.listenRemoteChanges()
	}

	return svc
}

// Stop gracefully shuts down the service. Safe to call multiple times.
func (s *SnapshotService) Stop() {
	if s.stopped.CompareAndSwap(false, true) {
		close(s.stopChan)
		s.wg.Wait()

		s.mu.Lock()
		for sub := range s.subs {
			delete(s.subs, sub)
			sub.stop()
		}
		s.mu.Unlock()
	}
}

// Subscribe registers a live query and immediately pushes the current
// snapshot, matching the store contract of "fires immediately and on
// every matching change".
func (s *SnapshotService) Subscribe(filter entity.DoctorFilter) (*Subscription, error) {
	snapshot, err := s.doctorRepo.FindAll(s.db, filter)
	if err != nil {
		return nil, err
	}

	sub := &Subscription{
		C:      make(chan []entity.Doctor, 1),
		filter: filter,
		done:   make(chan struct{}),
	}
	sub.C <- snapshot

	s.mu.Lock()
	s.subs[sub] = struct{}{}
	s.mu.Unlock()

	return sub, nil
}

// Unsubscribe releases the subscription; Done fires and no further
// snapshots arrive. C stays open so a push racing the release lands in
// the buffer or gives up, never hits a closed channel.
func (s *SnapshotService) Unsubscribe(sub *Subscription) {
	s.mu.Lock()
	delete(s.subs, sub)
	s.mu.Unlock()

	sub.stop()
}

// NotifyChanged is called by usecases after any doctor write. Local
// subscribers get fresh snapshots; the change is also announced to
// other instances through Redis.
func (s *SnapshotService) NotifyChanged(ctx context.Context) {
	s.fanout()

	if s.redisClient != nil {
		if err := s.redisClient.Publish(ctx, DoctorsChangedChannel, "changed").Err(); err != nil {
			s.log.Warnf("Failed to publish doctors change: %+v", err)
		}
	}
}

// SubscriberCount reports the number of active subscriptions.
func (s *SnapshotService) SubscriberCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

// fanout re-runs each subscriber's query and pushes the full result
// set. Slow consumers are dropped rather than allowed to block the rest.
func (s *SnapshotService) fanout() {
	s.mu.Lock()
	targets := make([]*Subscription, 0, len(s.subs))
	for sub := range s.subs {
		targets = append(targets, sub)
	}
	s.mu.Unlock()

	for _, sub := range targets {
		snapshot, err := s.doctorRepo.FindAll(s.db, sub.filter)
		if err != nil {
			s.log.Warnf("Failed to query snapshot for subscriber: %+v", err)
			continue
		}

		select {
		case sub.C <- snapshot:
		case <-sub.done:
		case <-time.After(pushTimeout):
			s.log.Warn("Dropping unresponsive snapshot subscriber")
			s.Unsubscribe(sub)
		}
	}
}

// listenRemoteChanges re-queries and pushes whenever another instance
// announces a write. The instance's own publishes arrive here too; the
// extra refresh is harmless because snapshots are full-state.
func (s *SnapshotService) listenRemoteChanges() {
	defer s.wg.Done()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		<-s.stopChan
		cancel()
	}()

	pubsub := s.redisClient.Subscribe(ctx, DoctorsChangedChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-s.stopChan:
			return
		case _, ok := <-ch:
			if !ok {
				return
			}
			s.fanout()
		}
	}
}
