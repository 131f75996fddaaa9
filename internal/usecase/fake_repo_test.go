package usecase

import (
	"context"
	"database/sql"
	"io"
	"sync"
	"testing"
	"time"

	"medfi-backend/internal/domain/entity"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
)

// fakeDoctorRepo serves canned records and honors the filter the same
// way the SQL implementation does, minus the store itself.
type fakeDoctorRepo struct {
	doctors     []entity.Doctor
	merged      []map[string]interface{}
	transitions int
}

func (f *fakeDoctorRepo) FindByAddress(db *gorm.DB, address string) (*entity.Doctor, error) {
	for i := range f.doctors {
		if f.doctors[i].WalletAddress == address {
			d := f.doctors[i]
			return &d, nil
		}
	}
	return nil, nil
}

func (f *fakeDoctorRepo) FindAll(db *gorm.DB, filter entity.DoctorFilter) ([]entity.Doctor, error) {
	var out []entity.Doctor
	for _, d := range f.doctors {
		if filter.Status != "" && d.Status != filter.Status {
			continue
		}
		if filter.Specialty != "" && d.Specialty != filter.Specialty {
			continue
		}
		if filter.Exclude != "" && d.WalletAddress == filter.Exclude {
			continue
		}
		out = append(out, d)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

func (f *fakeDoctorRepo) CountByStatus(db *gorm.DB) (map[entity.VerificationStatus]int64, error) {
	counts := make(map[entity.VerificationStatus]int64)
	for _, d := range f.doctors {
		counts[d.Status]++
	}
	return counts, nil
}

func (f *fakeDoctorRepo) Merge(db *gorm.DB, address string, fields map[string]interface{}) error {
	f.merged = append(f.merged, fields)
	return nil
}

func (f *fakeDoctorRepo) TransitionStatus(db *gorm.DB, address string, from, to entity.VerificationStatus, fields map[string]interface{}) (int64, error) {
	f.transitions++
	for i := range f.doctors {
		if f.doctors[i].WalletAddress == address && f.doctors[i].Status == from {
			f.doctors[i].Status = to
			if reviewedAt, ok := fields["reviewed_at"].(time.Time); ok {
				f.doctors[i].ReviewedAt = &reviewedAt
			}
			return 1, nil
		}
	}
	return 0, nil
}

// fakeAuditLogRepo collects entries in memory.
type fakeAuditLogRepo struct {
	logs []entity.AuditLog
}

func (f *fakeAuditLogRepo) Create(db *gorm.DB, log *entity.AuditLog) error {
	f.logs = append(f.logs, *log)
	return nil
}

func (f *fakeAuditLogRepo) FindByWallet(db *gorm.DB, wallet string) ([]entity.AuditLog, error) {
	var out []entity.AuditLog
	for _, l := range f.logs {
		if l.Wallet == wallet {
			out = append(out, l)
		}
	}
	return out, nil
}

// fakeLocker is an in-memory single-flight guard. Pre-populating held
// simulates a lock another holder already owns.
type fakeLocker struct {
	mu   sync.Mutex
	held map[string]string
}

func (l *fakeLocker) Acquire(ctx context.Context, key, owner string, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held == nil {
		l.held = make(map[string]string)
	}
	if _, ok := l.held[key]; ok {
		return false, nil
	}
	l.held[key] = owner
	return true, nil
}

func (l *fakeLocker) Release(ctx context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.held, key)
	return nil
}

// stubConnPool lets the dummy-dialector DB begin and commit
// transactions without a database behind it. The repositories in these
// tests are in-memory fakes, so no statement ever reaches the pool.
type stubConnPool struct{}

func (stubConnPool) PrepareContext(ctx context.Context, query string) (*sql.Stmt, error) {
	return nil, nil
}

func (stubConnPool) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (stubConnPool) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (stubConnPool) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return nil
}

func (stubConnPool) BeginTx(ctx context.Context, opts *sql.TxOptions) (gorm.ConnPool, error) {
	return &stubTx{}, nil
}

type stubTx struct {
	stubConnPool
}

func (*stubTx) Commit() error   { return nil }
func (*stubTx) Rollback() error { return nil }

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{ConnPool: stubConnPool{}})
	require.NoError(t, err)
	return db
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
