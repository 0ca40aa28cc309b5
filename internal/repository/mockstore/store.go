// Package mockstore is the in-memory, multi-school stand-in for the remote
// backend. Every operation takes the tenant key explicitly, sleeps for the
// configured latency and returns copies of the stored rows.
package mockstore

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/noah-isme/school-portal/internal/models"
	appErrors "github.com/noah-isme/school-portal/pkg/errors"
)

// Options tunes a Store.
type Options struct {
	Latency time.Duration
	Jitter  time.Duration
	Now     func() time.Time
}

type cloner[T any] interface {
	Clone() T
}

type row[T any] struct {
	schoolID string
	value    T
}

// table holds one entity type for every school; rows keep insertion order.
type table[T cloner[T]] struct {
	rows []row[T]
}

func (t *table[T]) list(schoolID string, keep func(T) bool) []T {
	out := make([]T, 0)
	for _, r := range t.rows {
		if r.schoolID != schoolID {
			continue
		}
		if keep == nil || keep(r.value) {
			out = append(out, r.value.Clone())
		}
	}
	return out
}

func (t *table[T]) find(schoolID string, match func(T) bool) (int, bool) {
	for i, r := range t.rows {
		if r.schoolID == schoolID && match(r.value) {
			return i, true
		}
	}
	return -1, false
}

func (t *table[T]) get(i int) T {
	return t.rows[i].value.Clone()
}

func (t *table[T]) insert(schoolID string, v T) {
	t.rows = append(t.rows, row[T]{schoolID: schoolID, value: v.Clone()})
}

func (t *table[T]) replace(i int, v T) {
	t.rows[i].value = v.Clone()
}

func (t *table[T]) remove(i int) {
	t.rows = append(t.rows[:i], t.rows[i+1:]...)
}

// Store is safe for concurrent use.
type Store struct {
	mu sync.RWMutex

	latency time.Duration
	jitter  time.Duration
	now     func() time.Time

	schools    []models.School
	accounts   []account
	students   table[models.Student]
	teachers   table[models.Teacher]
	parents    table[models.Parent]
	attendance table[models.AttendanceRecord]
	exams      table[models.ExamResult]
	queries    table[models.Query]
	fees       table[models.FeeRecord]
}

// New returns an empty store.
func New(opts Options) *Store {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Store{latency: opts.Latency, jitter: opts.Jitter, now: now}
}

// NewSeeded returns a store holding the demo schools and their data.
func NewSeeded(opts Options) *Store {
	s := New(opts)
	s.seed()
	return s
}

// wait simulates network latency; it returns early when ctx is done.
func (s *Store) wait(ctx context.Context) error {
	d := s.latency
	if s.jitter > 0 {
		d += time.Duration(rand.Int63n(int64(s.jitter)))
	}
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// schoolFor maps a tenant key to its school. Callers hold s.mu.
func (s *Store) schoolFor(tenant models.TenantKey) (models.School, error) {
	for _, school := range s.schools {
		if school.Tenant() == tenant {
			return school, nil
		}
	}
	return models.School{}, appErrors.Clone(appErrors.ErrTenantNotFound, "school "+string(tenant)+" not found")
}

// read waits, takes the read lock and resolves the tenant.
func (s *Store) read(ctx context.Context, tenant models.TenantKey, fn func(schoolID string) error) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	school, err := s.schoolFor(tenant)
	if err != nil {
		return err
	}
	return fn(school.ID)
}

// write waits, takes the write lock and resolves the tenant.
func (s *Store) write(ctx context.Context, tenant models.TenantKey, fn func(schoolID string) error) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	school, err := s.schoolFor(tenant)
	if err != nil {
		return err
	}
	return fn(school.ID)
}

func (s *Store) today() string {
	return s.now().Format(models.DateLayout)
}

func newID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

func notFound(what string) error {
	return appErrors.Clone(appErrors.ErrNotFound, what+" not found")
}

func invalid(msg string) error {
	return appErrors.Clone(appErrors.ErrValidation, msg)
}
