package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/school-portal/internal/models"
	"github.com/noah-isme/school-portal/pkg/jobs"
)

// ActivityJobType tags queued activity deliveries.
const ActivityJobType = "activity.record"

type activityStore interface {
	Insert(ctx context.Context, entry *models.ActivityEntry) error
	ListByTenant(ctx context.Context, tenant string, limit int) ([]models.ActivityEntry, error)
}

type jobDispatcher interface {
	Enqueue(job jobs.Job) error
}

type queryObserver interface {
	ObserveDBQuery(label string, duration time.Duration)
}

// ActivityService records operator acknowledgments. With a store and queue
// configured entries are delivered to Postgres asynchronously; otherwise
// the most recent entries per school are kept in memory.
type ActivityService struct {
	store   activityStore
	queue   jobDispatcher
	metrics queryObserver
	logger  *zap.Logger
	now     func() time.Time

	mu     sync.RWMutex
	recent map[string][]models.ActivityEntry
	limit  int
}

// NewActivityService constructs an ActivityService. store and queue may be nil.
func NewActivityService(store activityStore, queue jobDispatcher, metrics queryObserver, logger *zap.Logger) *ActivityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ActivityService{
		store:   store,
		queue:   queue,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
		recent:  make(map[string][]models.ActivityEntry),
		limit:   100,
	}
}

// Record stores entry. Delivery failures are logged, never returned, so an
// acknowledgment cannot fail the operation that produced it.
func (s *ActivityService) Record(ctx context.Context, entry models.ActivityEntry) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.now().UTC()
	}

	s.remember(entry)

	s.logger.Info("activity",
		zap.String("tenant", entry.Tenant),
		zap.String("actor_id", entry.ActorID),
		zap.String("level", string(entry.Level)),
		zap.String("action", entry.Action),
		zap.String("message", entry.Message),
	)

	if s.queue == nil {
		return
	}
	if err := s.queue.Enqueue(jobs.Job{ID: entry.ID, Type: ActivityJobType, Payload: entry}); err != nil {
		s.logger.Warn("activity enqueue failed", zap.String("activity_id", entry.ID), zap.Error(err))
	}
}

// List returns the newest entries for a school.
func (s *ActivityService) List(ctx context.Context, tenant models.TenantKey, limit int) ([]models.ActivityEntry, error) {
	if limit <= 0 || limit > s.limit {
		limit = s.limit
	}
	if s.store != nil {
		start := s.now()
		entries, err := s.store.ListByTenant(ctx, string(tenant), limit)
		s.observe("activity_list", start)
		if err != nil {
			return nil, err
		}
		return entries, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	cached := s.recent[string(tenant)]
	out := make([]models.ActivityEntry, 0, limit)
	for i := len(cached) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, cached[i])
	}
	return out, nil
}

// Deliver is the queue handler that writes one entry to the store.
func (s *ActivityService) Deliver(ctx context.Context, job jobs.Job) error {
	entry, ok := job.Payload.(models.ActivityEntry)
	if !ok {
		return fmt.Errorf("activity job %s: unexpected payload %T", job.ID, job.Payload)
	}
	if s.store == nil {
		return nil
	}
	start := s.now()
	err := s.store.Insert(ctx, &entry)
	s.observe("activity_insert", start)
	return err
}

func (s *ActivityService) remember(entry models.ActivityEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := append(s.recent[entry.Tenant], entry)
	if len(list) > s.limit {
		list = list[len(list)-s.limit:]
	}
	s.recent[entry.Tenant] = list
}

func (s *ActivityService) observe(label string, start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveDBQuery(label, s.now().Sub(start))
	}
}
