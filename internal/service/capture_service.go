package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/school-portal/internal/capture"
	"github.com/noah-isme/school-portal/internal/gateway"
	"github.com/noah-isme/school-portal/internal/models"
	appErrors "github.com/noah-isme/school-portal/pkg/errors"
)

type rosterLoader interface {
	Roster(ctx context.Context, scope gateway.Scope, class, section string) ([]models.Student, error)
}

type attendanceWriter interface {
	Create(ctx context.Context, scope gateway.Scope, record models.AttendanceRecord) (*models.AttendanceRecord, error)
}

type activityRecorder interface {
	Record(ctx context.Context, entry models.ActivityEntry)
}

// Actor identifies who drives a capture session.
type Actor struct {
	SessionID string
	UserID    string
}

// DefaultCaptureIdleTimeout matches the default console session TTL.
const DefaultCaptureIdleTimeout = 12 * time.Hour

const captureSweepInterval = time.Minute

// CaptureService keeps one attendance capture workflow per console session.
// Workflows are dropped on logout, when the backend expires the session, and
// once they sit idle longer than the idle timeout.
type CaptureService struct {
	roster   rosterLoader
	writer   attendanceWriter
	activity activityRecorder
	logger   *zap.Logger
	now      func() time.Time

	mu          sync.Mutex
	workflows   map[string]*captureEntry
	idleTimeout time.Duration
	lastSweep   time.Time
}

type captureEntry struct {
	wf      *capture.Workflow
	binding *captureBinding
	touched time.Time
}

// NewCaptureService constructs a CaptureService. activity may be nil.
func NewCaptureService(roster rosterLoader, writer attendanceWriter, activity activityRecorder, logger *zap.Logger) *CaptureService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CaptureService{
		roster:    roster,
		writer:    writer,
		activity:  activity,
		logger:    logger,
		now:         time.Now,
		workflows:   make(map[string]*captureEntry),
		idleTimeout: DefaultCaptureIdleTimeout,
	}
}

// SetIdleTimeout changes how long an untouched workflow is kept. Non-positive
// values are ignored.
func (s *CaptureService) SetIdleTimeout(d time.Duration) {
	if d <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.idleTimeout = d
}

// View returns the session's workflow snapshot, creating the workflow on first use.
func (s *CaptureService) View(scope gateway.Scope, actor Actor) capture.View {
	return s.workflow(scope, actor).View()
}

// Configure sets the date and slot; the slot must be enabled for the school.
func (s *CaptureService) Configure(ctx context.Context, scope gateway.Scope, actor Actor, date string, slot models.Slot) (capture.View, error) {
	wf := s.workflow(scope, actor)
	settings, err := s.settings(ctx, scope)
	if err != nil {
		return wf.View(), err
	}
	if !settings.AllowsSlot(slot) {
		return wf.View(), appErrors.Clone(appErrors.ErrValidation, "time slot "+string(slot)+" is not enabled for this school")
	}
	return wf.Configure(date, slot)
}

// Select loads the roster of a class section offered by the school.
func (s *CaptureService) Select(ctx context.Context, scope gateway.Scope, actor Actor, class, section string) (capture.View, error) {
	wf := s.workflow(scope, actor)
	settings, err := s.settings(ctx, scope)
	if err != nil {
		return wf.View(), err
	}
	if !settings.AllowsClass(class) {
		return wf.View(), appErrors.Clone(appErrors.ErrValidation, "class "+class+" is not offered by this school")
	}
	if !settings.AllowsSection(section) {
		return wf.View(), appErrors.Clone(appErrors.ErrValidation, "section "+section+" is not offered by this school")
	}
	return wf.Select(ctx, class, section)
}

// Capture attaches an inline image to the current student.
func (s *CaptureService) Capture(scope gateway.Scope, actor Actor, photo string) (capture.View, error) {
	wf := s.workflow(scope, actor)
	if !strings.HasPrefix(photo, "data:image/") {
		return wf.View(), appErrors.Clone(appErrors.ErrValidation, "photo must be an inline image data URL")
	}
	return wf.Capture(photo)
}

// Retake discards the captured photo.
func (s *CaptureService) Retake(scope gateway.Scope, actor Actor) (capture.View, error) {
	return s.workflow(scope, actor).Retake()
}

// MarkPresent records the current student as present.
func (s *CaptureService) MarkPresent(ctx context.Context, scope gateway.Scope, actor Actor) (capture.View, error) {
	return s.workflow(scope, actor).MarkPresent(ctx)
}

// MarkAbsent records the current student as absent.
func (s *CaptureService) MarkAbsent(ctx context.Context, scope gateway.Scope, actor Actor) (capture.View, error) {
	return s.workflow(scope, actor).MarkAbsent(ctx)
}

// Save retries a failed batch save.
func (s *CaptureService) Save(ctx context.Context, scope gateway.Scope, actor Actor) (capture.View, error) {
	return s.workflow(scope, actor).Save(ctx)
}

// Reset returns the workflow to class selection.
func (s *CaptureService) Reset(scope gateway.Scope, actor Actor) (capture.View, error) {
	return s.workflow(scope, actor).Reset()
}

// Discard drops the session's workflow, used on logout.
func (s *CaptureService) Discard(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.workflows, sessionID)
}

// Sweep drops workflows untouched for longer than the idle timeout and
// returns how many were removed.
func (s *CaptureService) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweepLocked(s.now())
}

func (s *CaptureService) sweepLocked(now time.Time) int {
	s.lastSweep = now
	removed := 0
	for id, entry := range s.workflows {
		if now.Sub(entry.touched) > s.idleTimeout {
			delete(s.workflows, id)
			removed++
		}
	}
	if removed > 0 {
		s.logger.Debug("idle capture workflows dropped", zap.Int("count", removed))
	}
	return removed
}

func (s *CaptureService) workflow(scope gateway.Scope, actor Actor) *capture.Workflow {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if now.Sub(s.lastSweep) >= captureSweepInterval {
		s.sweepLocked(now)
	}
	if entry, ok := s.workflows[actor.SessionID]; ok {
		entry.touched = now
		entry.binding.rebind(scope)
		return entry.wf
	}
	binding := &captureBinding{service: s, actor: actor, scope: scope}
	wf := capture.New(binding, binding, capture.WithClock(s.now), capture.WithNotifier(binding))
	s.workflows[actor.SessionID] = &captureEntry{wf: wf, binding: binding, touched: now}
	s.logger.Debug("capture workflow created", zap.String("session_id", actor.SessionID), zap.String("tenant", string(scope.Tenant)))
	return wf
}

// expire drops the workflow owned by binding after the backend signed its
// session out. A newer workflow under the same session id is kept.
func (s *CaptureService) expire(binding *captureBinding) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry, ok := s.workflows[binding.actor.SessionID]; ok && entry.binding == binding {
		delete(s.workflows, binding.actor.SessionID)
		s.logger.Info("capture workflow dropped, session expired", zap.String("session_id", binding.actor.SessionID))
	}
}

// settings reads the school stored in the session. A session without a
// school record allows every class, section and slot.
func (s *CaptureService) settings(ctx context.Context, scope gateway.Scope) (models.SchoolSettings, error) {
	if scope.Session == nil {
		return models.SchoolSettings{}, nil
	}
	school, err := scope.Session.School(ctx)
	if err != nil {
		return models.SchoolSettings{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load school settings")
	}
	if school == nil {
		return models.SchoolSettings{}, nil
	}
	return school.Settings, nil
}

// captureBinding adapts the domain services to the workflow's collaborators.
// The scope is refreshed on every request so the workflow always talks to the
// backend with the caller's current session.
type captureBinding struct {
	service *CaptureService
	actor   Actor

	mu    sync.Mutex
	scope gateway.Scope
}

func (b *captureBinding) rebind(scope gateway.Scope) {
	b.mu.Lock()
	b.scope = scope
	b.mu.Unlock()
}

func (b *captureBinding) current() gateway.Scope {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.scope
}

func (b *captureBinding) check(err error) error {
	if errors.Is(err, appErrors.ErrSessionExpired) {
		b.service.expire(b)
	}
	return err
}

func (b *captureBinding) Roster(ctx context.Context, class, section string) ([]models.Student, error) {
	students, err := b.service.roster.Roster(ctx, b.current(), class, section)
	return students, b.check(err)
}

func (b *captureBinding) CreateAttendance(ctx context.Context, record models.AttendanceRecord) (models.AttendanceRecord, error) {
	created, err := b.service.writer.Create(ctx, b.current(), record)
	if err != nil {
		return models.AttendanceRecord{}, b.check(err)
	}
	return *created, nil
}

func (b *captureBinding) Notify(ctx context.Context, ack models.Acknowledgment) {
	if b.service.activity == nil {
		return
	}
	b.service.activity.Record(ctx, models.ActivityEntry{
		Tenant:    string(b.current().Tenant),
		SessionID: b.actor.SessionID,
		ActorID:   b.actor.UserID,
		Level:     ack.Level,
		Action:    "attendance." + ack.Action,
		Message:   ack.Message,
		CreatedAt: ack.At,
	})
}
