// Package capture implements the per-student photo attendance wizard. A
// Workflow walks a class roster one student at a time, records exactly one
// present/absent decision per student and then writes one attendance record
// per student, in roster order, for the configured date and slot.
package capture

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/noah-isme/school-portal/internal/models"
	appErrors "github.com/noah-isme/school-portal/pkg/errors"
)

// State is the workflow's top-level state.
type State string

const (
	StateSelecting  State = "selecting"
	StateLoading    State = "loading"
	StateEmpty      State = "empty"
	StateReviewing  State = "reviewing"
	StateSaving     State = "saving"
	StateSaveFailed State = "save_failed"
	StateComplete   State = "complete"
)

// Phase is the sub-state of StateReviewing.
type Phase string

const (
	PhaseAwaitingCapture Phase = "awaiting_capture"
	PhasePhotoReady      Phase = "photo_ready"
)

// RosterSource loads the students of a class section in roster order.
type RosterSource interface {
	Roster(ctx context.Context, class, section string) ([]models.Student, error)
}

// RecordWriter persists one attendance record.
type RecordWriter interface {
	CreateAttendance(ctx context.Context, record models.AttendanceRecord) (models.AttendanceRecord, error)
}

// Notifier receives the operator-facing acknowledgments.
type Notifier interface {
	Notify(ctx context.Context, ack models.Acknowledgment)
}

// Decision is the recorded outcome for one student.
type Decision struct {
	StudentID string    `json:"student_id"`
	Name      string    `json:"name"`
	Present   bool      `json:"present"`
	Photo     string    `json:"photo,omitempty"`
	DecidedAt time.Time `json:"decided_at"`
}

// View is a snapshot of the workflow for rendering.
type View struct {
	State     State                  `json:"state"`
	Phase     Phase                  `json:"phase,omitempty"`
	Date      string                 `json:"date"`
	Slot      models.Slot            `json:"slot"`
	Class     string                 `json:"class,omitempty"`
	Section   string                 `json:"section,omitempty"`
	Index     int                    `json:"index"`
	Total     int                    `json:"total"`
	Current   *models.Student        `json:"current,omitempty"`
	Photo     string                 `json:"photo,omitempty"`
	Decisions []Decision             `json:"decisions"`
	Saved     int                    `json:"saved"`
	Error     string                 `json:"error,omitempty"`
	LastAck   *models.Acknowledgment `json:"last_ack,omitempty"`
}

// Workflow is safe for concurrent use, but its operations are meant to be
// driven one at a time by a single operator. Loading and saving release the
// lock while waiting on I/O; every other operation is rejected meanwhile.
type Workflow struct {
	mu sync.Mutex

	roster   RosterSource
	writer   RecordWriter
	notifier Notifier
	now      func() time.Time

	state   State
	phase   Phase
	date    string
	slot    models.Slot
	class   string
	section string

	students  []models.Student
	index     int
	photo     string
	decisions []Decision
	saved     int
	lastErr   string
	lastAck   *models.Acknowledgment
}

// Option customises a Workflow.
type Option func(*Workflow)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(w *Workflow) { w.now = now }
}

// WithNotifier routes acknowledgments to n.
func WithNotifier(n Notifier) Option {
	return func(w *Workflow) { w.notifier = n }
}

// New returns a workflow in StateSelecting for today's morning slot.
func New(roster RosterSource, writer RecordWriter, opts ...Option) *Workflow {
	w := &Workflow{roster: roster, writer: writer, now: time.Now, state: StateSelecting, slot: models.SlotMorning}
	for _, opt := range opts {
		opt(w)
	}
	w.date = w.now().Format(models.DateLayout)
	return w
}

// View returns a snapshot of the current state.
func (w *Workflow) View() View {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.viewLocked()
}

// Configure sets the session date and slot before a class is selected.
func (w *Workflow) Configure(date string, slot models.Slot) (View, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.idle() {
		return w.viewLocked(), w.transitionErr("configure")
	}
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return w.viewLocked(), appErrors.Clone(appErrors.ErrValidation, "date must be formatted as YYYY-MM-DD")
	}
	if !slot.Valid() {
		return w.viewLocked(), appErrors.Clone(appErrors.ErrValidation, "unknown time slot "+string(slot))
	}
	w.date = date
	w.slot = slot
	return w.viewLocked(), nil
}

// Select loads the roster of class and section. An empty roster moves to
// StateEmpty; a load failure returns to StateSelecting with the error kept.
func (w *Workflow) Select(ctx context.Context, class, section string) (View, error) {
	w.mu.Lock()
	if !w.idle() {
		defer w.mu.Unlock()
		return w.viewLocked(), w.transitionErr("select a class")
	}
	if class == "" || section == "" {
		defer w.mu.Unlock()
		return w.viewLocked(), appErrors.Clone(appErrors.ErrValidation, "class and section are required")
	}
	w.clearSession()
	w.class, w.section = class, section
	w.state = StateLoading
	w.mu.Unlock()

	students, err := w.roster.Roster(ctx, class, section)

	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil {
		w.state = StateSelecting
		w.lastErr = "failed to load students"
		w.acknowledge(ctx, models.AckError, "load_roster", "Failed to load students")
		return w.viewLocked(), err
	}
	w.students = append([]models.Student(nil), students...)
	if len(w.students) == 0 {
		w.state = StateEmpty
		return w.viewLocked(), nil
	}
	w.state = StateReviewing
	w.phase = PhaseAwaitingCapture
	return w.viewLocked(), nil
}

// Capture attaches a photo to the current student.
func (w *Workflow) Capture(photo string) (View, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != StateReviewing || w.phase != PhaseAwaitingCapture {
		return w.viewLocked(), w.transitionErr("capture a photo")
	}
	if photo == "" {
		return w.viewLocked(), appErrors.Clone(appErrors.ErrValidation, "photo is empty")
	}
	w.photo = photo
	w.phase = PhasePhotoReady
	return w.viewLocked(), nil
}

// Retake discards the captured photo.
func (w *Workflow) Retake() (View, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != StateReviewing || w.phase != PhasePhotoReady {
		return w.viewLocked(), w.transitionErr("retake")
	}
	w.photo = ""
	w.phase = PhaseAwaitingCapture
	return w.viewLocked(), nil
}

// MarkPresent records the current student as present with the captured photo.
// Without a photo it fails with ErrPhotoRequired and nothing changes.
func (w *Workflow) MarkPresent(ctx context.Context) (View, error) {
	return w.decide(ctx, true)
}

// MarkAbsent records the current student as absent; any photo is discarded.
func (w *Workflow) MarkAbsent(ctx context.Context) (View, error) {
	return w.decide(ctx, false)
}

func (w *Workflow) decide(ctx context.Context, present bool) (View, error) {
	w.mu.Lock()
	if w.state != StateReviewing {
		defer w.mu.Unlock()
		return w.viewLocked(), w.transitionErr("mark attendance")
	}
	if present && w.phase != PhasePhotoReady {
		defer w.mu.Unlock()
		return w.viewLocked(), appErrors.Clone(appErrors.ErrPhotoRequired, "capture a photo before marking present")
	}

	student := w.students[w.index]
	decision := Decision{StudentID: student.ID, Name: student.Name, Present: present, DecidedAt: w.now()}
	if present {
		decision.Photo = w.photo
		w.acknowledge(ctx, models.AckSuccess, "mark_present", student.Name+" marked as present")
	} else {
		w.acknowledge(ctx, models.AckInfo, "mark_absent", student.Name+" marked as absent")
	}
	w.decisions = append(w.decisions, decision)
	w.photo = ""

	if w.index < len(w.students)-1 {
		w.index++
		w.phase = PhaseAwaitingCapture
		defer w.mu.Unlock()
		return w.viewLocked(), nil
	}

	w.phase = ""
	w.state = StateSaving
	w.mu.Unlock()
	return w.persist(ctx)
}

// Save retries a failed batch, resuming at the first unsaved student.
func (w *Workflow) Save(ctx context.Context) (View, error) {
	w.mu.Lock()
	if w.state != StateSaveFailed {
		defer w.mu.Unlock()
		return w.viewLocked(), w.transitionErr("save")
	}
	w.state = StateSaving
	w.lastErr = ""
	w.mu.Unlock()
	return w.persist(ctx)
}

// persist writes the pending decisions one at a time in roster order.
// Called in StateSaving without the lock held.
func (w *Workflow) persist(ctx context.Context) (View, error) {
	w.mu.Lock()
	pending := append([]Decision(nil), w.decisions[w.saved:]...)
	date, slot := w.date, w.slot
	w.mu.Unlock()

	for _, d := range pending {
		record := models.AttendanceRecord{StudentID: d.StudentID, Date: date}
		record.SetPresence(slot, d.Present, d.Photo)
		if _, err := w.writer.CreateAttendance(ctx, record); err != nil {
			w.mu.Lock()
			defer w.mu.Unlock()
			w.state = StateSaveFailed
			w.lastErr = fmt.Sprintf("failed to save attendance for %s", d.Name)
			w.acknowledge(ctx, models.AckError, "save_attendance", "Failed to save attendance")
			return w.viewLocked(), err
		}
		w.mu.Lock()
		w.saved++
		w.mu.Unlock()
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.acknowledge(ctx, models.AckSuccess, "save_attendance", "Attendance saved successfully!")
	view := w.viewLocked()
	view.State = StateComplete
	w.state = StateComplete
	w.decisions = nil
	w.index = 0
	w.saved = 0
	return view, nil
}

// Reset abandons the current session without saving and returns to
// StateSelecting. Date and slot are kept.
func (w *Workflow) Reset() (View, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state == StateLoading || w.state == StateSaving {
		return w.viewLocked(), w.transitionErr("reset")
	}
	w.clearSession()
	w.state = StateSelecting
	return w.viewLocked(), nil
}

// idle reports whether a new class may be selected or the session reconfigured.
func (w *Workflow) idle() bool {
	switch w.state {
	case StateSelecting, StateEmpty, StateComplete:
		return true
	default:
		return false
	}
}

func (w *Workflow) clearSession() {
	w.class, w.section = "", ""
	w.students = nil
	w.index = 0
	w.phase = ""
	w.photo = ""
	w.decisions = nil
	w.saved = 0
	w.lastErr = ""
}

func (w *Workflow) transitionErr(action string) error {
	return appErrors.Clone(appErrors.ErrInvalidTransition, fmt.Sprintf("cannot %s while %s", action, w.state))
}

func (w *Workflow) acknowledge(ctx context.Context, level models.AckLevel, action, message string) {
	ack := models.Acknowledgment{Level: level, Action: action, Message: message, At: w.now()}
	w.lastAck = &ack
	if w.notifier != nil {
		w.notifier.Notify(ctx, ack)
	}
}

func (w *Workflow) viewLocked() View {
	v := View{
		State:     w.state,
		Phase:     w.phase,
		Date:      w.date,
		Slot:      w.slot,
		Class:     w.class,
		Section:   w.section,
		Index:     w.index,
		Total:     len(w.students),
		Photo:     w.photo,
		Decisions: append([]Decision{}, w.decisions...),
		Saved:     w.saved,
		Error:     w.lastErr,
	}
	if w.state == StateReviewing && w.index < len(w.students) {
		current := w.students[w.index]
		v.Current = &current
	}
	if w.lastAck != nil {
		ack := *w.lastAck
		v.LastAck = &ack
	}
	return v
}
