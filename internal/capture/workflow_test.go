package capture

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-portal/internal/models"
	appErrors "github.com/noah-isme/school-portal/pkg/errors"
)

type rosterStub struct {
	students []models.Student
	err      error
}

func (r *rosterStub) Roster(context.Context, string, string) ([]models.Student, error) {
	return r.students, r.err
}

type writerStub struct {
	records []models.AttendanceRecord
	failAt  int
	calls   int
}

func (w *writerStub) CreateAttendance(_ context.Context, record models.AttendanceRecord) (models.AttendanceRecord, error) {
	w.calls++
	if w.failAt > 0 && w.calls == w.failAt {
		return models.AttendanceRecord{}, errors.New("backend unavailable")
	}
	w.records = append(w.records, record)
	return record, nil
}

type notifierStub struct {
	acks []models.Acknowledgment
}

func (n *notifierStub) Notify(_ context.Context, ack models.Acknowledgment) {
	n.acks = append(n.acks, ack)
}

func threeStudents() []models.Student {
	return []models.Student{
		{ID: "student1", Name: "Alice Johnson", Class: "10", Section: "A"},
		{ID: "student2", Name: "Bob Smith", Class: "10", Section: "A"},
		{ID: "student3", Name: "Charlie Brown", Class: "10", Section: "A"},
	}
}

func clock() time.Time {
	return time.Date(2024, 1, 15, 8, 30, 0, 0, time.UTC)
}

func newWorkflow(t *testing.T, roster *rosterStub, writer *writerStub, notifier *notifierStub) *Workflow {
	t.Helper()
	w := New(roster, writer, WithClock(clock), WithNotifier(notifier))
	_, err := w.Configure("2024-01-15", models.SlotMorning)
	require.NoError(t, err)
	return w
}

func TestMarkPresentRequiresPhoto(t *testing.T) {
	ctx := context.Background()
	writer := &writerStub{}
	w := newWorkflow(t, &rosterStub{students: threeStudents()}, writer, &notifierStub{})
	_, err := w.Select(ctx, "10", "A")
	require.NoError(t, err)

	before := w.View()
	_, err = w.MarkPresent(ctx)
	assert.ErrorIs(t, err, appErrors.ErrPhotoRequired)

	after := w.View()
	assert.Equal(t, before, after)
	assert.Empty(t, after.Decisions)
	assert.Zero(t, writer.calls)
}

func TestRetakeDiscardsPhoto(t *testing.T) {
	ctx := context.Background()
	w := newWorkflow(t, &rosterStub{students: threeStudents()}, &writerStub{}, &notifierStub{})
	_, err := w.Select(ctx, "10", "A")
	require.NoError(t, err)

	view, err := w.Capture("data:image/jpeg;base64,AAA")
	require.NoError(t, err)
	assert.Equal(t, PhasePhotoReady, view.Phase)

	view, err = w.Retake()
	require.NoError(t, err)
	assert.Equal(t, PhaseAwaitingCapture, view.Phase)
	assert.Empty(t, view.Photo)

	_, err = w.MarkPresent(ctx)
	assert.ErrorIs(t, err, appErrors.ErrPhotoRequired)
}

func TestEndToEndThreeStudents(t *testing.T) {
	ctx := context.Background()
	writer := &writerStub{}
	notifier := &notifierStub{}
	w := newWorkflow(t, &rosterStub{students: threeStudents()}, writer, notifier)

	view, err := w.Select(ctx, "10", "A")
	require.NoError(t, err)
	assert.Equal(t, StateReviewing, view.State)
	assert.Equal(t, "student1", view.Current.ID)

	_, err = w.Capture("photo-1")
	require.NoError(t, err)
	view, err = w.MarkPresent(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, view.Index)

	view, err = w.MarkAbsent(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, view.Index)

	_, err = w.Capture("photo-3")
	require.NoError(t, err)
	view, err = w.MarkPresent(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateComplete, view.State)

	require.Len(t, writer.records, 3)
	assert.Equal(t, []string{"student1", "student2", "student3"}, []string{
		writer.records[0].StudentID, writer.records[1].StudentID, writer.records[2].StudentID,
	})
	for _, rec := range writer.records {
		assert.Equal(t, "2024-01-15", rec.Date)
		assert.NotNil(t, rec.Morning)
		assert.Nil(t, rec.Afternoon)
		assert.Nil(t, rec.Evening)
	}
	assert.True(t, *writer.records[0].Morning)
	assert.Equal(t, "photo-1", writer.records[0].Photo(models.SlotMorning))
	assert.False(t, *writer.records[1].Morning)
	assert.Empty(t, writer.records[1].Photo(models.SlotMorning))
	assert.True(t, *writer.records[2].Morning)

	messages := make([]string, 0, len(notifier.acks))
	for _, ack := range notifier.acks {
		messages = append(messages, ack.Message)
	}
	assert.Equal(t, []string{
		"Alice Johnson marked as present",
		"Bob Smith marked as absent",
		"Charlie Brown marked as present",
		"Attendance saved successfully!",
	}, messages)

	final := w.View()
	assert.Equal(t, StateComplete, final.State)
	assert.Empty(t, final.Decisions)
	assert.Zero(t, final.Index)
}

func TestSaveFailureStopsAndResumes(t *testing.T) {
	ctx := context.Background()
	writer := &writerStub{failAt: 2}
	w := newWorkflow(t, &rosterStub{students: threeStudents()}, writer, &notifierStub{})
	_, err := w.Select(ctx, "10", "A")
	require.NoError(t, err)

	_, err = w.MarkAbsent(ctx)
	require.NoError(t, err)
	_, err = w.MarkAbsent(ctx)
	require.NoError(t, err)
	view, err := w.MarkAbsent(ctx)
	require.Error(t, err)
	assert.Equal(t, StateSaveFailed, view.State)
	assert.Equal(t, 1, view.Saved)
	assert.Equal(t, 2, writer.calls, "the batch stops at the first failure")
	assert.Contains(t, view.Error, "Bob Smith")

	_, err = w.Select(ctx, "10", "A")
	assert.ErrorIs(t, err, appErrors.ErrInvalidTransition)

	view, err = w.Save(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateComplete, view.State)
	require.Len(t, writer.records, 3)
	assert.Equal(t, "student1", writer.records[0].StudentID)
	assert.Equal(t, "student2", writer.records[1].StudentID)
	assert.Equal(t, "student3", writer.records[2].StudentID)
}

func TestEmptyRoster(t *testing.T) {
	ctx := context.Background()
	w := newWorkflow(t, &rosterStub{}, &writerStub{}, &notifierStub{})

	view, err := w.Select(ctx, "12", "E")
	require.NoError(t, err)
	assert.Equal(t, StateEmpty, view.State)

	_, err = w.MarkAbsent(ctx)
	assert.ErrorIs(t, err, appErrors.ErrInvalidTransition)

	view, err = w.Reset()
	require.NoError(t, err)
	assert.Equal(t, StateSelecting, view.State)
}

func TestRosterFailureReturnsToSelecting(t *testing.T) {
	ctx := context.Background()
	notifier := &notifierStub{}
	w := newWorkflow(t, &rosterStub{err: errors.New("offline")}, &writerStub{}, notifier)

	view, err := w.Select(ctx, "10", "A")
	require.Error(t, err)
	assert.Equal(t, StateSelecting, w.View().State)
	assert.Equal(t, "failed to load students", view.Error)
	require.Len(t, notifier.acks, 1)
	assert.Equal(t, models.AckError, notifier.acks[0].Level)
}

func TestCaptureOnlyWhileAwaiting(t *testing.T) {
	ctx := context.Background()
	w := newWorkflow(t, &rosterStub{students: threeStudents()}, &writerStub{}, &notifierStub{})

	_, err := w.Capture("photo")
	assert.ErrorIs(t, err, appErrors.ErrInvalidTransition)

	_, err = w.Select(ctx, "10", "A")
	require.NoError(t, err)
	_, err = w.Capture("photo")
	require.NoError(t, err)
	_, err = w.Capture("another")
	assert.ErrorIs(t, err, appErrors.ErrInvalidTransition)
}

func TestConfigureValidates(t *testing.T) {
	w := New(&rosterStub{}, &writerStub{}, WithClock(clock))
	assert.Equal(t, "2024-01-15", w.View().Date)

	_, err := w.Configure("15/01/2024", models.SlotMorning)
	assert.ErrorIs(t, err, appErrors.ErrValidation)
	_, err = w.Configure("2024-01-16", models.Slot("night"))
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	view, err := w.Configure("2024-01-16", models.SlotEvening)
	require.NoError(t, err)
	assert.Equal(t, models.SlotEvening, view.Slot)
}
