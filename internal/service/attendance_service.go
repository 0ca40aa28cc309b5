package service

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/school-portal/internal/gateway"
	"github.com/noah-isme/school-portal/internal/models"
	appErrors "github.com/noah-isme/school-portal/pkg/errors"
)

type attendanceStore interface {
	AttendanceByStudent(ctx context.Context, tenant models.TenantKey, studentID string) ([]models.AttendanceRecord, error)
	AttendanceByClass(ctx context.Context, tenant models.TenantKey, class, section, date string) ([]models.AttendanceRecord, error)
	CreateAttendance(ctx context.Context, tenant models.TenantKey, record models.AttendanceRecord) (models.AttendanceRecord, error)
	UpdateAttendance(ctx context.Context, tenant models.TenantKey, id string, patch models.AttendancePatch) (models.AttendanceRecord, error)
}

// AttendanceService reads and writes raw attendance records.
type AttendanceService struct {
	backend   Backend
	store     attendanceStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAttendanceService constructs an AttendanceService.
func NewAttendanceService(backend Backend, store attendanceStore, validate *validator.Validate, logger *zap.Logger) *AttendanceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{backend: backend, store: store, validator: validate, logger: logger}
}

// ByStudent returns the student's records inside the window selected by
// rng and anchor (YYYY-MM-DD). The window is applied here even when the
// backend already filtered.
func (s *AttendanceService) ByStudent(ctx context.Context, scope gateway.Scope, studentID string, rng models.AttendanceRange, anchor string) ([]models.AttendanceRecord, error) {
	if studentID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student id is required")
	}
	if rng == "" {
		rng = models.RangeAll
	}
	if !rng.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "range must be one of daily, weekly, monthly, all")
	}
	if rng != models.RangeAll {
		if _, err := time.Parse(models.DateLayout, anchor); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "date must be formatted as YYYY-MM-DD")
		}
	}

	records, err := dispatch(ctx, s.backend, scope, "attendance.by_student",
		remoteGet[[]models.AttendanceRecord](scope, "/attendance/student/"+url.PathEscape(studentID), queryParams("range", string(rng))),
		func(ctx context.Context) ([]models.AttendanceRecord, error) {
			return s.store.AttendanceByStudent(ctx, scope.Tenant, studentID)
		},
	)
	if err != nil {
		return nil, err
	}
	return FilterByRange(records, rng, anchor), nil
}

// ByClass returns the records of a class section, optionally for one date.
func (s *AttendanceService) ByClass(ctx context.Context, scope gateway.Scope, class, section, date string) ([]models.AttendanceRecord, error) {
	if class == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "class is required")
	}
	if date != "" {
		if _, err := time.Parse(models.DateLayout, date); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "date must be formatted as YYYY-MM-DD")
		}
	}
	return dispatch(ctx, s.backend, scope, "attendance.by_class",
		remoteGet[[]models.AttendanceRecord](scope, "/attendance", queryParams("class", class, "section", section, "date", date)),
		func(ctx context.Context) ([]models.AttendanceRecord, error) {
			return s.store.AttendanceByClass(ctx, scope.Tenant, class, section, date)
		},
	)
}

// Create persists one raw attendance write. At least one slot must be set.
func (s *AttendanceService) Create(ctx context.Context, scope gateway.Scope, record models.AttendanceRecord) (*models.AttendanceRecord, error) {
	if err := s.validator.Struct(record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid attendance payload")
	}
	if !hasSlot(record) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "at least one slot must be marked")
	}
	for slot := range record.CapturedImages {
		if !slot.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unknown slot "+string(slot))
		}
	}

	created, err := dispatch(ctx, s.backend, scope, "attendance.create",
		remoteSend[models.AttendanceRecord](scope, http.MethodPost, "/attendance", record),
		func(ctx context.Context) (models.AttendanceRecord, error) {
			return s.store.CreateAttendance(ctx, scope.Tenant, record)
		},
	)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("attendance recorded",
		zap.String("attendance_id", created.ID),
		zap.String("student_id", created.StudentID),
		zap.String("date", created.Date),
	)
	return &created, nil
}

// Update merges patch into an existing record.
func (s *AttendanceService) Update(ctx context.Context, scope gateway.Scope, id string, patch models.AttendancePatch) (*models.AttendanceRecord, error) {
	if patch.Date != nil {
		if _, err := time.Parse(models.DateLayout, *patch.Date); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "date must be formatted as YYYY-MM-DD")
		}
	}
	updated, err := dispatch(ctx, s.backend, scope, "attendance.update",
		remoteSend[models.AttendanceRecord](scope, http.MethodPut, "/attendance/"+url.PathEscape(id), patch),
		func(ctx context.Context) (models.AttendanceRecord, error) {
			return s.store.UpdateAttendance(ctx, scope.Tenant, id, patch)
		},
	)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// FilterByRange keeps the records inside the reporting window:
// daily matches the anchor date, weekly the seven days ending on it,
// monthly the anchor's month. RangeAll and unparsable anchors keep
// everything.
func FilterByRange(records []models.AttendanceRecord, rng models.AttendanceRange, anchor string) []models.AttendanceRecord {
	day, err := time.Parse(models.DateLayout, anchor)
	if rng == models.RangeAll || err != nil {
		return records
	}

	var keep func(date string) bool
	switch rng {
	case models.RangeDaily:
		keep = func(date string) bool { return date == anchor }
	case models.RangeMonthly:
		month := day.Format("2006-01")
		keep = func(date string) bool { return strings.HasPrefix(date, month) }
	case models.RangeWeekly:
		from := day.AddDate(0, 0, -6).Format(models.DateLayout)
		keep = func(date string) bool { return date >= from && date <= anchor }
	default:
		return records
	}

	out := make([]models.AttendanceRecord, 0, len(records))
	for _, r := range records {
		if keep(r.Date) {
			out = append(out, r)
		}
	}
	return out
}

func hasSlot(record models.AttendanceRecord) bool {
	for _, slot := range models.Slots {
		if record.Presence(slot) != nil {
			return true
		}
	}
	return false
}
