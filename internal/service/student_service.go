package service

import (
	"context"
	"net/http"
	"net/url"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/school-portal/internal/gateway"
	"github.com/noah-isme/school-portal/internal/models"
	appErrors "github.com/noah-isme/school-portal/pkg/errors"
)

type studentStore interface {
	Students(ctx context.Context, tenant models.TenantKey, filter models.StudentFilter) ([]models.Student, error)
	Student(ctx context.Context, tenant models.TenantKey, id string) (models.Student, error)
	CreateStudent(ctx context.Context, tenant models.TenantKey, student models.Student) (models.Student, error)
	UpdateStudent(ctx context.Context, tenant models.TenantKey, id string, patch models.StudentPatch) (models.Student, error)
}

// StudentService manages student records.
type StudentService struct {
	backend   Backend
	store     studentStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs a StudentService.
func NewStudentService(backend Backend, store studentStore, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{backend: backend, store: store, validator: validate, logger: logger}
}

// List returns students matching filter. The backend only filters by parent,
// so class and section are applied here for remote results too.
func (s *StudentService) List(ctx context.Context, scope gateway.Scope, filter models.StudentFilter) ([]models.Student, error) {
	students, err := dispatch(ctx, s.backend, scope, "students.list",
		remoteGet[[]models.Student](scope, "/students", queryParams("parent_id", filter.ParentID)),
		func(ctx context.Context) ([]models.Student, error) { return s.store.Students(ctx, scope.Tenant, filter) },
	)
	if err != nil {
		return nil, err
	}
	out := make([]models.Student, 0, len(students))
	for _, st := range students {
		if filter.Matches(st) {
			out = append(out, st)
		}
	}
	return out, nil
}

// Roster returns the students of a class section in roster order.
func (s *StudentService) Roster(ctx context.Context, scope gateway.Scope, class, section string) ([]models.Student, error) {
	return s.List(ctx, scope, models.StudentFilter{Class: class, Section: section})
}

// ByParent returns the children of a parent record.
func (s *StudentService) ByParent(ctx context.Context, scope gateway.Scope, parentID string) ([]models.Student, error) {
	if parentID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "parent id is required")
	}
	return s.List(ctx, scope, models.StudentFilter{ParentID: parentID})
}

// Get returns a student by id.
func (s *StudentService) Get(ctx context.Context, scope gateway.Scope, id string) (*models.Student, error) {
	student, err := dispatch(ctx, s.backend, scope, "students.get",
		remoteGet[models.Student](scope, "/students/"+url.PathEscape(id), nil),
		func(ctx context.Context) (models.Student, error) { return s.store.Student(ctx, scope.Tenant, id) },
	)
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// Create registers a student.
func (s *StudentService) Create(ctx context.Context, scope gateway.Scope, student models.Student) (*models.Student, error) {
	if err := s.validator.Struct(student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	created, err := dispatch(ctx, s.backend, scope, "students.create",
		remoteSend[models.Student](scope, http.MethodPost, "/students", student),
		func(ctx context.Context) (models.Student, error) { return s.store.CreateStudent(ctx, scope.Tenant, student) },
	)
	if err != nil {
		return nil, err
	}
	s.logger.Info("student created", zap.String("student_id", created.ID), zap.String("tenant", string(scope.Tenant)))
	return &created, nil
}

// Update merges patch into the student.
func (s *StudentService) Update(ctx context.Context, scope gateway.Scope, id string, patch models.StudentPatch) (*models.Student, error) {
	if patch.Name != nil && *patch.Name == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "name cannot be empty")
	}
	updated, err := dispatch(ctx, s.backend, scope, "students.update",
		remoteSend[models.Student](scope, http.MethodPut, "/students/"+url.PathEscape(id), patch),
		func(ctx context.Context) (models.Student, error) { return s.store.UpdateStudent(ctx, scope.Tenant, id, patch) },
	)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
