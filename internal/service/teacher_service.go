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

type teacherStore interface {
	Teachers(ctx context.Context, tenant models.TenantKey) ([]models.Teacher, error)
	Teacher(ctx context.Context, tenant models.TenantKey, id string) (models.Teacher, error)
	CreateTeacher(ctx context.Context, tenant models.TenantKey, teacher models.Teacher) (models.Teacher, error)
	UpdateTeacher(ctx context.Context, tenant models.TenantKey, id string, patch models.TeacherPatch) (models.Teacher, error)
}

// TeacherService manages teacher records.
type TeacherService struct {
	backend   Backend
	store     teacherStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTeacherService constructs a TeacherService.
func NewTeacherService(backend Backend, store teacherStore, validate *validator.Validate, logger *zap.Logger) *TeacherService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeacherService{backend: backend, store: store, validator: validate, logger: logger}
}

// List returns every teacher of the school.
func (s *TeacherService) List(ctx context.Context, scope gateway.Scope) ([]models.Teacher, error) {
	return dispatch(ctx, s.backend, scope, "teachers.list",
		remoteGet[[]models.Teacher](scope, "/teachers", nil),
		func(ctx context.Context) ([]models.Teacher, error) { return s.store.Teachers(ctx, scope.Tenant) },
	)
}

// Get returns a teacher by id.
func (s *TeacherService) Get(ctx context.Context, scope gateway.Scope, id string) (*models.Teacher, error) {
	teacher, err := dispatch(ctx, s.backend, scope, "teachers.get",
		remoteGet[models.Teacher](scope, "/teachers/"+url.PathEscape(id), nil),
		func(ctx context.Context) (models.Teacher, error) { return s.store.Teacher(ctx, scope.Tenant, id) },
	)
	if err != nil {
		return nil, err
	}
	return &teacher, nil
}

// Create registers a teacher.
func (s *TeacherService) Create(ctx context.Context, scope gateway.Scope, teacher models.Teacher) (*models.Teacher, error) {
	if err := s.validator.Struct(teacher); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid teacher payload")
	}
	created, err := dispatch(ctx, s.backend, scope, "teachers.create",
		remoteSend[models.Teacher](scope, http.MethodPost, "/teachers", teacher),
		func(ctx context.Context) (models.Teacher, error) { return s.store.CreateTeacher(ctx, scope.Tenant, teacher) },
	)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Update merges patch into the teacher.
func (s *TeacherService) Update(ctx context.Context, scope gateway.Scope, id string, patch models.TeacherPatch) (*models.Teacher, error) {
	if patch.Name != nil && *patch.Name == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "name cannot be empty")
	}
	updated, err := dispatch(ctx, s.backend, scope, "teachers.update",
		remoteSend[models.Teacher](scope, http.MethodPut, "/teachers/"+url.PathEscape(id), patch),
		func(ctx context.Context) (models.Teacher, error) { return s.store.UpdateTeacher(ctx, scope.Tenant, id, patch) },
	)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
