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

type parentStore interface {
	Parents(ctx context.Context, tenant models.TenantKey) ([]models.Parent, error)
	Parent(ctx context.Context, tenant models.TenantKey, id string) (models.Parent, error)
	CreateParent(ctx context.Context, tenant models.TenantKey, parent models.Parent) (models.Parent, error)
	UpdateParent(ctx context.Context, tenant models.TenantKey, id string, patch models.ParentPatch) (models.Parent, error)
}

// ParentService manages parent records and their children sets.
type ParentService struct {
	backend   Backend
	store     parentStore
	students  *StudentService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewParentService constructs a ParentService.
func NewParentService(backend Backend, store parentStore, students *StudentService, validate *validator.Validate, logger *zap.Logger) *ParentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ParentService{backend: backend, store: store, students: students, validator: validate, logger: logger}
}

// List returns every parent of the school.
func (s *ParentService) List(ctx context.Context, scope gateway.Scope) ([]models.Parent, error) {
	return dispatch(ctx, s.backend, scope, "parents.list",
		remoteGet[[]models.Parent](scope, "/parents", nil),
		func(ctx context.Context) ([]models.Parent, error) { return s.store.Parents(ctx, scope.Tenant) },
	)
}

// Get returns a parent by id.
func (s *ParentService) Get(ctx context.Context, scope gateway.Scope, id string) (*models.Parent, error) {
	parent, err := dispatch(ctx, s.backend, scope, "parents.get",
		remoteGet[models.Parent](scope, "/parents/"+url.PathEscape(id), nil),
		func(ctx context.Context) (models.Parent, error) { return s.store.Parent(ctx, scope.Tenant, id) },
	)
	if err != nil {
		return nil, err
	}
	return &parent, nil
}

// Children returns the students linked to the parent.
func (s *ParentService) Children(ctx context.Context, scope gateway.Scope, id string) ([]models.Student, error) {
	if s.students == nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, "student service unavailable")
	}
	return s.students.ByParent(ctx, scope, id)
}

// Create registers a parent.
func (s *ParentService) Create(ctx context.Context, scope gateway.Scope, parent models.Parent) (*models.Parent, error) {
	if err := s.validator.Struct(parent); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid parent payload")
	}
	created, err := dispatch(ctx, s.backend, scope, "parents.create",
		remoteSend[models.Parent](scope, http.MethodPost, "/parents", parent),
		func(ctx context.Context) (models.Parent, error) { return s.store.CreateParent(ctx, scope.Tenant, parent) },
	)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Update merges patch into the parent.
func (s *ParentService) Update(ctx context.Context, scope gateway.Scope, id string, patch models.ParentPatch) (*models.Parent, error) {
	if err := s.validator.Struct(patch); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid parent payload")
	}
	updated, err := dispatch(ctx, s.backend, scope, "parents.update",
		remoteSend[models.Parent](scope, http.MethodPut, "/parents/"+url.PathEscape(id), patch),
		func(ctx context.Context) (models.Parent, error) { return s.store.UpdateParent(ctx, scope.Tenant, id, patch) },
	)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
