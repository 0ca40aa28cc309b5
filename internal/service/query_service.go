package service

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/school-portal/internal/gateway"
	"github.com/noah-isme/school-portal/internal/models"
	appErrors "github.com/noah-isme/school-portal/pkg/errors"
)

type queryStore interface {
	Queries(ctx context.Context, tenant models.TenantKey) ([]models.Query, error)
	QueriesByStudent(ctx context.Context, tenant models.TenantKey, studentID string) ([]models.Query, error)
	QueriesByParent(ctx context.Context, tenant models.TenantKey, parentID string) ([]models.Query, error)
	Query(ctx context.Context, tenant models.TenantKey, id string) (models.Query, error)
	CreateQuery(ctx context.Context, tenant models.TenantKey, query models.Query) (models.Query, error)
	UpdateQuery(ctx context.Context, tenant models.TenantKey, id string, patch models.QueryPatch) (models.Query, error)
	RespondQuery(ctx context.Context, tenant models.TenantKey, id, response string) (models.Query, error)
	SetQueryStatus(ctx context.Context, tenant models.TenantKey, id string, status models.QueryStatus) (models.Query, error)
}

type respondRequest struct {
	Response string `json:"response" validate:"required"`
}

type statusRequest struct {
	Status models.QueryStatus `json:"status" validate:"required,oneof=resolved closed"`
}

// QueryService manages parent queries and their responses.
type QueryService struct {
	backend   Backend
	store     queryStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewQueryService constructs a QueryService.
func NewQueryService(backend Backend, store queryStore, validate *validator.Validate, logger *zap.Logger) *QueryService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QueryService{backend: backend, store: store, validator: validate, logger: logger}
}

// List returns every query of the school.
func (s *QueryService) List(ctx context.Context, scope gateway.Scope) ([]models.Query, error) {
	return dispatch(ctx, s.backend, scope, "queries.list",
		remoteGet[[]models.Query](scope, "/queries", nil),
		func(ctx context.Context) ([]models.Query, error) { return s.store.Queries(ctx, scope.Tenant) },
	)
}

// ByStudent returns the queries about one student.
func (s *QueryService) ByStudent(ctx context.Context, scope gateway.Scope, studentID string) ([]models.Query, error) {
	if studentID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student id is required")
	}
	return dispatch(ctx, s.backend, scope, "queries.by_student",
		remoteGet[[]models.Query](scope, "/queries", queryParams("student_id", studentID)),
		func(ctx context.Context) ([]models.Query, error) {
			return s.store.QueriesByStudent(ctx, scope.Tenant, studentID)
		},
	)
}

// ByParent returns the queries a parent raised.
func (s *QueryService) ByParent(ctx context.Context, scope gateway.Scope, parentID string) ([]models.Query, error) {
	if parentID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "parent id is required")
	}
	return dispatch(ctx, s.backend, scope, "queries.by_parent",
		remoteGet[[]models.Query](scope, "/queries", queryParams("parent_id", parentID)),
		func(ctx context.Context) ([]models.Query, error) {
			return s.store.QueriesByParent(ctx, scope.Tenant, parentID)
		},
	)
}

// Get returns a query by id.
func (s *QueryService) Get(ctx context.Context, scope gateway.Scope, id string) (*models.Query, error) {
	query, err := dispatch(ctx, s.backend, scope, "queries.get",
		remoteGet[models.Query](scope, "/queries/"+url.PathEscape(id), nil),
		func(ctx context.Context) (models.Query, error) { return s.store.Query(ctx, scope.Tenant, id) },
	)
	if err != nil {
		return nil, err
	}
	return &query, nil
}

// Create opens a new query; it always starts pending.
func (s *QueryService) Create(ctx context.Context, scope gateway.Scope, query models.Query) (*models.Query, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid query payload")
	}
	query.Status = models.QueryPending
	created, err := dispatch(ctx, s.backend, scope, "queries.create",
		remoteSend[models.Query](scope, http.MethodPost, "/queries", query),
		func(ctx context.Context) (models.Query, error) { return s.store.CreateQuery(ctx, scope.Tenant, query) },
	)
	if err != nil {
		return nil, err
	}
	s.logger.Info("query created",
		zap.String("query_id", created.ID),
		zap.String("parent_id", created.ParentID),
		zap.String("recipient_type", string(created.RecipientType)),
	)
	return &created, nil
}

// Update edits the query's content.
func (s *QueryService) Update(ctx context.Context, scope gateway.Scope, id string, patch models.QueryPatch) (*models.Query, error) {
	if err := s.validator.Struct(patch); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid query payload")
	}
	updated, err := dispatch(ctx, s.backend, scope, "queries.update",
		remoteSend[models.Query](scope, http.MethodPut, "/queries/"+url.PathEscape(id), patch),
		func(ctx context.Context) (models.Query, error) { return s.store.UpdateQuery(ctx, scope.Tenant, id, patch) },
	)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Respond records a response and moves the query to responded.
func (s *QueryService) Respond(ctx context.Context, scope gateway.Scope, id, response string) (*models.Query, error) {
	req := respondRequest{Response: strings.TrimSpace(response)}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "response is required")
	}
	updated, err := dispatch(ctx, s.backend, scope, "queries.respond",
		remoteSend[models.Query](scope, http.MethodPost, "/queries/"+url.PathEscape(id)+"/respond", req),
		func(ctx context.Context) (models.Query, error) {
			return s.store.RespondQuery(ctx, scope.Tenant, id, req.Response)
		},
	)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// SetStatus resolves or closes a query.
func (s *QueryService) SetStatus(ctx context.Context, scope gateway.Scope, id string, status models.QueryStatus) (*models.Query, error) {
	req := statusRequest{Status: status}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "status must be resolved or closed")
	}
	updated, err := dispatch(ctx, s.backend, scope, "queries.set_status",
		remoteSend[models.Query](scope, http.MethodPatch, "/queries/"+url.PathEscape(id)+"/status", req),
		func(ctx context.Context) (models.Query, error) {
			return s.store.SetQueryStatus(ctx, scope.Tenant, id, status)
		},
	)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
