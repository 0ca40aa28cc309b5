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

type examResultStore interface {
	ExamResults(ctx context.Context, tenant models.TenantKey) ([]models.ExamResult, error)
	ExamResultsByStudent(ctx context.Context, tenant models.TenantKey, studentID string) ([]models.ExamResult, error)
	ExamResultsByType(ctx context.Context, tenant models.TenantKey, examType models.ExamType) ([]models.ExamResult, error)
	ExamResultsByClass(ctx context.Context, tenant models.TenantKey, class, section string) ([]models.ExamResult, error)
	CreateExamResult(ctx context.Context, tenant models.TenantKey, result models.ExamResult) (models.ExamResult, error)
	UpdateExamResult(ctx context.Context, tenant models.TenantKey, id string, patch models.ExamResultPatch) (models.ExamResult, error)
	DeleteExamResult(ctx context.Context, tenant models.TenantKey, id string) (models.ExamResult, error)
}

// ExamResultService manages exam scores.
type ExamResultService struct {
	backend   Backend
	store     examResultStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewExamResultService constructs an ExamResultService.
func NewExamResultService(backend Backend, store examResultStore, validate *validator.Validate, logger *zap.Logger) *ExamResultService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExamResultService{backend: backend, store: store, validator: validate, logger: logger}
}

// List returns every exam result of the school.
func (s *ExamResultService) List(ctx context.Context, scope gateway.Scope) ([]models.ExamResult, error) {
	return dispatch(ctx, s.backend, scope, "exam_results.list",
		remoteGet[[]models.ExamResult](scope, "/exam-results", nil),
		func(ctx context.Context) ([]models.ExamResult, error) { return s.store.ExamResults(ctx, scope.Tenant) },
	)
}

// ByStudent returns one student's results.
func (s *ExamResultService) ByStudent(ctx context.Context, scope gateway.Scope, studentID string) ([]models.ExamResult, error) {
	if studentID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student id is required")
	}
	return dispatch(ctx, s.backend, scope, "exam_results.by_student",
		remoteGet[[]models.ExamResult](scope, "/exam-results", queryParams("student_id", studentID)),
		func(ctx context.Context) ([]models.ExamResult, error) {
			return s.store.ExamResultsByStudent(ctx, scope.Tenant, studentID)
		},
	)
}

// ByClass returns the results of a class, optionally narrowed to a section.
func (s *ExamResultService) ByClass(ctx context.Context, scope gateway.Scope, class, section string) ([]models.ExamResult, error) {
	if class == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "class is required")
	}
	return dispatch(ctx, s.backend, scope, "exam_results.by_class",
		remoteGet[[]models.ExamResult](scope, "/exam-results", queryParams("class", class, "section", section)),
		func(ctx context.Context) ([]models.ExamResult, error) {
			return s.store.ExamResultsByClass(ctx, scope.Tenant, class, section)
		},
	)
}

// ByType returns the results of one exam type.
func (s *ExamResultService) ByType(ctx context.Context, scope gateway.Scope, examType models.ExamType) ([]models.ExamResult, error) {
	if !examType.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "exam type must be one of weekly, quarterly, half_yearly, annual")
	}
	return dispatch(ctx, s.backend, scope, "exam_results.by_type",
		remoteGet[[]models.ExamResult](scope, "/exam-results", queryParams("exam_type", string(examType))),
		func(ctx context.Context) ([]models.ExamResult, error) {
			return s.store.ExamResultsByType(ctx, scope.Tenant, examType)
		},
	)
}

// Create records a student's exam scores.
func (s *ExamResultService) Create(ctx context.Context, scope gateway.Scope, result models.ExamResult) (*models.ExamResult, error) {
	if err := s.validator.Struct(result); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid exam result payload")
	}
	created, err := dispatch(ctx, s.backend, scope, "exam_results.create",
		remoteSend[models.ExamResult](scope, http.MethodPost, "/exam-results", result),
		func(ctx context.Context) (models.ExamResult, error) {
			return s.store.CreateExamResult(ctx, scope.Tenant, result)
		},
	)
	if err != nil {
		return nil, err
	}
	s.logger.Info("exam result recorded",
		zap.String("exam_result_id", created.ID),
		zap.String("student_id", created.StudentID),
		zap.String("exam_type", string(created.ExamType)),
	)
	return &created, nil
}

// Update merges patch into an exam result.
func (s *ExamResultService) Update(ctx context.Context, scope gateway.Scope, id string, patch models.ExamResultPatch) (*models.ExamResult, error) {
	if err := s.validator.Struct(patch); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid exam result payload")
	}
	updated, err := dispatch(ctx, s.backend, scope, "exam_results.update",
		remoteSend[models.ExamResult](scope, http.MethodPut, "/exam-results/"+url.PathEscape(id), patch),
		func(ctx context.Context) (models.ExamResult, error) {
			return s.store.UpdateExamResult(ctx, scope.Tenant, id, patch)
		},
	)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes an exam result and returns it.
func (s *ExamResultService) Delete(ctx context.Context, scope gateway.Scope, id string) (*models.ExamResult, error) {
	deleted, err := dispatch(ctx, s.backend, scope, "exam_results.delete",
		remoteSend[models.ExamResult](scope, http.MethodDelete, "/exam-results/"+url.PathEscape(id), nil),
		func(ctx context.Context) (models.ExamResult, error) {
			return s.store.DeleteExamResult(ctx, scope.Tenant, id)
		},
	)
	if err != nil {
		return nil, err
	}
	s.logger.Info("exam result deleted", zap.String("exam_result_id", id))
	return &deleted, nil
}
