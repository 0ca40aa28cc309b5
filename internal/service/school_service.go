package service

import (
	"context"
	"net/url"

	"go.uber.org/zap"

	"github.com/noah-isme/school-portal/internal/gateway"
	"github.com/noah-isme/school-portal/internal/models"
)

type schoolStore interface {
	Schools(ctx context.Context) ([]models.SchoolSummary, error)
	SchoolByDomain(ctx context.Context, domain string) (models.School, error)
}

// SchoolService exposes tenant lookup.
type SchoolService struct {
	backend Backend
	store   schoolStore
	logger  *zap.Logger
}

// NewSchoolService constructs a SchoolService.
func NewSchoolService(backend Backend, store schoolStore, logger *zap.Logger) *SchoolService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SchoolService{backend: backend, store: store, logger: logger}
}

// List returns every school for the login screen.
func (s *SchoolService) List(ctx context.Context, scope gateway.Scope) ([]models.SchoolSummary, error) {
	return dispatch(ctx, s.backend, scope, "schools.list",
		remoteGet[[]models.SchoolSummary](scope, "/schools", nil),
		func(ctx context.Context) ([]models.SchoolSummary, error) { return s.store.Schools(ctx) },
	)
}

// ByDomain returns the school with its settings.
func (s *SchoolService) ByDomain(ctx context.Context, scope gateway.Scope, domain string) (*models.School, error) {
	school, err := dispatch(ctx, s.backend, scope, "schools.get",
		remoteGet[models.School](scope, "/schools/"+url.PathEscape(domain), nil),
		func(ctx context.Context) (models.School, error) { return s.store.SchoolByDomain(ctx, domain) },
	)
	if err != nil {
		return nil, err
	}
	return &school, nil
}
