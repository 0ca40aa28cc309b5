package service

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/school-portal/internal/gateway"
	"github.com/noah-isme/school-portal/internal/models"
	appErrors "github.com/noah-isme/school-portal/pkg/errors"
)

type feeStore interface {
	Fees(ctx context.Context, tenant models.TenantKey) ([]models.FeeRecord, error)
	FeesByStudent(ctx context.Context, tenant models.TenantKey, studentID string) ([]models.FeeRecord, error)
	Fee(ctx context.Context, tenant models.TenantKey, id string) (models.FeeRecord, error)
	CreateFee(ctx context.Context, tenant models.TenantKey, req models.FeeCreateRequest) (models.FeeRecord, error)
	UpdateFee(ctx context.Context, tenant models.TenantKey, id string, patch models.FeePatch) (models.FeeRecord, error)
	RecordPayment(ctx context.Context, tenant models.TenantKey, id string, req models.PaymentRequest) (models.FeeRecord, error)
	AddInstallment(ctx context.Context, tenant models.TenantKey, id string, in models.InstallmentInput) (models.FeeRecord, error)
}

// FeeService manages fee ledgers and their installments.
type FeeService struct {
	backend   Backend
	store     feeStore
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewFeeService constructs a FeeService.
func NewFeeService(backend Backend, store feeStore, validate *validator.Validate, logger *zap.Logger) *FeeService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeeService{backend: backend, store: store, validator: validate, logger: logger, now: time.Now}
}

// List returns every fee record of the school.
func (s *FeeService) List(ctx context.Context, scope gateway.Scope) ([]models.FeeRecord, error) {
	fees, err := dispatch(ctx, s.backend, scope, "fees.list",
		remoteGet[[]models.FeeRecord](scope, "/fees", nil),
		func(ctx context.Context) ([]models.FeeRecord, error) { return s.store.Fees(ctx, scope.Tenant) },
	)
	if err != nil {
		return nil, err
	}
	return s.withDisplayStatus(fees), nil
}

// ByStudent returns a student's fee records.
func (s *FeeService) ByStudent(ctx context.Context, scope gateway.Scope, studentID string) ([]models.FeeRecord, error) {
	if studentID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student id is required")
	}
	fees, err := dispatch(ctx, s.backend, scope, "fees.by_student",
		remoteGet[[]models.FeeRecord](scope, "/fees", queryParams("student_id", studentID)),
		func(ctx context.Context) ([]models.FeeRecord, error) {
			return s.store.FeesByStudent(ctx, scope.Tenant, studentID)
		},
	)
	if err != nil {
		return nil, err
	}
	return s.withDisplayStatus(fees), nil
}

// Get returns one fee record.
func (s *FeeService) Get(ctx context.Context, scope gateway.Scope, id string) (*models.FeeRecord, error) {
	fee, err := dispatch(ctx, s.backend, scope, "fees.get",
		remoteGet[models.FeeRecord](scope, "/fees/"+url.PathEscape(id), nil),
		func(ctx context.Context) (models.FeeRecord, error) { return s.store.Fee(ctx, scope.Tenant, id) },
	)
	if err != nil {
		return nil, err
	}
	return s.present(fee), nil
}

// Create opens a fee ledger with nothing paid.
func (s *FeeService) Create(ctx context.Context, scope gateway.Scope, req models.FeeCreateRequest) (*models.FeeRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid fee payload")
	}
	fee, err := dispatch(ctx, s.backend, scope, "fees.create",
		remoteSend[models.FeeRecord](scope, http.MethodPost, "/fees", req),
		func(ctx context.Context) (models.FeeRecord, error) { return s.store.CreateFee(ctx, scope.Tenant, req) },
	)
	if err != nil {
		return nil, err
	}
	s.logger.Info("fee record created",
		zap.String("fee_id", fee.ID),
		zap.String("student_id", fee.StudentID),
		zap.Int64("total_amount", fee.TotalAmount),
	)
	return s.present(fee), nil
}

// Update changes the non-derived fields of a ledger.
func (s *FeeService) Update(ctx context.Context, scope gateway.Scope, id string, patch models.FeePatch) (*models.FeeRecord, error) {
	if err := s.validator.Struct(patch); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid fee payload")
	}
	fee, err := dispatch(ctx, s.backend, scope, "fees.update",
		remoteSend[models.FeeRecord](scope, http.MethodPut, "/fees/"+url.PathEscape(id), patch),
		func(ctx context.Context) (models.FeeRecord, error) { return s.store.UpdateFee(ctx, scope.Tenant, id, patch) },
	)
	if err != nil {
		return nil, err
	}
	return s.present(fee), nil
}

// RecordPayment marks an installment paid and returns the recomputed ledger.
func (s *FeeService) RecordPayment(ctx context.Context, scope gateway.Scope, id string, req models.PaymentRequest) (*models.FeeRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payment payload")
	}
	fee, err := dispatch(ctx, s.backend, scope, "fees.record_payment",
		remoteSend[models.FeeRecord](scope, http.MethodPost, "/fees/"+url.PathEscape(id)+"/payments", req),
		func(ctx context.Context) (models.FeeRecord, error) { return s.store.RecordPayment(ctx, scope.Tenant, id, req) },
	)
	if err != nil {
		return nil, err
	}
	s.logger.Info("fee payment recorded",
		zap.String("fee_id", fee.ID),
		zap.String("installment_id", req.InstallmentID),
		zap.String("status", string(fee.Status)),
	)
	return s.present(fee), nil
}

// AddInstallment appends a pending installment; the ledger total follows
// the sum of its installments.
func (s *FeeService) AddInstallment(ctx context.Context, scope gateway.Scope, id string, in models.InstallmentInput) (*models.FeeRecord, error) {
	if err := s.validator.Struct(in); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid installment payload")
	}
	fee, err := dispatch(ctx, s.backend, scope, "fees.add_installment",
		remoteSend[models.FeeRecord](scope, http.MethodPost, "/fees/"+url.PathEscape(id)+"/installments", in),
		func(ctx context.Context) (models.FeeRecord, error) { return s.store.AddInstallment(ctx, scope.Tenant, id, in) },
	)
	if err != nil {
		return nil, err
	}
	return s.present(fee), nil
}

func (s *FeeService) withDisplayStatus(fees []models.FeeRecord) []models.FeeRecord {
	out := make([]models.FeeRecord, 0, len(fees))
	for _, fee := range fees {
		out = append(out, *s.present(fee))
	}
	return out
}

// present derives the overdue status of pending installments as of today.
func (s *FeeService) present(fee models.FeeRecord) *models.FeeRecord {
	today := s.now()
	out := fee.Clone()
	for i := range out.Installments {
		out.Installments[i].Status = out.Installments[i].DisplayStatus(today)
	}
	return &out
}
