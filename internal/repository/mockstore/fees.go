package mockstore

import (
	"context"

	"github.com/noah-isme/school-portal/internal/models"
)

// Fees lists every fee ledger of the tenant.
func (s *Store) Fees(ctx context.Context, tenant models.TenantKey) ([]models.FeeRecord, error) {
	var out []models.FeeRecord
	err := s.read(ctx, tenant, func(schoolID string) error {
		out = s.fees.list(schoolID, nil)
		return nil
	})
	return out, err
}

// FeesByStudent lists one student's ledgers.
func (s *Store) FeesByStudent(ctx context.Context, tenant models.TenantKey, studentID string) ([]models.FeeRecord, error) {
	var out []models.FeeRecord
	err := s.read(ctx, tenant, func(schoolID string) error {
		out = s.fees.list(schoolID, func(f models.FeeRecord) bool { return f.StudentID == studentID })
		return nil
	})
	return out, err
}

// Fee returns one ledger.
func (s *Store) Fee(ctx context.Context, tenant models.TenantKey, id string) (models.FeeRecord, error) {
	var out models.FeeRecord
	err := s.read(ctx, tenant, func(schoolID string) error {
		i, ok := s.fees.find(schoolID, feeID(id))
		if !ok {
			return notFound("fee record")
		}
		out = s.fees.get(i)
		return nil
	})
	return out, err
}

// CreateFee opens an unpaid ledger. Installments may not exceed the total.
func (s *Store) CreateFee(ctx context.Context, tenant models.TenantKey, req models.FeeCreateRequest) (models.FeeRecord, error) {
	var out models.FeeRecord
	err := s.write(ctx, tenant, func(schoolID string) error {
		if _, ok := s.students.find(schoolID, studentID(req.StudentID)); !ok {
			return invalid("student " + req.StudentID + " does not belong to this school")
		}
		installments := make([]models.Installment, 0, len(req.Installments))
		for _, in := range req.Installments {
			installments = append(installments, models.Installment{ID: newID("inst"), Amount: in.Amount, DueDate: in.DueDate})
		}
		fee := models.NewFeeRecord(req.StudentID, req.AcademicYear, req.TotalAmount, req.DueDate, installments)
		if fee.InstallmentTotal() > fee.TotalAmount {
			return invalid("installments exceed the total amount")
		}
		fee.ID = newID("fee")
		fee.SchoolID = schoolID
		s.fees.insert(schoolID, fee)
		out = fee
		return nil
	})
	return out, err
}

// UpdateFee changes non-derived fields; derived ones are recomputed.
func (s *Store) UpdateFee(ctx context.Context, tenant models.TenantKey, id string, patch models.FeePatch) (models.FeeRecord, error) {
	return s.mutateFee(ctx, tenant, id, func(f *models.FeeRecord) error {
		if patch.TotalAmount != nil && *patch.TotalAmount < f.PaidAmount {
			return invalid("total amount cannot be below the amount already paid")
		}
		patch.Apply(f)
		return nil
	})
}

// RecordPayment marks an installment paid on paidDate, today when empty.
// Paying an installment twice keeps its original paid date.
func (s *Store) RecordPayment(ctx context.Context, tenant models.TenantKey, id string, req models.PaymentRequest) (models.FeeRecord, error) {
	return s.mutateFee(ctx, tenant, id, func(f *models.FeeRecord) error {
		paidDate := req.PaidDate
		if paidDate == "" {
			paidDate = s.today()
		}
		if !f.MarkPaid(req.InstallmentID, paidDate) {
			return notFound("installment")
		}
		return nil
	})
}

// AddInstallment appends a pending installment; the total grows to the
// sum of all installments.
func (s *Store) AddInstallment(ctx context.Context, tenant models.TenantKey, id string, in models.InstallmentInput) (models.FeeRecord, error) {
	return s.mutateFee(ctx, tenant, id, func(f *models.FeeRecord) error {
		f.AppendInstallment(models.Installment{ID: newID("inst"), Amount: in.Amount, DueDate: in.DueDate})
		return nil
	})
}

func (s *Store) mutateFee(ctx context.Context, tenant models.TenantKey, id string, fn func(*models.FeeRecord) error) (models.FeeRecord, error) {
	var out models.FeeRecord
	err := s.write(ctx, tenant, func(schoolID string) error {
		i, ok := s.fees.find(schoolID, feeID(id))
		if !ok {
			return notFound("fee record")
		}
		current := s.fees.get(i)
		if err := fn(&current); err != nil {
			return err
		}
		s.fees.replace(i, current)
		out = current
		return nil
	})
	return out, err
}

func feeID(id string) func(models.FeeRecord) bool {
	return func(f models.FeeRecord) bool { return f.ID == id }
}
