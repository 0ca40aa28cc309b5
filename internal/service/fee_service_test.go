package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-portal/internal/models"
	appErrors "github.com/noah-isme/school-portal/pkg/errors"
)

func newFeeServiceAt(now time.Time) *FeeService {
	svc := NewFeeService(mockBackend(), newSeededStore(), nil, nil)
	svc.now = func() time.Time { return now }
	return svc
}

func installmentStatuses(fee models.FeeRecord) map[string]models.InstallmentStatus {
	out := make(map[string]models.InstallmentStatus, len(fee.Installments))
	for _, inst := range fee.Installments {
		out[inst.ID] = inst.Status
	}
	return out
}

func TestFeeServiceDerivesOverdue(t *testing.T) {
	svc := newFeeServiceAt(time.Date(2025, 1, 5, 10, 0, 0, 0, time.UTC))

	fee, err := svc.Get(context.Background(), scopeFor(stMarys), "fee1")
	require.NoError(t, err)
	assert.Equal(t, map[string]models.InstallmentStatus{
		"inst1": models.InstallmentPaid,
		"inst2": models.InstallmentPaid,
		"inst3": models.InstallmentOverdue,
		"inst4": models.InstallmentPending,
	}, installmentStatuses(*fee))
	assert.Equal(t, models.FeePartial, fee.Status)
	assert.Equal(t, int64(30000), fee.PaidAmount)
	assert.Equal(t, int64(20000), fee.RemainingAmount)
}

func TestFeeServiceDueTodayIsNotOverdue(t *testing.T) {
	svc := newFeeServiceAt(time.Date(2024, 12, 31, 23, 0, 0, 0, time.UTC))

	fees, err := svc.ByStudent(context.Background(), scopeFor(stMarys), "student1")
	require.NoError(t, err)
	require.Len(t, fees, 1)
	assert.Equal(t, models.InstallmentPending, installmentStatuses(fees[0])["inst3"])
}

func TestFeeServiceRecordPaymentSettlesLedger(t *testing.T) {
	svc := newFeeServiceAt(time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC))
	ctx := context.Background()
	scope := scopeFor(stMarys)

	fee, err := svc.RecordPayment(ctx, scope, "fee1", models.PaymentRequest{InstallmentID: "inst3", PaidDate: "2025-01-02"})
	require.NoError(t, err)
	assert.Equal(t, models.FeePartial, fee.Status)
	assert.Equal(t, models.InstallmentOverdue, installmentStatuses(*fee)["inst4"])

	fee, err = svc.RecordPayment(ctx, scope, "fee1", models.PaymentRequest{InstallmentID: "inst4"})
	require.NoError(t, err)
	assert.Equal(t, models.FeePaid, fee.Status)
	assert.Equal(t, int64(0), fee.RemainingAmount)
	for _, inst := range fee.Installments {
		require.NotNil(t, inst.PaidDate)
	}

	_, err = svc.RecordPayment(ctx, scope, "fee1", models.PaymentRequest{InstallmentID: "missing"})
	assert.ErrorIs(t, err, appErrors.ErrNotFound)

	_, err = svc.RecordPayment(ctx, scope, "fee1", models.PaymentRequest{})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestFeeServiceCreateAndAddInstallment(t *testing.T) {
	svc := newFeeServiceAt(time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC))
	ctx := context.Background()
	scope := scopeFor(brightFuture)

	fee, err := svc.Create(ctx, scope, models.FeeCreateRequest{
		StudentID:    "student5",
		AcademicYear: "2024-2025",
		TotalAmount:  20000,
		Installments: []models.InstallmentInput{{Amount: 10000, DueDate: "2024-06-30"}},
	})
	require.NoError(t, err)
	assert.Equal(t, models.FeeUnpaid, fee.Status)
	assert.Equal(t, int64(20000), fee.RemainingAmount)

	fee, err = svc.AddInstallment(ctx, scope, fee.ID, models.InstallmentInput{Amount: 15000, DueDate: "2024-09-30"})
	require.NoError(t, err)
	assert.Len(t, fee.Installments, 2)
	assert.Equal(t, int64(25000), fee.TotalAmount)

	_, err = svc.Create(ctx, scope, models.FeeCreateRequest{StudentID: "student5", AcademicYear: "2024-2025"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	_, err = svc.Create(ctx, scope, models.FeeCreateRequest{StudentID: "student1", AcademicYear: "2024-2025", TotalAmount: 100})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}
