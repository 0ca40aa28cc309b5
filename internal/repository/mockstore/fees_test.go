package mockstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-portal/internal/models"
	appErrors "github.com/noah-isme/school-portal/pkg/errors"
)

func assertLedger(t *testing.T, fee models.FeeRecord) {
	t.Helper()
	assert.Equal(t, fee.TotalAmount, fee.PaidAmount+fee.RemainingAmount)
	var paid int64
	for _, inst := range fee.Installments {
		if inst.Status == models.InstallmentPaid {
			paid += inst.Amount
		}
	}
	assert.Equal(t, paid, fee.PaidAmount)
	switch {
	case fee.RemainingAmount == 0:
		assert.Equal(t, models.FeePaid, fee.Status)
	case fee.PaidAmount > 0:
		assert.Equal(t, models.FeePartial, fee.Status)
	default:
		assert.Equal(t, models.FeeUnpaid, fee.Status)
	}
}

func TestSeededLedgersAreConsistent(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	for _, tenant := range []models.TenantKey{stMarys, brightFuture} {
		fees, err := store.Fees(ctx, tenant)
		require.NoError(t, err)
		for _, fee := range fees {
			assertLedger(t, fee)
		}
	}

	fee1, err := store.Fee(ctx, stMarys, "fee1")
	require.NoError(t, err)
	assert.Equal(t, int64(30000), fee1.PaidAmount)
	assert.Equal(t, models.FeePartial, fee1.Status)
}

func TestCreateFeeStartsUnpaid(t *testing.T) {
	fee, err := newTestStore().CreateFee(context.Background(), stMarys, models.FeeCreateRequest{
		StudentID:    "student3",
		AcademicYear: "2024-2025",
		TotalAmount:  40000,
		Installments: []models.InstallmentInput{
			{Amount: 20000, DueDate: "2024-06-30"},
			{Amount: 20000, DueDate: "2024-09-30"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), fee.PaidAmount)
	assert.Equal(t, int64(40000), fee.RemainingAmount)
	assert.Equal(t, models.FeeUnpaid, fee.Status)
	for _, inst := range fee.Installments {
		assert.Equal(t, models.InstallmentPending, inst.Status)
		assert.Nil(t, inst.PaidDate)
		assert.NotEmpty(t, inst.ID)
	}
}

func TestCreateFeeRejectsOversizedInstallments(t *testing.T) {
	_, err := newTestStore().CreateFee(context.Background(), stMarys, models.FeeCreateRequest{
		StudentID:    "student3",
		AcademicYear: "2024-2025",
		TotalAmount:  1000,
		Installments: []models.InstallmentInput{{Amount: 2000, DueDate: "2024-06-30"}},
	})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestRecordPaymentRecomputes(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()

	fee, err := store.RecordPayment(ctx, stMarys, "fee1", models.PaymentRequest{InstallmentID: "inst3"})
	require.NoError(t, err)
	assertLedger(t, fee)
	assert.Equal(t, int64(40000), fee.PaidAmount)
	assert.Equal(t, "2024-01-20", *fee.Installments[2].PaidDate)

	fee, err = store.RecordPayment(ctx, stMarys, "fee1", models.PaymentRequest{InstallmentID: "inst4", PaidDate: "2024-01-21"})
	require.NoError(t, err)
	assertLedger(t, fee)
	assert.Equal(t, models.FeePaid, fee.Status)
	assert.Equal(t, int64(0), fee.RemainingAmount)
}

func TestRecordPaymentIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()

	first, err := store.RecordPayment(ctx, brightFuture, "fee3", models.PaymentRequest{InstallmentID: "inst9", PaidDate: "2024-01-01"})
	require.NoError(t, err)
	second, err := store.RecordPayment(ctx, brightFuture, "fee3", models.PaymentRequest{InstallmentID: "inst9", PaidDate: "2024-02-01"})
	require.NoError(t, err)

	assert.Equal(t, models.InstallmentPaid, second.Installments[0].Status)
	assert.Equal(t, "2024-01-01", *second.Installments[0].PaidDate)
	assert.GreaterOrEqual(t, second.PaidAmount, first.PaidAmount)
	assert.Equal(t, models.FeePartial, second.Status)
	assertLedger(t, second)
}

func TestRecordPaymentUnknownInstallment(t *testing.T) {
	_, err := newTestStore().RecordPayment(context.Background(), stMarys, "fee1", models.PaymentRequest{InstallmentID: "inst9"})
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestAddInstallmentGrowsTotal(t *testing.T) {
	ctx := context.Background()
	fee, err := newTestStore().AddInstallment(ctx, brightFuture, "fee3", models.InstallmentInput{Amount: 5000, DueDate: "2025-03-31"})
	require.NoError(t, err)

	assert.Equal(t, int64(50000), fee.TotalAmount)
	assert.Equal(t, int64(50000), fee.RemainingAmount)
	last := fee.Installments[len(fee.Installments)-1]
	assert.Equal(t, models.InstallmentPending, last.Status)
	assert.Nil(t, last.PaidDate)
	assertLedger(t, fee)
}

func TestUpdateFeeKeepsDerivedFields(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	year := "2025-2026"
	total := int64(60000)

	fee, err := store.UpdateFee(ctx, stMarys, "fee1", models.FeePatch{AcademicYear: &year, TotalAmount: &total})
	require.NoError(t, err)
	assert.Equal(t, "2025-2026", fee.AcademicYear)
	assert.Equal(t, int64(30000), fee.PaidAmount)
	assert.Equal(t, int64(30000), fee.RemainingAmount)
	assertLedger(t, fee)

	tooLow := int64(100)
	_, err = store.UpdateFee(ctx, stMarys, "fee1", models.FeePatch{TotalAmount: &tooLow})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}
