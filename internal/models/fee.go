package models

import "time"

// DateLayout is the ISO calendar date format used across the wire.
const DateLayout = "2006-01-02"

// FeeStatus is derived from the installment ledger, never set directly.
type FeeStatus string

const (
	FeeUnpaid  FeeStatus = "unpaid"
	FeePartial FeeStatus = "partial"
	FeePaid    FeeStatus = "paid"
)

// InstallmentStatus is the persisted state of an installment. Overdue is
// only ever produced by DisplayStatus.
type InstallmentStatus string

const (
	InstallmentPending InstallmentStatus = "pending"
	InstallmentPaid    InstallmentStatus = "paid"
	InstallmentOverdue InstallmentStatus = "overdue"
)

// Installment is a scheduled partial payment.
type Installment struct {
	ID       string            `json:"id"`
	Amount   int64             `json:"amount"`
	DueDate  string            `json:"due_date"`
	PaidDate *string           `json:"paid_date"`
	Status   InstallmentStatus `json:"status"`
}

// DisplayStatus returns overdue for pending installments whose due date is before today.
func (i Installment) DisplayStatus(today time.Time) InstallmentStatus {
	if i.Status != InstallmentPending {
		return i.Status
	}
	due, err := time.Parse(DateLayout, i.DueDate)
	if err != nil {
		return i.Status
	}
	y, m, d := today.Date()
	if due.Before(time.Date(y, m, d, 0, 0, 0, 0, time.UTC)) {
		return InstallmentOverdue
	}
	return i.Status
}

// FeeRecord is a student's fee ledger for one academic year.
type FeeRecord struct {
	ID              string        `json:"id"`
	StudentID       string        `json:"student_id"`
	AcademicYear    string        `json:"academic_year"`
	TotalAmount     int64         `json:"total_amount"`
	PaidAmount      int64         `json:"paid_amount"`
	RemainingAmount int64         `json:"remaining_amount"`
	DueDate         string        `json:"due_date,omitempty"`
	Status          FeeStatus     `json:"status"`
	Installments    []Installment `json:"installments"`
	SchoolID        string        `json:"school_id,omitempty"`
}

// NewFeeRecord builds an unpaid ledger. Supplied installments are reset to pending.
func NewFeeRecord(studentID, academicYear string, total int64, dueDate string, installments []Installment) FeeRecord {
	fee := FeeRecord{
		StudentID:    studentID,
		AcademicYear: academicYear,
		TotalAmount:  total,
		DueDate:      dueDate,
		Installments: make([]Installment, 0, len(installments)),
	}
	for _, inst := range installments {
		inst.Status = InstallmentPending
		inst.PaidDate = nil
		fee.Installments = append(fee.Installments, inst)
	}
	fee.Recompute()
	return fee
}

// Clone returns a deep copy.
func (f FeeRecord) Clone() FeeRecord {
	out := f
	out.Installments = make([]Installment, len(f.Installments))
	for i, inst := range f.Installments {
		if inst.PaidDate != nil {
			d := *inst.PaidDate
			inst.PaidDate = &d
		}
		out.Installments[i] = inst
	}
	return out
}

// Recompute derives paid, remaining and status from the installments.
func (f *FeeRecord) Recompute() {
	var paid int64
	for _, inst := range f.Installments {
		if inst.Status == InstallmentPaid {
			paid += inst.Amount
		}
	}
	f.PaidAmount = paid
	f.RemainingAmount = f.TotalAmount - paid
	switch {
	case f.RemainingAmount == 0:
		f.Status = FeePaid
	case paid > 0:
		f.Status = FeePartial
	default:
		f.Status = FeeUnpaid
	}
}

// InstallmentTotal sums every installment amount.
func (f FeeRecord) InstallmentTotal() int64 {
	var total int64
	for _, inst := range f.Installments {
		total += inst.Amount
	}
	return total
}

// MarkPaid records a payment on the installment and recomputes the ledger.
// It reports false when the installment does not exist.
func (f *FeeRecord) MarkPaid(installmentID, paidDate string) bool {
	for i := range f.Installments {
		if f.Installments[i].ID != installmentID {
			continue
		}
		if f.Installments[i].Status != InstallmentPaid {
			d := paidDate
			f.Installments[i].PaidDate = &d
			f.Installments[i].Status = InstallmentPaid
		}
		f.Recompute()
		return true
	}
	return false
}

// AppendInstallment adds a pending installment, grows the total to the sum of
// all installments and recomputes the rest.
func (f *FeeRecord) AppendInstallment(inst Installment) {
	inst.Status = InstallmentPending
	inst.PaidDate = nil
	f.Installments = append(f.Installments, inst)
	f.TotalAmount = f.InstallmentTotal()
	f.Recompute()
}

// FeePatch updates the non-derived fields of a ledger.
type FeePatch struct {
	AcademicYear *string `json:"academic_year,omitempty"`
	DueDate      *string `json:"due_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	TotalAmount  *int64  `json:"total_amount,omitempty" validate:"omitempty,gt=0"`
}

// Apply merges the patch into f and recomputes derived fields.
func (p FeePatch) Apply(f *FeeRecord) {
	setString(&f.AcademicYear, p.AcademicYear)
	setString(&f.DueDate, p.DueDate)
	if p.TotalAmount != nil {
		f.TotalAmount = *p.TotalAmount
	}
	f.Recompute()
}

// InstallmentInput schedules an installment on create.
type InstallmentInput struct {
	Amount  int64  `json:"amount" validate:"gt=0"`
	DueDate string `json:"due_date" validate:"required,datetime=2006-01-02"`
}

// FeeCreateRequest opens a new fee ledger.
type FeeCreateRequest struct {
	StudentID    string             `json:"student_id" validate:"required"`
	AcademicYear string             `json:"academic_year" validate:"required"`
	TotalAmount  int64              `json:"total_amount" validate:"gt=0"`
	DueDate      string             `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	Installments []InstallmentInput `json:"installments" validate:"dive"`
}

// PaymentRequest records a payment against an installment.
type PaymentRequest struct {
	InstallmentID string `json:"installment_id" validate:"required"`
	PaidDate      string `json:"paid_date" validate:"omitempty,datetime=2006-01-02"`
}
