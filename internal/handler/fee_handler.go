package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-portal/internal/models"
	"github.com/noah-isme/school-portal/internal/service"
	appErrors "github.com/noah-isme/school-portal/pkg/errors"
	"github.com/noah-isme/school-portal/pkg/response"
)

// FeeHandler exposes fee ledgers.
type FeeHandler struct {
	fees *service.FeeService
}

// NewFeeHandler constructs FeeHandler.
func NewFeeHandler(fees *service.FeeService) *FeeHandler {
	return &FeeHandler{fees: fees}
}

// List godoc
// @Summary List fee records
// @Description Parents must pass one of their children.
// @Tags Fees
// @Security BearerAuth
// @Produce json
// @Param student_id query string false "Student ID"
// @Success 200 {object} response.Envelope
// @Router /fees [get]
func (h *FeeHandler) List(c *gin.Context) {
	studentID := c.Query("student_id")
	if parentUser(c) != nil && studentID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "student_id is required"))
		return
	}

	var (
		fees []models.FeeRecord
		err  error
	)
	if studentID != "" {
		if !canSeeStudent(c, studentID) {
			return
		}
		fees, err = h.fees.ByStudent(c.Request.Context(), scopeFromContext(c), studentID)
	} else {
		fees, err = h.fees.List(c.Request.Context(), scopeFromContext(c))
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	ok(c, fees)
}

// Get godoc
// @Summary Get fee record
// @Tags Fees
// @Security BearerAuth
// @Produce json
// @Param id path string true "Fee ID"
// @Success 200 {object} response.Envelope
// @Router /fees/{id} [get]
func (h *FeeHandler) Get(c *gin.Context) {
	fee, err := h.fees.Get(c.Request.Context(), scopeFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if !canSeeStudent(c, fee.StudentID) {
		return
	}
	ok(c, fee)
}

// Create godoc
// @Summary Open a fee ledger
// @Tags Fees
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body models.FeeCreateRequest true "Fee payload"
// @Success 201 {object} response.Envelope
// @Router /fees [post]
func (h *FeeHandler) Create(c *gin.Context) {
	var req models.FeeCreateRequest
	if !bindJSON(c, &req) {
		return
	}
	fee, err := h.fees.Create(c.Request.Context(), scopeFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	created(c, fee)
}

// Update godoc
// @Summary Update fee ledger
// @Tags Fees
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Fee ID"
// @Param payload body models.FeePatch true "Fee patch"
// @Success 200 {object} response.Envelope
// @Router /fees/{id} [put]
func (h *FeeHandler) Update(c *gin.Context) {
	var patch models.FeePatch
	if !bindJSON(c, &patch) {
		return
	}
	fee, err := h.fees.Update(c.Request.Context(), scopeFromContext(c), c.Param("id"), patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	ok(c, fee)
}

// RecordPayment godoc
// @Summary Record an installment payment
// @Tags Fees
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Fee ID"
// @Param payload body models.PaymentRequest true "Payment"
// @Success 200 {object} response.Envelope
// @Router /fees/{id}/payments [post]
func (h *FeeHandler) RecordPayment(c *gin.Context) {
	var req models.PaymentRequest
	if !bindJSON(c, &req) {
		return
	}
	fee, err := h.fees.RecordPayment(c.Request.Context(), scopeFromContext(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	ok(c, fee)
}

// AddInstallment godoc
// @Summary Schedule an installment
// @Tags Fees
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Fee ID"
// @Param payload body models.InstallmentInput true "Installment"
// @Success 200 {object} response.Envelope
// @Router /fees/{id}/installments [post]
func (h *FeeHandler) AddInstallment(c *gin.Context) {
	var req models.InstallmentInput
	if !bindJSON(c, &req) {
		return
	}
	fee, err := h.fees.AddInstallment(c.Request.Context(), scopeFromContext(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	ok(c, fee)
}
