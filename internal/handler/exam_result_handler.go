package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-portal/internal/models"
	"github.com/noah-isme/school-portal/internal/service"
	appErrors "github.com/noah-isme/school-portal/pkg/errors"
	"github.com/noah-isme/school-portal/pkg/response"
)

// ExamResultHandler exposes exam score endpoints.
type ExamResultHandler struct {
	results *service.ExamResultService
}

// NewExamResultHandler constructs ExamResultHandler.
func NewExamResultHandler(results *service.ExamResultService) *ExamResultHandler {
	return &ExamResultHandler{results: results}
}

// List godoc
// @Summary List exam results
// @Description Filters apply in order: student_id, class (+section), exam_type. Parents must pass one of their children.
// @Tags Exam Results
// @Security BearerAuth
// @Produce json
// @Param student_id query string false "Student ID"
// @Param class query string false "Class"
// @Param section query string false "Section"
// @Param exam_type query string false "weekly, quarterly, half_yearly or annual"
// @Success 200 {object} response.Envelope
// @Router /exam-results [get]
func (h *ExamResultHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	scope := scopeFromContext(c)
	studentID := c.Query("student_id")

	if parentUser(c) != nil && studentID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "student_id is required"))
		return
	}

	var (
		results []models.ExamResult
		err     error
	)
	switch {
	case studentID != "":
		if !canSeeStudent(c, studentID) {
			return
		}
		results, err = h.results.ByStudent(ctx, scope, studentID)
	case c.Query("class") != "":
		results, err = h.results.ByClass(ctx, scope, c.Query("class"), c.Query("section"))
	case c.Query("exam_type") != "":
		results, err = h.results.ByType(ctx, scope, models.ExamType(c.Query("exam_type")))
	default:
		results, err = h.results.List(ctx, scope)
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	ok(c, results)
}

// Create godoc
// @Summary Record exam result
// @Tags Exam Results
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body models.ExamResult true "Exam result"
// @Success 201 {object} response.Envelope
// @Router /exam-results [post]
func (h *ExamResultHandler) Create(c *gin.Context) {
	var req models.ExamResult
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.results.Create(c.Request.Context(), scopeFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	created(c, result)
}

// Update godoc
// @Summary Update exam result
// @Tags Exam Results
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Exam result ID"
// @Param payload body models.ExamResultPatch true "Exam result patch"
// @Success 200 {object} response.Envelope
// @Router /exam-results/{id} [put]
func (h *ExamResultHandler) Update(c *gin.Context) {
	var patch models.ExamResultPatch
	if !bindJSON(c, &patch) {
		return
	}
	result, err := h.results.Update(c.Request.Context(), scopeFromContext(c), c.Param("id"), patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	ok(c, result)
}

// Delete godoc
// @Summary Delete exam result
// @Tags Exam Results
// @Security BearerAuth
// @Produce json
// @Param id path string true "Exam result ID"
// @Success 200 {object} response.Envelope
// @Router /exam-results/{id} [delete]
func (h *ExamResultHandler) Delete(c *gin.Context) {
	result, err := h.results.Delete(c.Request.Context(), scopeFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	ok(c, result)
}
