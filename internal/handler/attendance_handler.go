package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-portal/internal/models"
	"github.com/noah-isme/school-portal/internal/service"
	appErrors "github.com/noah-isme/school-portal/pkg/errors"
	"github.com/noah-isme/school-portal/pkg/response"
)

// AttendanceHandler exposes attendance records and per-student reports.
type AttendanceHandler struct {
	attendance *service.AttendanceService
	reports    *service.ReportService
}

// NewAttendanceHandler constructs AttendanceHandler.
func NewAttendanceHandler(attendance *service.AttendanceService, reports *service.ReportService) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance, reports: reports}
}

// ByClass godoc
// @Summary List class attendance
// @Tags Attendance
// @Security BearerAuth
// @Produce json
// @Param class query string true "Class"
// @Param section query string false "Section"
// @Param date query string false "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /attendance [get]
func (h *AttendanceHandler) ByClass(c *gin.Context) {
	class := c.Query("class")
	if class == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "class is required"))
		return
	}
	records, err := h.attendance.ByClass(c.Request.Context(), scopeFromContext(c), class, c.Query("section"), c.Query("date"))
	if err != nil {
		response.Error(c, err)
		return
	}
	ok(c, records)
}

// ByStudent godoc
// @Summary List a student's attendance
// @Tags Attendance
// @Security BearerAuth
// @Produce json
// @Param id path string true "Student ID"
// @Param range query string false "daily, weekly, monthly or all"
// @Param date query string false "Anchor date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /attendance/student/{id} [get]
func (h *AttendanceHandler) ByStudent(c *gin.Context) {
	id := c.Param("id")
	if !canSeeStudent(c, id) {
		return
	}
	records, err := h.attendance.ByStudent(c.Request.Context(), scopeFromContext(c), id, models.AttendanceRange(c.Query("range")), c.Query("date"))
	if err != nil {
		response.Error(c, err)
		return
	}
	ok(c, records)
}

// Create godoc
// @Summary Record attendance
// @Tags Attendance
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body models.AttendanceRecord true "Attendance record"
// @Success 201 {object} response.Envelope
// @Router /attendance [post]
func (h *AttendanceHandler) Create(c *gin.Context) {
	var req models.AttendanceRecord
	if !bindJSON(c, &req) {
		return
	}
	record, err := h.attendance.Create(c.Request.Context(), scopeFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	created(c, record)
}

// Update godoc
// @Summary Update attendance record
// @Tags Attendance
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Attendance ID"
// @Param payload body models.AttendancePatch true "Attendance patch"
// @Success 200 {object} response.Envelope
// @Router /attendance/{id} [put]
func (h *AttendanceHandler) Update(c *gin.Context) {
	var patch models.AttendancePatch
	if !bindJSON(c, &patch) {
		return
	}
	record, err := h.attendance.Update(c.Request.Context(), scopeFromContext(c), c.Param("id"), patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	ok(c, record)
}

// Report godoc
// @Summary Student attendance report
// @Description Daily slot grid and summary for the selected range.
// @Tags Attendance
// @Security BearerAuth
// @Produce json
// @Param id path string true "Student ID"
// @Param range query string false "daily, weekly, monthly or all"
// @Param date query string false "Anchor date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /attendance/student/{id}/report [get]
func (h *AttendanceHandler) Report(c *gin.Context) {
	id := c.Param("id")
	if !canSeeStudent(c, id) {
		return
	}
	report, err := h.reports.StudentReport(c.Request.Context(), scopeFromContext(c), id, models.AttendanceRange(c.DefaultQuery("range", string(models.RangeMonthly))), c.Query("date"))
	if err != nil {
		response.Error(c, err)
		return
	}
	ok(c, report)
}

// Export godoc
// @Summary Download student attendance report
// @Tags Attendance
// @Security BearerAuth
// @Produce text/csv
// @Produce application/pdf
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Student ID"
// @Param range query string false "daily, weekly, monthly or all"
// @Param date query string false "Anchor date (YYYY-MM-DD)"
// @Param format query string false "csv, pdf or xlsx"
// @Success 200 {file} file
// @Router /attendance/student/{id}/export [get]
func (h *AttendanceHandler) Export(c *gin.Context) {
	id := c.Param("id")
	if !canSeeStudent(c, id) {
		return
	}
	file, err := h.reports.Export(c.Request.Context(), scopeFromContext(c), id,
		models.AttendanceRange(c.DefaultQuery("range", string(models.RangeMonthly))),
		c.Query("date"),
		models.ReportFormat(c.DefaultQuery("format", string(models.ReportFormatCSV))),
	)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.File(c, file.Filename, file.ContentType, file.Data)
}
