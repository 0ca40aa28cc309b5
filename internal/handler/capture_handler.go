package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-portal/internal/capture"
	"github.com/noah-isme/school-portal/internal/models"
	"github.com/noah-isme/school-portal/internal/service"
	"github.com/noah-isme/school-portal/pkg/response"
)

type configureCaptureRequest struct {
	Date string      `json:"date" binding:"required"`
	Slot models.Slot `json:"slot" binding:"required"`
}

type selectClassRequest struct {
	Class   string `json:"class" binding:"required"`
	Section string `json:"section" binding:"required"`
}

type capturePhotoRequest struct {
	Photo string `json:"photo" binding:"required"`
}

// CaptureHandler drives the photo attendance workflow of the caller's session.
type CaptureHandler struct {
	capture *service.CaptureService
}

// NewCaptureHandler constructs CaptureHandler.
func NewCaptureHandler(capture *service.CaptureService) *CaptureHandler {
	return &CaptureHandler{capture: capture}
}

// View godoc
// @Summary Current capture session
// @Tags Attendance Capture
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /attendance/capture [get]
func (h *CaptureHandler) View(c *gin.Context) {
	ok(c, h.capture.View(scopeFromContext(c), actorFromContext(c)))
}

// Configure godoc
// @Summary Set capture date and slot
// @Tags Attendance Capture
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body configureCaptureRequest true "Date and slot"
// @Success 200 {object} response.Envelope
// @Router /attendance/capture/configure [post]
func (h *CaptureHandler) Configure(c *gin.Context) {
	var req configureCaptureRequest
	if !bindJSON(c, &req) {
		return
	}
	h.respond(c)(h.capture.Configure(c.Request.Context(), scopeFromContext(c), actorFromContext(c), req.Date, req.Slot))
}

// Select godoc
// @Summary Load a class roster
// @Tags Attendance Capture
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body selectClassRequest true "Class and section"
// @Success 200 {object} response.Envelope
// @Router /attendance/capture/select [post]
func (h *CaptureHandler) Select(c *gin.Context) {
	var req selectClassRequest
	if !bindJSON(c, &req) {
		return
	}
	h.respond(c)(h.capture.Select(c.Request.Context(), scopeFromContext(c), actorFromContext(c), req.Class, req.Section))
}

// Capture godoc
// @Summary Attach a photo to the current student
// @Tags Attendance Capture
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body capturePhotoRequest true "Inline image data URL"
// @Success 200 {object} response.Envelope
// @Router /attendance/capture/photo [post]
func (h *CaptureHandler) Capture(c *gin.Context) {
	var req capturePhotoRequest
	if !bindJSON(c, &req) {
		return
	}
	h.respond(c)(h.capture.Capture(scopeFromContext(c), actorFromContext(c), req.Photo))
}

// Retake godoc
// @Summary Discard the captured photo
// @Tags Attendance Capture
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /attendance/capture/retake [post]
func (h *CaptureHandler) Retake(c *gin.Context) {
	h.respond(c)(h.capture.Retake(scopeFromContext(c), actorFromContext(c)))
}

// Present godoc
// @Summary Mark the current student present
// @Tags Attendance Capture
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /attendance/capture/present [post]
func (h *CaptureHandler) Present(c *gin.Context) {
	h.respond(c)(h.capture.MarkPresent(c.Request.Context(), scopeFromContext(c), actorFromContext(c)))
}

// Absent godoc
// @Summary Mark the current student absent
// @Tags Attendance Capture
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /attendance/capture/absent [post]
func (h *CaptureHandler) Absent(c *gin.Context) {
	h.respond(c)(h.capture.MarkAbsent(c.Request.Context(), scopeFromContext(c), actorFromContext(c)))
}

// Save godoc
// @Summary Retry a failed save
// @Tags Attendance Capture
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /attendance/capture/save [post]
func (h *CaptureHandler) Save(c *gin.Context) {
	h.respond(c)(h.capture.Save(c.Request.Context(), scopeFromContext(c), actorFromContext(c)))
}

// Reset godoc
// @Summary Abandon the capture session
// @Tags Attendance Capture
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /attendance/capture/reset [post]
func (h *CaptureHandler) Reset(c *gin.Context) {
	h.respond(c)(h.capture.Reset(scopeFromContext(c), actorFromContext(c)))
}

func (h *CaptureHandler) respond(c *gin.Context) func(capture.View, error) {
	return func(view capture.View, err error) {
		if err != nil {
			response.Error(c, err)
			return
		}
		ok(c, view)
	}
}
