package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-portal/internal/service"
	"github.com/noah-isme/school-portal/pkg/response"
)

// SchoolHandler serves the school picker shown before login.
type SchoolHandler struct {
	schools *service.SchoolService
}

// NewSchoolHandler constructs SchoolHandler.
func NewSchoolHandler(schools *service.SchoolService) *SchoolHandler {
	return &SchoolHandler{schools: schools}
}

// List godoc
// @Summary List schools
// @Tags Schools
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /schools [get]
func (h *SchoolHandler) List(c *gin.Context) {
	schools, err := h.schools.List(c.Request.Context(), scopeFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	ok(c, schools)
}

// Get godoc
// @Summary Get school by domain
// @Tags Schools
// @Produce json
// @Param domain path string true "School domain"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /schools/{domain} [get]
func (h *SchoolHandler) Get(c *gin.Context) {
	school, err := h.schools.ByDomain(c.Request.Context(), scopeFromContext(c), c.Param("domain"))
	if err != nil {
		response.Error(c, err)
		return
	}
	ok(c, school)
}
