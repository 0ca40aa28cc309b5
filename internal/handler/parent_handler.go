package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-portal/internal/models"
	"github.com/noah-isme/school-portal/internal/service"
	appErrors "github.com/noah-isme/school-portal/pkg/errors"
	"github.com/noah-isme/school-portal/pkg/response"
)

// ParentHandler exposes parent endpoints.
type ParentHandler struct {
	parents *service.ParentService
}

// NewParentHandler constructs ParentHandler.
func NewParentHandler(parents *service.ParentService) *ParentHandler {
	return &ParentHandler{parents: parents}
}

// List godoc
// @Summary List parents
// @Tags Parents
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /parents [get]
func (h *ParentHandler) List(c *gin.Context) {
	parents, err := h.parents.List(c.Request.Context(), scopeFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	ok(c, parents)
}

// Get godoc
// @Summary Get parent detail
// @Tags Parents
// @Security BearerAuth
// @Produce json
// @Param id path string true "Parent ID"
// @Success 200 {object} response.Envelope
// @Router /parents/{id} [get]
func (h *ParentHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if !h.ownRecord(c, id) {
		return
	}
	parent, err := h.parents.Get(c.Request.Context(), scopeFromContext(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	ok(c, parent)
}

// Children godoc
// @Summary List a parent's children
// @Tags Parents
// @Security BearerAuth
// @Produce json
// @Param id path string true "Parent ID"
// @Success 200 {object} response.Envelope
// @Router /parents/{id}/children [get]
func (h *ParentHandler) Children(c *gin.Context) {
	id := c.Param("id")
	if !h.ownRecord(c, id) {
		return
	}
	children, err := h.parents.Children(c.Request.Context(), scopeFromContext(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	ok(c, children)
}

// Create godoc
// @Summary Create parent
// @Tags Parents
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body models.Parent true "Parent payload"
// @Success 201 {object} response.Envelope
// @Router /parents [post]
func (h *ParentHandler) Create(c *gin.Context) {
	var req models.Parent
	if !bindJSON(c, &req) {
		return
	}
	parent, err := h.parents.Create(c.Request.Context(), scopeFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	created(c, parent)
}

// Update godoc
// @Summary Update parent
// @Tags Parents
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Parent ID"
// @Param payload body models.ParentPatch true "Parent patch"
// @Success 200 {object} response.Envelope
// @Router /parents/{id} [put]
func (h *ParentHandler) Update(c *gin.Context) {
	var patch models.ParentPatch
	if !bindJSON(c, &patch) {
		return
	}
	parent, err := h.parents.Update(c.Request.Context(), scopeFromContext(c), c.Param("id"), patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	ok(c, parent)
}

func (h *ParentHandler) ownRecord(c *gin.Context, id string) bool {
	parent := parentUser(c)
	if parent == nil || parent.ParentID == id {
		return true
	}
	response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "parents may only view their own record"))
	return false
}
