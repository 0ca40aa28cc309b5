package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-portal/internal/models"
	"github.com/noah-isme/school-portal/internal/service"
	appErrors "github.com/noah-isme/school-portal/pkg/errors"
	"github.com/noah-isme/school-portal/pkg/response"
)

type respondQueryRequest struct {
	Response string `json:"response" binding:"required"`
}

type queryStatusRequest struct {
	Status models.QueryStatus `json:"status" binding:"required"`
}

// QueryHandler exposes parent query endpoints.
type QueryHandler struct {
	queries *service.QueryService
}

// NewQueryHandler constructs QueryHandler.
func NewQueryHandler(queries *service.QueryService) *QueryHandler {
	return &QueryHandler{queries: queries}
}

// List godoc
// @Summary List queries
// @Description Parents only see the queries they raised.
// @Tags Queries
// @Security BearerAuth
// @Produce json
// @Param student_id query string false "Student ID"
// @Param parent_id query string false "Parent ID"
// @Success 200 {object} response.Envelope
// @Router /queries [get]
func (h *QueryHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	scope := scopeFromContext(c)

	var (
		queries []models.Query
		err     error
	)
	switch {
	case parentUser(c) != nil:
		queries, err = h.queries.ByParent(ctx, scope, parentUser(c).ParentID)
	case c.Query("student_id") != "":
		queries, err = h.queries.ByStudent(ctx, scope, c.Query("student_id"))
	case c.Query("parent_id") != "":
		queries, err = h.queries.ByParent(ctx, scope, c.Query("parent_id"))
	default:
		queries, err = h.queries.List(ctx, scope)
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	ok(c, queries)
}

// Get godoc
// @Summary Get query
// @Tags Queries
// @Security BearerAuth
// @Produce json
// @Param id path string true "Query ID"
// @Success 200 {object} response.Envelope
// @Router /queries/{id} [get]
func (h *QueryHandler) Get(c *gin.Context) {
	query, err := h.queries.Get(c.Request.Context(), scopeFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if parent := parentUser(c); parent != nil && query.ParentID != parent.ParentID {
		response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "query belongs to another parent"))
		return
	}
	ok(c, query)
}

// Create godoc
// @Summary Raise a query
// @Description A signed-in parent always raises queries as themselves.
// @Tags Queries
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body models.Query true "Query"
// @Success 201 {object} response.Envelope
// @Router /queries [post]
func (h *QueryHandler) Create(c *gin.Context) {
	var req models.Query
	if !bindJSON(c, &req) {
		return
	}
	if parent := parentUser(c); parent != nil {
		req.ParentID = parent.ParentID
		if !canSeeStudent(c, req.StudentID) {
			return
		}
	}
	query, err := h.queries.Create(c.Request.Context(), scopeFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	created(c, query)
}

// Update godoc
// @Summary Edit query
// @Tags Queries
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Query ID"
// @Param payload body models.QueryPatch true "Query patch"
// @Success 200 {object} response.Envelope
// @Router /queries/{id} [put]
func (h *QueryHandler) Update(c *gin.Context) {
	var patch models.QueryPatch
	if !bindJSON(c, &patch) {
		return
	}
	query, err := h.queries.Update(c.Request.Context(), scopeFromContext(c), c.Param("id"), patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	ok(c, query)
}

// Respond godoc
// @Summary Respond to a query
// @Tags Queries
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Query ID"
// @Param payload body respondQueryRequest true "Response"
// @Success 200 {object} response.Envelope
// @Router /queries/{id}/respond [post]
func (h *QueryHandler) Respond(c *gin.Context) {
	var req respondQueryRequest
	if !bindJSON(c, &req) {
		return
	}
	query, err := h.queries.Respond(c.Request.Context(), scopeFromContext(c), c.Param("id"), req.Response)
	if err != nil {
		response.Error(c, err)
		return
	}
	ok(c, query)
}

// SetStatus godoc
// @Summary Resolve or close a query
// @Tags Queries
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Query ID"
// @Param payload body queryStatusRequest true "Status"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /queries/{id}/status [patch]
func (h *QueryHandler) SetStatus(c *gin.Context) {
	var req queryStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	query, err := h.queries.SetStatus(c.Request.Context(), scopeFromContext(c), c.Param("id"), req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	ok(c, query)
}
