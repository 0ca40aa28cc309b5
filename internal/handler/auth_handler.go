package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-portal/internal/gateway"
	"github.com/noah-isme/school-portal/internal/models"
	"github.com/noah-isme/school-portal/internal/service"
	appErrors "github.com/noah-isme/school-portal/pkg/errors"
	"github.com/noah-isme/school-portal/pkg/response"
)

// workflowDiscarder drops per-session state on logout.
type workflowDiscarder interface {
	Discard(sessionID string)
}

// AuthHandler wires HTTP endpoints to the auth service.
type AuthHandler struct {
	service *service.AuthService
	capture workflowDiscarder
}

// NewAuthHandler creates a new handler. capture may be nil.
func NewAuthHandler(svc *service.AuthService, capture workflowDiscarder) *AuthHandler {
	return &AuthHandler{service: svc, capture: capture}
}

// Login godoc
// @Summary Sign in to a school
// @Description Authenticate by email, password and school domain
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.LoginRequest true "Login payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid login payload"))
		return
	}
	if req.SchoolDomain == "" {
		req.SchoolDomain = c.GetHeader(gateway.TenantHeader)
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	ok(c, res)
}

// Logout godoc
// @Summary Sign out
// @Tags Authentication
// @Security BearerAuth
// @Success 204
// @Router /logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	scope := scopeFromContext(c)
	if err := h.service.Logout(c.Request.Context(), scope.Session); err != nil {
		response.Error(c, err)
		return
	}
	if h.capture != nil && scope.Session != nil {
		h.capture.Discard(scope.Session.ID())
	}
	response.NoContent(c)
}

// Me godoc
// @Summary Current user
// @Tags Authentication
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.service.Me(c.Request.Context(), scopeFromContext(c).Session)
	if err != nil {
		response.Error(c, err)
		return
	}
	ok(c, user)
}
