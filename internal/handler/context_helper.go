package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-portal/internal/gateway"
	"github.com/noah-isme/school-portal/internal/middleware"
	"github.com/noah-isme/school-portal/internal/models"
	"github.com/noah-isme/school-portal/internal/service"
	appErrors "github.com/noah-isme/school-portal/pkg/errors"
	"github.com/noah-isme/school-portal/pkg/response"
)

func claimsFromContext(c *gin.Context) *models.ConsoleClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.ConsoleClaims)
	if !ok {
		return nil
	}
	return claims
}

func scopeFromContext(c *gin.Context) gateway.Scope {
	value, exists := c.Get(middleware.ContextScopeKey)
	if !exists {
		return gateway.Scope{}
	}
	scope, _ := value.(gateway.Scope)
	return scope
}

func userFromContext(c *gin.Context) *models.User {
	value, exists := c.Get(middleware.ContextSessionUserKey)
	if !exists {
		return nil
	}
	user, _ := value.(*models.User)
	return user
}

func actorFromContext(c *gin.Context) service.Actor {
	claims := claimsFromContext(c)
	if claims == nil {
		return service.Actor{}
	}
	return service.Actor{SessionID: claims.SessionID, UserID: claims.UserID}
}

// canSeeStudent lets parents through only for their own children.
func canSeeStudent(c *gin.Context, studentID string) bool {
	user := userFromContext(c)
	if user == nil || user.Role != models.RoleParent {
		return true
	}
	if user.HasChild(studentID) {
		return true
	}
	response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "student is not linked to this account"))
	return false
}

// parentUser returns the signed-in parent, or nil for other roles.
func parentUser(c *gin.Context) *models.User {
	user := userFromContext(c)
	if user == nil || user.Role != models.RoleParent {
		return nil
	}
	return user
}

func ok(c *gin.Context, data interface{}) {
	response.JSON(c, http.StatusOK, data, middleware.ExtractMeta(c))
}

func created(c *gin.Context, data interface{}) {
	response.JSON(c, http.StatusCreated, data, middleware.ExtractMeta(c))
}

func bindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return false
	}
	return true
}
