package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-portal/internal/gateway"
	"github.com/noah-isme/school-portal/internal/models"
	"github.com/noah-isme/school-portal/internal/service"
	"github.com/noah-isme/school-portal/internal/tenant"
	appErrors "github.com/noah-isme/school-portal/pkg/errors"
	"github.com/noah-isme/school-portal/pkg/logger"
	"github.com/noah-isme/school-portal/pkg/response"
)

const (
	// ContextUserKey is the gin context key storing the console token claims.
	ContextUserKey = "currentUser"
	// ContextScopeKey stores the gateway.Scope resolved for the request.
	ContextScopeKey = "scope"
	// ContextSessionUserKey stores the *models.User loaded from the session.
	ContextSessionUserKey = "sessionUser"
)

// JWT protects routes by requiring a valid console token whose session is
// still signed in. It resolves the tenant once and stores the request scope.
func JWT(authService *service.AuthService, resolver *tenant.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "missing or invalid authorization header"))
			c.Abort()
			return
		}

		claims, err := authService.ValidateToken(token)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		store := authService.OpenSession(claims.SessionID)
		state, err := store.Load(c.Request.Context())
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load session"))
			c.Abort()
			return
		}
		if !state.Authenticated() {
			response.Error(c, appErrors.ErrSessionExpired)
			c.Abort()
			return
		}

		scope := gateway.Scope{Tenant: resolver.FromState(state), Token: state.Token(), Session: store}
		c.Set(ContextUserKey, claims)
		c.Set(ContextSessionUserKey, state.User)
		c.Set(ContextScopeKey, scope)
		c.Set(logger.TenantKey, string(scope.Tenant))
		c.Set(logger.UserKey, claims.UserID)
		c.Next()
	}
}

// PublicScope attaches an anonymous scope for routes reachable before login.
// The tenant comes from the X-School-Domain header or the default.
func PublicScope(resolver *tenant.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := resolver.Default()
		if domain := strings.TrimSpace(c.GetHeader(gateway.TenantHeader)); domain != "" {
			key = models.TenantKey(domain)
		}
		c.Set(ContextScopeKey, gateway.Scope{Tenant: key})
		c.Set(logger.TenantKey, string(key))
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
