package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-portal/internal/gateway"
	"github.com/noah-isme/school-portal/internal/models"
)

// ActivityRecorder receives audit entries for successful mutations.
type ActivityRecorder interface {
	Record(ctx context.Context, entry models.ActivityEntry)
}

// Audit records an activity entry after a successful request. message is
// the acknowledgment shown to the operator.
func Audit(recorder ActivityRecorder, action, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if recorder == nil || c.Writer.Status() >= 400 {
			return
		}

		entry := models.ActivityEntry{
			Level:   models.AckSuccess,
			Action:  action,
			Message: message,
		}
		if claims, ok := claimsFrom(c); ok {
			entry.ActorID = claims.UserID
			entry.SessionID = claims.SessionID
		}
		if value, ok := c.Get(ContextScopeKey); ok {
			if scope, ok := value.(gateway.Scope); ok {
				entry.Tenant = string(scope.Tenant)
			}
		}
		recorder.Record(c.Request.Context(), entry)
	}
}
