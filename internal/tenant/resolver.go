package tenant

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/school-portal/internal/models"
	"github.com/noah-isme/school-portal/internal/session"
)

// DefaultKey is used when neither the config nor the session names a school.
const DefaultKey models.TenantKey = "stmarys"

// Resolver picks the active school for a session.
type Resolver struct {
	fallback models.TenantKey
	logger   *zap.Logger
}

// NewResolver constructs a Resolver with the configured default tenant.
func NewResolver(defaultTenant string, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	key := models.TenantKey(defaultTenant)
	if key == "" {
		key = DefaultKey
	}
	return &Resolver{fallback: key, logger: logger}
}

// Default returns the key used when the session carries none.
func (r *Resolver) Default() models.TenantKey {
	return r.fallback
}

// Resolve prefers the school embedded in the user, then the persisted school,
// then the default. It never fails.
func (r *Resolver) Resolve(ctx context.Context, store *session.Store) models.TenantKey {
	if store == nil {
		return r.fallback
	}
	state, err := store.Load(ctx)
	if err != nil {
		r.logger.Warn("session unreadable, using default tenant", zap.String("session_id", store.ID()), zap.Error(err))
		return r.fallback
	}
	return r.FromState(state)
}

// FromState applies the resolution order to an already loaded state.
func (r *Resolver) FromState(state session.State) models.TenantKey {
	if state.User != nil && state.User.School != nil && state.User.School.Domain != "" {
		return state.User.School.Tenant()
	}
	if state.School != nil && state.School.Domain != "" {
		return state.School.Tenant()
	}
	return r.fallback
}
