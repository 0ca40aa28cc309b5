package tenant

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-portal/internal/models"
	"github.com/noah-isme/school-portal/internal/session"
)

type brokenKV struct{}

func (brokenKV) Get(context.Context, string) (string, error) { return "", errors.New("boom") }
func (brokenKV) Set(context.Context, string, string, time.Duration) error {
	return nil
}
func (brokenKV) Delete(context.Context, ...string) error { return nil }

func TestResolvePrefersUserSchool(t *testing.T) {
	ctx := context.Background()
	store := session.NewManager(nil, 0).Open("s1")
	userSchool := models.School{Domain: "brightfuture"}
	persisted := models.School{Domain: "stmarys"}
	require.NoError(t, store.Save(ctx, session.State{
		User:   &models.User{ID: "4", School: &userSchool},
		School: &persisted,
	}))

	assert.Equal(t, models.TenantKey("brightfuture"), NewResolver("", nil).Resolve(ctx, store))
}

func TestResolveFallsBackToPersistedSchool(t *testing.T) {
	ctx := context.Background()
	store := session.NewManager(nil, 0).Open("s1")
	persisted := models.School{Domain: "brightfuture"}
	require.NoError(t, store.Save(ctx, session.State{User: &models.User{ID: "4"}, School: &persisted}))

	assert.Equal(t, models.TenantKey("brightfuture"), NewResolver("", nil).Resolve(ctx, store))
}

func TestResolveDefaults(t *testing.T) {
	ctx := context.Background()
	empty := session.NewManager(nil, 0).Open("s1")

	assert.Equal(t, DefaultKey, NewResolver("", nil).Resolve(ctx, empty))
	assert.Equal(t, models.TenantKey("demo"), NewResolver("demo", nil).Resolve(ctx, empty))
	assert.Equal(t, DefaultKey, NewResolver("", nil).Resolve(ctx, nil))
}

func TestResolveNeverFailsOnBrokenSession(t *testing.T) {
	store := session.NewManager(brokenKV{}, 0).Open("s1")
	assert.Equal(t, DefaultKey, NewResolver("", nil).Resolve(context.Background(), store))
}
