package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-portal/internal/gateway"
	"github.com/noah-isme/school-portal/internal/models"
	"github.com/noah-isme/school-portal/internal/repository/mockstore"
	"github.com/noah-isme/school-portal/internal/service"
	"github.com/noah-isme/school-portal/internal/session"
	"github.com/noah-isme/school-portal/internal/tenant"
)

type recorderStub struct {
	mu      sync.Mutex
	entries []models.ActivityEntry
}

func (r *recorderStub) Record(ctx context.Context, entry models.ActivityEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
}

func withClaims(role models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextUserKey, &models.ConsoleClaims{UserID: "u1", SessionID: "s1", Role: role})
		c.Set(ContextScopeKey, gateway.Scope{Tenant: "stmarys"})
		c.Next()
	}
}

func serve(r *gin.Engine, method, path string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRequireRoles(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := func(c *gin.Context) { c.Status(http.StatusOK) }

	r := gin.New()
	r.GET("/anon", RequireRoles(models.RoleAdmin), handler)
	r.GET("/teacher", withClaims(models.RoleTeacher), RequireRoles(models.RoleAdmin), handler)
	r.GET("/admin", withClaims(models.RoleAdmin), RequireRoles(models.RoleAdmin, models.RoleTeacher), handler)

	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/anon", nil).Code)
	rec := serve(r, http.MethodGet, "/teacher", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "role teacher cannot access")
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/admin", nil).Code)
}

func TestAuditRecordsSuccessfulMutationsOnly(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := &recorderStub{}

	r := gin.New()
	r.Use(withClaims(models.RoleAdmin))
	r.POST("/ok", Audit(rec, "student.create", "Student added"), func(c *gin.Context) { c.Status(http.StatusCreated) })
	r.POST("/fail", Audit(rec, "student.create", "Student added"), func(c *gin.Context) { c.Status(http.StatusBadRequest) })

	serve(r, http.MethodPost, "/ok", nil)
	serve(r, http.MethodPost, "/fail", nil)

	require.Len(t, rec.entries, 1)
	entry := rec.entries[0]
	assert.Equal(t, "student.create", entry.Action)
	assert.Equal(t, models.AckSuccess, entry.Level)
	assert.Equal(t, "stmarys", entry.Tenant)
	assert.Equal(t, "u1", entry.ActorID)
	assert.Equal(t, "s1", entry.SessionID)
}

func TestAuditToleratesNilRecorder(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/ok", Audit(nil, "x", "y"), func(c *gin.Context) { c.Status(http.StatusOK) })
	assert.Equal(t, http.StatusOK, serve(r, http.MethodPost, "/ok", nil).Code)
}

func TestWithResponseMeta(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(WithResponseMeta("real"))
	var meta map[string]interface{}
	r.GET("/", func(c *gin.Context) {
		SetMeta(c, "source", "remote")
		meta = ExtractMeta(c)
		c.Status(http.StatusOK)
	})

	rec := serve(r, http.MethodGet, "/", nil)
	assert.Equal(t, "real", rec.Header().Get(APIModeHeader))
	assert.Equal(t, "real", meta["api_mode"])
	assert.Equal(t, "remote", meta["source"])
	assert.Contains(t, meta, "processing_time_ms")
}

func TestPublicScopeUsesHeaderOrDefault(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var got gateway.Scope
	r := gin.New()
	r.Use(PublicScope(tenant.NewResolver("stmarys", nil)))
	r.GET("/", func(c *gin.Context) {
		got = c.MustGet(ContextScopeKey).(gateway.Scope)
		c.Status(http.StatusOK)
	})

	serve(r, http.MethodGet, "/", nil)
	assert.Equal(t, models.TenantKey("stmarys"), got.Tenant)

	serve(r, http.MethodGet, "/", map[string]string{gateway.TenantHeader: "brightfuture"})
	assert.Equal(t, models.TenantKey("brightfuture"), got.Tenant)
}

func TestJWTResolvesScopeFromSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	backend := service.NewBackend(gateway.New(gateway.ModeMock, true, nil, nil), nil)
	sessions := session.NewManager(session.NewMemoryKV(), time.Hour)
	auth := service.NewAuthService(backend, mockstore.NewSeeded(mockstore.Options{}), sessions, nil, nil, service.AuthConfig{
		AccessTokenSecret: "mw-secret",
		AccessTokenExpiry: time.Hour,
		Issuer:            "school-portal",
	})
	login, err := auth.Login(context.Background(), models.LoginRequest{Email: "admin@brightfuture.edu", Password: "admin123", SchoolDomain: "brightfuture"})
	require.NoError(t, err)

	var scope gateway.Scope
	r := gin.New()
	r.Use(JWT(auth, tenant.NewResolver("stmarys", nil)))
	r.GET("/", func(c *gin.Context) {
		scope = c.MustGet(ContextScopeKey).(gateway.Scope)
		c.Status(http.StatusOK)
	})

	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/", map[string]string{"Authorization": "Basic abc"}).Code)

	rec := serve(r, http.MethodGet, "/", map[string]string{"Authorization": "Bearer " + login.AccessToken})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.TenantKey("brightfuture"), scope.Tenant)
	assert.Equal(t, mockstore.MockToken, scope.Token)
	assert.NotNil(t, scope.Session)

	require.NoError(t, auth.Logout(context.Background(), scope.Session))
	rec = serve(r, http.MethodGet, "/", map[string]string{"Authorization": "Bearer " + login.AccessToken})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "SESSION_EXPIRED")
}
