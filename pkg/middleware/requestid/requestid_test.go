package requestid

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, header string) (string, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())

	var fromCtx string
	r.GET("/", func(c *gin.Context) {
		assert.Equal(t, Value(c), FromContext(c.Request.Context()))
		fromCtx = FromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(Header, header)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Header().Get(Header), fromCtx
}

func TestMiddlewareKeepsClientID(t *testing.T) {
	echoed, fromCtx := serve(t, "req-123")
	assert.Equal(t, "req-123", echoed)
	assert.Equal(t, "req-123", fromCtx)
}

func TestMiddlewareGeneratesID(t *testing.T) {
	echoed, fromCtx := serve(t, "")
	assert.Len(t, echoed, 36)
	assert.Equal(t, echoed, fromCtx)
}

func TestMiddlewareReplacesMalformedID(t *testing.T) {
	echoed, _ := serve(t, "bad id\twith spaces")
	assert.NotContains(t, echoed, " ")

	echoed, _ = serve(t, strings.Repeat("a", maxLength+1))
	assert.Len(t, echoed, 36)
}
