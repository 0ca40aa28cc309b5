package cors

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

var (
	baseAllowHeaders  = []string{"Authorization", "Content-Type", "X-Requested-With", "X-Request-ID"}
	baseExposeHeaders = []string{"X-Request-ID", "Content-Disposition"}
)

const allowMethods = "GET, POST, PUT, PATCH, DELETE, OPTIONS"

type policy struct {
	any           bool
	origins       map[string]struct{}
	allowHeaders  string
	exposeHeaders string
}

// New returns a CORS middleware for the console. An empty list or a "*"
// entry admits every origin. extraHeaders are accepted from clients and
// exposed back to them. Auth travels in the Authorization header, so
// credentials mode is never advertised.
func New(allowedOrigins []string, extraHeaders ...string) gin.HandlerFunc {
	p := policy{
		origins:       make(map[string]struct{}, len(allowedOrigins)),
		allowHeaders:  strings.Join(append(append([]string{}, baseAllowHeaders...), extraHeaders...), ", "),
		exposeHeaders: strings.Join(append(append([]string{}, baseExposeHeaders...), extraHeaders...), ", "),
	}
	for _, origin := range allowedOrigins {
		origin = normalize(origin)
		if origin == "*" {
			p.any = true
			continue
		}
		if origin != "" {
			p.origins[origin] = struct{}{}
		}
	}
	if len(p.origins) == 0 {
		p.any = true
	}

	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Add("Vary", "Origin")

		origin := c.GetHeader("Origin")
		if origin == "" {
			c.Next()
			return
		}
		if !p.allows(origin) {
			// Not ours to serve cross-origin; the browser enforces the rest.
			c.Next()
			return
		}

		h.Set("Access-Control-Allow-Origin", origin)
		h.Set("Access-Control-Expose-Headers", p.exposeHeaders)

		if c.Request.Method == http.MethodOptions && c.GetHeader("Access-Control-Request-Method") != "" {
			h.Set("Access-Control-Allow-Methods", allowMethods)
			h.Set("Access-Control-Allow-Headers", p.allowHeaders)
			h.Set("Access-Control-Max-Age", "600")
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func (p policy) allows(origin string) bool {
	if p.any {
		return true
	}
	_, ok := p.origins[normalize(origin)]
	return ok
}

func normalize(origin string) string {
	return strings.ToLower(strings.TrimRight(strings.TrimSpace(origin), "/"))
}
