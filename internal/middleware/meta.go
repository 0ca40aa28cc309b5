package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

const (
	responseMetaKey  = "response_meta"
	requestStartKey  = "request_start"
	apiModeKey       = "api_mode"
	processingTimeMs = "processing_time_ms"

	// APIModeHeader tells clients whether responses come from the backend or mock data.
	APIModeHeader = "X-API-Mode"
)

// WithResponseMeta initialises response metadata storage on the request
// context and annotates the response with the configured API mode.
func WithResponseMeta(mode string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(requestStartKey, time.Now())
		meta := ensureMeta(c)
		if mode != "" {
			meta[apiModeKey] = mode
			c.Writer.Header().Set(APIModeHeader, mode)
		}
		c.Next()
	}
}

// ExtractMeta returns the metadata for the response being written, stamped
// with the time spent so far.
func ExtractMeta(c *gin.Context) map[string]interface{} {
	if c == nil {
		return nil
	}
	value, exists := c.Get(responseMetaKey)
	if !exists {
		return nil
	}
	meta, ok := value.(map[string]interface{})
	if !ok {
		return nil
	}
	if start, ok := c.Get(requestStartKey); ok {
		if t, ok := start.(time.Time); ok {
			meta[processingTimeMs] = time.Since(t).Milliseconds()
		}
	}
	return meta
}

// SetMeta adds a key to the response metadata.
func SetMeta(c *gin.Context, key string, value interface{}) {
	ensureMeta(c)[key] = value
}

func ensureMeta(c *gin.Context) map[string]interface{} {
	if value, exists := c.Get(responseMetaKey); exists {
		if meta, ok := value.(map[string]interface{}); ok {
			return meta
		}
	}
	meta := make(map[string]interface{})
	c.Set(responseMetaKey, meta)
	return meta
}
