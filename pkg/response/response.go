package response

import (
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/school-portal/pkg/errors"
	"github.com/noah-isme/school-portal/pkg/middleware/requestid"
)

// Envelope represents the common response contract.
type Envelope struct {
	Data  interface{}            `json:"data,omitempty"`
	Error *appErrors.Error       `json:"error,omitempty"`
	Meta  map[string]interface{} `json:"meta,omitempty"`
}

// JSON sends a success response. Metadata maps are merged in order and the
// request ID is always included.
func JSON(c *gin.Context, status int, data interface{}, meta ...map[string]interface{}) {
	noStore(c)
	c.JSON(status, Envelope{Data: data, Meta: buildMeta(c, meta)})
}

// Error sends an error response converting the error to the common
// structure. The underlying cause is attached to the gin context for the
// request log, never to the body.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	if appErr.Err != nil {
		_ = c.Error(appErr.Err)
	}
	noStore(c)
	c.JSON(appErr.Status, Envelope{Error: appErr, Meta: buildMeta(c, nil)})
}

// File streams a rendered export as an attachment.
func File(c *gin.Context, filename, contentType string, data []byte) {
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	noStore(c)
	c.Data(http.StatusOK, contentType, data)
}

// NoContent sends a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func noStore(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
}

func buildMeta(c *gin.Context, parts []map[string]interface{}) map[string]interface{} {
	var out map[string]interface{}
	for _, part := range parts {
		for k, v := range part {
			if out == nil {
				out = make(map[string]interface{}, len(part)+1)
			}
			out[k] = v
		}
	}
	if id := requestid.Value(c); id != "" {
		if out == nil {
			out = make(map[string]interface{}, 1)
		}
		out["request_id"] = id
	}
	return out
}
