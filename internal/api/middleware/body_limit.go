package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Voisin-comme-cochon/Web-sub001/pkg/response"
)

// BodyLimit caps request bodies at maxBytes.
// A declared Content-Length above the cap is refused up front; otherwise the
// body reader fails once the cap is crossed and the handler reports it.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			response.Error(c, http.StatusRequestEntityTooLarge, 10005, "Corps de requête trop volumineux")
			c.Abort()
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}

		c.Next()
	}
}
