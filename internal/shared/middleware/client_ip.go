package middleware

import (
	"github.com/gin-gonic/gin"

	"catalog-backend/internal/shared/utils"
)

// ClientIP resolves the real client address once per request and stores
// it in the gin context for the request logger. Register it before
// Logger so the log line carries the forwarded address, not the proxy's.
func ClientIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("client_ip", utils.ExtractClientIP(c))
		c.Next()
	}
}
