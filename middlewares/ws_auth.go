// middlewares/ws_auth.go
package middlewares

import (
	"net/http"
	"slices"

	"restx/utils"

	"github.com/gin-gonic/gin"
)

// WSAuthMiddleware checks the JWT from the query string, header or cookie.
// Browsers cannot set headers on a websocket handshake, hence ?token=.
func WSAuthMiddleware(secret, cookieName string, requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := c.Query("token")
		if tokenStr == "" {
			tokenStr = bearerOrCookie(c, cookieName)
		}
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "missing token"})
			return
		}

		claims, err := utils.ParseToken(tokenStr, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid token"})
			return
		}
		if len(requiredRoles) > 0 && !slices.Contains(requiredRoles, claims.Role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "forbidden"})
			return
		}

		c.Set(utils.ClaimsKey, claims)
		c.Next()
	}
}
