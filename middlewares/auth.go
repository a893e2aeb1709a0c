package middlewares

import (
	"slices"
	"strings"

	"restx/pkg/resp"
	"restx/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware requires a valid token and, when roles are given, one of them.
func AuthMiddleware(secret, cookieName string, requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := bearerOrCookie(c, cookieName)
		if tokenStr == "" {
			resp.Unauthorized(c, "missing or invalid token")
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(tokenStr, secret)
		if err != nil {
			resp.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}

		if len(requiredRoles) > 0 && !slices.Contains(requiredRoles, claims.Role) {
			resp.Forbidden(c, "forbidden")
			c.Abort()
			return
		}

		c.Set(utils.ClaimsKey, claims)
		c.Next()
	}
}

// OptionalAuth resolves the identity when a valid token is present and lets
// the request through either way. Customer pages use it: services decide what
// an anonymous caller may do.
func OptionalAuth(secret, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenStr := bearerOrCookie(c, cookieName); tokenStr != "" {
			if claims, err := utils.ParseToken(tokenStr, secret); err == nil {
				c.Set(utils.ClaimsKey, claims)
			}
		}
		c.Next()
	}
}

func bearerOrCookie(c *gin.Context, cookieName string) string {
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	if v, err := c.Cookie(cookieName); err == nil {
		return v
	}
	return ""
}
