package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/softencymsc/webbill-api/internal/presentation/http/dto/response"
	"github.com/softencymsc/webbill-api/pkg/utils"
)

// AuthMiddleware validates bearer tokens issued by the identity service and
// places the claims on the request.
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)
		c.Set("user_roles", claims.Roles)
		c.Set("claims_tenant_id", claims.TenantID)

		c.Next()
	}
}

// RequireRole creates a middleware that requires one of the given roles
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRoles, exists := c.Get("user_roles")
		if !exists {
			response.Forbidden(c, "Access denied")
			c.Abort()
			return
		}

		userRolesList, ok := userRoles.([]string)
		if !ok {
			response.Forbidden(c, "Access denied")
			c.Abort()
			return
		}

		for _, userRole := range userRolesList {
			for _, required := range roles {
				if userRole == required {
					c.Next()
					return
				}
			}
		}

		response.Forbidden(c, "Insufficient role privileges")
		c.Abort()
	}
}
