package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/softencymsc/webbill-api/internal/domain/repository"
	infraRepo "github.com/softencymsc/webbill-api/internal/infrastructure/repository"
	"github.com/softencymsc/webbill-api/internal/presentation/http/dto/response"
)

// ExtractTenantFromHost extracts tenant slug from subdomain
// e.g., "acme.webbill.in" -> "acme"
func ExtractTenantFromHost(host string) (string, error) {
	// Remove port if present
	if idx := strings.LastIndex(host, ":"); idx != -1 {
		host = host[:idx]
	}

	parts := strings.Split(host, ".")
	if len(parts) < 3 {
		return "", errors.New("invalid subdomain")
	}
	return parts[0], nil
}

// TenantMiddleware resolves the tenant for the request and adds it to both
// the gin context and the request context. The token's tenant claim wins;
// the subdomain is the fallback for tokens without one.
func TenantMiddleware(tenantRepo repository.TenantRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claimed, exists := c.Get("claims_tenant_id"); exists {
			if tenantID, ok := claimed.(uuid.UUID); ok && tenantID != uuid.Nil {
				tenant, err := tenantRepo.GetByID(c.Request.Context(), tenantID)
				if err != nil || tenant == nil {
					response.NotFound(c, "Tenant not found")
					c.Abort()
					return
				}
				attachTenant(c, tenant.ID)
				c.Set("tenant", tenant)
				c.Next()
				return
			}
		}

		tenantSlug, err := ExtractTenantFromHost(c.Request.Host)
		if err != nil {
			response.BadRequest(c, "Tenant could not be determined from request")
			c.Abort()
			return
		}

		tenant, err := tenantRepo.GetBySlug(c.Request.Context(), tenantSlug)
		if err != nil || tenant == nil {
			response.NotFound(c, "Tenant not found")
			c.Abort()
			return
		}

		attachTenant(c, tenant.ID)
		c.Set("tenant", tenant)
		c.Next()
	}
}

func attachTenant(c *gin.Context, tenantID uuid.UUID) {
	c.Set("tenant_id", tenantID)
	ctx := infraRepo.WithTenant(c.Request.Context(), tenantID)
	c.Request = c.Request.WithContext(ctx)
}

// GetTenantID retrieves the tenant ID from gin context
func GetTenantID(c *gin.Context) uuid.UUID {
	tenantID, exists := c.Get("tenant_id")
	if !exists {
		return uuid.Nil
	}
	id, ok := tenantID.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}
