package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/softencymsc/webbill-api/internal/domain/entity"
)

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return userID
}

// GetTenantID extracts the tenant ID from the Gin context
func GetTenantID(c *gin.Context) uuid.UUID {
	tenantIDVal, exists := c.Get("tenant_id")
	if !exists {
		return uuid.Nil
	}
	tenantID, ok := tenantIDVal.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return tenantID
}

// GetTenant extracts the resolved tenant from the Gin context
func GetTenant(c *gin.Context) *entity.Tenant {
	tenantVal, exists := c.Get("tenant")
	if !exists {
		return nil
	}
	tenant, ok := tenantVal.(*entity.Tenant)
	if !ok {
		return nil
	}
	return tenant
}
