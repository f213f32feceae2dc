package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/softencymsc/webbill-api/internal/domain/enum"
)

type ctxKey string

const (
	// TenantIDKey is the context key for tenant ID
	TenantIDKey ctxKey = "tenant_id"
)

// TenantScope returns a GORM scope that filters by tenant.
// This should be applied to all queries for tenant-scoped entities.
func TenantScope(ctx context.Context) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		tenantID, ok := ctx.Value(TenantIDKey).(uuid.UUID)
		if !ok {
			// Fail-safe: return no results if tenant context missing.
			// This prevents accidental cross-tenant data access.
			return db.Where("1 = 0")
		}
		return db.Where("tenant_id = ?", tenantID)
	}
}

// PostedScope filters bill queries to posted records. The staged settlement
// writer creates headers under a pending status first, so readers must never
// surface a half-written settlement.
func PostedScope(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", enum.BillStatusPosted)
}

// WithTenant adds tenant ID to context
func WithTenant(ctx context.Context, tenantID uuid.UUID) context.Context {
	return context.WithValue(ctx, TenantIDKey, tenantID)
}

// GetTenantID extracts tenant ID from context
func GetTenantID(ctx context.Context) (uuid.UUID, bool) {
	tenantID, ok := ctx.Value(TenantIDKey).(uuid.UUID)
	return tenantID, ok
}
