package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/softencymsc/webbill-api/internal/domain/entity"
)

// TenantRepository defines the interface for tenant data operations
type TenantRepository interface {
	Create(ctx context.Context, tenant *entity.Tenant) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Tenant, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Tenant, error)
	Update(ctx context.Context, tenant *entity.Tenant) error
}

// IdempotencyRepository defines the interface for idempotency key operations
type IdempotencyRepository interface {
	// GetByKey retrieves an idempotency key by its key string and user ID
	GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error)
	// Create stores a new idempotency key
	Create(ctx context.Context, ikey *entity.IdempotencyKey) error
	// DeleteExpired removes expired idempotency keys (for cleanup)
	DeleteExpired(ctx context.Context) error
}
