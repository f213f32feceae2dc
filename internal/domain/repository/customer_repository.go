package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/softencymsc/webbill-api/internal/domain/entity"
)

// CustomerRepository defines the interface for customer directory operations
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	// GetByPhone returns nil, nil when no directory entry exists for the phone
	GetByPhone(ctx context.Context, phone string) (*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
}

// PromoRepository defines the interface for promo code lookups
type PromoRepository interface {
	// GetActiveByCode returns nil, nil when the code does not exist or is inactive
	GetActiveByCode(ctx context.Context, code string) (*entity.PromoCode, error)
	Create(ctx context.Context, promo *entity.PromoCode) error
}
