package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/softencymsc/webbill-api/internal/domain/entity"
	domainRepo "github.com/softencymsc/webbill-api/internal/domain/repository"
)

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) domainRepo.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

func (r *customerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	var customer entity.Customer
	err := r.db.WithContext(ctx).Scopes(TenantScope(ctx)).
		First(&customer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &customer, err
}

func (r *customerRepository) GetByPhone(ctx context.Context, phone string) (*entity.Customer, error) {
	var customer entity.Customer
	err := r.db.WithContext(ctx).Scopes(TenantScope(ctx)).
		First(&customer, "phone = ?", phone).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &customer, err
}

func (r *customerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	return r.db.WithContext(ctx).Scopes(TenantScope(ctx)).Save(customer).Error
}

type promoRepository struct {
	db *gorm.DB
}

// NewPromoRepository creates a new promo code repository
func NewPromoRepository(db *gorm.DB) domainRepo.PromoRepository {
	return &promoRepository{db: db}
}

func (r *promoRepository) GetActiveByCode(ctx context.Context, code string) (*entity.PromoCode, error) {
	var promo entity.PromoCode
	err := r.db.WithContext(ctx).Scopes(TenantScope(ctx)).
		First(&promo, "code = ? AND active = ?", code, true).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &promo, err
}

func (r *promoRepository) Create(ctx context.Context, promo *entity.PromoCode) error {
	return r.db.WithContext(ctx).Create(promo).Error
}
