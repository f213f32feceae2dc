package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/softencymsc/webbill-api/internal/domain/entity"
	domainRepo "github.com/softencymsc/webbill-api/internal/domain/repository"
)

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) domainRepo.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	var product entity.Product
	err := r.db.WithContext(ctx).Scopes(TenantScope(ctx)).
		First(&product, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, err
}

func (r *productRepository) GetByCodes(ctx context.Context, codes []string) ([]entity.Product, error) {
	var products []entity.Product
	err := r.db.WithContext(ctx).Scopes(TenantScope(ctx)).
		Where("code IN ?", codes).
		Find(&products).Error
	return products, err
}

// AdjustStockByCode applies the delta in a single conditional update so
// concurrent settlements never lose increments. Quantity may go negative;
// oversold stock is a reporting concern, not a posting failure.
func (r *productRepository) AdjustStockByCode(ctx context.Context, code string, delta int) (bool, error) {
	result := r.db.WithContext(ctx).Scopes(TenantScope(ctx)).
		Model(&entity.Product{}).
		Where("code = ?", code).
		Update("quantity", gorm.Expr("quantity + ?", delta))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}
