package repository

import (
	"context"

	"github.com/softencymsc/webbill-api/internal/domain/entity"
)

// ProductRepository defines the stock-facing interface the settlement engine
// needs from the catalog. Full catalog management is out of scope.
type ProductRepository interface {
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	GetByCodes(ctx context.Context, codes []string) ([]entity.Product, error)
	// AdjustStockByCode adds delta (negative for sales) to the product's
	// quantity in a single conditional update. Returns false when no catalog
	// entry matches the code; callers log and continue.
	AdjustStockByCode(ctx context.Context, code string, delta int) (bool, error)
	Create(ctx context.Context, product *entity.Product) error
}
