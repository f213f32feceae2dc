package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents a catalog entry. The settlement engine only reads the
// price/tax fields and adjusts Quantity; full catalog management lives in the
// surrounding application.
type Product struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	TenantID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Name         string          `gorm:"size:255;not null" json:"name"`
	Code         string          `gorm:"size:100;not null;index" json:"code"`
	HSNCode      string          `gorm:"size:50" json:"hsn_code,omitempty"`
	Quantity     int             `gorm:"default:0" json:"quantity"`
	SellingPrice decimal.Decimal `gorm:"type:decimal(20,2)" json:"selling_price"` // tax-inclusive
	TaxRate      decimal.Decimal `gorm:"type:decimal(10,4)" json:"tax_rate"`      // combined percent
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}
