package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/softencymsc/webbill-api/internal/domain/enum"
	"gorm.io/gorm"
)

// PromoCode is a tenant-scoped percent-based discount code
type PromoCode struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	TenantID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Code      string          `gorm:"size:50;not null;index" json:"code"`
	Percent   decimal.Decimal `gorm:"type:decimal(10,4)" json:"percent"`
	Active    bool            `gorm:"default:true" json:"active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	DeletedAt gorm.DeletedAt  `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new promo code
func (p *PromoCode) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PromoCode model
func (PromoCode) TableName() string {
	return "promo_codes"
}

// DiscountAuthorization is the resolved discount on a settlement. Exactly one
// of the tagged variants is active: none, promo, or owner. Amount is always
// recomputed from the original outstanding amount, never from an already
// discounted figure, so discounts cannot stack.
type DiscountAuthorization struct {
	Type enum.DiscountType `json:"type"`

	// Promo variant
	PromoCode string          `json:"promo_code,omitempty"`
	Percent   decimal.Decimal `json:"percent,omitempty"`

	// Owner variant
	OwnerKind    enum.OwnerDiscountKind `json:"owner_kind,omitempty"`
	Value        decimal.Decimal        `json:"value,omitempty"`
	OTPConfirmed bool                   `json:"otp_confirmed,omitempty"`

	// Computed for whichever variant is active
	Amount decimal.Decimal `json:"amount"`
}

// NoDiscount returns the empty discount authorization
func NoDiscount() DiscountAuthorization {
	return DiscountAuthorization{Type: enum.DiscountNone}
}

// Active reports whether any discount is currently applied
func (d DiscountAuthorization) Active() bool {
	return d.Type != enum.DiscountNone
}

// PendingAuthorization is an issued, not-yet-confirmed owner discount code.
// Single use: confirmation consumes it. Expired entries are never honored.
type PendingAuthorization struct {
	Destination string                 `json:"destination"`
	Code        string                 `json:"code"`
	Kind        enum.OwnerDiscountKind `json:"kind"`
	Value       decimal.Decimal        `json:"value"`
	ExpiresAt   time.Time              `json:"expires_at"`
}

// Expired reports whether the authorization window has passed
func (p PendingAuthorization) Expired(now time.Time) bool {
	return now.After(p.ExpiresAt)
}
