package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tenant represents a store/organization in the multitenant system
type Tenant struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Slug      string         `gorm:"size:255;unique;not null" json:"slug"`
	Settings  TenantSettings `gorm:"type:jsonb;serializer:json" json:"settings"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new tenant
func (t *Tenant) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Tenant model
func (Tenant) TableName() string {
	return "tenants"
}

// TenantSettings holds the settlement-relevant tenant configuration
type TenantSettings struct {
	// Localization
	Currency string `json:"currency,omitempty"`
	Timezone string `json:"timezone,omitempty"`

	// Billing configuration
	SalePrefix     string  `json:"sale_prefix,omitempty"`     // e.g. "SAL"
	PurchasePrefix string  `json:"purchase_prefix,omitempty"` // e.g. "PUR"
	DefaultTaxRate float64 `json:"default_tax_rate,omitempty"`

	// Owner authorization: where owner-discount OTPs are delivered.
	// Empty means owner discounts are not configured for this tenant.
	OwnerPhone string `json:"owner_phone,omitempty"`

	// bcrypt hash of the PIN that gates free-of-charge settlements
	FreeSalePINHash string `json:"free_sale_pin_hash,omitempty"`

	// Notification settings
	WhatsAppNotifications bool `json:"whatsapp_notifications,omitempty"`
}

// Scan implements the sql.Scanner interface for TenantSettings
func (ts *TenantSettings) Scan(value interface{}) error {
	if value == nil {
		*ts = TenantSettings{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan TenantSettings: unsupported type")
	}

	return json.Unmarshal(bytes, ts)
}

// Value implements the driver.Valuer interface for TenantSettings
func (ts TenantSettings) Value() (driver.Value, error) {
	return json.Marshal(ts)
}

// DefaultTenantSettings returns default settings for new tenants
func DefaultTenantSettings() TenantSettings {
	return TenantSettings{
		Currency:              "INR",
		Timezone:              "Asia/Kolkata",
		SalePrefix:            "SAL",
		PurchasePrefix:        "PUR",
		DefaultTaxRate:        18.0,
		WhatsAppNotifications: true,
	}
}

// PrefixFor returns the invoice-number prefix for a settlement direction
func (ts TenantSettings) PrefixFor(purchase bool) string {
	if purchase {
		if ts.PurchasePrefix != "" {
			return ts.PurchasePrefix
		}
		return "PUR"
	}
	if ts.SalePrefix != "" {
		return ts.SalePrefix
	}
	return "SAL"
}
