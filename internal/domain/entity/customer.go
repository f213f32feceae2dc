package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer directory kinds. The directory holds both sides of the ledger:
// sale settlements insert customers, purchase settlements insert vendors.
const (
	PartyKindCustomer = "customer"
	PartyKindVendor   = "vendor"
)

// Customer represents a party in the tenant's directory, keyed by phone
type Customer struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	TenantID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Phone     string         `gorm:"size:50;not null;index" json:"phone"`
	Email     *string        `gorm:"size:255" json:"email,omitempty"`
	Address   *string        `gorm:"type:text" json:"address,omitempty"`
	GSTIN     *string        `gorm:"size:50" json:"gstin,omitempty"`
	Kind      string         `gorm:"size:20;default:'customer'" json:"kind"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}
