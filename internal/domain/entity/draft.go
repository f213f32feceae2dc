package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DraftBill is an unposted, replaceable save-point for a customer's cart.
// At most one draft exists per customer phone within a tenant; saving a new
// draft deletes any existing one first. Drafts never touch tax or inventory.
type DraftBill struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	TenantID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"tenant_id"`
	CustomerPhone string         `gorm:"size:50;not null;index" json:"customer_phone"`
	CustomerName  string         `gorm:"size:255" json:"customer_name"`
	Snapshot      datatypes.JSON `gorm:"type:jsonb" json:"snapshot"` // serialized cart lines + selections
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new draft
func (d *DraftBill) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the DraftBill model
func (DraftBill) TableName() string {
	return "draft_bills"
}
