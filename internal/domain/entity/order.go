package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order statuses
const (
	OrderStatusOpen      = "open"
	OrderStatusFulfilled = "fulfilled"
)

// SalesOrder is a previously opened customer order that a settlement may
// fulfill. When the settlement posts, the order is linked to the bill and
// closed; a missing order is a logged warning, never a posting failure.
type SalesOrder struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	TenantID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"tenant_id"`
	OrderNo       string         `gorm:"size:100;not null;index" json:"order_no"`
	CustomerPhone string         `gorm:"size:50;index" json:"customer_phone"`
	Status        string         `gorm:"size:20;default:'open'" json:"status"`
	LinkedBillNo  string         `gorm:"size:100" json:"linked_bill_no,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new sales order
func (o *SalesOrder) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SalesOrder model
func (SalesOrder) TableName() string {
	return "sales_orders"
}
