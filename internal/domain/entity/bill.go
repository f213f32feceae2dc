package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/softencymsc/webbill-api/internal/domain/enum"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BillHeader is the header document of a posted settlement: customer
// snapshot, aggregate amounts, tender breakdown and discount metadata.
// Immutable once Status reaches Posted.
type BillHeader struct {
	ID       uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	TenantID uuid.UUID       `gorm:"type:uuid;not null;index" json:"tenant_id"`
	UserID   uuid.UUID       `gorm:"type:uuid;index" json:"user_id"`
	BillNo   string          `gorm:"size:100;unique;not null" json:"bill_no"`
	BillDate time.Time       `gorm:"not null" json:"bill_date"`
	Status   enum.BillStatus `gorm:"default:0;index" json:"status"`

	Direction enum.Direction `gorm:"default:0" json:"direction"`
	OrderNo   string         `gorm:"size:100" json:"order_no,omitempty"` // originating open order, if any

	// Customer snapshot at posting time
	CustomerID      *uuid.UUID `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	CustomerName    string     `gorm:"size:255" json:"customer_name"`
	CustomerPhone   string     `gorm:"size:50;index" json:"customer_phone"`
	CustomerAddress string     `gorm:"type:text" json:"customer_address,omitempty"`
	CustomerGSTIN   string     `gorm:"size:50" json:"customer_gstin,omitempty"`

	// Aggregate amounts, rounded once at posting
	BasicAmount decimal.Decimal `gorm:"type:decimal(20,2)" json:"basic_amount"`
	GSTAmount   decimal.Decimal `gorm:"type:decimal(20,2)" json:"gst_amount"`
	CGSTAmount  decimal.Decimal `gorm:"type:decimal(20,2)" json:"cgst_amount"`
	SGSTAmount  decimal.Decimal `gorm:"type:decimal(20,2)" json:"sgst_amount"`
	NetAmount   decimal.Decimal `gorm:"type:decimal(20,2)" json:"net_amount"`

	// Discount metadata
	DiscountType   string          `gorm:"size:20" json:"discount_type,omitempty"` // None/Promo/Owner
	PromoCode      string          `gorm:"size:50" json:"promo_code,omitempty"`
	DiscountValue  decimal.Decimal `gorm:"type:decimal(20,2)" json:"discount_value"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(20,2)" json:"discount_amount"`

	// Tender breakdown
	PayMode       string          `gorm:"size:50" json:"pay_mode"`
	TenderDetail  datatypes.JSON  `gorm:"type:jsonb" json:"tender_detail,omitempty"` // named sub-amounts for split tenders
	AdvanceAmount decimal.Decimal `gorm:"type:decimal(20,2)" json:"advance_amount"`
	BalanceAmount decimal.Decimal `gorm:"type:decimal(20,2)" json:"balance_amount"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Lines []BillLine `gorm:"foreignKey:BillHeaderID" json:"lines,omitempty"`
	Term  *BillTerm  `gorm:"foreignKey:BillHeaderID" json:"term,omitempty"`
}

// BeforeCreate generates a UUID before creating a new bill header
func (h *BillHeader) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the BillHeader model
func (BillHeader) TableName() string {
	return "bill_headers"
}

// BillLine is one posted line-item document carrying its own computed
// base/tax split and derived taxable value.
type BillLine struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TenantID     uuid.UUID `gorm:"type:uuid;not null;index" json:"tenant_id"`
	BillHeaderID uuid.UUID `gorm:"type:uuid;not null;index" json:"bill_header_id"`

	ProductCode  string          `gorm:"size:100;not null" json:"product_code"`
	ProductName  string          `gorm:"size:255" json:"product_name"`
	HSNCode      string          `gorm:"size:50" json:"hsn_code,omitempty"`
	Quantity     int             `gorm:"not null" json:"quantity"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(20,2)" json:"unit_price"`
	ItemDiscount decimal.Decimal `gorm:"type:decimal(20,2)" json:"item_discount"`
	TaxRate      decimal.Decimal `gorm:"type:decimal(10,4)" json:"tax_rate"`

	BaseAmount  decimal.Decimal `gorm:"type:decimal(20,2)" json:"base_amount"`
	TaxAmount   decimal.Decimal `gorm:"type:decimal(20,2)" json:"tax_amount"`
	CGSTAmount  decimal.Decimal `gorm:"type:decimal(20,2)" json:"cgst_amount"`
	SGSTAmount  decimal.Decimal `gorm:"type:decimal(20,2)" json:"sgst_amount"`
	GrossAmount decimal.Decimal `gorm:"type:decimal(20,2)" json:"gross_amount"`

	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new bill line
func (l *BillLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the BillLine model
func (BillLine) TableName() string {
	return "bill_lines"
}

// BillTerm is the terms document posted alongside each header. Currently a
// placeholder for installment terms; posted empty.
type BillTerm struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TenantID     uuid.UUID `gorm:"type:uuid;not null;index" json:"tenant_id"`
	BillHeaderID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"bill_header_id"`

	InstallmentCount int            `gorm:"default:0" json:"installment_count"`
	Schedule         datatypes.JSON `gorm:"type:jsonb" json:"schedule,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new bill term
func (t *BillTerm) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the BillTerm model
func (BillTerm) TableName() string {
	return "bill_terms"
}
