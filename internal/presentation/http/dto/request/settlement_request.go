package request

import (
	"github.com/shopspring/decimal"

	"github.com/softencymsc/webbill-api/internal/domain/entity"
	"github.com/softencymsc/webbill-api/internal/domain/enum"
)

// CartLineRequest is one priced line in a settlement or draft payload
type CartLineRequest struct {
	ProductCode  string          `json:"product_code" binding:"required"`
	ProductName  string          `json:"product_name"`
	Quantity     int             `json:"quantity" binding:"required"`
	UnitPrice    decimal.Decimal `json:"unit_price" binding:"required"`
	ItemDiscount decimal.Decimal `json:"item_discount"`
	TaxRate      decimal.Decimal `json:"tax_rate"`
	HSNCode      string          `json:"hsn_code"`
}

// ToEntity converts the request line to a domain cart line
func (r CartLineRequest) ToEntity() entity.CartLine {
	return entity.CartLine{
		ProductCode:  r.ProductCode,
		ProductName:  r.ProductName,
		Quantity:     r.Quantity,
		UnitPrice:    r.UnitPrice,
		ItemDiscount: r.ItemDiscount,
		TaxRate:      r.TaxRate,
		HSNCode:      r.HSNCode,
	}
}

// CartLines converts a slice of request lines
func CartLines(reqs []CartLineRequest) []entity.CartLine {
	lines := make([]entity.CartLine, 0, len(reqs))
	for _, r := range reqs {
		lines = append(lines, r.ToEntity())
	}
	return lines
}

// CustomerRequest is the customer snapshot attached to a settlement
type CustomerRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	GSTIN   string `json:"gstin"`
}

// DiscountRequest selects the bill-level discount for a settlement.
// PromoCode applies a promo; OwnerOTP confirms a previously requested
// owner discount. At most one may be set.
type DiscountRequest struct {
	PromoCode string `json:"promo_code"`
	OwnerOTP  string `json:"owner_otp"`
}

// SubTenderRequest is one named amount in a split tender
type SubTenderRequest struct {
	Name   string          `json:"name" binding:"required"`
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// CardRequest carries card details for card tenders
type CardRequest struct {
	Number string `json:"number" binding:"required"`
	Holder string `json:"holder" binding:"required"`
	Expiry string `json:"expiry" binding:"required"`
	CVC    string `json:"cvc" binding:"required"`
}

// TenderRequest describes how the outstanding amount is covered
type TenderRequest struct {
	Method string             `json:"method" binding:"required"`
	Subs   []SubTenderRequest `json:"subs"`
	Card   *CardRequest       `json:"card"`
	PIN    string             `json:"pin"`
}

// SettleRequest is the full payload for posting a settlement
type SettleRequest struct {
	Direction string            `json:"direction"`
	Customer  CustomerRequest   `json:"customer"`
	OrderNo   string            `json:"order_no"`
	Lines     []CartLineRequest `json:"lines" binding:"required,min=1,dive"`
	Discount  *DiscountRequest  `json:"discount"`
	Tender    TenderRequest     `json:"tender" binding:"required"`
}

// ParseDirection maps the wire direction to the enum; anything but
// "purchase" is a sale.
func (r SettleRequest) ParseDirection() enum.Direction {
	if r.Direction == "purchase" {
		return enum.DirectionPurchase
	}
	return enum.DirectionSale
}

// PreviewRequest prices a cart without posting anything
type PreviewRequest struct {
	Lines []CartLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// OwnerDiscountRequest asks the store owner to authorize a discount over OTP
type OwnerDiscountRequest struct {
	Kind  string            `json:"kind" binding:"required"` // percent|fixed
	Value decimal.Decimal   `json:"value" binding:"required"`
	Lines []CartLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// ParseKind maps the wire kind to the enum; anything but "fixed" is percent.
func (r OwnerDiscountRequest) ParseKind() enum.OwnerDiscountKind {
	if r.Kind == "fixed" {
		return enum.OwnerDiscountFixed
	}
	return enum.OwnerDiscountPercent
}

// NotifyRequest re-sends the invoice for a posted settlement
type NotifyRequest struct {
	Destination string `json:"destination"`
}
