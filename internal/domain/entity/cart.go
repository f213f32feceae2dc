package entity

import (
	"github.com/shopspring/decimal"
)

// CartLine is a priced line item owned by the cart for the duration of one
// settlement. Quantity is signed: return lines carry negative quantities and
// the absolute value is used for money math. UnitPrice is tax-inclusive.
type CartLine struct {
	ProductCode  string          `json:"product_code"`
	ProductName  string          `json:"product_name"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	ItemDiscount decimal.Decimal `json:"item_discount"`
	TaxRate      decimal.Decimal `json:"tax_rate"` // combined percent, CGST+SGST
	HSNCode      string          `json:"hsn_code,omitempty"`
}

// TaxBreakdown holds the back-calculated tax figures for a single line.
// Amounts are unrounded; rounding happens once at posting/display.
type TaxBreakdown struct {
	Base decimal.Decimal `json:"base"`
	Tax  decimal.Decimal `json:"tax"`
	CGST decimal.Decimal `json:"cgst"`
	SGST decimal.Decimal `json:"sgst"`
}

// TaxTotals aggregates per-line breakdowns across a cart
type TaxTotals struct {
	Basic decimal.Decimal `json:"basic"`
	GST   decimal.Decimal `json:"gst"`
	CGST  decimal.Decimal `json:"cgst"`
	SGST  decimal.Decimal `json:"sgst"`
	Net   decimal.Decimal `json:"net"`
}

// Add accumulates one line's breakdown into the totals
func (t *TaxTotals) Add(line CartLine, b TaxBreakdown) {
	t.Basic = t.Basic.Add(b.Base)
	t.GST = t.GST.Add(b.Tax)
	t.CGST = t.CGST.Add(b.CGST)
	t.SGST = t.SGST.Add(b.SGST)
	t.Net = t.Net.Add(b.Base).Add(b.Tax)
}
