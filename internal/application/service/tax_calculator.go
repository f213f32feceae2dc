package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/softencymsc/webbill-api/internal/domain/entity"
	"github.com/softencymsc/webbill-api/pkg/apperror"
)

var oneHundred = decimal.NewFromInt(100)

// TaxCalculator back-calculates GST from tax-inclusive prices. Selling prices
// already contain tax, so the tax share of a line is amount * rate/(100+rate)
// and the base is what remains. Nothing here rounds; rounding happens once,
// when a settlement is posted.
type TaxCalculator struct{}

func NewTaxCalculator() *TaxCalculator {
	return &TaxCalculator{}
}

// ComputeLine derives the tax breakdown of a single cart line. Quantity is
// taken by absolute value so purchase carts, which carry negative quantities,
// produce the same breakdown as sales.
func (c *TaxCalculator) ComputeLine(line entity.CartLine) (entity.TaxBreakdown, error) {
	if line.TaxRate.IsNegative() {
		return entity.TaxBreakdown{}, apperror.NewInvalidLineItemError(
			fmt.Sprintf("negative tax rate %s on product %s", line.TaxRate, line.ProductCode))
	}

	qty := line.Quantity
	if qty < 0 {
		qty = -qty
	}

	amount := line.UnitPrice.Mul(decimal.NewFromInt(int64(qty))).Sub(line.ItemDiscount)
	if amount.IsNegative() {
		return entity.TaxBreakdown{}, apperror.NewInvalidLineItemError(
			fmt.Sprintf("item discount exceeds line amount on product %s", line.ProductCode))
	}

	tax := amount.Mul(line.TaxRate).Div(line.TaxRate.Add(oneHundred))
	half := tax.Div(decimal.NewFromInt(2))

	return entity.TaxBreakdown{
		Base: amount.Sub(tax),
		Tax:  tax,
		CGST: half,
		SGST: half,
	}, nil
}

// ComputeCart computes per-line breakdowns and running totals for a whole
// cart. A cart must contain at least one line.
func (c *TaxCalculator) ComputeCart(lines []entity.CartLine) (entity.TaxTotals, []entity.TaxBreakdown, error) {
	if len(lines) == 0 {
		return entity.TaxTotals{}, nil, apperror.NewInvalidLineItemError("cart has no lines")
	}

	var totals entity.TaxTotals
	breakdowns := make([]entity.TaxBreakdown, 0, len(lines))

	for _, line := range lines {
		b, err := c.ComputeLine(line)
		if err != nil {
			return entity.TaxTotals{}, nil, err
		}
		totals.Add(line, b)
		breakdowns = append(breakdowns, b)
	}

	return totals, breakdowns, nil
}
