package service

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/softencymsc/webbill-api/internal/domain/entity"
	"github.com/softencymsc/webbill-api/internal/domain/enum"
)

// SettlementContext is the immutable snapshot a checkout works against: the
// priced cart, its tax totals, and the outstanding amount after any discount.
// Mutating operations return a new context; callers never observe a partially
// updated one.
type SettlementContext struct {
	TenantID  uuid.UUID
	UserID    uuid.UUID
	Direction enum.Direction

	CustomerName    string
	CustomerPhone   string
	CustomerAddress string
	CustomerGSTIN   string
	OrderNo         string

	Lines      []entity.CartLine
	Breakdowns []entity.TaxBreakdown
	Totals     entity.TaxTotals

	// OriginalOutstanding is the cart net before any bill-level discount.
	// Discount math always starts from here, never from Outstanding, so a
	// replaced discount cannot compound on top of the previous one.
	OriginalOutstanding decimal.Decimal
	Discount            entity.DiscountAuthorization
	Outstanding         decimal.Decimal
}

// NewSettlementContext prices the cart and builds a fresh context with no
// discount applied.
func NewSettlementContext(tenantID, userID uuid.UUID, direction enum.Direction, lines []entity.CartLine) (SettlementContext, error) {
	totals, breakdowns, err := NewTaxCalculator().ComputeCart(lines)
	if err != nil {
		return SettlementContext{}, err
	}

	copied := make([]entity.CartLine, len(lines))
	copy(copied, lines)

	return SettlementContext{
		TenantID:            tenantID,
		UserID:              userID,
		Direction:           direction,
		Lines:               copied,
		Breakdowns:          breakdowns,
		Totals:              totals,
		OriginalOutstanding: totals.Net,
		Discount:            entity.NoDiscount(),
		Outstanding:         totals.Net,
	}, nil
}

// WithCustomer returns a copy carrying the customer snapshot.
func (s SettlementContext) WithCustomer(name, phone, address, gstin string) SettlementContext {
	s.CustomerName = name
	s.CustomerPhone = phone
	s.CustomerAddress = address
	s.CustomerGSTIN = gstin
	return s
}

// WithOrder returns a copy linked to a sales order.
func (s SettlementContext) WithOrder(orderNo string) SettlementContext {
	s.OrderNo = orderNo
	return s
}

// WithDiscount returns a copy with the authorization applied and the
// outstanding recomputed from the original cart net.
func (s SettlementContext) WithDiscount(d entity.DiscountAuthorization) SettlementContext {
	s.Discount = d
	s.Outstanding = s.OriginalOutstanding.Sub(d.Amount)
	if s.Outstanding.IsNegative() {
		s.Outstanding = decimal.Zero
	}
	return s
}

// WithoutDiscount returns a copy with any discount removed and the
// outstanding restored to the original cart net.
func (s SettlementContext) WithoutDiscount() SettlementContext {
	s.Discount = entity.NoDiscount()
	s.Outstanding = s.OriginalOutstanding
	return s
}
