package entity

import (
	"github.com/shopspring/decimal"
	"github.com/softencymsc/webbill-api/internal/domain/enum"
)

// SubTender is one named amount inside a tender allocation. UPI allocations
// may carry several (distinct handles); single-amount methods carry one.
type SubTender struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// CardDetails carries the structurally validated card fields for a card
// tender. Validation is client-side only; no network authorization happens.
type CardDetails struct {
	Number string `json:"number"`
	Holder string `json:"holder"`
	Expiry string `json:"expiry"` // MM/YY
	CVC    string `json:"cvc"`
}

// TenderAllocation tracks how the outstanding amount is covered by one chosen
// method across one settlement attempt. It is a value: allocator operations
// return a new allocation rather than mutating shared state.
type TenderAllocation struct {
	State       enum.AllocationState `json:"state"`
	Method      enum.TenderMethod    `json:"method"`
	Outstanding decimal.Decimal      `json:"outstanding"`
	Subs        []SubTender          `json:"subs,omitempty"`
	Card        *CardDetails         `json:"card,omitempty"`
}

// Allocated returns the sum of all positive sub-amounts
func (a TenderAllocation) Allocated() decimal.Decimal {
	total := decimal.Zero
	for _, s := range a.Subs {
		if s.Amount.IsPositive() {
			total = total.Add(s.Amount)
		}
	}
	return total
}

// AmountLeft is the outstanding amount minus everything allocated, floored
// at zero. Deferred methods (credit, owner discount) report zero by
// definition once the method is chosen.
func (a TenderAllocation) AmountLeft() decimal.Decimal {
	if a.State >= enum.AllocationMethodChosen && a.Method.IsDeferred() {
		return decimal.Zero
	}
	left := a.Outstanding.Sub(a.Allocated())
	if left.IsNegative() {
		return decimal.Zero
	}
	return left
}

// PayMode is the summary string posted on the bill header
func (a TenderAllocation) PayMode() string {
	return a.Method.String()
}
