package service

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/softencymsc/webbill-api/internal/domain/entity"
	"github.com/softencymsc/webbill-api/internal/domain/enum"
	"github.com/softencymsc/webbill-api/pkg/apperror"
)

var (
	cardNumberPattern = regexp.MustCompile(`^\d{12}$`)
	cardExpiryPattern = regexp.MustCompile(`^(\d{2})/(\d{2})$`)
	cardCVCPattern    = regexp.MustCompile(`^\d{3}$`)
)

// TenderAllocator walks an allocation through its lifecycle: a method is
// chosen, amounts are assigned until the outstanding is covered, then the
// allocation is committed as part of posting. Every operation takes and
// returns allocation values.
type TenderAllocator struct{}

func NewTenderAllocator() *TenderAllocator {
	return &TenderAllocator{}
}

// Begin creates a fresh allocation for the outstanding amount.
func (t *TenderAllocator) Begin(outstanding decimal.Decimal) entity.TenderAllocation {
	return entity.TenderAllocation{
		State:       enum.AllocationUnselected,
		Outstanding: outstanding,
	}
}

// SelectMethod picks (or switches) the tender method. Switching discards any
// amounts already assigned. Deferred methods cover the outstanding
// unconditionally and move straight to covered.
func (t *TenderAllocator) SelectMethod(a entity.TenderAllocation, method enum.TenderMethod) (entity.TenderAllocation, error) {
	if a.State == enum.AllocationCommitted || a.State == enum.AllocationAbandoned {
		return a, apperror.NewBadRequestError("tender allocation is already closed")
	}
	if !method.IsValid() {
		return a, apperror.NewBadRequestError("unknown tender method")
	}

	a.Method = method
	a.Subs = nil
	a.Card = nil
	if method.IsDeferred() {
		a.State = enum.AllocationCovered
	} else {
		a.State = enum.AllocationMethodChosen
	}
	return a, nil
}

// SetAmount assigns a named amount under the chosen method. UPI allocations
// address sub-tenders by handle; single-amount methods use one fixed name.
// A single amount may not exceed the outstanding, and assigning zero removes
// the sub-tender.
func (t *TenderAllocator) SetAmount(a entity.TenderAllocation, name string, amount decimal.Decimal) (entity.TenderAllocation, error) {
	if a.State != enum.AllocationMethodChosen && a.State != enum.AllocationAllocating && a.State != enum.AllocationCovered {
		return a, apperror.NewBadRequestError("select a tender method first")
	}
	if a.Method.IsDeferred() {
		return a, apperror.NewBadRequestError("deferred tenders do not take amounts")
	}
	if amount.IsNegative() {
		return a, apperror.NewBadRequestError("tender amount cannot be negative")
	}
	if amount.GreaterThan(a.Outstanding) {
		return a, apperror.NewBadRequestError("tender amount exceeds the outstanding amount")
	}

	subs := make([]entity.SubTender, 0, len(a.Subs)+1)
	replaced := false
	for _, s := range a.Subs {
		if s.Name == name {
			replaced = true
			if amount.IsPositive() {
				subs = append(subs, entity.SubTender{Name: name, Amount: amount})
			}
			continue
		}
		subs = append(subs, s)
	}
	if !replaced && amount.IsPositive() {
		subs = append(subs, entity.SubTender{Name: name, Amount: amount})
	}
	a.Subs = subs

	if a.AmountLeft().IsZero() {
		a.State = enum.AllocationCovered
	} else {
		a.State = enum.AllocationAllocating
	}
	return a, nil
}

// AllocateFull assigns the whole outstanding in one step, the common path for
// cash and card.
func (t *TenderAllocator) AllocateFull(a entity.TenderAllocation) (entity.TenderAllocation, error) {
	return t.SetAmount(a, a.Method.String(), a.Outstanding)
}

// AttachCard validates and attaches card details to a card allocation.
func (t *TenderAllocator) AttachCard(a entity.TenderAllocation, card entity.CardDetails) (entity.TenderAllocation, error) {
	if a.Method != enum.TenderCard {
		return a, apperror.NewBadRequestError("card details only apply to card tenders")
	}
	if err := validateCard(card); err != nil {
		return a, err
	}
	a.Card = &card
	return a, nil
}

// ConfirmFree gates a free settlement behind the store PIN.
func (t *TenderAllocator) ConfirmFree(a entity.TenderAllocation, pin, pinHash string) (entity.TenderAllocation, error) {
	if a.Method != enum.TenderFree {
		return a, apperror.NewBadRequestError("PIN confirmation only applies to free tenders")
	}
	if pinHash == "" {
		return a, apperror.NewBadRequestError("free settlement is not enabled for this store")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(pinHash), []byte(pin)); err != nil {
		return a, apperror.NewAppError(403, "Incorrect PIN")
	}
	a.State = enum.AllocationCovered
	return a, nil
}

// Commit closes a covered allocation. Posting calls this exactly once; an
// uncovered allocation is refused.
func (t *TenderAllocator) Commit(a entity.TenderAllocation) (entity.TenderAllocation, error) {
	if a.State == enum.AllocationCommitted {
		return a, apperror.NewBadRequestError("tender allocation is already committed")
	}
	if a.State != enum.AllocationCovered {
		return a, apperror.ErrIncompleteCoverage
	}
	// Free settles by PIN confirmation, not by amounts.
	if !a.Method.IsDeferred() && a.Method != enum.TenderFree && !a.AmountLeft().IsZero() {
		return a, apperror.ErrIncompleteCoverage
	}
	if a.Method == enum.TenderCard && a.Card == nil {
		return a, apperror.NewBadRequestError("card details are required for card tenders")
	}
	a.State = enum.AllocationCommitted
	return a, nil
}

// Abandon discards the allocation, e.g. when the cart goes back to editing.
func (t *TenderAllocator) Abandon(a entity.TenderAllocation) entity.TenderAllocation {
	a.State = enum.AllocationAbandoned
	a.Subs = nil
	a.Card = nil
	return a
}

func validateCard(card entity.CardDetails) error {
	var fieldErrors []apperror.FieldError

	if !cardNumberPattern.MatchString(card.Number) {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "number", Message: "card number must be 12 digits"})
	}
	if strings.TrimSpace(card.Holder) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "holder", Message: "card holder is required"})
	}
	if m := cardExpiryPattern.FindStringSubmatch(card.Expiry); m == nil {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "expiry", Message: "expiry must be in MM/YY format"})
	} else {
		month, _ := strconv.Atoi(m[1])
		if month < 1 || month > 12 {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "expiry", Message: "expiry month must be between 01 and 12"})
		}
	}
	if !cardCVCPattern.MatchString(card.CVC) {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "cvc", Message: "CVC must be 3 digits"})
	}

	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}
