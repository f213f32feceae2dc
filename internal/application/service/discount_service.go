package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/softencymsc/webbill-api/internal/domain/entity"
	"github.com/softencymsc/webbill-api/internal/domain/enum"
	"github.com/softencymsc/webbill-api/internal/domain/repository"
	"github.com/softencymsc/webbill-api/internal/infrastructure/cache"
	"github.com/softencymsc/webbill-api/pkg/apperror"
)

// OtpChannel issues one-time codes to a destination and verifies submissions.
type OtpChannel interface {
	Issue(ctx context.Context, destination string) (string, error)
	Confirm(submitted, issued string) bool
}

// DiscountService applies at most one bill-level discount per settlement:
// either a promo code or an owner discount confirmed over OTP. Applying a
// second discount is rejected rather than replaced silently.
type DiscountService struct {
	promos  repository.PromoRepository
	tenants repository.TenantRepository
	otp     OtpChannel
	pending cache.PendingStore
	otpTTL  time.Duration
	now     func() time.Time
}

func NewDiscountService(
	promos repository.PromoRepository,
	tenants repository.TenantRepository,
	otp OtpChannel,
	pending cache.PendingStore,
	otpTTL time.Duration,
) *DiscountService {
	if otpTTL <= 0 {
		otpTTL = 5 * time.Minute
	}
	return &DiscountService{
		promos:  promos,
		tenants: tenants,
		otp:     otp,
		pending: pending,
		otpTTL:  otpTTL,
		now:     time.Now,
	}
}

// ApplyPromo looks up an active promo code and applies its percentage against
// the original outstanding amount.
func (s *DiscountService) ApplyPromo(ctx context.Context, sctx SettlementContext, code string) (SettlementContext, error) {
	if sctx.Discount.Active() {
		return sctx, apperror.NewDiscountRejectedError("a discount is already applied")
	}

	promo, err := s.promos.GetActiveByCode(ctx, code)
	if err != nil {
		return sctx, err
	}
	if promo == nil {
		return sctx, apperror.NewNotFoundError("Promo code")
	}

	amount := sctx.OriginalOutstanding.Mul(promo.Percent).Div(oneHundred)

	return sctx.WithDiscount(entity.DiscountAuthorization{
		Type:      enum.DiscountPromo,
		PromoCode: promo.Code,
		Percent:   promo.Percent,
		Amount:    amount,
	}), nil
}

// RequestOwnerDiscount validates the requested value, issues an OTP to the
// store owner, and parks the authorization until it is confirmed or expires.
func (s *DiscountService) RequestOwnerDiscount(ctx context.Context, sctx SettlementContext, kind enum.OwnerDiscountKind, value decimal.Decimal) error {
	if sctx.Discount.Active() {
		return apperror.NewDiscountRejectedError("a discount is already applied")
	}
	if err := validateOwnerValue(kind, value, sctx.OriginalOutstanding); err != nil {
		return err
	}

	tenant, err := s.tenants.GetByID(ctx, sctx.TenantID)
	if err != nil {
		return err
	}
	if tenant == nil || tenant.Settings.OwnerPhone == "" {
		return apperror.NewDiscountRejectedError("owner discount is not configured for this store")
	}

	code, err := s.otp.Issue(ctx, tenant.Settings.OwnerPhone)
	if err != nil {
		return err
	}

	pending := entity.PendingAuthorization{
		Destination: tenant.Settings.OwnerPhone,
		Code:        code,
		Kind:        kind,
		Value:       value,
		ExpiresAt:   s.now().Add(s.otpTTL),
	}
	if err := s.pending.Set(ctx, pendingKey(sctx.TenantID), pending, s.otpTTL); err != nil {
		return err
	}

	return nil
}

// ConfirmOwnerDiscount checks the submitted code against the pending
// authorization, consumes it, and applies the discount. The parked value is
// re-validated against the current original outstanding because the cart may
// have changed since the request.
func (s *DiscountService) ConfirmOwnerDiscount(ctx context.Context, sctx SettlementContext, submitted string) (SettlementContext, error) {
	if sctx.Discount.Active() {
		return sctx, apperror.NewDiscountRejectedError("a discount is already applied")
	}

	pending, ok, err := s.pending.Get(ctx, pendingKey(sctx.TenantID))
	if err != nil {
		return sctx, err
	}
	if !ok {
		return sctx, apperror.NewDiscountRejectedError("no authorization is pending")
	}
	if pending.Expired(s.now()) {
		_ = s.pending.Delete(ctx, pendingKey(sctx.TenantID))
		return sctx, apperror.NewDiscountRejectedError("authorization expired")
	}
	if !s.otp.Confirm(submitted, pending.Code) {
		return sctx, apperror.NewDiscountRejectedError("code mismatch")
	}

	// Single use: consume before applying.
	if err := s.pending.Delete(ctx, pendingKey(sctx.TenantID)); err != nil {
		return sctx, err
	}

	if err := validateOwnerValue(pending.Kind, pending.Value, sctx.OriginalOutstanding); err != nil {
		return sctx, err
	}

	var amount decimal.Decimal
	if pending.Kind == enum.OwnerDiscountPercent {
		amount = sctx.OriginalOutstanding.Mul(pending.Value).Div(oneHundred)
	} else {
		amount = pending.Value
	}

	return sctx.WithDiscount(entity.DiscountAuthorization{
		Type:         enum.DiscountOwner,
		OwnerKind:    pending.Kind,
		Value:        pending.Value,
		OTPConfirmed: true,
		Amount:       amount,
	}), nil
}

// Remove clears any applied discount and restores the original outstanding.
func (s *DiscountService) Remove(sctx SettlementContext) SettlementContext {
	return sctx.WithoutDiscount()
}

func validateOwnerValue(kind enum.OwnerDiscountKind, value, outstanding decimal.Decimal) error {
	if value.IsZero() || value.IsNegative() {
		return apperror.NewDiscountRejectedError("discount value is missing")
	}
	switch kind {
	case enum.OwnerDiscountPercent:
		if value.GreaterThan(oneHundred) {
			return apperror.NewDiscountRejectedError("percent discount cannot exceed 100")
		}
	case enum.OwnerDiscountFixed:
		if value.GreaterThan(outstanding) {
			return apperror.NewDiscountRejectedError("fixed discount exceeds the bill amount")
		}
	}
	return nil
}

func pendingKey(tenantID uuid.UUID) string {
	return tenantID.String()
}
