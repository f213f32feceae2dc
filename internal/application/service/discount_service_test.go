package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/softencymsc/webbill-api/internal/domain/entity"
	"github.com/softencymsc/webbill-api/internal/domain/enum"
	"github.com/softencymsc/webbill-api/internal/infrastructure/cache"
	"github.com/softencymsc/webbill-api/pkg/apperror"
)

type fakePromoRepo struct {
	promos map[string]*entity.PromoCode
}

func (f *fakePromoRepo) GetActiveByCode(ctx context.Context, code string) (*entity.PromoCode, error) {
	return f.promos[code], nil
}

func (f *fakePromoRepo) Create(ctx context.Context, promo *entity.PromoCode) error {
	f.promos[promo.Code] = promo
	return nil
}

type fakeTenantRepo struct {
	tenant *entity.Tenant
}

func (f *fakeTenantRepo) Create(ctx context.Context, tenant *entity.Tenant) error { return nil }
func (f *fakeTenantRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Tenant, error) {
	return f.tenant, nil
}
func (f *fakeTenantRepo) GetBySlug(ctx context.Context, slug string) (*entity.Tenant, error) {
	return f.tenant, nil
}
func (f *fakeTenantRepo) Update(ctx context.Context, tenant *entity.Tenant) error { return nil }

type fakeOtpChannel struct {
	issued       string
	destinations []string
}

func (f *fakeOtpChannel) Issue(ctx context.Context, destination string) (string, error) {
	f.destinations = append(f.destinations, destination)
	f.issued = "123456"
	return f.issued, nil
}

func (f *fakeOtpChannel) Confirm(submitted, issued string) bool {
	return submitted == issued
}

func testTenant(ownerPhone string) *entity.Tenant {
	settings := entity.DefaultTenantSettings()
	settings.OwnerPhone = ownerPhone
	return &entity.Tenant{
		ID:       uuid.New(),
		Name:     "Test Store",
		Slug:     "test-store",
		Settings: settings,
	}
}

func testContext(t *testing.T, net string) SettlementContext {
	t.Helper()
	// A single zero-rate line keeps the cart net equal to the unit price.
	sctx, err := NewSettlementContext(uuid.New(), uuid.New(), enum.DirectionSale, []entity.CartLine{
		{ProductCode: "P1", ProductName: "Widget", Quantity: 1, UnitPrice: d(net), TaxRate: decimal.Zero},
	})
	require.NoError(t, err)
	return sctx
}

func newDiscountFixture(ownerPhone string) (*DiscountService, *fakeOtpChannel) {
	promos := &fakePromoRepo{promos: map[string]*entity.PromoCode{
		"FEST10": {Code: "FEST10", Percent: d("10"), Active: true},
	}}
	otp := &fakeOtpChannel{}
	svc := NewDiscountService(promos, &fakeTenantRepo{tenant: testTenant(ownerPhone)}, otp, cache.NewMemoryStore(), time.Minute)
	return svc, otp
}

func TestApplyPromoDiscountsFromOriginalOutstanding(t *testing.T) {
	svc, _ := newDiscountFixture("+919876543210")
	sctx := testContext(t, "1000")

	sctx, err := svc.ApplyPromo(context.Background(), sctx, "FEST10")
	require.NoError(t, err)

	assert.Equal(t, enum.DiscountPromo, sctx.Discount.Type)
	assert.True(t, sctx.Discount.Amount.Equal(d("100")), "amount = %s", sctx.Discount.Amount)
	assert.True(t, sctx.Outstanding.Equal(d("900")), "outstanding = %s", sctx.Outstanding)
}

func TestApplyPromoUnknownCode(t *testing.T) {
	svc, _ := newDiscountFixture("+919876543210")
	sctx := testContext(t, "1000")

	_, err := svc.ApplyPromo(context.Background(), sctx, "NOPE")
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestSecondDiscountRejectedNotStacked(t *testing.T) {
	svc, _ := newDiscountFixture("+919876543210")
	sctx := testContext(t, "1000")

	sctx, err := svc.ApplyPromo(context.Background(), sctx, "FEST10")
	require.NoError(t, err)

	_, err = svc.ApplyPromo(context.Background(), sctx, "FEST10")
	require.Error(t, err)
	assert.True(t, apperror.IsDiscountRejected(err))

	// The applied discount is untouched by the rejected attempt.
	assert.True(t, sctx.Outstanding.Equal(d("900")))
}

func TestRemoveRestoresOriginalOutstanding(t *testing.T) {
	svc, _ := newDiscountFixture("+919876543210")
	sctx := testContext(t, "1000")

	sctx, err := svc.ApplyPromo(context.Background(), sctx, "FEST10")
	require.NoError(t, err)

	sctx = svc.Remove(sctx)
	assert.False(t, sctx.Discount.Active())
	assert.True(t, sctx.Outstanding.Equal(d("1000")))

	// A replacement discount computes from the original, not the discounted figure.
	sctx, err = svc.ApplyPromo(context.Background(), sctx, "FEST10")
	require.NoError(t, err)
	assert.True(t, sctx.Discount.Amount.Equal(d("100")))
}

func TestOwnerDiscountFlow(t *testing.T) {
	svc, otp := newDiscountFixture("+919876543210")
	sctx := testContext(t, "1000")
	ctx := context.Background()

	err := svc.RequestOwnerDiscount(ctx, sctx, enum.OwnerDiscountPercent, d("20"))
	require.NoError(t, err)
	require.Equal(t, []string{"+919876543210"}, otp.destinations, "code must go to the owner's phone")

	confirmed, err := svc.ConfirmOwnerDiscount(ctx, sctx, otp.issued)
	require.NoError(t, err)
	assert.Equal(t, enum.DiscountOwner, confirmed.Discount.Type)
	assert.True(t, confirmed.Discount.OTPConfirmed)
	assert.True(t, confirmed.Discount.Amount.Equal(d("200")))
	assert.True(t, confirmed.Outstanding.Equal(d("800")))

	// Single use: the same code cannot confirm twice.
	_, err = svc.ConfirmOwnerDiscount(ctx, sctx, otp.issued)
	require.Error(t, err)
	assert.True(t, apperror.IsDiscountRejected(err))
}

func TestOwnerDiscountCodeMismatch(t *testing.T) {
	svc, _ := newDiscountFixture("+919876543210")
	sctx := testContext(t, "1000")
	ctx := context.Background()

	require.NoError(t, svc.RequestOwnerDiscount(ctx, sctx, enum.OwnerDiscountPercent, d("20")))

	_, err := svc.ConfirmOwnerDiscount(ctx, sctx, "000000")
	require.Error(t, err)
	assert.True(t, apperror.IsDiscountRejected(err))

	// A mismatch does not consume the pending authorization.
	_, err = svc.ConfirmOwnerDiscount(ctx, sctx, "123456")
	assert.NoError(t, err)
}

func TestOwnerDiscountExpiredAuthorization(t *testing.T) {
	svc, otp := newDiscountFixture("+919876543210")
	sctx := testContext(t, "1000")
	ctx := context.Background()

	require.NoError(t, svc.RequestOwnerDiscount(ctx, sctx, enum.OwnerDiscountPercent, d("20")))

	svc.now = func() time.Time { return time.Now().Add(2 * time.Minute) }

	_, err := svc.ConfirmOwnerDiscount(ctx, sctx, otp.issued)
	require.Error(t, err)
	assert.True(t, apperror.IsDiscountRejected(err))
}

func TestOwnerDiscountValueValidation(t *testing.T) {
	svc, _ := newDiscountFixture("+919876543210")
	ctx := context.Background()

	// Fixed value above the bill amount.
	sctx := testContext(t, "500")
	err := svc.RequestOwnerDiscount(ctx, sctx, enum.OwnerDiscountFixed, d("600"))
	require.Error(t, err)
	assert.True(t, apperror.IsDiscountRejected(err))

	// Percent above 100.
	err = svc.RequestOwnerDiscount(ctx, sctx, enum.OwnerDiscountPercent, d("120"))
	require.Error(t, err)
	assert.True(t, apperror.IsDiscountRejected(err))

	// Missing value.
	err = svc.RequestOwnerDiscount(ctx, sctx, enum.OwnerDiscountFixed, decimal.Zero)
	require.Error(t, err)
	assert.True(t, apperror.IsDiscountRejected(err))

	// Fixed value equal to the bill amount is allowed.
	err = svc.RequestOwnerDiscount(ctx, sctx, enum.OwnerDiscountFixed, d("500"))
	assert.NoError(t, err)
}

func TestOwnerDiscountNotConfigured(t *testing.T) {
	svc, _ := newDiscountFixture("")
	sctx := testContext(t, "1000")

	err := svc.RequestOwnerDiscount(context.Background(), sctx, enum.OwnerDiscountPercent, d("10"))
	require.Error(t, err)
	assert.True(t, apperror.IsDiscountRejected(err))
}
