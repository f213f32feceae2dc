package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/softencymsc/webbill-api/internal/domain/entity"
	"github.com/softencymsc/webbill-api/internal/domain/enum"
	"github.com/softencymsc/webbill-api/internal/infrastructure/cache"
)

// SettlementWorkflowSuite walks a full checkout: price the cart, apply a
// discount, allocate tenders, post, and read the settlement back.
type SettlementWorkflowSuite struct {
	suite.Suite
	fixture   *settlementFixture
	discounts *DiscountService
	otp       *fakeOtpChannel
	tenantID  uuid.UUID
	userID    uuid.UUID
}

func (s *SettlementWorkflowSuite) SetupTest() {
	s.fixture = newSettlementFixture()
	s.otp = &fakeOtpChannel{}
	s.discounts = NewDiscountService(
		&fakePromoRepo{promos: map[string]*entity.PromoCode{
			"FEST10": {Code: "FEST10", Percent: d("10"), Active: true},
		}},
		&fakeTenantRepo{tenant: s.fixture.tenant},
		s.otp,
		cache.NewMemoryStore(),
		time.Minute,
	)
	s.tenantID = uuid.New()
	s.userID = uuid.New()
}

func (s *SettlementWorkflowSuite) cart() SettlementContext {
	sctx, err := NewSettlementContext(s.tenantID, s.userID, enum.DirectionSale, []entity.CartLine{
		{ProductCode: "P1", ProductName: "Widget", Quantity: 2, UnitPrice: d("118"), TaxRate: d("18")},
		{ProductCode: "P2", ProductName: "Gadget", Quantity: 1, UnitPrice: d("564"), TaxRate: d("18")},
	})
	s.Require().NoError(err)
	return sctx.WithCustomer("Asha", "9876501234", "", "")
}

func (s *SettlementWorkflowSuite) TestPromoThenSplitUPICheckout() {
	ctx := context.Background()
	sctx := s.cart()
	s.Require().True(sctx.Outstanding.Equal(d("800")))

	sctx, err := s.discounts.ApplyPromo(ctx, sctx, "FEST10")
	s.Require().NoError(err)
	s.Require().True(sctx.Outstanding.Equal(d("720")))

	allocator := NewTenderAllocator()
	alloc := allocator.Begin(sctx.Outstanding)
	alloc, err = allocator.SelectMethod(alloc, enum.TenderUPI)
	s.Require().NoError(err)
	alloc, err = allocator.SetAmount(alloc, "gpay", d("500"))
	s.Require().NoError(err)
	alloc, err = allocator.SetAmount(alloc, "phonepe", d("220"))
	s.Require().NoError(err)
	s.Require().Equal(enum.AllocationCovered, alloc.State)

	header, err := s.fixture.svc.Post(ctx, sctx, alloc)
	s.Require().NoError(err)

	s.Equal("UPI", header.PayMode)
	s.True(header.NetAmount.Equal(d("720")))
	s.True(header.DiscountAmount.Equal(d("80")))
	s.True(header.AdvanceAmount.Equal(d("720")))
	s.True(header.BalanceAmount.IsZero())
	s.Equal(-2, s.fixture.products.adjusted["P1"])
	s.Equal(-1, s.fixture.products.adjusted["P2"])

	// The posted settlement is readable by its invoice number.
	s.fixture.bills.headers[header.BillNo] = header
	got, err := s.fixture.svc.Get(ctx, header.BillNo)
	s.Require().NoError(err)
	s.Equal(header.BillNo, got.BillNo)
}

func (s *SettlementWorkflowSuite) TestOwnerDiscountFreeSaleCheckout() {
	ctx := context.Background()
	sctx := s.cart()

	s.Require().NoError(s.discounts.RequestOwnerDiscount(ctx, sctx, enum.OwnerDiscountPercent, d("100")))
	sctx, err := s.discounts.ConfirmOwnerDiscount(ctx, sctx, s.otp.issued)
	s.Require().NoError(err)
	s.Require().True(sctx.Outstanding.IsZero())

	allocator := NewTenderAllocator()
	alloc := allocator.Begin(sctx.Outstanding)
	alloc, err = allocator.SelectMethod(alloc, enum.TenderOwnerDiscount)
	s.Require().NoError(err)
	s.Require().Equal(enum.AllocationCovered, alloc.State)

	header, err := s.fixture.svc.Post(ctx, sctx, alloc)
	s.Require().NoError(err)

	s.Equal("OWNER_DISCOUNT", header.PayMode)
	s.True(header.NetAmount.IsZero())
	s.True(header.AdvanceAmount.IsZero())
	s.True(header.BalanceAmount.IsZero())
}

func TestSettlementWorkflowSuite(t *testing.T) {
	suite.Run(t, new(SettlementWorkflowSuite))
}
