package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/softencymsc/webbill-api/internal/domain/entity"
	"github.com/softencymsc/webbill-api/internal/domain/enum"
)

func TestNewSettlementContextPricesCart(t *testing.T) {
	sctx := testContext(t, "1000")

	assert.True(t, sctx.OriginalOutstanding.Equal(d("1000")))
	assert.True(t, sctx.Outstanding.Equal(d("1000")))
	assert.False(t, sctx.Discount.Active())
	assert.Len(t, sctx.Breakdowns, 1)
}

func TestContextCopiesCartLines(t *testing.T) {
	lines := []entity.CartLine{
		{ProductCode: "P1", ProductName: "Widget", Quantity: 1, UnitPrice: d("100")},
	}
	sctx, err := NewSettlementContext(uuid.New(), uuid.New(), enum.DirectionSale, lines)
	require.NoError(t, err)

	lines[0].ProductCode = "MUTATED"
	assert.Equal(t, "P1", sctx.Lines[0].ProductCode)
}

func TestWithMethodsDoNotMutateReceiver(t *testing.T) {
	sctx := testContext(t, "1000")

	withCustomer := sctx.WithCustomer("Asha", "9876501234", "12 MG Road", "22AAAAA0000A1Z5")
	assert.Empty(t, sctx.CustomerName)
	assert.Equal(t, "Asha", withCustomer.CustomerName)
	assert.Equal(t, "22AAAAA0000A1Z5", withCustomer.CustomerGSTIN)

	withOrder := sctx.WithOrder("SO-7")
	assert.Empty(t, sctx.OrderNo)
	assert.Equal(t, "SO-7", withOrder.OrderNo)

	discounted := sctx.WithDiscount(entity.DiscountAuthorization{
		Type:   enum.DiscountPromo,
		Amount: d("250"),
	})
	assert.True(t, sctx.Outstanding.Equal(d("1000")), "receiver keeps its outstanding")
	assert.True(t, discounted.Outstanding.Equal(d("750")))
}

func TestWithDiscountFloorsOutstandingAtZero(t *testing.T) {
	sctx := testContext(t, "100")

	discounted := sctx.WithDiscount(entity.DiscountAuthorization{
		Type:   enum.DiscountOwner,
		Amount: d("150"),
	})
	assert.True(t, discounted.Outstanding.IsZero())
}

func TestWithoutDiscountRestoresOriginal(t *testing.T) {
	sctx := testContext(t, "1000").WithDiscount(entity.DiscountAuthorization{
		Type:   enum.DiscountPromo,
		Amount: d("100"),
	})

	cleared := sctx.WithoutDiscount()
	assert.False(t, cleared.Discount.Active())
	assert.True(t, cleared.Outstanding.Equal(d("1000")))
	assert.True(t, sctx.Outstanding.Equal(d("900")), "receiver unchanged")
}
