package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/softencymsc/webbill-api/internal/domain/entity"
	"github.com/softencymsc/webbill-api/internal/domain/enum"
	"github.com/softencymsc/webbill-api/pkg/apperror"
)

func TestCashFullAllocationCoversAndCommits(t *testing.T) {
	allocator := NewTenderAllocator()

	alloc := allocator.Begin(d("500"))
	assert.Equal(t, enum.AllocationUnselected, alloc.State)

	alloc, err := allocator.SelectMethod(alloc, enum.TenderCash)
	require.NoError(t, err)
	assert.Equal(t, enum.AllocationMethodChosen, alloc.State)

	alloc, err = allocator.AllocateFull(alloc)
	require.NoError(t, err)
	assert.Equal(t, enum.AllocationCovered, alloc.State)
	assert.True(t, alloc.AmountLeft().IsZero())

	alloc, err = allocator.Commit(alloc)
	require.NoError(t, err)
	assert.Equal(t, enum.AllocationCommitted, alloc.State)
	assert.Equal(t, "CASH", alloc.PayMode())
}

func TestUPISplitAcrossNamedSubTenders(t *testing.T) {
	allocator := NewTenderAllocator()

	alloc := allocator.Begin(d("500"))
	alloc, err := allocator.SelectMethod(alloc, enum.TenderUPI)
	require.NoError(t, err)

	alloc, err = allocator.SetAmount(alloc, "gpay", d("300"))
	require.NoError(t, err)
	assert.Equal(t, enum.AllocationAllocating, alloc.State)
	assert.True(t, alloc.AmountLeft().Equal(d("200")))

	alloc, err = allocator.SetAmount(alloc, "phonepe", d("200"))
	require.NoError(t, err)
	assert.Equal(t, enum.AllocationCovered, alloc.State)

	alloc, err = allocator.Commit(alloc)
	require.NoError(t, err)
	assert.Equal(t, "UPI", alloc.PayMode())
	assert.Len(t, alloc.Subs, 2)
}

func TestSetAmountReplacesAndRemovesByName(t *testing.T) {
	allocator := NewTenderAllocator()

	alloc := allocator.Begin(d("500"))
	alloc, _ = allocator.SelectMethod(alloc, enum.TenderUPI)
	alloc, _ = allocator.SetAmount(alloc, "gpay", d("100"))
	alloc, _ = allocator.SetAmount(alloc, "gpay", d("500"))
	assert.Len(t, alloc.Subs, 1)
	assert.Equal(t, enum.AllocationCovered, alloc.State)

	alloc, _ = allocator.SetAmount(alloc, "gpay", d("0"))
	assert.Empty(t, alloc.Subs)
	assert.Equal(t, enum.AllocationAllocating, alloc.State)
}

func TestSingleAmountMayNotExceedOutstanding(t *testing.T) {
	allocator := NewTenderAllocator()

	alloc := allocator.Begin(d("500"))
	alloc, _ = allocator.SelectMethod(alloc, enum.TenderCash)

	_, err := allocator.SetAmount(alloc, "CASH", d("500.01"))
	assert.Error(t, err)

	_, err = allocator.SetAmount(alloc, "CASH", d("-1"))
	assert.Error(t, err)
}

func TestSwitchingMethodDiscardsAllocations(t *testing.T) {
	allocator := NewTenderAllocator()

	alloc := allocator.Begin(d("500"))
	alloc, _ = allocator.SelectMethod(alloc, enum.TenderUPI)
	alloc, _ = allocator.SetAmount(alloc, "gpay", d("300"))

	alloc, err := allocator.SelectMethod(alloc, enum.TenderCash)
	require.NoError(t, err)
	assert.Empty(t, alloc.Subs)
	assert.Equal(t, enum.AllocationMethodChosen, alloc.State)
	assert.True(t, alloc.AmountLeft().Equal(d("500")))
}

func TestDeferredMethodsCoverUnconditionally(t *testing.T) {
	allocator := NewTenderAllocator()

	for _, method := range []enum.TenderMethod{enum.TenderCredit, enum.TenderOwnerDiscount} {
		alloc := allocator.Begin(d("750"))
		alloc, err := allocator.SelectMethod(alloc, method)
		require.NoError(t, err)
		assert.Equal(t, enum.AllocationCovered, alloc.State)
		assert.True(t, alloc.AmountLeft().IsZero())

		_, err = allocator.SetAmount(alloc, "x", d("10"))
		assert.Error(t, err, "deferred tenders must not take amounts")

		alloc, err = allocator.Commit(alloc)
		require.NoError(t, err)
		assert.Equal(t, enum.AllocationCommitted, alloc.State)
	}
}

func TestCommitRefusesUncoveredAllocation(t *testing.T) {
	allocator := NewTenderAllocator()

	alloc := allocator.Begin(d("500"))
	alloc, _ = allocator.SelectMethod(alloc, enum.TenderUPI)
	alloc, _ = allocator.SetAmount(alloc, "gpay", d("300"))

	_, err := allocator.Commit(alloc)
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 422, appErr.Code)
}

func TestFreeTenderGatedByPIN(t *testing.T) {
	allocator := NewTenderAllocator()
	hash, err := bcrypt.GenerateFromPassword([]byte("4321"), bcrypt.MinCost)
	require.NoError(t, err)

	alloc := allocator.Begin(d("500"))
	alloc, _ = allocator.SelectMethod(alloc, enum.TenderFree)

	_, err = allocator.ConfirmFree(alloc, "1111", string(hash))
	assert.Error(t, err, "wrong PIN must be refused")

	_, err = allocator.ConfirmFree(alloc, "4321", "")
	assert.Error(t, err, "missing PIN hash must be refused")

	alloc, err = allocator.ConfirmFree(alloc, "4321", string(hash))
	require.NoError(t, err)
	assert.Equal(t, enum.AllocationCovered, alloc.State)

	alloc, err = allocator.Commit(alloc)
	require.NoError(t, err)
	assert.Equal(t, enum.AllocationCommitted, alloc.State)
}

func TestCardValidation(t *testing.T) {
	validCard := entity.CardDetails{
		Number: "123456789012",
		Holder: "A CUSTOMER",
		Expiry: "08/27",
		CVC:    "123",
	}

	tests := []struct {
		name    string
		mutate  func(c *entity.CardDetails)
		wantErr bool
	}{
		{"valid card", func(c *entity.CardDetails) {}, false},
		{"short number", func(c *entity.CardDetails) { c.Number = "1234" }, true},
		{"non numeric number", func(c *entity.CardDetails) { c.Number = "12345678901a" }, true},
		{"month thirteen", func(c *entity.CardDetails) { c.Expiry = "13/27" }, true},
		{"month zero", func(c *entity.CardDetails) { c.Expiry = "00/27" }, true},
		{"bad expiry format", func(c *entity.CardDetails) { c.Expiry = "8/27" }, true},
		{"short cvc", func(c *entity.CardDetails) { c.CVC = "12" }, true},
		{"blank holder", func(c *entity.CardDetails) { c.Holder = "  " }, true},
	}

	allocator := NewTenderAllocator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alloc := allocator.Begin(d("500"))
			alloc, _ = allocator.SelectMethod(alloc, enum.TenderCard)

			card := validCard
			tt.mutate(&card)

			_, err := allocator.AttachCard(alloc, card)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCommitRequiresCardDetailsForCardTender(t *testing.T) {
	allocator := NewTenderAllocator()

	alloc := allocator.Begin(d("100"))
	alloc, _ = allocator.SelectMethod(alloc, enum.TenderCard)
	alloc, _ = allocator.AllocateFull(alloc)

	_, err := allocator.Commit(alloc)
	assert.Error(t, err)
}

func TestAbandonedAllocationIsClosed(t *testing.T) {
	allocator := NewTenderAllocator()

	alloc := allocator.Begin(d("100"))
	alloc, _ = allocator.SelectMethod(alloc, enum.TenderCash)
	alloc = allocator.Abandon(alloc)
	assert.Equal(t, enum.AllocationAbandoned, alloc.State)

	_, err := allocator.SelectMethod(alloc, enum.TenderCash)
	assert.Error(t, err)
}
