package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/softencymsc/webbill-api/internal/domain/entity"
	"github.com/softencymsc/webbill-api/pkg/apperror"
)

func newDraftFixture() (*DraftService, *fakeDraftRepo) {
	repo := &fakeDraftRepo{drafts: map[string]*entity.DraftBill{}}
	return NewDraftService(repo), repo
}

func draftLines() []entity.CartLine {
	return []entity.CartLine{
		{ProductCode: "P1", ProductName: "Widget", Quantity: 2, UnitPrice: d("118"), TaxRate: d("18")},
	}
}

func TestSaveAndResumeDraft(t *testing.T) {
	svc, _ := newDraftFixture()
	ctx := context.Background()

	draft, err := svc.Save(ctx, uuid.New(), "9876501234", "Asha", draftLines())
	require.NoError(t, err)
	assert.Equal(t, "9876501234", draft.CustomerPhone)

	snapshot, err := svc.Resume(ctx, "9876501234")
	require.NoError(t, err)
	assert.Equal(t, "Asha", snapshot.CustomerName)
	require.Len(t, snapshot.Lines, 1)
	assert.Equal(t, "P1", snapshot.Lines[0].ProductCode)
	assert.True(t, snapshot.Lines[0].UnitPrice.Equal(d("118")))
}

func TestSaveSupersedesPreviousDraft(t *testing.T) {
	svc, repo := newDraftFixture()
	ctx := context.Background()
	tenantID := uuid.New()

	_, err := svc.Save(ctx, tenantID, "9876501234", "Asha", draftLines())
	require.NoError(t, err)

	replacement := draftLines()
	replacement[0].Quantity = 5
	_, err = svc.Save(ctx, tenantID, "9876501234", "Asha", replacement)
	require.NoError(t, err)

	assert.Len(t, repo.drafts, 1, "one draft per phone")
	snapshot, err := svc.Resume(ctx, "9876501234")
	require.NoError(t, err)
	assert.Equal(t, 5, snapshot.Lines[0].Quantity)
}

func TestSaveValidation(t *testing.T) {
	svc, _ := newDraftFixture()
	ctx := context.Background()

	_, err := svc.Save(ctx, uuid.New(), "", "Asha", draftLines())
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)

	_, err = svc.Save(ctx, uuid.New(), "9876501234", "Asha", nil)
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestResumeMissingDraft(t *testing.T) {
	svc, _ := newDraftFixture()

	_, err := svc.Resume(context.Background(), "0000000000")
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestClearDraft(t *testing.T) {
	svc, repo := newDraftFixture()
	ctx := context.Background()

	_, err := svc.Save(ctx, uuid.New(), "9876501234", "Asha", draftLines())
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx, "9876501234"))
	assert.Empty(t, repo.drafts)

	// Clearing again is a no-op.
	assert.NoError(t, svc.Clear(ctx, "9876501234"))
}
