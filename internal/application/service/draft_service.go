package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/softencymsc/webbill-api/internal/domain/entity"
	"github.com/softencymsc/webbill-api/internal/domain/repository"
	"github.com/softencymsc/webbill-api/pkg/apperror"
)

// DraftSnapshot is the persisted shape of a parked cart.
type DraftSnapshot struct {
	CustomerName string            `json:"customer_name"`
	Lines        []entity.CartLine `json:"lines"`
}

// DraftService parks unfinished carts against a customer phone number.
// A customer has at most one draft per store: saving again supersedes the
// previous one.
type DraftService struct {
	drafts repository.DraftRepository
}

func NewDraftService(drafts repository.DraftRepository) *DraftService {
	return &DraftService{drafts: drafts}
}

// Save persists the cart as the customer's draft, replacing any earlier one.
func (s *DraftService) Save(ctx context.Context, tenantID uuid.UUID, phone, customerName string, lines []entity.CartLine) (*entity.DraftBill, error) {
	if phone == "" {
		return nil, apperror.NewBadRequestError("customer phone is required to park a draft")
	}
	if len(lines) == 0 {
		return nil, apperror.NewBadRequestError("cannot park an empty cart")
	}

	snapshot, err := json.Marshal(DraftSnapshot{CustomerName: customerName, Lines: lines})
	if err != nil {
		return nil, fmt.Errorf("failed to encode draft: %w", err)
	}

	draft := &entity.DraftBill{
		TenantID:      tenantID,
		CustomerPhone: phone,
		CustomerName:  customerName,
		Snapshot:      datatypes.JSON(snapshot),
	}
	if err := s.drafts.Replace(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Resume loads the customer's parked cart, if any.
func (s *DraftService) Resume(ctx context.Context, phone string) (*DraftSnapshot, error) {
	draft, err := s.drafts.GetByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		return nil, apperror.NewNotFoundError("Draft")
	}

	var snapshot DraftSnapshot
	if err := json.Unmarshal(draft.Snapshot, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode draft: %w", err)
	}
	return &snapshot, nil
}

// Clear removes the customer's draft. Clearing a missing draft is a no-op.
func (s *DraftService) Clear(ctx context.Context, phone string) error {
	return s.drafts.DeleteByPhone(ctx, phone)
}
