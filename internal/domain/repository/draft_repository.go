package repository

import (
	"context"

	"github.com/softencymsc/webbill-api/internal/domain/entity"
)

// DraftRepository defines the interface for draft bill save-points.
// At most one draft per customer phone exists within a tenant.
type DraftRepository interface {
	// Replace deletes any draft for the snapshot's customer phone, then
	// inserts the new one. Last write wins; no version check.
	Replace(ctx context.Context, draft *entity.DraftBill) error
	GetByPhone(ctx context.Context, phone string) (*entity.DraftBill, error)
	DeleteByPhone(ctx context.Context, phone string) error
}

// OrderRepository defines the interface for linkable open orders
type OrderRepository interface {
	GetByOrderNo(ctx context.Context, orderNo string) (*entity.SalesOrder, error)
	// MarkFulfilled closes the order and links it to the posted bill.
	// Returns false when no open order matches; callers log and continue.
	MarkFulfilled(ctx context.Context, orderNo string, billNo string) (bool, error)
	Create(ctx context.Context, order *entity.SalesOrder) error
}
