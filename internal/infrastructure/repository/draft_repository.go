package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/softencymsc/webbill-api/internal/domain/entity"
	domainRepo "github.com/softencymsc/webbill-api/internal/domain/repository"
)

type draftRepository struct {
	db *gorm.DB
}

// NewDraftRepository creates a new draft repository
func NewDraftRepository(db *gorm.DB) domainRepo.DraftRepository {
	return &draftRepository{db: db}
}

// Replace is delete-then-insert inside one transaction, keyed by customer
// phone. Whatever draft existed for the phone is superseded.
func (r *draftRepository) Replace(ctx context.Context, draft *entity.DraftBill) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Scopes(TenantScope(ctx)).
			Delete(&entity.DraftBill{}, "customer_phone = ?", draft.CustomerPhone).Error; err != nil {
			return fmt.Errorf("failed to delete superseded draft: %w", err)
		}
		if err := tx.Create(draft).Error; err != nil {
			return fmt.Errorf("failed to create draft: %w", err)
		}
		return nil
	})
}

func (r *draftRepository) GetByPhone(ctx context.Context, phone string) (*entity.DraftBill, error) {
	var draft entity.DraftBill
	err := r.db.WithContext(ctx).Scopes(TenantScope(ctx)).
		First(&draft, "customer_phone = ?", phone).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &draft, err
}

func (r *draftRepository) DeleteByPhone(ctx context.Context, phone string) error {
	return r.db.WithContext(ctx).Scopes(TenantScope(ctx)).
		Delete(&entity.DraftBill{}, "customer_phone = ?", phone).Error
}

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new sales order repository
func NewOrderRepository(db *gorm.DB) domainRepo.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) GetByOrderNo(ctx context.Context, orderNo string) (*entity.SalesOrder, error) {
	var order entity.SalesOrder
	err := r.db.WithContext(ctx).Scopes(TenantScope(ctx)).
		First(&order, "order_no = ?", orderNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *orderRepository) MarkFulfilled(ctx context.Context, orderNo string, billNo string) (bool, error) {
	result := r.db.WithContext(ctx).Scopes(TenantScope(ctx)).
		Model(&entity.SalesOrder{}).
		Where("order_no = ? AND status = ?", orderNo, entity.OrderStatusOpen).
		Updates(map[string]interface{}{
			"status":         entity.OrderStatusFulfilled,
			"linked_bill_no": billNo,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *orderRepository) Create(ctx context.Context, order *entity.SalesOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}
