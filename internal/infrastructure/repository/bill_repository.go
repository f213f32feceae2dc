package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/softencymsc/webbill-api/internal/domain/entity"
	"github.com/softencymsc/webbill-api/internal/domain/enum"
	domainRepo "github.com/softencymsc/webbill-api/internal/domain/repository"
)

type billRepository struct {
	db *gorm.DB
}

// NewBillRepository creates a new bill repository
func NewBillRepository(db *gorm.DB) domainRepo.BillRepository {
	return &billRepository{db: db}
}

func (r *billRepository) GetByBillNo(ctx context.Context, billNo string) (*entity.BillHeader, error) {
	var header entity.BillHeader
	err := r.db.WithContext(ctx).Scopes(TenantScope(ctx), PostedScope).
		First(&header, "bill_no = ?", billNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &header, err
}

func (r *billRepository) GetWithLines(ctx context.Context, billNo string) (*entity.BillHeader, error) {
	var header entity.BillHeader
	err := r.db.WithContext(ctx).Scopes(TenantScope(ctx), PostedScope).
		Preload("Lines").
		Preload("Term").
		First(&header, "bill_no = ?", billNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &header, err
}

func (r *billRepository) List(ctx context.Context, params *domainRepo.BillFilterParams) ([]entity.BillHeader, int64, error) {
	query := r.db.WithContext(ctx).Scopes(TenantScope(ctx), PostedScope).
		Model(&entity.BillHeader{})

	if params.Search != "" {
		search := "%" + params.Search + "%"
		query = query.Where("bill_no ILIKE ? OR customer_name ILIKE ?", search, search)
	}
	if params.Direction != nil {
		query = query.Where("direction = ?", *params.Direction)
	}
	if params.CustomerPhone != "" {
		query = query.Where("customer_phone = ?", params.CustomerPhone)
	}
	if params.StartDate != nil {
		query = query.Where("bill_date >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("bill_date <= ?", *params.EndDate)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var headers []entity.BillHeader
	err := query.
		Order("bill_date DESC").
		Offset(params.Pagination.Offset()).
		Limit(params.Pagination.PerPage).
		Find(&headers).Error

	return headers, total, err
}

func (r *billRepository) CountByDirection(ctx context.Context, direction enum.Direction) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Scopes(TenantScope(ctx), PostedScope).
		Model(&entity.BillHeader{}).
		Where("direction = ?", direction).
		Count(&count).Error
	return count, err
}
