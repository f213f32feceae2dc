package repository

import (
	"context"
	"time"

	"github.com/softencymsc/webbill-api/internal/domain/entity"
	"github.com/softencymsc/webbill-api/internal/domain/enum"
	"github.com/softencymsc/webbill-api/pkg/pagination"
)

// SettlementWriter persists the complete record set of one settlement:
// header, terms placeholder and line items. The triple must exist together
// or not at all from the caller's perspective. Backends either wrap the
// writes in one multi-document transaction, or stage the records under a
// pending header status and flip it to posted last.
type SettlementWriter interface {
	WriteSettlement(ctx context.Context, header *entity.BillHeader, term *entity.BillTerm, lines []entity.BillLine) error
}

// BillRepository defines the interface for posted bill data operations
type BillRepository interface {
	GetByBillNo(ctx context.Context, billNo string) (*entity.BillHeader, error)
	GetWithLines(ctx context.Context, billNo string) (*entity.BillHeader, error)
	List(ctx context.Context, params *BillFilterParams) ([]entity.BillHeader, int64, error)
	// CountByDirection returns the number of posted bills in the tenant for
	// one direction. Used to derive the sequential invoice-number prefix.
	CountByDirection(ctx context.Context, direction enum.Direction) (int64, error)
}

// BillFilterParams contains filtering parameters for bill queries
type BillFilterParams struct {
	Pagination    *pagination.PaginationParams
	Search        string
	Direction     *enum.Direction
	CustomerPhone string
	StartDate     *time.Time
	EndDate       *time.Time
}
