package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/softencymsc/webbill-api/internal/domain/entity"
	"github.com/softencymsc/webbill-api/internal/domain/enum"
	"github.com/softencymsc/webbill-api/internal/domain/repository"
	"github.com/softencymsc/webbill-api/pkg/apperror"
	"github.com/softencymsc/webbill-api/pkg/pagination"
)

// SettlementService posts committed settlements. Core record creation goes
// through a single transactional writer and aborts the posting on failure;
// side effects after the commit point (stock, order linkage, notification)
// only log warnings so a posted bill is never rolled back by its followups.
type SettlementService struct {
	writer    repository.SettlementWriter
	bills     repository.BillRepository
	customers repository.CustomerRepository
	products  repository.ProductRepository
	drafts    repository.DraftRepository
	orders    repository.OrderRepository
	tenants   repository.TenantRepository
	allocator *TenderAllocator
	notifier  *NotificationService
	clock     func() time.Time
}

func NewSettlementService(
	writer repository.SettlementWriter,
	bills repository.BillRepository,
	customers repository.CustomerRepository,
	products repository.ProductRepository,
	drafts repository.DraftRepository,
	orders repository.OrderRepository,
	tenants repository.TenantRepository,
	notifier *NotificationService,
) *SettlementService {
	return &SettlementService{
		writer:    writer,
		bills:     bills,
		customers: customers,
		products:  products,
		drafts:    drafts,
		orders:    orders,
		tenants:   tenants,
		allocator: NewTenderAllocator(),
		notifier:  notifier,
		clock:     time.Now,
	}
}

// Post commits the tender allocation and writes the settlement. It returns
// the posted header with its generated invoice number.
func (s *SettlementService) Post(ctx context.Context, sctx SettlementContext, alloc entity.TenderAllocation) (*entity.BillHeader, error) {
	alloc, err := s.allocator.Commit(alloc)
	if err != nil {
		return nil, err
	}

	tenant, err := s.tenants.GetByID(ctx, sctx.TenantID)
	if err != nil {
		return nil, apperror.NewPostingFailedError(err)
	}
	if tenant == nil {
		return nil, apperror.NewPostingFailedError(fmt.Errorf("tenant %s not found", sctx.TenantID))
	}

	customer, err := s.ensureCustomer(ctx, sctx)
	if err != nil {
		return nil, apperror.NewPostingFailedError(err)
	}

	if sctx.CustomerPhone != "" {
		if err := s.drafts.DeleteByPhone(ctx, sctx.CustomerPhone); err != nil {
			return nil, apperror.NewPostingFailedError(err)
		}
	}

	billNo, err := s.nextBillNo(ctx, tenant, sctx.Direction)
	if err != nil {
		return nil, apperror.NewPostingFailedError(err)
	}

	header, lines, term := s.buildRecords(sctx, alloc, billNo, customer)
	if err := s.writer.WriteSettlement(ctx, header, term, lines); err != nil {
		return nil, apperror.NewPostingFailedError(err)
	}

	// Commit point passed. Everything below is best effort.
	s.adjustStock(ctx, header.BillNo, sctx)
	s.linkOrder(ctx, header.BillNo, sctx.OrderNo)
	s.notifyPosted(ctx, tenant, header, lines)

	return header, nil
}

// Get loads a posted settlement with its lines.
func (s *SettlementService) Get(ctx context.Context, billNo string) (*entity.BillHeader, error) {
	header, err := s.bills.GetWithLines(ctx, billNo)
	if err != nil {
		return nil, err
	}
	if header == nil {
		return nil, apperror.NewNotFoundError("Settlement")
	}
	return header, nil
}

// List returns posted settlements matching the filter, newest first.
func (s *SettlementService) List(ctx context.Context, filter *repository.BillFilterParams) (*pagination.PaginatedResult[entity.BillHeader], error) {
	if filter == nil {
		filter = &repository.BillFilterParams{}
	}
	if filter.Pagination == nil {
		filter.Pagination = pagination.DefaultPagination()
	}
	filter.Pagination.Validate()

	headers, total, err := s.bills.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	p := pagination.NewPagination(filter.Pagination.Page, filter.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(headers, p), nil
}

// BuildInvoice composes a renderable invoice from a posted header.
func (s *SettlementService) BuildInvoice(tenant *entity.Tenant, header *entity.BillHeader, lines []entity.BillLine) entity.Invoice {
	items := make([]entity.InvoiceItem, 0, len(lines))
	for _, line := range lines {
		total := line.UnitPrice.Mul(decimal.NewFromInt(int64(abs(line.Quantity)))).Sub(line.ItemDiscount)
		items = append(items, entity.InvoiceItem{
			Name:      line.ProductName,
			HSNCode:   line.HSNCode,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice.InexactFloat64(),
			Total:     total.Round(2).InexactFloat64(),
		})
	}

	return entity.Invoice{
		Header: entity.InvoiceHeader{
			StoreName: tenant.Name,
			Phone:     tenant.Settings.OwnerPhone,
		},
		BillNo:   header.BillNo,
		Date:     header.BillDate.Format("02-01-2006 15:04"),
		Customer: header.CustomerName,
		Phone:    header.CustomerPhone,
		PayMode:  header.PayMode,
		Items:    items,
		Basic:    header.BasicAmount.InexactFloat64(),
		CGST:     header.CGSTAmount.InexactFloat64(),
		SGST:     header.SGSTAmount.InexactFloat64(),
		Discount: header.DiscountAmount.InexactFloat64(),
		Net:      header.NetAmount.InexactFloat64(),
		Advance:  header.AdvanceAmount.InexactFloat64(),
		Balance:  header.BalanceAmount.InexactFloat64(),
	}
}

func (s *SettlementService) ensureCustomer(ctx context.Context, sctx SettlementContext) (*entity.Customer, error) {
	if sctx.CustomerPhone == "" {
		return nil, nil
	}

	customer, err := s.customers.GetByPhone(ctx, sctx.CustomerPhone)
	if err != nil {
		return nil, err
	}
	if customer != nil {
		return customer, nil
	}

	kind := entity.PartyKindCustomer
	if sctx.Direction == enum.DirectionPurchase {
		kind = entity.PartyKindVendor
	}
	customer = &entity.Customer{
		TenantID: sctx.TenantID,
		Name:     sctx.CustomerName,
		Phone:    sctx.CustomerPhone,
		Kind:     kind,
	}
	if sctx.CustomerAddress != "" {
		customer.Address = &sctx.CustomerAddress
	}
	if sctx.CustomerGSTIN != "" {
		customer.GSTIN = &sctx.CustomerGSTIN
	}
	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// nextBillNo builds {prefix}{serial}-{unixmilli}. The serial comes from a
// count, so two concurrent postings of the same direction can race to the
// same serial; the millisecond suffix keeps the full number unique in
// practice and the column's unique constraint catches the rest.
func (s *SettlementService) nextBillNo(ctx context.Context, tenant *entity.Tenant, direction enum.Direction) (string, error) {
	count, err := s.bills.CountByDirection(ctx, direction)
	if err != nil {
		return "", err
	}
	prefix := tenant.Settings.PrefixFor(direction == enum.DirectionPurchase)
	return fmt.Sprintf("%s%d-%d", prefix, count+1, s.clock().UnixMilli()), nil
}

type tenderDetail struct {
	Subs []entity.SubTender `json:"subs,omitempty"`
	Card *maskedCard        `json:"card,omitempty"`
}

type maskedCard struct {
	Last4  string `json:"last4"`
	Holder string `json:"holder"`
	Expiry string `json:"expiry"`
}

func (s *SettlementService) buildRecords(sctx SettlementContext, alloc entity.TenderAllocation, billNo string, customer *entity.Customer) (*entity.BillHeader, []entity.BillLine, *entity.BillTerm) {
	now := s.clock()

	advance, balance := settledAmounts(alloc, sctx.Outstanding)

	header := &entity.BillHeader{
		TenantID:        sctx.TenantID,
		UserID:          sctx.UserID,
		BillNo:          billNo,
		BillDate:        now,
		Status:          enum.BillStatusPosted,
		Direction:       sctx.Direction,
		OrderNo:         sctx.OrderNo,
		CustomerName:    sctx.CustomerName,
		CustomerPhone:   sctx.CustomerPhone,
		CustomerAddress: sctx.CustomerAddress,
		CustomerGSTIN:   sctx.CustomerGSTIN,
		BasicAmount:     sctx.Totals.Basic.Round(2),
		GSTAmount:       sctx.Totals.GST.Round(2),
		CGSTAmount:      sctx.Totals.CGST.Round(2),
		SGSTAmount:      sctx.Totals.SGST.Round(2),
		NetAmount:       sctx.Outstanding.Round(2),
		DiscountType:    sctx.Discount.Type.String(),
		PromoCode:       sctx.Discount.PromoCode,
		DiscountValue:   sctx.Discount.Value.Round(2),
		DiscountAmount:  sctx.Discount.Amount.Round(2),
		PayMode:         alloc.PayMode(),
		AdvanceAmount:   advance,
		BalanceAmount:   balance,
	}
	if sctx.Discount.Type == enum.DiscountPromo {
		header.DiscountValue = sctx.Discount.Percent.Round(2)
	}
	if customer != nil {
		header.CustomerID = &customer.ID
	}

	detail := tenderDetail{Subs: alloc.Subs}
	if alloc.Card != nil {
		detail.Card = &maskedCard{
			Last4:  lastFour(alloc.Card.Number),
			Holder: alloc.Card.Holder,
			Expiry: alloc.Card.Expiry,
		}
	}
	if data, err := json.Marshal(detail); err == nil {
		header.TenderDetail = datatypes.JSON(data)
	}

	lines := make([]entity.BillLine, 0, len(sctx.Lines))
	for i, cartLine := range sctx.Lines {
		b := sctx.Breakdowns[i]
		gross := b.Base.Add(b.Tax)
		lines = append(lines, entity.BillLine{
			TenantID:     sctx.TenantID,
			ProductCode:  cartLine.ProductCode,
			ProductName:  cartLine.ProductName,
			HSNCode:      cartLine.HSNCode,
			Quantity:     cartLine.Quantity,
			UnitPrice:    cartLine.UnitPrice,
			ItemDiscount: cartLine.ItemDiscount,
			TaxRate:      cartLine.TaxRate,
			BaseAmount:   b.Base.Round(2),
			TaxAmount:    b.Tax.Round(2),
			CGSTAmount:   b.CGST.Round(2),
			SGSTAmount:   b.SGST.Round(2),
			GrossAmount:  gross.Round(2),
		})
	}

	term := &entity.BillTerm{TenantID: sctx.TenantID}

	return header, lines, term
}

// settledAmounts derives what was paid now and what is carried forward.
// Credit carries the full outstanding as balance; free and owner-discount
// settle with nothing owed either way.
func settledAmounts(alloc entity.TenderAllocation, outstanding decimal.Decimal) (advance, balance decimal.Decimal) {
	switch alloc.Method {
	case enum.TenderCredit:
		return decimal.Zero.Round(2), outstanding.Round(2)
	case enum.TenderFree, enum.TenderOwnerDiscount:
		return decimal.Zero.Round(2), decimal.Zero.Round(2)
	default:
		advance = alloc.Allocated().Round(2)
		balance = outstanding.Sub(alloc.Allocated())
		if balance.IsNegative() {
			balance = decimal.Zero
		}
		return advance, balance.Round(2)
	}
}

func (s *SettlementService) adjustStock(ctx context.Context, billNo string, sctx SettlementContext) {
	for _, line := range sctx.Lines {
		delta := -line.Quantity
		if sctx.Direction == enum.DirectionPurchase {
			delta = line.Quantity
		}
		if delta == 0 {
			continue
		}
		found, err := s.products.AdjustStockByCode(ctx, line.ProductCode, delta)
		if err != nil {
			log.Printf("Bill %s: stock adjustment for %s failed: %v", billNo, line.ProductCode, err)
			continue
		}
		if !found {
			log.Printf("Bill %s: product %s not found, stock not adjusted", billNo, line.ProductCode)
		}
	}
}

func (s *SettlementService) linkOrder(ctx context.Context, billNo, orderNo string) {
	if orderNo == "" {
		return
	}
	found, err := s.orders.MarkFulfilled(ctx, orderNo, billNo)
	if err != nil {
		log.Printf("Bill %s: closing order %s failed: %v", billNo, orderNo, err)
		return
	}
	if !found {
		log.Printf("Bill %s: order %s not found, not linked", billNo, orderNo)
	}
}

func (s *SettlementService) notifyPosted(ctx context.Context, tenant *entity.Tenant, header *entity.BillHeader, lines []entity.BillLine) {
	if s.notifier == nil || !tenant.Settings.WhatsAppNotifications {
		return
	}
	if header.CustomerPhone == "" {
		return
	}

	invoice := s.BuildInvoice(tenant, header, lines)
	if err := s.notifier.Send(ctx, invoice, NormalizeDestination(header.CustomerPhone)); err != nil {
		log.Printf("Bill %s: invoice notification failed: %v", header.BillNo, err)
	}
}

// NormalizeDestination upgrades a bare 10-digit local number to the default
// country code. Numbers already in international form pass through.
func NormalizeDestination(phone string) string {
	phone = strings.TrimSpace(phone)
	if strings.HasPrefix(phone, "+") {
		return phone
	}
	return "+91" + phone
}

func lastFour(number string) string {
	if len(number) <= 4 {
		return number
	}
	return number[len(number)-4:]
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
