package handler

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/softencymsc/webbill-api/internal/application/service"
	"github.com/softencymsc/webbill-api/internal/domain/entity"
	"github.com/softencymsc/webbill-api/internal/domain/enum"
	"github.com/softencymsc/webbill-api/internal/domain/repository"
	"github.com/softencymsc/webbill-api/internal/presentation/http/dto/request"
	"github.com/softencymsc/webbill-api/internal/presentation/http/dto/response"
	"github.com/softencymsc/webbill-api/pkg/apperror"
	"github.com/softencymsc/webbill-api/pkg/pagination"
)

// SettlementHandler exposes checkout and settlement queries
type SettlementHandler struct {
	settlements *service.SettlementService
	discounts   *service.DiscountService
	allocator   *service.TenderAllocator
	calculator  *service.TaxCalculator
	notifier    *service.NotificationService
}

// NewSettlementHandler creates a new settlement handler
func NewSettlementHandler(
	settlements *service.SettlementService,
	discounts *service.DiscountService,
	notifier *service.NotificationService,
) *SettlementHandler {
	return &SettlementHandler{
		settlements: settlements,
		discounts:   discounts,
		allocator:   service.NewTenderAllocator(),
		calculator:  service.NewTaxCalculator(),
		notifier:    notifier,
	}
}

// Preview prices a cart without posting anything
// POST /api/v1/settlements/preview
func (h *SettlementHandler) Preview(c *gin.Context) {
	var req request.PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	totals, breakdowns, err := h.calculator.ComputeCart(request.CartLines(req.Lines))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cart priced successfully", gin.H{
		"totals":     totals,
		"breakdowns": breakdowns,
	})
}

// Settle posts a settlement: prices the cart, applies the requested
// discount, covers the outstanding with the chosen tender and writes the
// bill records.
// POST /api/v1/settlements
func (h *SettlementHandler) Settle(c *gin.Context) {
	var req request.SettleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	ctx := c.Request.Context()

	sctx, err := service.NewSettlementContext(GetTenantID(c), GetUserID(c), req.ParseDirection(), request.CartLines(req.Lines))
	if err != nil {
		response.Error(c, err)
		return
	}
	sctx = sctx.
		WithCustomer(req.Customer.Name, req.Customer.Phone, req.Customer.Address, req.Customer.GSTIN).
		WithOrder(req.OrderNo)

	if req.Discount != nil {
		switch {
		case req.Discount.PromoCode != "" && req.Discount.OwnerOTP != "":
			response.BadRequest(c, "Choose either a promo code or an owner discount, not both")
			return
		case req.Discount.PromoCode != "":
			sctx, err = h.discounts.ApplyPromo(ctx, sctx, req.Discount.PromoCode)
		case req.Discount.OwnerOTP != "":
			sctx, err = h.discounts.ConfirmOwnerDiscount(ctx, sctx, req.Discount.OwnerOTP)
		}
		if err != nil {
			response.Error(c, err)
			return
		}
	}

	alloc, err := h.buildAllocation(c, sctx, req.Tender)
	if err != nil {
		response.Error(c, err)
		return
	}

	header, err := h.settlements.Post(ctx, sctx, alloc)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Settlement posted successfully", header)
}

func (h *SettlementHandler) buildAllocation(c *gin.Context, sctx service.SettlementContext, req request.TenderRequest) (entity.TenderAllocation, error) {
	alloc := h.allocator.Begin(sctx.Outstanding)

	method, ok := enum.ParseTenderMethod(strings.ToUpper(req.Method))
	if !ok {
		return alloc, apperror.NewBadRequestError("Unknown tender method: " + req.Method)
	}
	alloc, err := h.allocator.SelectMethod(alloc, method)
	if err != nil {
		return alloc, err
	}

	if req.Card != nil {
		alloc, err = h.allocator.AttachCard(alloc, entity.CardDetails{
			Number: req.Card.Number,
			Holder: req.Card.Holder,
			Expiry: req.Card.Expiry,
			CVC:    req.Card.CVC,
		})
		if err != nil {
			return alloc, err
		}
	}

	switch {
	case method == enum.TenderFree:
		pinHash := ""
		if tenant := GetTenant(c); tenant != nil {
			pinHash = tenant.Settings.FreeSalePINHash
		}
		return h.allocator.ConfirmFree(alloc, req.PIN, pinHash)
	case method.IsDeferred():
		return alloc, nil
	case len(req.Subs) > 0:
		for _, sub := range req.Subs {
			alloc, err = h.allocator.SetAmount(alloc, sub.Name, sub.Amount)
			if err != nil {
				return alloc, err
			}
		}
		return alloc, nil
	default:
		return h.allocator.AllocateFull(alloc)
	}
}

// List returns posted settlements, newest first
// GET /api/v1/settlements
func (h *SettlementHandler) List(c *gin.Context) {
	var params pagination.PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.BadRequest(c, "Invalid pagination parameters")
		return
	}

	filter := &repository.BillFilterParams{
		Pagination:    &params,
		Search:        c.Query("search"),
		CustomerPhone: c.Query("phone"),
	}
	if dir := c.Query("direction"); dir != "" {
		direction := enum.DirectionSale
		if dir == "purchase" {
			direction = enum.DirectionPurchase
		}
		filter.Direction = &direction
	}
	if raw := c.Query("start_date"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			filter.StartDate = &t
		}
	}
	if raw := c.Query("end_date"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			end := t.Add(24*time.Hour - time.Nanosecond)
			filter.EndDate = &end
		}
	}

	result, err := h.settlements.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Settlements retrieved successfully", result)
}

// Get returns one posted settlement with its lines
// GET /api/v1/settlements/:billNo
func (h *SettlementHandler) Get(c *gin.Context) {
	header, err := h.settlements.Get(c.Request.Context(), c.Param("billNo"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settlement retrieved successfully", header)
}

// Notify re-sends the invoice artifact for a posted settlement
// POST /api/v1/settlements/:billNo/notify
func (h *SettlementHandler) Notify(c *gin.Context) {
	var req request.NotifyRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	tenant := GetTenant(c)
	if tenant == nil {
		response.BadRequest(c, "Tenant context required")
		return
	}

	header, err := h.settlements.Get(c.Request.Context(), c.Param("billNo"))
	if err != nil {
		response.Error(c, err)
		return
	}

	destination := req.Destination
	if destination == "" {
		destination = header.CustomerPhone
	}

	invoice := h.settlements.BuildInvoice(tenant, header, header.Lines)
	if err := h.notifier.Send(c.Request.Context(), invoice, service.NormalizeDestination(destination)); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice sent successfully", gin.H{"bill_no": header.BillNo})
}
