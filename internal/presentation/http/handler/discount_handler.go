package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/softencymsc/webbill-api/internal/application/service"
	"github.com/softencymsc/webbill-api/internal/domain/enum"
	"github.com/softencymsc/webbill-api/internal/presentation/http/dto/request"
	"github.com/softencymsc/webbill-api/internal/presentation/http/dto/response"
)

// DiscountHandler exposes the owner-discount OTP flow. Promo codes are
// applied inline on the settle request and need no endpoint of their own.
type DiscountHandler struct {
	discounts *service.DiscountService
}

// NewDiscountHandler creates a new discount handler
func NewDiscountHandler(discounts *service.DiscountService) *DiscountHandler {
	return &DiscountHandler{discounts: discounts}
}

// RequestOwner asks the store owner to authorize a discount. An OTP goes to
// the owner's phone; the cashier later submits it on the settle request.
// POST /api/v1/discounts/owner/request
func (h *DiscountHandler) RequestOwner(c *gin.Context) {
	var req request.OwnerDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	sctx, err := service.NewSettlementContext(GetTenantID(c), GetUserID(c), enum.DirectionSale, request.CartLines(req.Lines))
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.discounts.RequestOwnerDiscount(c.Request.Context(), sctx, req.ParseKind(), req.Value); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Authorization code sent to owner", nil)
}
