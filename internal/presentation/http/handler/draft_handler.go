package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/softencymsc/webbill-api/internal/application/service"
	"github.com/softencymsc/webbill-api/internal/presentation/http/dto/request"
	"github.com/softencymsc/webbill-api/internal/presentation/http/dto/response"
)

// DraftHandler exposes cart save-points keyed by customer phone
type DraftHandler struct {
	drafts *service.DraftService
}

// NewDraftHandler creates a new draft handler
func NewDraftHandler(drafts *service.DraftService) *DraftHandler {
	return &DraftHandler{drafts: drafts}
}

// Save parks the cart, superseding any earlier draft for the phone
// PUT /api/v1/drafts
func (h *DraftHandler) Save(c *gin.Context) {
	var req request.SaveDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	draft, err := h.drafts.Save(c.Request.Context(), GetTenantID(c), req.CustomerPhone, req.CustomerName, request.CartLines(req.Lines))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Draft saved successfully", draft)
}

// Resume returns the parked cart for a customer phone
// GET /api/v1/drafts/:phone
func (h *DraftHandler) Resume(c *gin.Context) {
	snapshot, err := h.drafts.Resume(c.Request.Context(), c.Param("phone"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Draft retrieved successfully", snapshot)
}

// Clear removes the parked cart for a customer phone
// DELETE /api/v1/drafts/:phone
func (h *DraftHandler) Clear(c *gin.Context) {
	if err := h.drafts.Clear(c.Request.Context(), c.Param("phone")); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
