package request

// SaveDraftRequest parks the cart against a customer phone number
type SaveDraftRequest struct {
	CustomerPhone string            `json:"customer_phone" binding:"required"`
	CustomerName  string            `json:"customer_name"`
	Lines         []CartLineRequest `json:"lines" binding:"required,min=1,dive"`
}
