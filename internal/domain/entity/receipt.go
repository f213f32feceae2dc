package entity

// InvoiceHeader holds the store header printed at the top of an invoice artifact.
type InvoiceHeader struct {
	StoreName string `json:"store_name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
	GSTIN     string `json:"gstin,omitempty"`
}

// InvoiceItem represents a single line item on a rendered invoice.
type InvoiceItem struct {
	Name      string  `json:"name"`
	HSNCode   string  `json:"hsn_code,omitempty"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Total     float64 `json:"total"`
}

// Invoice is a value object representing a renderable invoice artifact.
// It is not a database entity; it is composed from a posted bill at
// dispatch time.
type Invoice struct {
	Header   InvoiceHeader `json:"header"`
	BillNo   string        `json:"bill_no"`
	Date     string        `json:"date"`
	Customer string        `json:"customer,omitempty"`
	Phone    string        `json:"phone,omitempty"`
	PayMode  string        `json:"pay_mode,omitempty"`
	Items    []InvoiceItem `json:"items"`
	Basic    float64       `json:"basic"`
	CGST     float64       `json:"cgst"`
	SGST     float64       `json:"sgst"`
	Discount float64       `json:"discount"`
	Net      float64       `json:"net"`
	Advance  float64       `json:"advance"`
	Balance  float64       `json:"balance"`
}
