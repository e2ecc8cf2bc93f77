package models

// SalesInvoice is the header row of a sales invoice. Monetary totals are
// stored as supplied by the caller and never recomputed.
type SalesInvoice struct {
	ID             int64   `json:"id" db:"id"`
	InvoiceNo      string  `json:"invoice_no" db:"invoice_no"`
	InvoiceDate    string  `json:"invoice_date" db:"invoice_date"`
	TradingAccount string  `json:"trading_account" db:"trading_account"`
	Customer       string  `json:"customer" db:"customer"`
	Area           *string `json:"area" db:"area"`
	City           *string `json:"city" db:"city"`
	State          *string `json:"state" db:"state"`
	PaymentMode    *string `json:"payment_mode" db:"payment_mode"`
	DueDays        *int    `json:"due_days" db:"due_days"`
	Notes          *string `json:"notes" db:"notes"`
	Subtotal       float64 `json:"subtotal" db:"subtotal"`
	TotalDiscount  float64 `json:"total_discount" db:"total_discount"`
	TotalGST       float64 `json:"total_gst" db:"total_gst"`
	GrandTotal     float64 `json:"grand_total" db:"grand_total"`
}

type SalesInvoiceItem struct {
	ID        int64   `json:"id" db:"id"`
	InvoiceNo string  `json:"invoice_no" db:"invoice_no"`
	PCode     string  `json:"pcode" db:"pcode"`
	Name      string  `json:"name" db:"name"`
	Batch     string  `json:"batch" db:"batch"`
	Exp       *string `json:"exp" db:"exp"`
	Qty       int     `json:"qty" db:"qty"`
	Free      int     `json:"free" db:"free"`
	Rate      float64 `json:"rate" db:"rate"`
	GST       float64 `json:"gst" db:"gst"`
	Discount  float64 `json:"discount" db:"discount"`
	LineTotal float64 `json:"line_total" db:"line_total"`
}

// SalesInvoiceFull is the API view: header plus its items.
type SalesInvoiceFull struct {
	SalesInvoice
	Items []SalesInvoiceItem `json:"items"`
}
