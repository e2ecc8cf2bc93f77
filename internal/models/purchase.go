package models

// PurchaseLine is one ledger row of a purchase entry. The header columns are
// repeated on every row; rows sharing an entry_no form one entry.
type PurchaseLine struct {
	ID             int64   `json:"id" db:"id"`
	EntryNo        int     `json:"entry_no" db:"entry_no"`
	EntryDate      string  `json:"entry_date" db:"entry_date"`
	TradingAccount string  `json:"trading_account" db:"trading_account"`
	SupplierName   string  `json:"supplier_name" db:"supplier_name"`
	SupplierGSTIN  *string `json:"supplier_gstin" db:"supplier_gstin"`
	City           *string `json:"city" db:"city"`
	State          *string `json:"state" db:"state"`
	InvoiceNo      string  `json:"invoice_no" db:"invoice_no"`
	InvoiceDate    string  `json:"invoice_date" db:"invoice_date"`
	ProductName    string  `json:"product_name" db:"product_name"`
	BatchNo        string  `json:"batch_no" db:"batch_no"`
	ExpDate        *string `json:"exp_date" db:"exp_date"`
	Quantity       int     `json:"quantity" db:"quantity"`
	Free           int     `json:"free" db:"free"`
	MRP            float64 `json:"mrp" db:"mrp"`
	Rate           float64 `json:"rate" db:"rate"`
	GSTPercent     float64 `json:"gst_percent" db:"gst_percent"`
	Amount         float64 `json:"amount" db:"amount"`
}

// PurchaseHeader is the per-entry slice of the repeated header columns.
type PurchaseHeader struct {
	EntryNo        int     `json:"entry_no"`
	EntryDate      string  `json:"entry_date"`
	TradingAccount string  `json:"trading_account"`
	SupplierName   string  `json:"supplier_name"`
	SupplierGSTIN  *string `json:"supplier_gstin"`
	City           *string `json:"city"`
	State          *string `json:"state"`
	InvoiceNo      string  `json:"invoice_no"`
	InvoiceDate    string  `json:"invoice_date"`
}

// PurchaseItem carries the line-level columns on create/update payloads.
type PurchaseItem struct {
	ProductName string  `json:"product_name"`
	BatchNo     string  `json:"batch_no"`
	ExpDate     *string `json:"exp_date"`
	Quantity    int     `json:"quantity"`
	Free        int     `json:"free"`
	MRP         float64 `json:"mrp"`
	Rate        float64 `json:"rate"`
	GSTPercent  float64 `json:"gst_percent"`
	Amount      float64 `json:"amount"`
}

// PurchaseEntry is the API view of one entry: shared header plus its items.
type PurchaseEntry struct {
	PurchaseHeader
	Items []PurchaseItem `json:"items"`
}
