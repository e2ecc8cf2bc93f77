package models

import (
	"github.com/google/uuid"
)

// Product is a master-data row. CurrentStock is a derived counter owned by the
// reconciliation service; nothing else may write it.
type Product struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Code         string    `json:"code" db:"code"`
	Name         string    `json:"name" db:"name"`
	CurrentStock int       `json:"current_stock" db:"current_stock"`
	Packing      *string   `json:"packing" db:"packing"`
	Manufacturer *string   `json:"manufacturer" db:"manufacturer"`
	Division     *string   `json:"division" db:"division"`
	Category     *string   `json:"category" db:"category"`
	UnitInBox    *int      `json:"unit_in_box" db:"unit_in_box"`
	UnitInCase   *int      `json:"unit_in_case" db:"unit_in_case"`
	Weight       *float64  `json:"weight" db:"weight"`
	MaxMRP       *float64  `json:"max_mrp" db:"max_mrp"`
	MaxQty       *int      `json:"max_qty" db:"max_qty"`
	RowColor     string    `json:"row_color" db:"row_color"`
	FlashMessage *string   `json:"flash_message" db:"flash_message"`
}

// StockSearchRow is what the stock dashboard consumes for one product.
type StockSearchRow struct {
	ID       uuid.UUID `json:"id"`
	PCode    string    `json:"pcode"`
	Name     string    `json:"name"`
	Packing  *string   `json:"packing"`
	Division *string   `json:"division"`
	MRP      *float64  `json:"mrp"`
	Stock    int       `json:"stock"`
}

// SalesProductRow is a product search result for the sales invoice screen:
// master attributes joined with batch/expiry/rate from the latest purchase line.
type SalesProductRow struct {
	PCode   string   `json:"pcode"`
	Name    string   `json:"name"`
	Packing string   `json:"packing"`
	MRP     float64  `json:"mrp"`
	Stock   int      `json:"stock"`
	Batch   string   `json:"batch"`
	Exp     string   `json:"exp"`
	Rate    float64  `json:"rate"`
}
