package models

import "github.com/google/uuid"

type Supplier struct {
	ID             uuid.UUID `json:"id" db:"id"`
	Code           string    `json:"code" db:"code"`
	SupplierName   string    `json:"supplier_name" db:"supplier_name"`
	OwnerName      string    `json:"owner_name" db:"owner_name"`
	Address        *string   `json:"address" db:"address"`
	City           *string   `json:"city" db:"city"`
	Pincode        *string   `json:"pincode" db:"pincode"`
	Mobile         string    `json:"mobile" db:"mobile"`
	Whatsapp       *string   `json:"whatsapp" db:"whatsapp"`
	Email          *string   `json:"email" db:"email"`
	DrugLicense    *string   `json:"drug_license" db:"drug_license"`
	GSTIN          *string   `json:"gstin" db:"gstin"`
	OpeningBalance *string   `json:"opening_balance" db:"opening_balance"`
	TDS            bool      `json:"tds" db:"tds"`
}
