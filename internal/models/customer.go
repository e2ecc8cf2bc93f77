package models

import "github.com/google/uuid"

type Customer struct {
	ID                 uuid.UUID `json:"id" db:"id"`
	Code               string    `json:"code" db:"code"`
	Name               string    `json:"name" db:"name"`
	OwnerName          *string   `json:"owner_name" db:"owner_name"`
	Address            *string   `json:"address" db:"address"`
	Landmark           *string   `json:"landmark" db:"landmark"`
	Area               *string   `json:"area" db:"area"`
	City               *string   `json:"city" db:"city"`
	State              *string   `json:"state" db:"state"`
	Pincode            *string   `json:"pincode" db:"pincode"`
	Mobile             string    `json:"mobile" db:"mobile"`
	Whatsapp           *string   `json:"whatsapp" db:"whatsapp"`
	Email              *string   `json:"email" db:"email"`
	DrugLicense        *string   `json:"drug_license" db:"drug_license"`
	GSTIN              *string   `json:"gstin" db:"gstin"`
	RefrigeratorDetail *string   `json:"refrigerator_detail" db:"refrigerator_detail"`
	OpeningBalance     *string   `json:"opening_balance" db:"opening_balance"`
	TCS                bool      `json:"tcs" db:"tcs"`
	TDS                bool      `json:"tds" db:"tds"`
}
