package models

import "github.com/google/uuid"

type Company struct {
	ID            uuid.UUID `json:"id" db:"id"`
	RegdCode      string    `json:"regd_code" db:"regd_code"`
	Name          string    `json:"name" db:"name"`
	Divisions     []string  `json:"divisions" db:"divisions"`
	ContactPerson *string   `json:"contact_person" db:"contact_person"`
	Address       *string   `json:"address" db:"address"`
	Mobile        string    `json:"mobile" db:"mobile"`
	Email         *string   `json:"email" db:"email"`
	TDS           bool      `json:"tds" db:"tds"`
	EInv          bool      `json:"einv" db:"einv"`
	PIRound       bool      `json:"pi_round" db:"pi_round"`
}
