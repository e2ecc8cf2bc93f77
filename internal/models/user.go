package models

import (
	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"` // Never serialize in JSON
	Company      string    `json:"company" db:"company"`
	Role         string    `json:"role" db:"role"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	ProfilePic   *string   `json:"profile_pic" db:"profile_pic"`
}

// TokenResponse is the login response payload
type TokenResponse struct {
	AccessToken   string `json:"access_token"`
	TokenType     string `json:"token_type"`
	Username      string `json:"username"`
	Company       string `json:"company"`
	FinancialYear string `json:"financial_year"`
	Role          string `json:"role"`
}
