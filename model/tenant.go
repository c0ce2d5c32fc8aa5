package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Tenant struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	LevelID      int             `json:"levelId"`
	Balance      decimal.Decimal `json:"balance"`
	CurrencyCode string          `json:"currencyCode"`
	IsActive     bool            `json:"isActive"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

type TenantCreateRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	LevelID int    `json:"levelId" validate:"required,min=1"`
}

type TenantUpdateRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	LevelID  int    `json:"levelId" validate:"required,min=1"`
	IsActive *bool  `json:"isActive"`
}

type User struct {
	ID           string    `json:"id"`
	TenantID     string    `json:"tenantId"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Principal is the authenticated caller, resolved from the session by
// the auth middleware. Every tenant-scoped handler requires one.
type Principal struct {
	UserID   string
	TenantID string
}
