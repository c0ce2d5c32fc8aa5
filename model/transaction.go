package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const TRANSACTION_TYPE_TOPUP TransactionType = "topup"
const TRANSACTION_TYPE_CHARGE TransactionType = "charge"

type Transaction struct {
	ID        string          `json:"id"`
	TenantID  string          `json:"tenantId"`
	Type      TransactionType `json:"type"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Reference string          `json:"reference,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

type TopupRequest struct {
	IntentID string `json:"intentId" validate:"required"`
}

type CreateIntentRequest struct {
	Amount string `json:"amount" validate:"required"`
}

type PaymentIntent struct {
	ID           string          `json:"id"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	ClientSecret string          `json:"clientSecret"`
	Status       string          `json:"status"`
}
