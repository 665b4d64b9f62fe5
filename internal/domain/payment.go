package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	PaymentMethodCash     = "cash"
	PaymentMethodCard     = "card"
	PaymentMethodTransfer = "transfer"
)

// Payment is money received against a folio (deposits included)
type Payment struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	FolioID   string          `json:"folio_id" db:"folio_id"`
	Amount    decimal.Decimal `json:"amount" db:"amount"`
	Method    string          `json:"method" db:"method"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}
