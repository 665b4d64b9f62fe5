package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	FolioStatusOpen       = "open"
	FolioStatusCheckedOut = "checked_out"
)

const (
	DiscountTypeFixed      = "fixed"
	DiscountTypePercentage = "percentage"
)

// Folio represents a guest's running account for a stay
type Folio struct {
	ID           uuid.UUID       `json:"id" db:"id"`
	FolioID      string          `json:"folio_id" db:"folio_id"`
	GuestName    string          `json:"guest_name" db:"guest_name"`
	RoomNumber   string          `json:"room_number" db:"room_number"`
	RoomRate     decimal.Decimal `json:"room_rate" db:"room_rate"`
	CheckIn      time.Time       `json:"check_in" db:"check_in"`
	CheckOut     time.Time       `json:"check_out" db:"check_out"`
	TaxAmount    decimal.Decimal `json:"tax_amount" db:"tax_amount"`
	Status       string          `json:"status" db:"status"`
	CheckedOutAt *time.Time      `json:"checked_out_at,omitempty" db:"checked_out_at"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at" db:"updated_at"`
}

// Charge is an additional charge posted to a folio (minibar, laundry, ...)
type Charge struct {
	ID          uuid.UUID       `json:"id,omitempty" db:"id"`
	FolioID     string          `json:"folio_id,omitempty" db:"folio_id"`
	Description string          `json:"description" db:"description" validate:"required"`
	Amount      decimal.Decimal `json:"amount" db:"amount" validate:"decimal_gt=0"`
	Category    string          `json:"category" db:"category"`
	CreatedAt   time.Time       `json:"created_at,omitempty" db:"created_at"`
}

// Discount is either a fixed amount or a percentage of room charges
type Discount struct {
	ID          uuid.UUID       `json:"id,omitempty" db:"id"`
	FolioID     string          `json:"folio_id,omitempty" db:"folio_id"`
	Description string          `json:"description" db:"description" validate:"required"`
	Amount      decimal.Decimal `json:"amount" db:"amount" validate:"decimal_gt=0"`
	Type        string          `json:"type" db:"type" validate:"required,oneof=fixed percentage"`
	CreatedAt   time.Time       `json:"created_at,omitempty" db:"created_at"`
}

// StayBill is the input of the bill calculation. Persisted and session
// entries are kept apart; only session entries can be removed.
type StayBill struct {
	RoomCharges        decimal.Decimal `json:"room_charges"`
	PersistedCharges   []Charge        `json:"persisted_charges"`
	SessionCharges     []Charge        `json:"session_charges"`
	PersistedDiscounts []Discount      `json:"persisted_discounts"`
	SessionDiscounts   []Discount      `json:"session_discounts"`
	TaxAmount          decimal.Decimal `json:"tax_amount"`
	DepositAmount      decimal.Decimal `json:"deposit_amount"`
	PaymentAmountNow   decimal.Decimal `json:"payment_amount_now"`
}

// BillTotals is the result of reconciling a StayBill
type BillTotals struct {
	RoomCharges            decimal.Decimal `json:"room_charges"`
	AdditionalChargesTotal decimal.Decimal `json:"additional_charges_total"`
	TotalDiscounts         decimal.Decimal `json:"total_discounts"`
	Subtotal               decimal.Decimal `json:"subtotal"`
	TaxAmount              decimal.Decimal `json:"tax_amount"`
	TotalAmount            decimal.Decimal `json:"total_amount"`
	TotalPaid              decimal.Decimal `json:"total_paid"`
	BalanceDue             decimal.Decimal `json:"balance_due"`
}

// DTOs for requests and responses

type BillPreviewRequest struct {
	SessionCharges   []Charge        `json:"session_charges" validate:"dive"`
	SessionDiscounts []Discount      `json:"session_discounts" validate:"dive"`
	PaymentAmountNow decimal.Decimal `json:"payment_amount_now" validate:"decimal_gte=0"`
}

type CheckoutRequest struct {
	SessionCharges   []Charge        `json:"session_charges" validate:"dive"`
	SessionDiscounts []Discount      `json:"session_discounts" validate:"dive"`
	PaymentAmountNow decimal.Decimal `json:"payment_amount_now" validate:"decimal_gte=0"`
	PaymentMethod    string          `json:"payment_method" validate:"omitempty,oneof=cash card transfer"`
}

type BillResponse struct {
	FolioID string      `json:"folio_id"`
	Status  string      `json:"status"`
	Nights  int         `json:"nights"`
	Totals  *BillTotals `json:"totals"`

	Payments []*Payment `json:"payments,omitempty"`
}

type CheckoutResponse struct {
	Folio     *Folio          `json:"folio"`
	Totals    *BillTotals     `json:"totals"`
	Payment   *Payment        `json:"payment,omitempty"`
	ChangeDue decimal.Decimal `json:"change_due"`
}
