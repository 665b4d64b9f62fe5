package utils

import (
	"strings"
	"time"

	"github.com/segyhp/hotel-backoffice/internal/domain"
	customError "github.com/segyhp/hotel-backoffice/pkg/errors"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// CalculateBill reconciles a stay bill into its totals.
// Formula: (Room + Charges - Discounts) + Tax - (Deposit + PaymentNow), floored at zero
func CalculateBill(bill domain.StayBill) domain.BillTotals {
	chargesTotal := sumCharges(bill.PersistedCharges).Add(sumCharges(bill.SessionCharges))

	totalDiscounts := decimal.Zero
	for _, d := range bill.PersistedDiscounts {
		totalDiscounts = totalDiscounts.Add(DiscountValue(d, bill.RoomCharges))
	}
	for _, d := range bill.SessionDiscounts {
		totalDiscounts = totalDiscounts.Add(DiscountValue(d, bill.RoomCharges))
	}

	subtotal := bill.RoomCharges.Add(chargesTotal).Sub(totalDiscounts)
	totalAmount := subtotal.Add(bill.TaxAmount)
	totalPaid := bill.DepositAmount.Add(bill.PaymentAmountNow)

	balanceDue := totalAmount.Sub(totalPaid)
	if balanceDue.IsNegative() {
		balanceDue = decimal.Zero
	}

	return domain.BillTotals{
		RoomCharges:            bill.RoomCharges,
		AdditionalChargesTotal: chargesTotal,
		TotalDiscounts:         totalDiscounts,
		Subtotal:               subtotal,
		TaxAmount:              bill.TaxAmount,
		TotalAmount:            totalAmount,
		TotalPaid:              totalPaid,
		BalanceDue:             balanceDue,
	}
}

// DiscountValue returns the money value of a discount. Percentages always
// apply to room charges only.
func DiscountValue(d domain.Discount, roomCharges decimal.Decimal) decimal.Decimal {
	if d.Type == domain.DiscountTypePercentage {
		return roomCharges.Mul(d.Amount).Div(hundred)
	}
	return d.Amount
}

func sumCharges(charges []domain.Charge) decimal.Decimal {
	total := decimal.Zero
	for _, c := range charges {
		total = total.Add(c.Amount)
	}
	return total
}

// ValidateCharge rejects charges with a blank description or a non-positive amount
func ValidateCharge(c domain.Charge) error {
	if strings.TrimSpace(c.Description) == "" {
		return customError.WrapInvalidCharge("charge description is required")
	}
	if !c.Amount.IsPositive() {
		return customError.WrapInvalidCharge("charge amount must be greater than 0")
	}
	return nil
}

// ValidateDiscount rejects discounts with a blank description, a non-positive
// amount or an unknown type
func ValidateDiscount(d domain.Discount) error {
	if strings.TrimSpace(d.Description) == "" {
		return customError.WrapInvalidDiscount("discount description is required")
	}
	if !d.Amount.IsPositive() {
		return customError.WrapInvalidDiscount("discount amount must be greater than 0")
	}
	if d.Type != domain.DiscountTypeFixed && d.Type != domain.DiscountTypePercentage {
		return customError.WrapInvalidDiscount("discount type must be fixed or percentage")
	}
	return nil
}

// AddCharge returns a new session list with c appended. On validation
// failure the original list is returned unchanged.
func AddCharge(session []domain.Charge, c domain.Charge) ([]domain.Charge, error) {
	if err := ValidateCharge(c); err != nil {
		return session, err
	}
	out := make([]domain.Charge, 0, len(session)+1)
	out = append(out, session...)
	return append(out, c), nil
}

// RemoveCharge returns a new session list without the entry at index.
// An out of range index leaves the list as is.
func RemoveCharge(session []domain.Charge, index int) []domain.Charge {
	if index < 0 || index >= len(session) {
		return session
	}
	out := make([]domain.Charge, 0, len(session)-1)
	out = append(out, session[:index]...)
	return append(out, session[index+1:]...)
}

// AddDiscount returns a new session list with d appended
func AddDiscount(session []domain.Discount, d domain.Discount) ([]domain.Discount, error) {
	if err := ValidateDiscount(d); err != nil {
		return session, err
	}
	out := make([]domain.Discount, 0, len(session)+1)
	out = append(out, session...)
	return append(out, d), nil
}

// RemoveDiscount returns a new session list without the entry at index
func RemoveDiscount(session []domain.Discount, index int) []domain.Discount {
	if index < 0 || index >= len(session) {
		return session
	}
	out := make([]domain.Discount, 0, len(session)-1)
	out = append(out, session[:index]...)
	return append(out, session[index+1:]...)
}

// CountNights counts calendar nights between check-in and check-out.
// A same-day stay is billed as one night.
func CountNights(checkIn, checkOut time.Time) int {
	in := time.Date(checkIn.Year(), checkIn.Month(), checkIn.Day(), 0, 0, 0, 0, time.UTC)
	out := time.Date(checkOut.Year(), checkOut.Month(), checkOut.Day(), 0, 0, 0, 0, time.UTC)
	nights := int(out.Sub(in).Hours() / 24)
	if nights < 1 {
		return 1
	}
	return nights
}

// CalculateRoomCharges returns rate x nights for the stay
func CalculateRoomCharges(rate decimal.Decimal, checkIn, checkOut time.Time) decimal.Decimal {
	return rate.Mul(decimal.NewFromInt(int64(CountNights(checkIn, checkOut))))
}

// ValidateStayBill rejects negative money inputs and invalid session
// entries before a bill is reconciled
func ValidateStayBill(bill domain.StayBill) error {
	amounts := []struct {
		field string
		value decimal.Decimal
	}{
		{"room_charges", bill.RoomCharges},
		{"tax_amount", bill.TaxAmount},
		{"deposit_amount", bill.DepositAmount},
		{"payment_amount_now", bill.PaymentAmountNow},
	}
	for _, a := range amounts {
		if a.value.IsNegative() {
			return customError.WrapInvalidBill(a.field)
		}
	}

	for _, c := range bill.PersistedCharges {
		if c.Amount.IsNegative() {
			return customError.WrapInvalidBill("persisted charge amount")
		}
	}
	for _, d := range bill.PersistedDiscounts {
		if d.Amount.IsNegative() {
			return customError.WrapInvalidBill("persisted discount amount")
		}
	}

	for _, c := range bill.SessionCharges {
		if err := ValidateCharge(c); err != nil {
			return err
		}
	}
	for _, d := range bill.SessionDiscounts {
		if err := ValidateDiscount(d); err != nil {
			return err
		}
	}
	return nil
}
