package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrFolioNotFound        = errors.New("folio not found")
	ErrFolioAlreadyClosed   = errors.New("folio is already checked out")
	ErrBalanceOutstanding   = errors.New("folio has an outstanding balance")
	ErrInvalidCharge        = errors.New("invalid charge")
	ErrInvalidDiscount      = errors.New("invalid discount")
	ErrInvalidPaymentAmount = errors.New("invalid payment amount")
	ErrScheduleNotFound     = errors.New("backup schedule not found")
	ErrInvalidSchedule      = errors.New("invalid backup schedule")
	ErrScheduleTimeNotSet   = errors.New("schedule time not set")
	ErrInvalidScheduleTime  = errors.New("schedule time must be HH:MM")
	ErrUnsupportedFrequency = errors.New("unsupported schedule frequency")
	ErrInvalidScheduleDay   = errors.New("schedule day out of range")
	ErrNegativeAmount       = errors.New("amount must not be negative")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeFolioNotFound        = "FOLIO_NOT_FOUND"
	ErrCodeFolioAlreadyClosed   = "FOLIO_ALREADY_CLOSED"
	ErrCodeBalanceOutstanding   = "BALANCE_OUTSTANDING"
	ErrCodeInvalidCharge        = "INVALID_CHARGE"
	ErrCodeInvalidDiscount      = "INVALID_DISCOUNT"
	ErrCodeInvalidPaymentAmount = "INVALID_PAYMENT_AMOUNT"
	ErrCodeScheduleNotFound     = "SCHEDULE_NOT_FOUND"
	ErrCodeInvalidSchedule      = "INVALID_SCHEDULE"
	ErrCodeInvalidBill          = "INVALID_BILL"
	ErrCodeDatabaseError        = "DATABASE_ERROR"
	ErrCodeCacheError           = "CACHE_ERROR"
)

// Wrap common errors with business context
func WrapFolioNotFound(folioID string) *BusinessError {
	return NewBusinessError(
		ErrCodeFolioNotFound,
		fmt.Sprintf("Folio with ID %s not found", folioID),
		ErrFolioNotFound,
	)
}

func WrapFolioAlreadyClosed(folioID string) *BusinessError {
	return NewBusinessError(
		ErrCodeFolioAlreadyClosed,
		fmt.Sprintf("Folio with ID %s is already checked out", folioID),
		ErrFolioAlreadyClosed,
	)
}

func WrapBalanceOutstanding(folioID, balance string) *BusinessError {
	return NewBusinessError(
		ErrCodeBalanceOutstanding,
		fmt.Sprintf("Folio with ID %s still owes %s", folioID, balance),
		ErrBalanceOutstanding,
	)
}

func WrapInvalidCharge(reason string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidCharge,
		reason,
		ErrInvalidCharge,
	)
}

func WrapInvalidDiscount(reason string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidDiscount,
		reason,
		ErrInvalidDiscount,
	)
}

func WrapInvalidPaymentAmount(amount string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidPaymentAmount,
		fmt.Sprintf("Invalid payment amount: %s", amount),
		ErrInvalidPaymentAmount,
	)
}

func WrapScheduleNotFound(id string) *BusinessError {
	return NewBusinessError(
		ErrCodeScheduleNotFound,
		fmt.Sprintf("Backup schedule with ID %s not found", id),
		ErrScheduleNotFound,
	)
}

func WrapInvalidSchedule(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidSchedule,
		"backup schedule is not valid",
		err,
	)
}

func WrapInvalidBill(field string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidBill,
		fmt.Sprintf("%s must not be negative", field),
		ErrNegativeAmount,
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"Cache operation failed",
		err,
	)
}

// CodeOf returns the business error code carried by err, or "" when err is
// not a BusinessError
func CodeOf(err error) string {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
