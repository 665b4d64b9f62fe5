package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/hotel-backoffice/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound is returned when a lookup matches no row
	ErrNotFound = errors.New("record not found")

	// ErrFolioNotOpen is returned when a checkout races another one
	ErrFolioNotOpen = errors.New("folio is not open")
)

// FolioRepository defines the interface for folio data operations
type FolioRepository interface {
	// GetByFolioID retrieves a folio by its folio ID
	GetByFolioID(ctx context.Context, folioID string) (*domain.Folio, error)

	// GetCharges retrieves the persisted additional charges of a folio
	GetCharges(ctx context.Context, folioID string) ([]domain.Charge, error)

	// GetDiscounts retrieves the persisted discounts of a folio
	GetDiscounts(ctx context.Context, folioID string) ([]domain.Discount, error)

	// SaveCheckout stores session charges, discounts and the payment in one
	// transaction and marks the folio checked out
	SaveCheckout(ctx context.Context, checkout *Checkout) error
}

// Checkout is the unit of work persisted at front-desk checkout
type Checkout struct {
	FolioID      string
	Charges      []domain.Charge
	Discounts    []domain.Discount
	Payment      *domain.Payment
	CheckedOutAt *time.Time
}

// PaymentRepository defines the interface for payment data operations
type PaymentRepository interface {
	// GetByFolioID retrieves all payments for a folio
	GetByFolioID(ctx context.Context, folioID string) ([]*domain.Payment, error)

	// GetTotalPaid sums the payments recorded for a folio
	GetTotalPaid(ctx context.Context, folioID string) (decimal.Decimal, error)
}

// ScheduleRepository defines the interface for backup schedule operations
type ScheduleRepository interface {
	Create(ctx context.Context, schedule *domain.BackupSchedule) error

	GetByID(ctx context.Context, id uuid.UUID) (*domain.BackupSchedule, error)

	// List returns schedules matching filter ordered by next run
	List(ctx context.Context, filter domain.ScheduleFilter) ([]*domain.BackupSchedule, error)

	Update(ctx context.Context, schedule *domain.BackupSchedule) error

	Delete(ctx context.Context, id uuid.UUID) error

	// RecordRun stores run and moves the schedule's last/next run in one transaction
	RecordRun(ctx context.Context, run *domain.BackupRun, nextRunAt *time.Time) error
}
