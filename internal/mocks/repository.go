package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/hotel-backoffice/internal/domain"
	"github.com/segyhp/hotel-backoffice/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockFolioRepository struct {
	mock.Mock
}

func (m *MockFolioRepository) GetByFolioID(ctx context.Context, folioID string) (*domain.Folio, error) {
	args := m.Called(ctx, folioID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Folio), args.Error(1)
}

func (m *MockFolioRepository) GetCharges(ctx context.Context, folioID string) ([]domain.Charge, error) {
	args := m.Called(ctx, folioID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Charge), args.Error(1)
}

func (m *MockFolioRepository) GetDiscounts(ctx context.Context, folioID string) ([]domain.Discount, error) {
	args := m.Called(ctx, folioID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Discount), args.Error(1)
}

func (m *MockFolioRepository) SaveCheckout(ctx context.Context, checkout *repository.Checkout) error {
	args := m.Called(ctx, checkout)
	return args.Error(0)
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) GetByFolioID(ctx context.Context, folioID string) ([]*domain.Payment, error) {
	args := m.Called(ctx, folioID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) GetTotalPaid(ctx context.Context, folioID string) (decimal.Decimal, error) {
	args := m.Called(ctx, folioID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type MockScheduleRepository struct {
	mock.Mock
}

func (m *MockScheduleRepository) Create(ctx context.Context, schedule *domain.BackupSchedule) error {
	args := m.Called(ctx, schedule)
	return args.Error(0)
}

func (m *MockScheduleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.BackupSchedule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BackupSchedule), args.Error(1)
}

func (m *MockScheduleRepository) List(ctx context.Context, filter domain.ScheduleFilter) ([]*domain.BackupSchedule, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.BackupSchedule), args.Error(1)
}

func (m *MockScheduleRepository) Update(ctx context.Context, schedule *domain.BackupSchedule) error {
	args := m.Called(ctx, schedule)
	return args.Error(0)
}

func (m *MockScheduleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockScheduleRepository) RecordRun(ctx context.Context, run *domain.BackupRun, nextRunAt *time.Time) error {
	args := m.Called(ctx, run, nextRunAt)
	return args.Error(0)
}
