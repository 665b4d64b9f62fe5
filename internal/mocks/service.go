package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/segyhp/hotel-backoffice/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockBillingService struct {
	mock.Mock
}

func (m *MockBillingService) GetBill(ctx context.Context, folioID string) (*domain.BillResponse, error) {
	args := m.Called(ctx, folioID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BillResponse), args.Error(1)
}

func (m *MockBillingService) PreviewBill(ctx context.Context, folioID string, request *domain.BillPreviewRequest) (*domain.BillResponse, error) {
	args := m.Called(ctx, folioID, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BillResponse), args.Error(1)
}

func (m *MockBillingService) Checkout(ctx context.Context, folioID string, request *domain.CheckoutRequest) (*domain.CheckoutResponse, error) {
	args := m.Called(ctx, folioID, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CheckoutResponse), args.Error(1)
}

type MockScheduleService struct {
	mock.Mock
}

func (m *MockScheduleService) Preview(spec domain.ScheduleSpec) (*domain.NextRunPreview, error) {
	args := m.Called(spec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NextRunPreview), args.Error(1)
}

func (m *MockScheduleService) Create(ctx context.Context, request *domain.SaveScheduleRequest) (*domain.BackupSchedule, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BackupSchedule), args.Error(1)
}

func (m *MockScheduleService) Get(ctx context.Context, id uuid.UUID) (*domain.BackupSchedule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BackupSchedule), args.Error(1)
}

func (m *MockScheduleService) List(ctx context.Context, filter domain.ScheduleFilter) ([]*domain.BackupSchedule, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.BackupSchedule), args.Error(1)
}

func (m *MockScheduleService) Update(ctx context.Context, id uuid.UUID, request *domain.SaveScheduleRequest) (*domain.BackupSchedule, error) {
	args := m.Called(ctx, id, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BackupSchedule), args.Error(1)
}

func (m *MockScheduleService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
