package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/hotel-backoffice/internal/config"
	"github.com/segyhp/hotel-backoffice/internal/domain"
	"github.com/segyhp/hotel-backoffice/internal/repository"
	customError "github.com/segyhp/hotel-backoffice/pkg/errors"
	"github.com/segyhp/hotel-backoffice/pkg/metrics"
	"github.com/segyhp/hotel-backoffice/pkg/utils"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const defaultBillTTL = 10 * time.Minute

type BillingService struct {
	FolioRepo   repository.FolioRepository
	PaymentRepo repository.PaymentRepository
	redis       redis.Cmdable
	metrics     *metrics.Metrics
	log         logrus.FieldLogger
	billTTL     time.Duration
	now         func() time.Time
}

// NewBillingService wires the checkout service. redis, cfg and m may be nil.
func NewBillingService(
	folioRepo repository.FolioRepository,
	paymentRepo repository.PaymentRepository,
	redis redis.Cmdable,
	cfg *config.Config,
	log logrus.FieldLogger,
	m *metrics.Metrics,
) *BillingService {
	ttl := defaultBillTTL
	if cfg != nil {
		ttl = cfg.GetBillTTL()
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &BillingService{
		FolioRepo:   folioRepo,
		PaymentRepo: paymentRepo,
		redis:       redis,
		metrics:     m,
		log:         log,
		billTTL:     ttl,
		now:         time.Now,
	}
}

func billCacheKey(folioID string) string {
	return fmt.Sprintf("folio:%s:bill", folioID)
}

// GetBill returns the totals of everything persisted on a folio together
// with the payments that make up its deposit
func (s *BillingService) GetBill(ctx context.Context, folioID string) (*domain.BillResponse, error) {
	if cached := s.cachedBill(ctx, folioID); cached != nil {
		return cached, nil
	}

	folio, bill, err := s.loadBill(ctx, folioID)
	if err != nil {
		return nil, err
	}

	payments, err := s.PaymentRepo.GetByFolioID(ctx, folioID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	totals := utils.CalculateBill(bill)
	resp := &domain.BillResponse{
		FolioID:  folio.FolioID,
		Status:   folio.Status,
		Nights:   utils.CountNights(folio.CheckIn, folio.CheckOut),
		Totals:   &totals,
		Payments: payments,
	}

	s.cacheBill(ctx, resp)
	return resp, nil
}

// PreviewBill recomputes totals with the charges, discounts and payment
// entered at the desk but not yet saved
func (s *BillingService) PreviewBill(ctx context.Context, folioID string, request *domain.BillPreviewRequest) (*domain.BillResponse, error) {
	folio, bill, err := s.loadBill(ctx, folioID)
	if err != nil {
		return nil, err
	}

	if err := applySession(&bill, request.SessionCharges, request.SessionDiscounts, request.PaymentAmountNow); err != nil {
		return nil, err
	}

	totals := utils.CalculateBill(bill)
	return &domain.BillResponse{
		FolioID: folio.FolioID,
		Status:  folio.Status,
		Nights:  utils.CountNights(folio.CheckIn, folio.CheckOut),
		Totals:  &totals,
	}, nil
}

// Checkout saves the session entries and payment and closes the folio.
// The folio must be settled in full by the payment.
func (s *BillingService) Checkout(ctx context.Context, folioID string, request *domain.CheckoutRequest) (*domain.CheckoutResponse, error) {
	folio, bill, err := s.loadBill(ctx, folioID)
	if err != nil {
		s.metrics.IncCheckout("failed")
		return nil, err
	}

	if folio.Status != domain.FolioStatusOpen {
		s.metrics.IncCheckout("failed")
		return nil, customError.WrapFolioAlreadyClosed(folioID)
	}

	if err := applySession(&bill, request.SessionCharges, request.SessionDiscounts, request.PaymentAmountNow); err != nil {
		s.metrics.IncCheckout("failed")
		return nil, err
	}

	totals := utils.CalculateBill(bill)
	if totals.BalanceDue.IsPositive() {
		s.metrics.IncCheckout("outstanding")
		return nil, customError.WrapBalanceOutstanding(folioID, totals.BalanceDue.StringFixed(2))
	}

	now := s.now()
	checkout := &repository.Checkout{
		FolioID:      folioID,
		Charges:      make([]domain.Charge, 0, len(bill.SessionCharges)),
		Discounts:    make([]domain.Discount, 0, len(bill.SessionDiscounts)),
		CheckedOutAt: &now,
	}
	for _, c := range bill.SessionCharges {
		c.ID = uuid.New()
		c.FolioID = folioID
		c.CreatedAt = now
		checkout.Charges = append(checkout.Charges, c)
	}
	for _, d := range bill.SessionDiscounts {
		d.ID = uuid.New()
		d.FolioID = folioID
		d.CreatedAt = now
		checkout.Discounts = append(checkout.Discounts, d)
	}

	// Only the part of the payment that settles the folio is recorded
	applied := totals.TotalAmount.Sub(bill.DepositAmount)
	if applied.GreaterThan(bill.PaymentAmountNow) {
		applied = bill.PaymentAmountNow
	}
	if applied.IsPositive() {
		method := request.PaymentMethod
		if method == "" {
			method = domain.PaymentMethodCash
		}
		checkout.Payment = &domain.Payment{
			ID:        uuid.New(),
			FolioID:   folioID,
			Amount:    applied,
			Method:    method,
			CreatedAt: now,
		}
	} else {
		applied = decimal.Zero
	}

	if err := s.FolioRepo.SaveCheckout(ctx, checkout); err != nil {
		s.metrics.IncCheckout("failed")
		if errors.Is(err, repository.ErrFolioNotOpen) {
			return nil, customError.WrapFolioAlreadyClosed(folioID)
		}
		return nil, customError.WrapDatabaseError(err)
	}

	s.invalidateBill(ctx, folioID)
	s.metrics.IncCheckout("completed")

	folio.Status = domain.FolioStatusCheckedOut
	folio.CheckedOutAt = &now

	s.log.WithFields(logrus.Fields{
		"folio_id":     folioID,
		"total_amount": totals.TotalAmount.String(),
		"paid_now":     applied.String(),
	}).Info("folio checked out")

	return &domain.CheckoutResponse{
		Folio:     folio,
		Totals:    &totals,
		Payment:   checkout.Payment,
		ChangeDue: bill.PaymentAmountNow.Sub(applied),
	}, nil
}

// loadBill assembles the persisted part of a folio's bill
func (s *BillingService) loadBill(ctx context.Context, folioID string) (*domain.Folio, domain.StayBill, error) {
	folio, err := s.FolioRepo.GetByFolioID(ctx, folioID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, domain.StayBill{}, customError.WrapFolioNotFound(folioID)
	}
	if err != nil {
		return nil, domain.StayBill{}, customError.WrapDatabaseError(err)
	}

	charges, err := s.FolioRepo.GetCharges(ctx, folioID)
	if err != nil {
		return nil, domain.StayBill{}, customError.WrapDatabaseError(err)
	}

	discounts, err := s.FolioRepo.GetDiscounts(ctx, folioID)
	if err != nil {
		return nil, domain.StayBill{}, customError.WrapDatabaseError(err)
	}

	deposit, err := s.PaymentRepo.GetTotalPaid(ctx, folioID)
	if err != nil {
		return nil, domain.StayBill{}, customError.WrapDatabaseError(err)
	}

	return folio, domain.StayBill{
		RoomCharges:        utils.CalculateRoomCharges(folio.RoomRate, folio.CheckIn, folio.CheckOut),
		PersistedCharges:   charges,
		PersistedDiscounts: discounts,
		TaxAmount:          folio.TaxAmount,
		DepositAmount:      deposit,
	}, nil
}

// applySession validates each desk entry the same way the add dialogs do
// and puts them on bill
func applySession(bill *domain.StayBill, charges []domain.Charge, discounts []domain.Discount, paymentNow decimal.Decimal) error {
	if paymentNow.IsNegative() {
		return customError.WrapInvalidPaymentAmount(paymentNow.String())
	}

	var err error
	for _, c := range charges {
		if bill.SessionCharges, err = utils.AddCharge(bill.SessionCharges, c); err != nil {
			return err
		}
	}
	for _, d := range discounts {
		if bill.SessionDiscounts, err = utils.AddDiscount(bill.SessionDiscounts, d); err != nil {
			return err
		}
	}

	bill.PaymentAmountNow = paymentNow
	return nil
}

func (s *BillingService) cachedBill(ctx context.Context, folioID string) *domain.BillResponse {
	if s.redis == nil {
		return nil
	}

	raw, err := s.redis.Get(ctx, billCacheKey(folioID)).Bytes()
	if errors.Is(err, redis.Nil) {
		s.metrics.IncCache("miss")
		return nil
	}
	if err != nil {
		s.metrics.IncCache("error")
		s.log.WithError(customError.WrapCacheError(err)).Warn("bill cache read failed")
		return nil
	}

	var resp domain.BillResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		s.metrics.IncCache("error")
		return nil
	}

	s.metrics.IncCache("hit")
	return &resp
}

func (s *BillingService) cacheBill(ctx context.Context, resp *domain.BillResponse) {
	if s.redis == nil {
		return
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, billCacheKey(resp.FolioID), raw, s.billTTL).Err(); err != nil {
		s.log.WithError(customError.WrapCacheError(err)).Warn("bill cache write failed")
	}
}

func (s *BillingService) invalidateBill(ctx context.Context, folioID string) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, billCacheKey(folioID)).Err(); err != nil {
		s.log.WithError(customError.WrapCacheError(err)).Warn("bill cache invalidation failed")
	}
}
