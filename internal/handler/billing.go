package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/segyhp/hotel-backoffice/internal/domain"
	"github.com/segyhp/hotel-backoffice/pkg/response"
	"github.com/sirupsen/logrus"
)

type BillingService interface {
	GetBill(ctx context.Context, folioID string) (*domain.BillResponse, error)
	PreviewBill(ctx context.Context, folioID string, request *domain.BillPreviewRequest) (*domain.BillResponse, error)
	Checkout(ctx context.Context, folioID string, request *domain.CheckoutRequest) (*domain.CheckoutResponse, error)
}

type BillingHandler struct {
	service   BillingService
	validator *validator.Validate
	log       logrus.FieldLogger
}

func NewBillingHandler(service BillingService, log logrus.FieldLogger) *BillingHandler {
	return &BillingHandler{
		service:   service,
		validator: newValidator(),
		log:       log,
	}
}

// GetBill handles GET /api/v1/folios/{folioId}/bill
func (h *BillingHandler) GetBill(w http.ResponseWriter, r *http.Request) {
	folioID := mux.Vars(r)["folioId"]

	bill, err := h.service.GetBill(r.Context(), folioID)
	if err != nil {
		h.log.WithError(err).WithField("folio_id", folioID).Warn("get bill failed")
		response.FromError(w, err)
		return
	}

	response.Success(w, bill)
}

// PreviewBill handles POST /api/v1/folios/{folioId}/bill/preview
func (h *BillingHandler) PreviewBill(w http.ResponseWriter, r *http.Request) {
	folioID := mux.Vars(r)["folioId"]

	var req domain.BillPreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	bill, err := h.service.PreviewBill(r.Context(), folioID, &req)
	if err != nil {
		h.log.WithError(err).WithField("folio_id", folioID).Warn("bill preview failed")
		response.FromError(w, err)
		return
	}

	response.Success(w, bill)
}

// Checkout handles POST /api/v1/folios/{folioId}/checkout
func (h *BillingHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	folioID := mux.Vars(r)["folioId"]

	var req domain.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	result, err := h.service.Checkout(r.Context(), folioID, &req)
	if err != nil {
		h.log.WithError(err).WithField("folio_id", folioID).Warn("checkout failed")
		response.FromError(w, err)
		return
	}

	response.Success(w, result)
}
