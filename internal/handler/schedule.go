package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/segyhp/hotel-backoffice/internal/domain"
	"github.com/segyhp/hotel-backoffice/pkg/response"
	"github.com/sirupsen/logrus"
)

type ScheduleService interface {
	Preview(spec domain.ScheduleSpec) (*domain.NextRunPreview, error)
	Create(ctx context.Context, request *domain.SaveScheduleRequest) (*domain.BackupSchedule, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.BackupSchedule, error)
	List(ctx context.Context, filter domain.ScheduleFilter) ([]*domain.BackupSchedule, error)
	Update(ctx context.Context, id uuid.UUID, request *domain.SaveScheduleRequest) (*domain.BackupSchedule, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ScheduleHandler struct {
	service   ScheduleService
	validator *validator.Validate
	log       logrus.FieldLogger
}

func NewScheduleHandler(service ScheduleService, log logrus.FieldLogger) *ScheduleHandler {
	return &ScheduleHandler{
		service:   service,
		validator: newValidator(),
		log:       log,
	}
}

// Preview handles POST /api/v1/backup-schedules/preview
func (h *ScheduleHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var spec domain.ScheduleSpec
	if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}
	if err := h.validator.Struct(spec); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	preview, err := h.service.Preview(spec)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, preview)
}

// Create handles POST /api/v1/backup-schedules
func (h *ScheduleHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeSave(w, r)
	if !ok {
		return
	}

	schedule, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.log.WithError(err).Warn("create backup schedule failed")
		response.FromError(w, err)
		return
	}

	response.Created(w, schedule)
}

// List handles GET /api/v1/backup-schedules?enabled=&frequency=
func (h *ScheduleHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter domain.ScheduleFilter

	query := r.URL.Query()
	if raw := query.Get("enabled"); raw != "" {
		enabled, err := strconv.ParseBool(raw)
		if err != nil {
			response.BadRequest(w, "enabled must be true or false", err)
			return
		}
		filter.Enabled = &enabled
	}
	if frequency := query.Get("frequency"); frequency != "" {
		if err := h.validator.Var(frequency, "oneof=hourly daily weekly monthly"); err != nil {
			response.BadRequest(w, "Unknown frequency", err)
			return
		}
		filter.Frequency = frequency
	}

	schedules, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.log.WithError(err).Warn("list backup schedules failed")
		response.FromError(w, err)
		return
	}

	response.Success(w, schedules)
}

// Get handles GET /api/v1/backup-schedules/{id}
func (h *ScheduleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := scheduleID(w, r)
	if !ok {
		return
	}

	schedule, err := h.service.Get(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, schedule)
}

// Update handles PUT /api/v1/backup-schedules/{id}
func (h *ScheduleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := scheduleID(w, r)
	if !ok {
		return
	}
	req, ok := h.decodeSave(w, r)
	if !ok {
		return
	}

	schedule, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		h.log.WithError(err).WithField("schedule_id", id.String()).Warn("update backup schedule failed")
		response.FromError(w, err)
		return
	}

	response.Success(w, schedule)
}

// Delete handles DELETE /api/v1/backup-schedules/{id}
func (h *ScheduleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := scheduleID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		response.FromError(w, err)
		return
	}

	response.NoContent(w)
}

func (h *ScheduleHandler) decodeSave(w http.ResponseWriter, r *http.Request) (*domain.SaveScheduleRequest, bool) {
	var req domain.SaveScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return nil, false
	}
	if err := h.validator.Struct(req); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return nil, false
	}
	return &req, true
}

func scheduleID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid schedule ID", err)
		return uuid.Nil, false
	}
	return id, true
}
