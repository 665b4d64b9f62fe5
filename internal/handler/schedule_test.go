package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/segyhp/hotel-backoffice/internal/domain"
	"github.com/segyhp/hotel-backoffice/internal/mocks"
	customError "github.com/segyhp/hotel-backoffice/pkg/errors"
	"github.com/segyhp/hotel-backoffice/pkg/logger"
	"github.com/segyhp/hotel-backoffice/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newScheduleRouter(svc *mocks.MockScheduleService) *mux.Router {
	h := NewScheduleHandler(svc, logger.Discard())
	router := mux.NewRouter()
	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/backup-schedules/preview", h.Preview).Methods("POST")
	api.HandleFunc("/backup-schedules", h.Create).Methods("POST")
	api.HandleFunc("/backup-schedules", h.List).Methods("GET")
	api.HandleFunc("/backup-schedules/{id}", h.Get).Methods("GET")
	api.HandleFunc("/backup-schedules/{id}", h.Update).Methods("PUT")
	api.HandleFunc("/backup-schedules/{id}", h.Delete).Methods("DELETE")
	return router
}

func TestScheduleHandler_Preview(t *testing.T) {
	next := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name            string
		body            string
		setupMock       func(*mocks.MockScheduleService)
		expectedStatus  int
		expectedDisplay string
	}{
		{
			name: "Success",
			body: `{"frequency":"daily","time":"00:00"}`,
			setupMock: func(svc *mocks.MockScheduleService) {
				svc.On("Preview", domain.ScheduleSpec{Frequency: domain.FrequencyDaily, Time: "00:00"}).
					Return(&domain.NextRunPreview{NextRun: &next, Display: utils.FormatNextRun(next)}, nil)
			},
			expectedStatus:  http.StatusOK,
			expectedDisplay: "Tue, Jan 2, 2024 at 12:00 AM",
		},
		{
			name: "Time not set",
			body: `{"frequency":"weekly","day_of_week":3}`,
			setupMock: func(svc *mocks.MockScheduleService) {
				svc.On("Preview", mock.AnythingOfType("domain.ScheduleSpec")).
					Return(&domain.NextRunPreview{Display: utils.NextRunNotSet}, nil)
			},
			expectedStatus:  http.StatusOK,
			expectedDisplay: "Not set",
		},
		{
			name:           "Malformed time",
			body:           `{"frequency":"daily","time":"24:00"}`,
			setupMock:      func(svc *mocks.MockScheduleService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Unknown frequency",
			body:           `{"frequency":"yearly","time":"10:00"}`,
			setupMock:      func(svc *mocks.MockScheduleService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Day of week out of range",
			body:           `{"frequency":"weekly","time":"10:00","day_of_week":7}`,
			setupMock:      func(svc *mocks.MockScheduleService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mocks.MockScheduleService{}
			tt.setupMock(svc)

			rec := serve(newScheduleRouter(svc), "POST", "/api/v1/backup-schedules/preview", tt.body)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedDisplay != "" {
				data := decodeBody(t, rec)["data"].(map[string]interface{})
				assert.Equal(t, tt.expectedDisplay, data["display"])
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestScheduleHandler_Create(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMock      func(*mocks.MockScheduleService)
		expectedStatus int
	}{
		{
			name: "Success",
			body: `{"name":"nightly","schedule":{"frequency":"daily","time":"02:00"},"retention_days":14}`,
			setupMock: func(svc *mocks.MockScheduleService) {
				svc.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.SaveScheduleRequest) bool {
					return r.Name == "nightly" && r.Schedule.Time == "02:00" && r.RetentionDays == 14 && r.Enabled == nil
				})).Return(&domain.BackupSchedule{ID: uuid.New(), Name: "nightly"}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Missing name",
			body:           `{"schedule":{"frequency":"daily","time":"02:00"}}`,
			setupMock:      func(svc *mocks.MockScheduleService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Day of month out of range",
			body:           `{"name":"monthly","schedule":{"frequency":"monthly","time":"02:00","day_of_month":32}}`,
			setupMock:      func(svc *mocks.MockScheduleService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Time not set rejected by service",
			body: `{"name":"nightly","schedule":{"frequency":"daily"}}`,
			setupMock: func(svc *mocks.MockScheduleService) {
				svc.On("Create", mock.Anything, mock.Anything).Return(nil, customError.WrapInvalidSchedule(customError.ErrScheduleTimeNotSet))
			},
			expectedStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mocks.MockScheduleService{}
			tt.setupMock(svc)

			rec := serve(newScheduleRouter(svc), "POST", "/api/v1/backup-schedules", tt.body)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestScheduleHandler_List(t *testing.T) {
	t.Run("Filters from query", func(t *testing.T) {
		svc := &mocks.MockScheduleService{}
		svc.On("List", mock.Anything, mock.MatchedBy(func(f domain.ScheduleFilter) bool {
			return f.Enabled != nil && !*f.Enabled && f.Frequency == domain.FrequencyWeekly && f.DueBefore == nil
		})).Return([]*domain.BackupSchedule{}, nil)

		rec := serve(newScheduleRouter(svc), "GET", "/api/v1/backup-schedules?enabled=false&frequency=weekly", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("Bad enabled value", func(t *testing.T) {
		svc := &mocks.MockScheduleService{}

		rec := serve(newScheduleRouter(svc), "GET", "/api/v1/backup-schedules?enabled=maybe", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	})

	t.Run("Bad frequency value", func(t *testing.T) {
		svc := &mocks.MockScheduleService{}

		rec := serve(newScheduleRouter(svc), "GET", "/api/v1/backup-schedules?frequency=yearly", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestScheduleHandler_GetUpdateDelete(t *testing.T) {
	id := uuid.New()
	path := "/api/v1/backup-schedules/" + id.String()

	t.Run("Get found", func(t *testing.T) {
		svc := &mocks.MockScheduleService{}
		svc.On("Get", mock.Anything, id).Return(&domain.BackupSchedule{ID: id, Name: "nightly"}, nil)

		rec := serve(newScheduleRouter(svc), "GET", path, "")

		require.Equal(t, http.StatusOK, rec.Code)
		data := decodeBody(t, rec)["data"].(map[string]interface{})
		assert.Equal(t, id.String(), data["id"])
	})

	t.Run("Get not found", func(t *testing.T) {
		svc := &mocks.MockScheduleService{}
		svc.On("Get", mock.Anything, id).Return(nil, customError.WrapScheduleNotFound(id.String()))

		rec := serve(newScheduleRouter(svc), "GET", path, "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Get bad id", func(t *testing.T) {
		svc := &mocks.MockScheduleService{}

		rec := serve(newScheduleRouter(svc), "GET", "/api/v1/backup-schedules/not-a-uuid", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Update", func(t *testing.T) {
		svc := &mocks.MockScheduleService{}
		svc.On("Update", mock.Anything, id, mock.AnythingOfType("*domain.SaveScheduleRequest")).
			Return(&domain.BackupSchedule{ID: id, Name: "hourly"}, nil)

		rec := serve(newScheduleRouter(svc), "PUT", path, `{"name":"hourly","schedule":{"frequency":"hourly","time":"00:15"},"enabled":false}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("Delete", func(t *testing.T) {
		svc := &mocks.MockScheduleService{}
		svc.On("Delete", mock.Anything, id).Return(nil)

		rec := serve(newScheduleRouter(svc), "DELETE", path, "")

		assert.Equal(t, http.StatusNoContent, rec.Code)
		svc.AssertExpectations(t)
	})
}
