package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/segyhp/hotel-backoffice/pkg/response"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

// dependencyCheck pings one backing service
type dependencyCheck struct {
	name string
	ping func(ctx context.Context) error
}

type HealthHandler struct {
	checks  []dependencyCheck
	timeout time.Duration
}

// NewHealthHandler builds the liveness and readiness endpoints. Postgres is
// always checked; a nil redis client is left out of readiness.
func NewHealthHandler(db *sqlx.DB, cache redis.Cmdable, timeout time.Duration) *HealthHandler {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	checks := []dependencyCheck{{name: "database", ping: db.PingContext}}
	if cache != nil {
		checks = append(checks, dependencyCheck{
			name: "redis",
			ping: func(ctx context.Context) error { return cache.Ping(ctx).Err() },
		})
	}

	return &HealthHandler{checks: checks, timeout: timeout}
}

type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
}

// Health reports that the process is up
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	response.Success(w, HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Checks:    map[string]string{},
	})
}

// Ready pings every dependency within the configured timeout and answers
// 503 when any of them fails
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	status := HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Checks:    make(map[string]string, len(h.checks)),
	}

	for _, check := range h.checks {
		if err := check.ping(ctx); err != nil {
			status.Status = "error"
			status.Checks[check.name] = "failed: " + err.Error()
			continue
		}
		status.Checks[check.name] = "ok"
	}

	if status.Status != "ok" {
		response.JSON(w, http.StatusServiceUnavailable, status)
		return
	}
	response.Success(w, status)
}
