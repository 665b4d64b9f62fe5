package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	FrequencyHourly  = "hourly"
	FrequencyDaily   = "daily"
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
)

const (
	BackupRunStatusTriggered = "triggered"
	BackupRunStatusFailed    = "failed"
)

// ScheduleSpec describes when a recurring job fires
type ScheduleSpec struct {
	Frequency  string `json:"frequency" db:"frequency" validate:"required,oneof=hourly daily weekly monthly"`
	Time       string `json:"time" db:"time_of_day" validate:"omitempty,hhmm"`
	DayOfWeek  *int   `json:"day_of_week,omitempty" db:"day_of_week" validate:"omitempty,min=0,max=6"`
	DayOfMonth *int   `json:"day_of_month,omitempty" db:"day_of_month" validate:"omitempty,min=1,max=31"`
}

// BackupSchedule represents a persisted backup schedule
type BackupSchedule struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	Name          string     `json:"name" db:"name"`
	ScheduleSpec
	RetentionDays int        `json:"retention_days" db:"retention_days"`
	Enabled       bool       `json:"enabled" db:"enabled"`
	NextRunAt     *time.Time `json:"next_run_at,omitempty" db:"next_run_at"`
	LastRunAt     *time.Time `json:"last_run_at,omitempty" db:"last_run_at"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}

// BackupRun records a single triggered execution of a schedule
type BackupRun struct {
	ID          uuid.UUID `json:"id" db:"id"`
	ScheduleID  uuid.UUID `json:"schedule_id" db:"schedule_id"`
	ScheduledAt time.Time `json:"scheduled_at" db:"scheduled_at"`
	StartedAt   time.Time `json:"started_at" db:"started_at"`
	Status      string    `json:"status" db:"status"`
}

// ScheduleFilter narrows a schedule listing; nil fields are ignored
type ScheduleFilter struct {
	Enabled   *bool
	Frequency string
	DueBefore *time.Time
}

// DTOs for requests and responses

type SaveScheduleRequest struct {
	Name          string       `json:"name" validate:"required,max=100"`
	Schedule      ScheduleSpec `json:"schedule" validate:"required"`
	RetentionDays int          `json:"retention_days" validate:"gte=0,lte=3650"`
	Enabled       *bool        `json:"enabled"`
}

type NextRunPreview struct {
	NextRun *time.Time `json:"next_run,omitempty"`
	Display string     `json:"display"`
}
