package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/segyhp/hotel-backoffice/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleRepository_List(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewScheduleRepository(db)

	enabled := true
	next := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	created := next.AddDate(0, -1, 0)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("FROM backup_schedules WHERE enabled = $1 AND frequency = $2 ORDER BY next_run_at NULLS LAST, name")).
		WithArgs(true, domain.FrequencyMonthly).
		WillReturnRows(sqlmock.NewRows(scheduleColumns).AddRow(
			id.String(), "Nightly folios", domain.FrequencyMonthly, "00:00", nil, int64(1),
			int64(30), true, next, nil, created, created,
		))

	schedules, err := repo.List(context.Background(), domain.ScheduleFilter{Enabled: &enabled, Frequency: domain.FrequencyMonthly})

	require.NoError(t, err)
	require.Len(t, schedules, 1)
	s := schedules[0]
	assert.Equal(t, id, s.ID)
	assert.Equal(t, "00:00", s.Time)
	assert.Nil(t, s.DayOfWeek)
	require.NotNil(t, s.DayOfMonth)
	assert.Equal(t, 1, *s.DayOfMonth)
	require.NotNil(t, s.NextRunAt)
	assert.True(t, next.Equal(*s.NextRunAt))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepository_ListDue(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewScheduleRepository(db)

	enabled := true
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE enabled = $1 AND next_run_at <= $2")).
		WithArgs(true, now).
		WillReturnRows(sqlmock.NewRows(scheduleColumns))

	schedules, err := repo.List(context.Background(), domain.ScheduleFilter{Enabled: &enabled, DueBefore: &now})

	require.NoError(t, err)
	assert.Empty(t, schedules)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepository_GetByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewScheduleRepository(db)

	id := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta("FROM backup_schedules WHERE id = $1")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(scheduleColumns))

	schedule, err := repo.GetByID(context.Background(), id)

	assert.Nil(t, schedule)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewScheduleRepository(db)

	now := time.Now()
	schedule := &domain.BackupSchedule{
		ID:            uuid.New(),
		Name:          "Weekly full",
		ScheduleSpec:  domain.ScheduleSpec{Frequency: domain.FrequencyWeekly, Time: "02:30"},
		RetentionDays: 14,
		Enabled:       true,
		NextRunAt:     &now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO backup_schedules (id,name,frequency,time_of_day,day_of_week,day_of_month,retention_days,enabled,next_run_at,last_run_at,created_at,updated_at)")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Create(context.Background(), schedule))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepository_Delete_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewScheduleRepository(db)

	id := uuid.New()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM backup_schedules WHERE id = $1")).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), id), ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepository_RecordRun(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewScheduleRepository(db)

	started := time.Date(2024, 1, 2, 0, 0, 5, 0, time.UTC)
	next := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
	run := &domain.BackupRun{
		ID:          uuid.New(),
		ScheduleID:  uuid.New(),
		ScheduledAt: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		StartedAt:   started,
		Status:      domain.BackupRunStatusTriggered,
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO backup_runs")).
		WithArgs(run.ID, run.ScheduleID, run.ScheduledAt, run.StartedAt, run.Status).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE backup_schedules SET last_run_at = $1, next_run_at = $2, updated_at = $3 WHERE id = $4")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	assert.NoError(t, repo.RecordRun(context.Background(), run, &next))
	assert.NoError(t, mock.ExpectationsWereMet())
}
