package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/segyhp/hotel-backoffice/internal/domain"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var scheduleColumns = []string{
	"id", "name", "frequency", "time_of_day", "day_of_week", "day_of_month",
	"retention_days", "enabled", "next_run_at", "last_run_at", "created_at", "updated_at",
}

type scheduleRepository struct {
	db *sqlx.DB
}

func NewScheduleRepository(db *sqlx.DB) ScheduleRepository {
	return &scheduleRepository{db: db}
}

func (r *scheduleRepository) Create(ctx context.Context, s *domain.BackupSchedule) error {
	query, args, err := psql.Insert("backup_schedules").
		Columns(scheduleColumns...).
		Values(
			s.ID,
			s.Name,
			s.Frequency,
			s.Time,
			s.DayOfWeek,
			s.DayOfMonth,
			s.RetentionDays,
			s.Enabled,
			s.NextRunAt,
			s.LastRunAt,
			s.CreatedAt,
			s.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert query: %w", err)
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	return err
}

func (r *scheduleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.BackupSchedule, error) {
	query, args, err := psql.Select(scheduleColumns...).
		From("backup_schedules").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select query: %w", err)
	}

	var schedule domain.BackupSchedule
	err = r.db.GetContext(ctx, &schedule, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &schedule, nil
}

func (r *scheduleRepository) List(ctx context.Context, filter domain.ScheduleFilter) ([]*domain.BackupSchedule, error) {
	builder := psql.Select(scheduleColumns...).
		From("backup_schedules").
		OrderBy("next_run_at NULLS LAST", "name")

	if filter.Enabled != nil {
		builder = builder.Where(sq.Eq{"enabled": *filter.Enabled})
	}
	if filter.Frequency != "" {
		builder = builder.Where(sq.Eq{"frequency": filter.Frequency})
	}
	if filter.DueBefore != nil {
		builder = builder.Where(sq.LtOrEq{"next_run_at": *filter.DueBefore})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	var schedules []*domain.BackupSchedule
	if err := r.db.SelectContext(ctx, &schedules, query, args...); err != nil {
		return nil, err
	}

	return schedules, nil
}

func (r *scheduleRepository) Update(ctx context.Context, s *domain.BackupSchedule) error {
	query, args, err := psql.Update("backup_schedules").
		SetMap(map[string]interface{}{
			"name":           s.Name,
			"frequency":      s.Frequency,
			"time_of_day":    s.Time,
			"day_of_week":    s.DayOfWeek,
			"day_of_month":   s.DayOfMonth,
			"retention_days": s.RetentionDays,
			"enabled":        s.Enabled,
			"next_run_at":    s.NextRunAt,
			"updated_at":     s.UpdatedAt,
		}).
		Where(sq.Eq{"id": s.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	return expectAffected(res)
}

func (r *scheduleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := psql.Delete("backup_schedules").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	return expectAffected(res)
}

func (r *scheduleRepository) RecordRun(ctx context.Context, run *domain.BackupRun, nextRunAt *time.Time) error {
	insert, insertArgs, err := psql.Insert("backup_runs").
		Columns("id", "schedule_id", "scheduled_at", "started_at", "status").
		Values(run.ID, run.ScheduleID, run.ScheduledAt, run.StartedAt, run.Status).
		ToSql()
	if err != nil {
		return fmt.Errorf("build run insert query: %w", err)
	}

	update, updateArgs, err := psql.Update("backup_schedules").
		Set("last_run_at", run.StartedAt).
		Set("next_run_at", nextRunAt).
		Set("updated_at", run.StartedAt).
		Where(sq.Eq{"id": run.ScheduleID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build schedule update query: %w", err)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, insert, insertArgs...); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, update, updateArgs...); err != nil {
		return err
	}

	return tx.Commit()
}

func expectAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
