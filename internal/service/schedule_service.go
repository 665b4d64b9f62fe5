package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/hotel-backoffice/internal/config"
	"github.com/segyhp/hotel-backoffice/internal/domain"
	"github.com/segyhp/hotel-backoffice/internal/repository"
	customError "github.com/segyhp/hotel-backoffice/pkg/errors"
	"github.com/segyhp/hotel-backoffice/pkg/metrics"
	"github.com/segyhp/hotel-backoffice/pkg/utils"

	"github.com/sirupsen/logrus"
)

type ScheduleService struct {
	ScheduleRepo     repository.ScheduleRepository
	metrics          *metrics.Metrics
	log              logrus.FieldLogger
	defaultRetention int
	now              func() time.Time
}

// NewScheduleService wires the backup schedule service. Times are projected
// in the configured scheduler timezone; cfg and m may be nil.
func NewScheduleService(
	scheduleRepo repository.ScheduleRepository,
	cfg *config.Config,
	log logrus.FieldLogger,
	m *metrics.Metrics,
) *ScheduleService {
	loc := time.UTC
	retention := 0
	if cfg != nil {
		loc = cfg.GetLocation()
		retention = cfg.Business.DefaultRetentionDays
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &ScheduleService{
		ScheduleRepo:     scheduleRepo,
		metrics:          m,
		log:              log,
		defaultRetention: retention,
		now:              func() time.Time { return time.Now().In(loc) },
	}
}

// Preview projects the next run of spec without saving anything
func (s *ScheduleService) Preview(spec domain.ScheduleSpec) (*domain.NextRunPreview, error) {
	preview, err := utils.PreviewNextRun(spec, s.now())
	if err != nil {
		return nil, customError.WrapInvalidSchedule(err)
	}
	return preview, nil
}

func (s *ScheduleService) Create(ctx context.Context, request *domain.SaveScheduleRequest) (*domain.BackupSchedule, error) {
	now := s.now()
	next, err := utils.NextRun(request.Schedule, now)
	if err != nil {
		return nil, customError.WrapInvalidSchedule(err)
	}

	schedule := &domain.BackupSchedule{
		ID:            uuid.New(),
		Name:          request.Name,
		ScheduleSpec:  request.Schedule,
		RetentionDays: request.RetentionDays,
		Enabled:       true,
		NextRunAt:     &next,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if schedule.RetentionDays == 0 {
		schedule.RetentionDays = s.defaultRetention
	}
	if request.Enabled != nil {
		schedule.Enabled = *request.Enabled
	}

	if err := s.ScheduleRepo.Create(ctx, schedule); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.log.WithFields(logrus.Fields{
		"schedule_id": schedule.ID.String(),
		"frequency":   schedule.Frequency,
		"next_run_at": utils.FormatNextRun(next),
	}).Info("backup schedule created")

	return schedule, nil
}

func (s *ScheduleService) Get(ctx context.Context, id uuid.UUID) (*domain.BackupSchedule, error) {
	schedule, err := s.ScheduleRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, customError.WrapScheduleNotFound(id.String())
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return schedule, nil
}

func (s *ScheduleService) List(ctx context.Context, filter domain.ScheduleFilter) ([]*domain.BackupSchedule, error) {
	schedules, err := s.ScheduleRepo.List(ctx, filter)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	if schedules == nil {
		schedules = []*domain.BackupSchedule{}
	}
	return schedules, nil
}

// Update replaces a schedule's settings and re-projects its next run
func (s *ScheduleService) Update(ctx context.Context, id uuid.UUID, request *domain.SaveScheduleRequest) (*domain.BackupSchedule, error) {
	schedule, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	next, err := utils.NextRun(request.Schedule, now)
	if err != nil {
		return nil, customError.WrapInvalidSchedule(err)
	}

	schedule.Name = request.Name
	schedule.ScheduleSpec = request.Schedule
	if request.RetentionDays != 0 {
		schedule.RetentionDays = request.RetentionDays
	}
	if request.Enabled != nil {
		schedule.Enabled = *request.Enabled
	}
	schedule.NextRunAt = &next
	schedule.UpdatedAt = now

	err = s.ScheduleRepo.Update(ctx, schedule)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, customError.WrapScheduleNotFound(id.String())
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return schedule, nil
}

func (s *ScheduleService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.ScheduleRepo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return customError.WrapScheduleNotFound(id.String())
	}
	if err != nil {
		return customError.WrapDatabaseError(err)
	}
	return nil
}

// RunDue triggers every enabled schedule whose next run has arrived and
// moves it to its following run. A failing schedule is logged and skipped.
// It returns how many runs were recorded.
func (s *ScheduleService) RunDue(ctx context.Context) (int, error) {
	now := s.now()
	enabled := true

	due, err := s.ScheduleRepo.List(ctx, domain.ScheduleFilter{Enabled: &enabled, DueBefore: &now})
	if err != nil {
		return 0, customError.WrapDatabaseError(err)
	}

	triggered := 0
	for _, schedule := range due {
		log := s.log.WithFields(logrus.Fields{
			"schedule_id": schedule.ID.String(),
			"name":        schedule.Name,
			"frequency":   schedule.Frequency,
		})

		next, err := utils.NextRun(schedule.ScheduleSpec, now)
		if err != nil {
			s.metrics.IncBackupRun(schedule.Frequency, domain.BackupRunStatusFailed)
			log.WithError(err).Error("cannot project next backup run")
			continue
		}

		scheduledAt := now
		if schedule.NextRunAt != nil {
			scheduledAt = *schedule.NextRunAt
		}
		run := &domain.BackupRun{
			ID:          uuid.New(),
			ScheduleID:  schedule.ID,
			ScheduledAt: scheduledAt,
			StartedAt:   now,
			Status:      domain.BackupRunStatusTriggered,
		}

		if err := s.ScheduleRepo.RecordRun(ctx, run, &next); err != nil {
			s.metrics.IncBackupRun(schedule.Frequency, domain.BackupRunStatusFailed)
			log.WithError(err).Error("failed to record backup run")
			continue
		}

		s.metrics.IncBackupRun(schedule.Frequency, domain.BackupRunStatusTriggered)
		log.WithField("next_run_at", utils.FormatNextRun(next)).Info("backup run triggered")
		triggered++
	}

	return triggered, nil
}
