package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/segyhp/hotel-backoffice/internal/config"
	"github.com/segyhp/hotel-backoffice/internal/repository"
	"github.com/segyhp/hotel-backoffice/internal/service"
	"github.com/segyhp/hotel-backoffice/pkg/logger"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	log.Info("Starting backup scheduler...")

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	scheduleService := service.NewScheduleService(repository.NewScheduleRepository(db), cfg, log, nil)

	cronLog := cron.VerbosePrintfLogger(log)
	c := cron.New(
		cron.WithSeconds(),
		cron.WithLocation(cfg.GetLocation()),
		cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
	)

	if err := setupCronJobs(c, cfg, log, scheduleService); err != nil {
		log.Fatalf("Error scheduling backup job: %v", err)
	}

	// Start the scheduler
	c.Start()
	log.WithField("timezone", cfg.Scheduler.Timezone).Info("Scheduler started successfully")

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down scheduler...")
	<-c.Stop().Done()
	log.Info("Scheduler stopped")
}

func setupCronJobs(c *cron.Cron, cfg *config.Config, log logrus.FieldLogger, scheduleService *service.ScheduleService) error {
	// Poll for due backup schedules
	_, err := c.AddFunc(cfg.Scheduler.Spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		triggered, err := scheduleService.RunDue(ctx)
		if err != nil {
			log.WithError(err).Error("backup poll failed")
			return
		}
		if triggered > 0 {
			log.WithField("triggered", triggered).Info("backup poll finished")
		}
	})
	return err
}
