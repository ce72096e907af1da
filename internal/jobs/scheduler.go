package jobs

import (
	"fmt"
	"log"

	"SalesOpsHub/internal/logger"
	"SalesOpsHub/internal/serviceiface"

	"github.com/jackc/pgx/v5/pgxpool"
)

type CronService struct {
	config map[string]interface{}
	db     *pgxpool.Pool
}

func NewCronService(cfg map[string]interface{}, db *pgxpool.Pool) serviceiface.Service {
	return &CronService{
		config: cfg,
		db:     db,
	}
}

func (s *CronService) Name() string {
	return "cron"
}

func (s *CronService) Start() error {
	log.Println("Starting cron service...")

	sweepConfig := NewDefaultInboxConfig()
	if s.config != nil {
		if schedule, ok := s.config["inbox_schedule"].(string); ok && schedule != "" {
			sweepConfig.Schedule = schedule
		}
		if path, ok := s.config["inbox_path"].(string); ok && path != "" {
			sweepConfig.InboxPath = path
		}
		if tz, ok := s.config["timezone"].(string); ok && tz != "" {
			sweepConfig.TimeZone = tz
		}
	}

	if err := RunInboxSweepScheduler(sweepConfig, s.db); err != nil {
		return fmt.Errorf("failed to start inbox sweep scheduler: %v", err)
	}

	logger.GlobalLogger.LogAudit("Cron service started with inbox sweep")
	log.Println("Cron service started — Inbox Sweep scheduled")
	return nil
}

func (s *CronService) Stop() error {
	log.Println("Cron service stopped.")
	return nil
}
