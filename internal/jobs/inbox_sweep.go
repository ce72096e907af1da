package jobs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"SalesOpsHub/api/sales/detect"
	"SalesOpsHub/api/sales/importer"
	"SalesOpsHub/api/sales/regionconfig"
	"SalesOpsHub/internal/config"
	"SalesOpsHub/internal/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robfig/cron/v3"
)

// InboxConfig drives the nightly inbox sweep. Operators drop export
// files into <InboxPath>/<region>/ and the job imports whatever it
// finds there, moving each file to done/ or failed/.
type InboxConfig struct {
	Schedule  string
	InboxPath string
	TimeZone  string
}

func NewDefaultInboxConfig() *InboxConfig {
	return &InboxConfig{
		Schedule:  config.DefaultInboxSchedule,
		InboxPath: "./inbox",
		TimeZone:  "Asia/Seoul",
	}
}

func RunInboxSweepScheduler(cfg *InboxConfig, db *pgxpool.Pool) error {
	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		loc = time.UTC
		logger.GlobalLogger.LogAudit(fmt.Sprintf("Invalid timezone %s, falling back to UTC: %v", cfg.TimeZone, err))
	}

	c := cron.New(cron.WithLocation(loc))
	_, err = c.AddFunc(cfg.Schedule, func() {
		logger.GlobalLogger.LogAudit(fmt.Sprintf("Starting inbox sweep at %s", time.Now().In(loc).Format(time.RFC3339)))
		if err := SweepInbox(context.Background(), cfg.InboxPath, db); err != nil {
			logger.GlobalLogger.LogAudit(fmt.Sprintf("Inbox sweep failed: %v", err))
		}
	})
	if err != nil {
		return fmt.Errorf("schedule inbox sweep: %w", err)
	}
	c.Start()
	return nil
}

// SweepInbox processes every pending file under the inbox, one region
// directory at a time. Each file imports independently; one bad file
// does not stop the sweep.
func SweepInbox(ctx context.Context, inboxPath string, db *pgxpool.Pool) error {
	imp := importer.New(db)
	for _, region := range regionconfig.AllRegions {
		dir := filepath.Join(inboxPath, region)
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("read inbox %s: %w", dir, err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			sweepFile(ctx, imp, dir, entry.Name(), region)
		}
	}
	return nil
}

func sweepFile(ctx context.Context, imp *importer.Importer, dir, name, region string) {
	path := filepath.Join(dir, name)

	var err error
	if platform := detect.FromFilename(name); platform != detect.PlatformNone {
		_, err = imp.ImportRawFile(ctx, path, name, platform, region, true)
	} else {
		_, err = imp.ImportWorkbook(ctx, path, region, 0, false)
	}

	dest := filepath.Join(dir, "done")
	if err != nil {
		logger.GlobalLogger.LogAudit(fmt.Sprintf("Inbox import failed for %s: %v", path, err))
		dest = filepath.Join(dir, "failed")
	}
	if mkErr := os.MkdirAll(dest, 0755); mkErr != nil {
		logger.GlobalLogger.LogAudit(fmt.Sprintf("Inbox move failed for %s: %v", path, mkErr))
		return
	}
	if mvErr := os.Rename(path, filepath.Join(dest, name)); mvErr != nil {
		logger.GlobalLogger.LogAudit(fmt.Sprintf("Inbox move failed for %s: %v", path, mvErr))
	}
}
