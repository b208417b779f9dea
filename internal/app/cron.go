package app

import (
	"context"
	"fmt"
	"time"

	"github.com/hookfire/core/internal/models"
	pkgcron "github.com/hookfire/core/internal/pkg/cron"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// runRetentionDays bounds how long run records are kept.
const runRetentionDays = 90

// registerCronJobs registers all scheduled background jobs.
func registerCronJobs(sched *pkgcron.Scheduler, db *gorm.DB, logger *zap.Logger) {
	cronLogger := logger.Named("CronService")

	sched.Register(pkgcron.Job{
		Name:        "cleanup_trigger_runs",
		Description: "prune run records older than the retention window",
		Interval:    24 * time.Hour,
		Fn: func(ctx context.Context) error {
			cutoff := time.Now().AddDate(0, 0, -runRetentionDays)
			result := db.Where("created_at < ?", cutoff).Delete(&models.TriggerRunModel{})
			if result.Error != nil {
				cronLogger.Warn("run record cleanup failed", zap.Error(result.Error))
				return result.Error
			}
			cronLogger.Info(fmt.Sprintf("run record cleanup done, %d rows removed", result.RowsAffected))
			return nil
		},
	})

	sched.Register(pkgcron.Job{
		Name:        "cleanup_sessions",
		Description: "drop expired login sessions",
		Interval:    12 * time.Hour,
		Fn: func(ctx context.Context) error {
			result := db.Where("expires_at < ?", time.Now()).Delete(&models.UserSession{})
			if result.Error != nil {
				cronLogger.Warn("session cleanup failed", zap.Error(result.Error))
				return result.Error
			}
			if result.RowsAffected > 0 {
				cronLogger.Info(fmt.Sprintf("session cleanup done, %d rows removed", result.RowsAffected))
			}
			return nil
		},
	})
}
