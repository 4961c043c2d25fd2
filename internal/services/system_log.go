package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/huangang/scenicadmin/internal/models"
	"github.com/huangang/scenicadmin/pkg/logger"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const retentionLockName = "log_retention"

// LogRetention prunes the operation, admin login and user login logs.
type LogRetention struct {
	db            *gorm.DB
	retentionDays int
	instance      string
	cron          *cron.Cron
	now           func() time.Time
}

func NewLogRetention(db *gorm.DB, retentionDays int) *LogRetention {
	return &LogRetention{
		db:            db,
		retentionDays: retentionDays,
		instance:      uuid.NewString(),
		now:           time.Now,
	}
}

// Cleanup deletes log rows older than the retention window and returns how
// many rows went. A non-positive retention keeps everything.
func (r *LogRetention) Cleanup() (int64, error) {
	if r.retentionDays <= 0 {
		return 0, nil
	}

	cutoff := r.now().AddDate(0, 0, -r.retentionDays)
	var deleted int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{&models.OperationLog{}, &models.AdminLoginLog{}, &models.UserLoginLog{}} {
			result := tx.Where("created_at < ?", cutoff).Delete(model)
			if result.Error != nil {
				return result.Error
			}
			deleted += result.RowsAffected
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

// claim records this instance as the runner for the hour. It reports false
// when another instance already holds that hour.
func (r *LogRetention) claim() (bool, error) {
	now := r.now()
	if err := r.db.Where("lock_name = ? AND expires_at < ?", retentionLockName, now).
		Delete(&models.SchedulerLock{}).Error; err != nil {
		return false, err
	}

	lock := models.SchedulerLock{
		LockName:  retentionLockName,
		LockKey:   now.UTC().Format("2006-01-02T15"),
		LockedBy:  r.instance,
		LockedAt:  now,
		ExpiresAt: now.Add(24 * time.Hour),
	}
	result := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&lock)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// RunOnce cleans up unless another instance already did so this hour.
func (r *LogRetention) RunOnce() (ran bool, deleted int64, err error) {
	if r.retentionDays <= 0 {
		return false, 0, nil
	}
	ok, err := r.claim()
	if err != nil || !ok {
		return false, 0, err
	}
	deleted, err = r.Cleanup()
	return true, deleted, err
}

// Start schedules RunOnce with a cron spec such as "@daily". It is a no-op
// when retention is disabled.
func (r *LogRetention) Start(spec string) error {
	if r.retentionDays <= 0 {
		logger.Info().Msg("[LogRetention] log cleanup disabled (retention_days <= 0)")
		return nil
	}
	if spec == "" {
		spec = "@daily"
	}

	r.cron = cron.New()
	if _, err := r.cron.AddFunc(spec, r.run); err != nil {
		return err
	}
	r.cron.Start()
	logger.Info().Str("spec", spec).Int("retention_days", r.retentionDays).Msg("[LogRetention] scheduler started")
	return nil
}

func (r *LogRetention) Stop() {
	if r.cron == nil {
		return
	}
	<-r.cron.Stop().Done()
}

func (r *LogRetention) run() {
	ran, deleted, err := r.RunOnce()
	if err != nil {
		logger.Error().Err(err).Msg("[LogRetention] failed to cleanup old logs")
		return
	}
	if !ran {
		logger.Debug().Msg("[LogRetention] cleanup already done by another instance")
		return
	}
	if deleted > 0 {
		logger.Info().Int64("deleted", deleted).Int("retention_days", r.retentionDays).Msg("[LogRetention] cleaned up old logs")
	}
}
