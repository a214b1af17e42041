package app

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, _ := time.LoadLocation(a.appConfig.System.Location)
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	var err error
	_, err = a.sched.AddFunc("@hourly", func() {
		a.SchedReconcileAssets()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	_, err = a.sched.AddFunc("@daily", func() {
		a.SchedClearExpireData()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	a.sched.Start()
}

// SchedReconcileAssets removes stored icon and image files that no
// database row references, left behind when an asset operation failed
// between its row step and its file step.
func (a *Application) SchedReconcileAssets() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	if !a.GetSettingsBoolValue("catalog", "AssetSweepEnabled") {
		return
	}

	removed, err := a.manager.ReconcileOrphanedAssets()
	if err != nil {
		zap.L().Error("asset reconciliation failed", zap.Error(err))
		return
	}
	if removed > 0 {
		zap.L().Info("asset reconciliation removed orphaned files", zap.Int("removed", removed))
	}
}

// SchedClearExpireData prunes aged operation log entries.
func (a *Application) SchedClearExpireData() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	idays := a.GetSettingsInt64Value("catalog", "OprLogRetentionDays")
	if idays == 0 {
		idays = 365
	}
	cutoff := time.Now().Add(-time.Hour * 24 * time.Duration(idays))
	deleted, err := a.oplog.CleanupBefore(cutoff)
	if err != nil {
		zap.L().Error("operation log cleanup failed", zap.Error(err))
		return
	}
	if deleted > 0 {
		zap.L().Info("operation log cleanup", zap.Int64("deleted", deleted))
	}
}
