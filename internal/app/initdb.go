package app

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/brightline/catalogd/internal/domain"
	"github.com/brightline/catalogd/internal/oplog"
	"github.com/brightline/catalogd/pkg/common"
)

func (a *Application) checkSuper() {
	const superUsername = "admin"
	const defaultPassword = "catalogd"

	hashedPassword := common.Sha256HashWithSalt(defaultPassword, common.GetSecretSalt())

	var operator domain.SysOpr
	err := a.gormDB.Where("username = ?", superUsername).First(&operator).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := a.gormDB.Create(&domain.SysOpr{
			ID:        common.UUIDint64(),
			Realname:  "administrator",
			Email:     "N/A",
			Username:  superUsername,
			Password:  hashedPassword,
			Level:     "super",
			Status:    common.ENABLED,
			Remark:    "super",
			LastLogin: time.Now(),
		}).Error; err != nil {
			zap.L().Error("failed to create default super admin", zap.Error(err))
		} else {
			zap.L().Info("initialized default super admin account", zap.String("username", superUsername))
		}
		return
	case err != nil:
		zap.L().Error("failed to query super admin", zap.Error(err))
		return
	}

	resetPassword := strings.TrimSpace(operator.Password) == ""
	resetLevel := !strings.EqualFold(operator.Level, "super")
	resetStatus := !strings.EqualFold(operator.Status, common.ENABLED)

	if !resetPassword && !resetLevel && !resetStatus {
		return
	}

	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if resetPassword {
		updates["password"] = hashedPassword
	}
	if resetLevel {
		updates["level"] = "super"
	}
	if resetStatus {
		updates["status"] = common.ENABLED
	}

	if err := a.gormDB.Model(&domain.SysOpr{}).Where("id = ?", operator.ID).Updates(updates).Error; err != nil {
		zap.L().Error("failed to repair super admin account", zap.Error(err))
		return
	}

	zap.L().Warn("repaired default super admin account",
		zap.String("username", superUsername),
		zap.Bool("passwordReset", resetPassword),
		zap.Bool("levelReset", resetLevel),
		zap.Bool("statusEnabled", resetStatus))
}

// defaultSettings seeds the tunables the runtime reads from sys_config.
var defaultSettings = []domain.SysConfig{
	{Sort: 1, Type: "catalog", Name: "DefaultCurrency", Value: "EUR", Remark: "Currency assumed when a product is created without one"},
	{Sort: 2, Type: "catalog", Name: "OprLogRetentionDays", Value: "365", Remark: "Days to keep operation audit log entries"},
	{Sort: 3, Type: "catalog", Name: "AssetSweepEnabled", Value: "enabled", Remark: "Whether the orphaned asset sweep runs on schedule"},
	{Sort: 4, Type: "system", Name: "PageSize", Value: "20", Remark: "Default page size for list endpoints"},
}

func (a *Application) checkSettings() {
	for _, item := range defaultSettings {
		var count int64
		a.gormDB.Model(&domain.SysConfig{}).
			Where("type = ? and name = ?", item.Type, item.Name).
			Count(&count)

		if count == 0 {
			item.ID = common.UUIDint64()
			a.gormDB.Create(&item)
			zap.L().Info("initialized config",
				zap.String("key", item.Type+"."+item.Name),
				zap.String("default", item.Value))
		}
	}
}

// checkDefaultCategories seeds a starter category vocabulary so a fresh
// install has something to assign.
func (a *Application) checkDefaultCategories() {
	defaults := []string{"General", "Featured", "Archived"}
	rctx := oplog.SystemContext()
	for _, name := range defaults {
		exists, err := a.manager.Categories().NameExists(name)
		if err != nil {
			zap.L().Error("failed to query default category", zap.String("name", name), zap.Error(err))
			continue
		}
		if !exists {
			if _, err := a.manager.Categories().Create(rctx, name); err != nil {
				zap.L().Error("failed to create default category", zap.String("name", name), zap.Error(err))
			} else {
				zap.L().Info("initialized default category", zap.String("name", name))
			}
		}
	}
}
