package app

import (
	"github.com/spf13/cast"

	"github.com/brightline/catalogd/internal/domain"
)

func (a *Application) settingValue(category, key string) string {
	var item domain.SysConfig
	err := a.gormDB.Where("type = ? and name = ?", category, key).First(&item).Error
	if err != nil {
		return ""
	}
	return item.Value
}

// GetSettingsStringValue retrieves a string configuration value
func (a *Application) GetSettingsStringValue(category, key string) string {
	return a.settingValue(category, key)
}

// GetSettingsInt64Value retrieves an int64 configuration value
func (a *Application) GetSettingsInt64Value(category, key string) int64 {
	return cast.ToInt64(a.settingValue(category, key))
}

// GetSettingsBoolValue retrieves a boolean configuration value; the
// stored "enabled"/"disabled" convention maps to true/false.
func (a *Application) GetSettingsBoolValue(category, key string) bool {
	v := a.settingValue(category, key)
	if v == "enabled" {
		return true
	}
	if v == "disabled" {
		return false
	}
	return cast.ToBool(v)
}

// SaveSettings upserts configuration values keyed by "category.name".
func (a *Application) SaveSettings(settings map[string]interface{}) error {
	for key, value := range settings {
		category, name, ok := splitSettingKey(key)
		if !ok {
			continue
		}
		var count int64
		a.gormDB.Model(&domain.SysConfig{}).
			Where("type = ? and name = ?", category, name).Count(&count)
		if count == 0 {
			a.gormDB.Create(&domain.SysConfig{
				Type:  category,
				Name:  name,
				Value: cast.ToString(value),
			})
			continue
		}
		err := a.gormDB.Model(&domain.SysConfig{}).
			Where("type = ? and name = ?", category, name).
			Update("value", cast.ToString(value)).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func splitSettingKey(key string) (category, name string, ok bool) {
	for i := 0; i < len(key); i++ {
		if key[i] == '.' {
			return key[:i], key[i+1:], i > 0 && i < len(key)-1
		}
	}
	return "", "", false
}
