package app

import (
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/brightline/catalogd/config"
	"github.com/brightline/catalogd/internal/catalog"
	"github.com/brightline/catalogd/internal/currency"
	"github.com/brightline/catalogd/internal/oplog"
)

// DBProvider provides database access
type DBProvider interface {
	DB() *gorm.DB
}

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// SettingsProvider provides system settings access
type SettingsProvider interface {
	GetSettingsStringValue(category, key string) string
	GetSettingsInt64Value(category, key string) int64
	GetSettingsBoolValue(category, key string) bool
	SaveSettings(settings map[string]interface{}) error
}

// SchedulerProvider provides task scheduling capability
type SchedulerProvider interface {
	Scheduler() *cron.Cron
}

// CatalogProvider provides the catalog services
type CatalogProvider interface {
	Catalog() *catalog.Manager
	Converter() *currency.Converter
	Oplog() *oplog.Writer
}

// AppContext combines all provider interfaces for full application context
// Services should depend on specific providers or this combined interface
type AppContext interface {
	DBProvider
	ConfigProvider
	SettingsProvider
	SchedulerProvider
	CatalogProvider

	// Application lifecycle methods
	MigrateDB(track bool) error
	InitDb()
	DropAll()
}
