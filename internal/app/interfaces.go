package app

import (
	"github.com/robfig/cron/v3"
	"github.com/uzretail/storebot/config"
	"gorm.io/gorm"
)

// DBProvider provides database access
type DBProvider interface {
	DB() *gorm.DB
}

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// SchedulerProvider provides task scheduling capability
type SchedulerProvider interface {
	Scheduler() *cron.Cron
}

// AppContext combines the provider interfaces for full application
// context. Services should depend on specific providers where they can.
type AppContext interface {
	DBProvider
	ConfigProvider
	SchedulerProvider

	MigrateDB() error
	InitDb()
	DropAll()
}
