package app

import (
	"gorm.io/gorm"

	"github.com/modderpro/site/config"
	"github.com/modderpro/site/internal/auth"
	"github.com/modderpro/site/internal/catalog"
	"github.com/modderpro/site/internal/mailer"
)

// DBProvider provides database access
type DBProvider interface {
	DB() *gorm.DB
}

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// SettingsProvider provides site settings access
type SettingsProvider interface {
	GetSettingValue(name string) string
	SaveSetting(name, value string) error
}

// AppContext combines all provider interfaces for full application context.
// Handlers should depend on specific providers or this combined interface.
type AppContext interface {
	DBProvider
	ConfigProvider
	SettingsProvider

	Catalog() *catalog.Catalog
	Auth() *auth.Service
	Mailer() *mailer.Mailer

	// Application lifecycle methods
	MigrateDB(track bool) error
	InitDb()
	DropAll()
}
