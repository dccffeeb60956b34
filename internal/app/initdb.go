package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/modderpro/site/internal/domain"
)

const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "modderpro"
)

// checkAdmin provisions the admin credential at process startup when none
// exists. The login handler never creates accounts.
func (a *Application) checkAdmin() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.authSvc.EnsureDefaultAdmin(ctx, defaultAdminUsername, defaultAdminPassword); err != nil {
		zap.L().Error("failed to provision default admin", zap.Error(err))
	}
}

// Site setting keys
const (
	SettingSiteName        = "site_name"
	SettingSiteDescription = "site_description"
	SettingLogoUrl         = "logo_url"
)

// checkSettings initializes missing site settings with their defaults.
func (a *Application) checkSettings() {
	defaults := []domain.SiteSetting{
		{Sort: 1, Name: SettingSiteName, Value: "Ntando Modder Pro", Remark: "Site title shown on public pages"},
		{Sort: 2, Name: SettingSiteDescription, Value: "Your ultimate destination for modded apps, technology solutions, and premium services", Remark: "Site description"},
		{Sort: 3, Name: SettingLogoUrl, Value: "/images/logo.png", Remark: "Logo image path, updated by admin uploads"},
	}

	for _, s := range defaults {
		var count int64
		a.gormDB.Model(&domain.SiteSetting{}).Where("name = ?", s.Name).Count(&count)
		if count == 0 {
			s.CreatedAt = time.Now()
			s.UpdatedAt = time.Now()
			if err := a.gormDB.Create(&s).Error; err != nil {
				zap.L().Error("failed to create default setting", zap.String("name", s.Name), zap.Error(err))
			} else {
				zap.L().Info("initialized setting", zap.String("name", s.Name), zap.String("default", s.Value))
			}
		}
	}
}

// GetSettingValue returns a site setting value, empty string when absent.
func (a *Application) GetSettingValue(name string) string {
	var s domain.SiteSetting
	if err := a.gormDB.Where("name = ?", name).First(&s).Error; err != nil {
		return ""
	}
	return s.Value
}

// SaveSetting upserts a site setting value.
func (a *Application) SaveSetting(name, value string) error {
	var count int64
	a.gormDB.Model(&domain.SiteSetting{}).Where("name = ?", name).Count(&count)
	if count == 0 {
		return a.gormDB.Create(&domain.SiteSetting{
			Name:      name,
			Value:     value,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}).Error
	}
	return a.gormDB.Model(&domain.SiteSetting{}).Where("name = ?", name).
		Updates(map[string]interface{}{"value": value, "updated_at": time.Now()}).Error
}
