package app

import (
	"github.com/uzretail/storebot/internal/domain"
	"github.com/uzretail/storebot/pkg/common"
	"go.uber.org/zap"
)

// checkAdminUser seeds the configured admin as a bot user so admin
// flows and broadcasts work before the first /start.
func (a *Application) checkAdminUser() {
	adminID := a.appConfig.Telegram.AdminID
	if adminID == 0 {
		return
	}
	var user domain.BotUser
	err := a.gormDB.Where("telegram_id = ?", adminID).First(&user).Error
	if err == nil {
		if user.Role != domain.RoleAdmin {
			a.gormDB.Model(&domain.BotUser{}).
				Where("id = ?", user.ID).
				Update("role", domain.RoleAdmin)
		}
		return
	}
	if err := a.gormDB.Create(&domain.BotUser{
		ID:         common.UUIDint64(),
		TelegramID: adminID,
		FullName:   "Administrator",
		Role:       domain.RoleAdmin,
	}).Error; err != nil {
		zap.L().Error("seed admin user failed", zap.Error(err))
	}
}
