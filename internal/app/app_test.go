package app

import (
	"path/filepath"
	"testing"

	"github.com/asaskevich/EventBus"
	"github.com/uzretail/storebot/config"
	"github.com/uzretail/storebot/internal/domain"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestApp(t *testing.T) *Application {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "app.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	cfg := *config.DefaultAppConfig
	cfg.Telegram.AdminID = 5748140684

	a := NewApplication(&cfg, EventBus.New())
	a.OverrideDB(db)
	if err := a.MigrateDB(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return a
}

func TestCheckAdminUserSeeds(t *testing.T) {
	a := newTestApp(t)

	a.checkAdminUser()

	var user domain.BotUser
	if err := a.DB().Where("telegram_id = ?", int64(5748140684)).First(&user).Error; err != nil {
		t.Fatalf("admin not seeded: %v", err)
	}
	if user.Role != domain.RoleAdmin {
		t.Errorf("role = %q, want admin", user.Role)
	}

	// idempotent
	a.checkAdminUser()
	var count int64
	a.DB().Model(&domain.BotUser{}).Count(&count)
	if count != 1 {
		t.Errorf("user count = %d after second seed", count)
	}
}

func TestCheckAdminUserUpgradesRole(t *testing.T) {
	a := newTestApp(t)

	a.DB().Create(&domain.BotUser{
		ID:         1,
		TelegramID: 5748140684,
		FullName:   "Aziz",
		Role:       domain.RoleUser,
	})

	a.checkAdminUser()

	var user domain.BotUser
	if err := a.DB().Where("telegram_id = ?", int64(5748140684)).First(&user).Error; err != nil {
		t.Fatal(err)
	}
	if user.Role != domain.RoleAdmin {
		t.Errorf("role = %q, want upgraded to admin", user.Role)
	}
	if user.FullName != "Aziz" {
		t.Errorf("full name changed to %q", user.FullName)
	}
}

func TestInitDbResets(t *testing.T) {
	a := newTestApp(t)

	a.DB().Create(&domain.Product{ID: 1, Name: "Olma", Quantity: 5})
	a.InitDb()

	var count int64
	a.DB().Model(&domain.Product{}).Count(&count)
	if count != 0 {
		t.Errorf("product count = %d after InitDb", count)
	}
}
