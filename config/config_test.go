package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigFile(t *testing.T) {
	yml := `
system:
  appid: storebot
  location: Asia/Tashkent
  workdir: /tmp/storebot-test
telegram:
  token: filetoken
  admin_id: 42
  admin_store: main
stores:
  - key: main
    name: Asosiy Do'kon
    latitude: 41.311081
    longitude: 69.240562
`
	cfile := filepath.Join(t.TempDir(), "storebot.yml")
	if err := os.WriteFile(cfile, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := LoadConfig(cfile)
	if cfg.Telegram.Token != "filetoken" {
		t.Errorf("token = %q", cfg.Telegram.Token)
	}
	if cfg.Telegram.AdminID != 42 {
		t.Errorf("admin_id = %d", cfg.Telegram.AdminID)
	}
	if len(cfg.Stores) != 1 || cfg.Stores[0].Key != "main" {
		t.Errorf("stores = %+v", cfg.Stores)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	yml := `
telegram:
  token: filetoken
stores:
  - key: main
    name: Asosiy Do'kon
    latitude: 41.311081
    longitude: 69.240562
`
	cfile := filepath.Join(t.TempDir(), "storebot.yml")
	if err := os.WriteFile(cfile, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("BOT_TOKEN", "envtoken")
	t.Setenv("ADMIN_ID", "777")
	t.Setenv("STOREBOT_DB_TYPE", "postgres")

	cfg := LoadConfig(cfile)
	if cfg.Telegram.Token != "envtoken" {
		t.Errorf("token = %q, want env override", cfg.Telegram.Token)
	}
	if cfg.Telegram.AdminID != 777 {
		t.Errorf("admin_id = %d", cfg.Telegram.AdminID)
	}
	if cfg.Database.Type != "postgres" {
		t.Errorf("db type = %q", cfg.Database.Type)
	}
}

func TestValidate(t *testing.T) {
	cfg := &AppConfig{}
	if err := cfg.Validate(); err == nil {
		t.Error("empty config passed validation")
	}

	cfg = &AppConfig{
		Telegram: TelegramConfig{Token: "x"},
	}
	if err := cfg.Validate(); err == nil {
		t.Error("empty store registry passed validation")
	}

	cfg = &AppConfig{
		Telegram: TelegramConfig{Token: "x"},
		Stores: []StoreConfig{
			{Key: "main"},
			{Key: "main"},
		},
	}
	if err := cfg.Validate(); err == nil {
		t.Error("duplicate store keys passed validation")
	}

	cfg = &AppConfig{
		Telegram: TelegramConfig{Token: "x"},
		Stores:   []StoreConfig{{Key: "main"}, {Key: "branch"}},
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}
}
