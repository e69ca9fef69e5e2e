package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v2"
)

// SysConfig holds process-level settings.
type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type LogConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type DBConfig struct {
	Type     string `yaml:"type" json:"type"`
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Name     string `yaml:"name" json:"name"`
	User     string `yaml:"user" json:"user"`
	Passwd   string `yaml:"passwd" json:"passwd"`
	MaxConn  int    `yaml:"max_conn" json:"max_conn"`
	IdleConn int    `yaml:"idle_conn" json:"idle_conn"`
}

// TelegramConfig configures the bot transport.
type TelegramConfig struct {
	Token        string `yaml:"token" json:"token"`
	AdminID      int64  `yaml:"admin_id" json:"admin_id"`
	AdminStore   string `yaml:"admin_store" json:"admin_store"`
	PollTimeout  int    `yaml:"poll_timeout" json:"poll_timeout"`
	BroadcastMax int    `yaml:"broadcast_max" json:"broadcast_max"`
}

// AdminAPIConfig configures the optional HTTP admin surface.
type AdminAPIConfig struct {
	Enabled   bool   `yaml:"enabled" json:"enabled"`
	Host      string `yaml:"host" json:"host"`
	Port      int    `yaml:"port" json:"port"`
	JwtSecret string `yaml:"jwt_secret" json:"jwt_secret"`
	Username  string `yaml:"username" json:"username"`
	Password  string `yaml:"password" json:"password"`
}

// StoreConfig is one fixed store location. Order of declaration in the
// stores list is significant: nearest-store ties resolve to the first entry.
type StoreConfig struct {
	Key       string  `yaml:"key" json:"key"`
	Name      string  `yaml:"name" json:"name"`
	Address   string  `yaml:"address" json:"address"`
	Latitude  float64 `yaml:"latitude" json:"latitude"`
	Longitude float64 `yaml:"longitude" json:"longitude"`
}

type AppConfig struct {
	System   SysConfig      `yaml:"system" json:"system"`
	Logger   LogConfig      `yaml:"logger" json:"logger"`
	Database DBConfig       `yaml:"database" json:"database"`
	Telegram TelegramConfig `yaml:"telegram" json:"telegram"`
	AdminAPI AdminAPIConfig `yaml:"admin_api" json:"admin_api"`
	Stores   []StoreConfig  `yaml:"stores" json:"stores"`
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "storebot",
		Location: "Asia/Tashkent",
		Workdir:  "/var/storebot",
		Debug:    true,
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: false,
		Filename:   "/var/storebot/storebot.log",
	},
	Database: DBConfig{
		Type:     "sqlite",
		Name:     "storebot",
		MaxConn:  100,
		IdleConn: 10,
	},
	Telegram: TelegramConfig{
		PollTimeout:  60,
		BroadcastMax: 8,
		AdminStore:   "main",
	},
	AdminAPI: AdminAPIConfig{
		Enabled: false,
		Host:    "0.0.0.0",
		Port:    1816,
	},
	Stores: []StoreConfig{
		{
			Key:       "main",
			Name:      "Asosiy Do'kon",
			Address:   "Toshkent sh., Yunusobod tumani",
			Latitude:  41.311081,
			Longitude: 69.240562,
		},
		{
			Key:       "branch",
			Name:      "Filial Do'kon",
			Address:   "Toshkent sh., Mirzo Ulug'bek tumani",
			Latitude:  41.338133,
			Longitude: 69.332839,
		},
	},
}

func setEnvValue(name string, val *string) {
	evalue := os.Getenv(name)
	if evalue != "" {
		*val = evalue
	}
}

func setEnvInt64Value(name string, val *int64) {
	evalue := os.Getenv(name)
	if evalue != "" {
		*val = cast.ToInt64(evalue)
	}
}

func setEnvBoolValue(name string, val *bool) {
	evalue := os.Getenv(name)
	if evalue != "" {
		*val = cast.ToBool(evalue)
	}
}

// LoadConfig reads the YAML configuration file and applies environment
// overrides on top of it. A missing file yields the defaults.
func LoadConfig(cfile string) *AppConfig {
	// .env is optional and only fills the process environment.
	_ = godotenv.Load()

	cfg := DefaultAppConfig
	if cfile != "" {
		if _, err := os.Stat(cfile); err == nil {
			data, err := os.ReadFile(cfile)
			if err != nil {
				panic(err)
			}
			cfg = new(AppConfig)
			if err := yaml.Unmarshal(data, cfg); err != nil {
				panic(err)
			}
		}
	}

	setEnvValue("STOREBOT_SYSTEM_WORKDIR", &cfg.System.Workdir)
	setEnvBoolValue("STOREBOT_SYSTEM_DEBUG", &cfg.System.Debug)

	setEnvValue("STOREBOT_DB_TYPE", &cfg.Database.Type)
	setEnvValue("STOREBOT_DB_HOST", &cfg.Database.Host)
	setEnvValue("STOREBOT_DB_NAME", &cfg.Database.Name)
	setEnvValue("STOREBOT_DB_USER", &cfg.Database.User)
	setEnvValue("STOREBOT_DB_PWD", &cfg.Database.Passwd)

	setEnvValue("BOT_TOKEN", &cfg.Telegram.Token)
	setEnvInt64Value("ADMIN_ID", &cfg.Telegram.AdminID)

	setEnvBoolValue("STOREBOT_ADMINAPI_ENABLED", &cfg.AdminAPI.Enabled)
	setEnvValue("STOREBOT_ADMINAPI_SECRET", &cfg.AdminAPI.JwtSecret)

	return cfg
}

// Validate rejects configurations the process cannot start with.
func (c *AppConfig) Validate() error {
	if c.Telegram.Token == "" {
		return fmt.Errorf("telegram token is not configured")
	}
	if len(c.Stores) == 0 {
		return fmt.Errorf("store registry is empty")
	}
	seen := make(map[string]bool, len(c.Stores))
	for _, s := range c.Stores {
		if s.Key == "" {
			return fmt.Errorf("store with empty key in registry")
		}
		if seen[s.Key] {
			return fmt.Errorf("duplicate store key %q in registry", s.Key)
		}
		seen[s.Key] = true
	}
	return nil
}
