package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/Dosada05/mahjong-scorebook/models"
	"github.com/joho/godotenv"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	DatabaseURL  string
	ServerPort   int
	MainUserName string

	// Значения по умолчанию для новых сессий. При первом запуске
	// записываются в таблицу app_settings, дальше живут там.
	DefaultSettings models.Settings

	// Cloudflare R2 для экспорта. Пустой R2AccountID отключает экспорт.
	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicBaseURL   string
}

// ExportEnabled сообщает, настроено ли хранилище для экспорта.
func (c *Config) ExportEnabled() bool {
	return c.R2AccountID != ""
}

// Load загружает конфигурацию из переменных окружения.
// Опционально подгружает .env файл (полезно для локальной разработки).
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	port, err := intFromEnv("SERVER_PORT", 8080)
	if err != nil {
		return nil, err
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	mainUserName := os.Getenv("MAIN_USER_NAME")
	if mainUserName == "" {
		mainUserName = "Me"
	}

	defaults, err := loadDefaultSettings()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DatabaseURL:       dbURL,
		ServerPort:        port,
		MainUserName:      mainUserName,
		DefaultSettings:   defaults,
		R2AccountID:       os.Getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:      os.Getenv("R2_BUCKET_NAME"),
		R2PublicBaseURL:   os.Getenv("R2_PUBLIC_BASE_URL"),
	}

	return cfg, nil
}

func loadDefaultSettings() (models.Settings, error) {
	var s models.Settings
	var err error

	if s.PointRate, err = intFromEnv("DEFAULT_POINT_RATE", 50); err != nil {
		return s, err
	}
	if s.BonusValue, err = intFromEnv("DEFAULT_BONUS_VALUE", 10); err != nil {
		return s, err
	}
	if s.ChipRate, err = intFromEnv("DEFAULT_CHIP_RATE", 100); err != nil {
		return s, err
	}

	s.BonusRule = models.BonusRule(os.Getenv("DEFAULT_BONUS_RULE"))
	if s.BonusRule == "" {
		s.BonusRule = models.BonusRuleStandard
	}
	if !s.BonusRule.IsValid() {
		return s, fmt.Errorf("invalid DEFAULT_BONUS_RULE %q", s.BonusRule)
	}
	return s, nil
}

func intFromEnv(key string, def int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	return v, nil
}
