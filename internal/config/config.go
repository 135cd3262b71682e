package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken  string `mapstructure:"TELEGRAM_TOKEN"`
	DBDSN          string `mapstructure:"DB_DSN"`
	Environment    string `mapstructure:"ENV"`
	HTTPAddr       string `mapstructure:"HTTP_ADDR"`
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RosterPath     string `mapstructure:"ROSTER_PATH"`
	MigrationsPath string `mapstructure:"MIGRATIONS_PATH"`

	// Рабочее окно академии, целые часы
	OpeningHour int `mapstructure:"OPENING_HOUR"`
	ClosingHour int `mapstructure:"CLOSING_HOUR"`

	ThinkDelay     time.Duration
	AllowedChatIDs []int64
	SessionTTL     time.Duration
}

// SQLitePrefix DB_DSN вида sqlite://path включает локальное хранилище
const SQLitePrefix = "sqlite://"

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	return FromEnv()
}

// FromEnv читает конфигурацию из переменных окружения
func FromEnv() (*Config, error) {
	cfg := &Config{
		DBDSN:          os.Getenv("DB_DSN"),
		TelegramToken:  os.Getenv("TELEGRAM_TOKEN"),
		Environment:    getString("ENV", "development"),
		HTTPAddr:       getString("HTTP_ADDR", ":8080"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RosterPath:     os.Getenv("ROSTER_PATH"),
		MigrationsPath: getString("MIGRATIONS_PATH", "./migrations"),
	}

	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}

	var err error
	if cfg.OpeningHour, err = getInt("OPENING_HOUR", 8); err != nil {
		return nil, err
	}
	if cfg.ClosingHour, err = getInt("CLOSING_HOUR", 22); err != nil {
		return nil, err
	}
	if cfg.OpeningHour < 0 || cfg.ClosingHour > 24 || cfg.OpeningHour >= cfg.ClosingHour {
		return nil, fmt.Errorf("invalid working hours %d-%d", cfg.OpeningHour, cfg.ClosingHour)
	}

	delayMS, err := getInt("THINK_DELAY_MS", 0)
	if err != nil {
		return nil, err
	}
	if delayMS < 0 {
		return nil, fmt.Errorf("THINK_DELAY_MS must not be negative")
	}
	cfg.ThinkDelay = time.Duration(delayMS) * time.Millisecond

	ttlMin, err := getInt("SESSION_TTL_MIN", 60)
	if err != nil {
		return nil, err
	}
	if ttlMin <= 0 {
		return nil, fmt.Errorf("SESSION_TTL_MIN must be positive")
	}
	cfg.SessionTTL = time.Duration(ttlMin) * time.Minute

	if cfg.AllowedChatIDs, err = parseIDs(os.Getenv("ALLOWED_CHAT_IDS")); err != nil {
		return nil, err
	}

	return cfg, nil
}

// UsesSQLite true если DB_DSN указывает на файл SQLite
func (c *Config) UsesSQLite() bool {
	return strings.HasPrefix(c.DBDSN, SQLitePrefix)
}

// SQLitePath путь к файлу SQLite из DB_DSN
func (c *Config) SQLitePath() string {
	return strings.TrimPrefix(c.DBDSN, SQLitePrefix)
}

func (c *Config) GetDBDSN() string {
	return c.DBDSN
}

func getString(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return v, nil
}

// parseIDs список id через запятую
func parseIDs(raw string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse ALLOWED_CHAT_IDS: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
