// Package config загружает конфигурацию сервисов curl2make.
//
// Источники (по убыванию приоритета): переменные окружения,
// YAML файл (--config), значения по умолчанию.
package config

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/viper"
)

// ErrInvalidConfig — конфигурация не прошла валидацию.
var ErrInvalidConfig = errors.New("invalid config")

// Config — конфигурация API и audit сервисов.
type Config struct {
	// Port — порт HTTP API (API_PORT или PORT).
	Port string `mapstructure:"port"`

	// DBURL — DSN PostgreSQL. Пустая строка — журнал аудита не хранится.
	DBURL string `mapstructure:"db_url"`

	// RabbitMQURL — URL RabbitMQ. Пустая строка — события не публикуются.
	RabbitMQURL string `mapstructure:"rabbitmq_url"`

	// AuditPort — порт /healthz и /metrics audit сервиса.
	AuditPort string `mapstructure:"audit_port"`

	// AuditPruneCron — расписание очистки журнала (cron, 5 полей).
	AuditPruneCron string `mapstructure:"audit_prune_cron"`

	// AuditRetentionDays — срок хранения записей журнала.
	AuditRetentionDays int `mapstructure:"audit_retention_days"`

	// LogLevel — DEBUG, INFO, WARN, ERROR.
	LogLevel string `mapstructure:"log_level"`

	// LogFormat — json или text.
	LogFormat string `mapstructure:"log_format"`
}

// Значения по умолчанию.
const (
	DefaultPort               = "5000"
	DefaultAuditPort          = "8084"
	DefaultAuditPruneCron     = "0 3 * * *"
	DefaultAuditRetentionDays = 30
)

// envBindings — ключ конфигурации и переменные окружения в порядке приоритета.
var envBindings = map[string][]string{
	"port":                 {"API_PORT", "PORT"},
	"db_url":               {"DB_URL"},
	"rabbitmq_url":         {"RABBITMQ_URL"},
	"audit_port":           {"AUDIT_PORT"},
	"audit_prune_cron":     {"AUDIT_PRUNE_CRON"},
	"audit_retention_days": {"AUDIT_RETENTION_DAYS"},
	"log_level":            {"LOG_LEVEL"},
	"log_format":           {"LOG_FORMAT"},
}

// Load читает конфигурацию. configFile может быть пустым.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("port", DefaultPort)
	v.SetDefault("db_url", "")
	v.SetDefault("rabbitmq_url", "")
	v.SetDefault("audit_port", DefaultAuditPort)
	v.SetDefault("audit_prune_cron", DefaultAuditPruneCron)
	v.SetDefault("audit_retention_days", DefaultAuditRetentionDays)
	v.SetDefault("log_level", "INFO")
	v.SetDefault("log_format", "json")

	for key, envs := range envBindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate проверяет значения конфигурации.
func (c *Config) Validate() error {
	for name, port := range map[string]string{"port": c.Port, "audit_port": c.AuditPort} {
		n, err := strconv.Atoi(port)
		if err != nil || n <= 0 || n > 65535 {
			return fmt.Errorf("%w: %s must be a TCP port, got %q", ErrInvalidConfig, name, port)
		}
	}

	if c.AuditRetentionDays <= 0 {
		return fmt.Errorf("%w: audit_retention_days must be positive, got %d",
			ErrInvalidConfig, c.AuditRetentionDays)
	}

	return nil
}

// ListenAddr возвращает адрес HTTP API.
func (c *Config) ListenAddr() string {
	return ":" + c.Port
}

// AuditListenAddr возвращает адрес служебного HTTP audit сервиса.
func (c *Config) AuditListenAddr() string {
	return ":" + c.AuditPort
}

// HistoryEnabled сообщает, настроено ли хранилище журнала.
func (c *Config) HistoryEnabled() bool {
	return c.DBURL != ""
}

// PublishingEnabled сообщает, настроена ли публикация событий.
func (c *Config) PublishingEnabled() bool {
	return c.RabbitMQURL != ""
}
