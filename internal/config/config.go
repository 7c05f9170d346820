package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Config - конфигурация сервиса, загружается из TOML-файла.
// Секреты и адреса инфраструктуры можно переопределить переменными
// окружения (в т.ч. из .env через godotenv в main).
type Config struct {
	Server         ServerConfig         `toml:"server"`
	Database       DatabaseConfig       `toml:"database"`
	Logs           LogsConfig           `toml:"logs"`
	Metrics        MetricsConfig        `toml:"metrics"`
	Redis          RedisConfig          `toml:"redis"`
	Kafka          KafkaConfig          `toml:"kafka"`
	Cron           CronConfig           `toml:"cron"`
	Sentry         SentryConfig         `toml:"sentry"`
	LoyaltyService LoyaltyServiceConfig `toml:"loyalty_service"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // seconds
	WriteTimeout    int `toml:"write_timeout"`    // seconds
	IdleTimeout     int `toml:"idle_timeout"`     // seconds
	ShutdownTimeout int `toml:"shutdown_timeout"` // seconds
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // seconds
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

type RedisConfig struct {
	Enabled         bool   `toml:"enabled"`
	Addr            string `toml:"addr"`
	Password        string `toml:"password"`
	DB              int    `toml:"db"`
	BoardTTLSeconds int    `toml:"board_ttl_seconds"`
}

type KafkaConfig struct {
	Enabled bool   `toml:"enabled"`
	Broker  string `toml:"broker"`
	Topic   string `toml:"topic"`
}

type CronConfig struct {
	Enabled      bool   `toml:"enabled"`
	RolloverSpec string `toml:"rollover_spec"`
	LowStockSpec string `toml:"low_stock_spec"`
}

type SentryConfig struct {
	Enabled     bool   `toml:"enabled"`
	DSN         string `toml:"dsn"`
	Environment string `toml:"environment"`
}

type LoyaltyServiceConfig struct {
	Enabled bool   `toml:"enabled"`
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // seconds
}

// Load читает конфигурацию из TOML-файла, применяет значения по
// умолчанию и переопределения из окружения.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}

	cfg.applyDefaults()
	cfg.applyEnvOverrides()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 15
	}

	if c.Database.Host == "" {
		c.Database.Host = "localhost"
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "schedule-service"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}

	if c.Redis.Addr == "" {
		c.Redis.Addr = "localhost:6379"
	}
	if c.Redis.BoardTTLSeconds == 0 {
		c.Redis.BoardTTLSeconds = 60
	}

	if c.Kafka.Topic == "" {
		c.Kafka.Topic = "schedule.board-events"
	}

	if c.Cron.RolloverSpec == "" {
		c.Cron.RolloverSpec = "0 2 * * *"
	}
	if c.Cron.LowStockSpec == "" {
		c.Cron.LowStockSpec = "0 21 * * *"
	}

	if c.Sentry.Environment == "" {
		c.Sentry.Environment = "production"
	}

	if c.LoyaltyService.Timeout == 0 {
		c.LoyaltyService.Timeout = 5
	}
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("DB_HOST"); v != "" {
		c.Database.Host = v
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Database.Port = port
		}
	}
	if v := os.Getenv("DB_USER"); v != "" {
		c.Database.User = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		c.Database.DBName = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("KAFKA_BROKER"); v != "" {
		c.Kafka.Broker = v
	}
	if v := os.Getenv("SENTRY_DSN"); v != "" {
		c.Sentry.DSN = v
	}
	if v := os.Getenv("LOYALTY_SERVICE_URL"); v != "" {
		c.LoyaltyService.URL = v
	}
}

func (c *Config) validate() error {
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("database name is required")
	}
	if c.Kafka.Enabled && c.Kafka.Broker == "" {
		return fmt.Errorf("kafka broker is required when kafka is enabled")
	}
	if c.Sentry.Enabled && c.Sentry.DSN == "" {
		return fmt.Errorf("sentry dsn is required when sentry is enabled")
	}
	if c.LoyaltyService.Enabled && c.LoyaltyService.URL == "" {
		return fmt.Errorf("loyalty service url is required when integration is enabled")
	}

	return nil
}

// DSN возвращает строку подключения к Postgres.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}
