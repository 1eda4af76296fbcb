package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix префикс переменных окружения, переопределяющих файл (GIGS_DB_PASSWORD и т.п.)
const EnvPrefix = "GIGS"

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server" envconfig:"SERVER"`
	Database DatabaseConfig `toml:"database" envconfig:"DB"`
	Logs     LogsConfig     `toml:"logs" envconfig:"LOGS"`
	Metrics  MetricsConfig  `toml:"metrics" envconfig:"METRICS"`
	Auth     AuthConfig     `toml:"auth" envconfig:"AUTH"`
	Redis    RedisConfig    `toml:"redis" envconfig:"REDIS"`
}

// ServerConfig настройки HTTP сервера, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" split_words:"true"`
	ReadTimeout     int `toml:"read_timeout" split_words:"true"`
	WriteTimeout    int `toml:"write_timeout" split_words:"true"`
	IdleTimeout     int `toml:"idle_timeout" split_words:"true"`
	ShutdownTimeout int `toml:"shutdown_timeout" split_words:"true"`
}

// DatabaseConfig подключение к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host" split_words:"true"`
	Port            int    `toml:"port" split_words:"true"`
	User            string `toml:"user" split_words:"true"`
	Password        string `toml:"password" split_words:"true"`
	DBName          string `toml:"dbname" split_words:"true"`
	SSLMode         string `toml:"sslmode" split_words:"true"`
	MaxOpenConns    int    `toml:"max_open_conns" split_words:"true"`
	MaxIdleConns    int    `toml:"max_idle_conns" split_words:"true"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" split_words:"true"` // секунды
}

// LogsConfig уровень и файл логов; пустой файл - только stdout
type LogsConfig struct {
	Level string `toml:"level" split_words:"true"`
	File  string `toml:"file" split_words:"true"`
}

// MetricsConfig Prometheus метрики
type MetricsConfig struct {
	Enabled              bool   `toml:"enabled" split_words:"true"`
	Path                 string `toml:"path" split_words:"true"`
	ServiceName          string `toml:"service_name" split_words:"true"`
	PoolStatsIntervalSec int    `toml:"pool_stats_interval" split_words:"true"`
}

// AuthConfig проверка JWT, выданных Identity Store
type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret" split_words:"true"`
}

// RedisConfig кэш профилей пользователей; при Enabled = false профили читаются из БД напрямую
type RedisConfig struct {
	Enabled  bool   `toml:"enabled" split_words:"true"`
	Addr     string `toml:"addr" split_words:"true"`
	Password string `toml:"password" split_words:"true"`
	DB       int    `toml:"db" split_words:"true"`
	TTL      int    `toml:"ttl" split_words:"true"` // секунды
}

// Load читает TOML файл, применяет значения по умолчанию и переменные окружения
// Отсутствующий файл не ошибка: конфигурацию можно задать только через окружение
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: failed to stat %s: %w", path, err)
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default значения по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "gigs",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:              true,
			Path:                 "/metrics",
			ServiceName:          "gig-booking-service",
			PoolStatsIntervalSec: 15,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
			TTL:  300,
		},
	}
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("config: invalid server.http_port %d", c.Server.HTTPPort)
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return errors.New("config: database.host and database.dbname are required")
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("config: auth.jwt_secret is required (or GIGS_AUTH_JWT_SECRET)")
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		return errors.New("config: redis.addr is required when redis is enabled")
	}
	if c.Metrics.Enabled && c.Metrics.PoolStatsIntervalSec <= 0 {
		return fmt.Errorf("config: invalid metrics.pool_stats_interval %d", c.Metrics.PoolStatsIntervalSec)
	}
	return nil
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}

	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()

	return u.String()
}
