package app

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Драйверы хранилища.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// ErrUnknownDriver возвращается для нераспознанного драйвера хранилища.
var ErrUnknownDriver = errors.New("unknown storage driver")

// Config описывает настройки запуска приложения.
// Значения берутся в порядке: умолчания, YAML файл, переменные окружения.
type Config struct {
	HTTPAddr      string   `yaml:"http_addr" env:"SHOP_HTTP_ADDR"`
	MetricsAddr   string   `yaml:"metrics_addr" env:"SHOP_METRICS_ADDR"`
	StorageDriver string   `yaml:"storage_driver" env:"SHOP_STORAGE_DRIVER"`
	SQLitePath    string   `yaml:"sqlite_path" env:"SHOP_SQLITE_PATH"`
	PostgresDSN   string   `yaml:"postgres_dsn" env:"SHOP_POSTGRES_DSN"`
	AutoMigrate   bool     `yaml:"auto_migrate" env:"SHOP_POSTGRES_AUTO_MIGRATE"`
	KafkaBrokers  []string `yaml:"kafka_brokers" env:"SHOP_KAFKA_BROKERS"`
	AllowOrigins  []string `yaml:"allow_origins" env:"SHOP_ALLOW_ORIGINS"`
}

// DefaultConfig возвращает конфигурацию для локального запуска:
// in-memory хранилище без Kafka.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:      ":8080",
		MetricsAddr:   ":9090",
		StorageDriver: DriverMemory,
		SQLitePath:    "shop.db",
		AutoMigrate:   true,
	}
}

// LoadConfig собирает конфигурацию. path может быть пустым —
// тогда YAML слой пропускается.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate проверяет согласованность конфигурации.
func (c Config) Validate() error {
	switch c.StorageDriver {
	case DriverMemory:
	case DriverSQLite:
		if c.SQLitePath == "" {
			return errors.New("sqlite path is required for sqlite driver")
		}
	case DriverPostgres:
		if c.PostgresDSN == "" {
			return errors.New("postgres dsn is required for postgres driver")
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, c.StorageDriver)
	}
	return nil
}
