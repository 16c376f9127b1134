package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.HTTPAddr != ":8080" {
		t.Errorf("unexpected http addr %q", cfg.HTTPAddr)
	}
	if cfg.MetricsAddr != ":9090" {
		t.Errorf("unexpected metrics addr %q", cfg.MetricsAddr)
	}
	if cfg.StorageDriver != DriverMemory {
		t.Errorf("unexpected storage driver %q", cfg.StorageDriver)
	}
	if !cfg.AutoMigrate {
		t.Error("auto migrate should default to true")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoadConfig_NoFile(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.StorageDriver != DriverMemory {
		t.Errorf("expected memory driver, got %q", cfg.StorageDriver)
	}
}

func TestLoadConfig_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "http_addr: \":8888\"\nstorage_driver: sqlite\nsqlite_path: /tmp/shop.db\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.HTTPAddr != ":8888" {
		t.Errorf("expected yaml http addr, got %q", cfg.HTTPAddr)
	}
	if cfg.StorageDriver != DriverSQLite {
		t.Errorf("expected sqlite driver, got %q", cfg.StorageDriver)
	}
	// Не заданные в файле значения остаются умолчаниями.
	if cfg.MetricsAddr != ":9090" {
		t.Errorf("expected default metrics addr, got %q", cfg.MetricsAddr)
	}
}

func TestLoadConfig_EnvOverridesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("http_addr: \":8888\"\n"), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	t.Setenv("SHOP_HTTP_ADDR", ":7777")
	t.Setenv("SHOP_KAFKA_BROKERS", "localhost:9092,localhost:9093")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.HTTPAddr != ":7777" {
		t.Errorf("env should override yaml, got %q", cfg.HTTPAddr)
	}
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[0] != "localhost:9092" {
		t.Errorf("unexpected brokers: %v", cfg.KafkaBrokers)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "memory",
			cfg:  Config{StorageDriver: DriverMemory},
		},
		{
			name: "sqlite with path",
			cfg:  Config{StorageDriver: DriverSQLite, SQLitePath: "shop.db"},
		},
		{
			name:    "sqlite without path",
			cfg:     Config{StorageDriver: DriverSQLite},
			wantErr: true,
		},
		{
			name: "postgres with dsn",
			cfg:  Config{StorageDriver: DriverPostgres, PostgresDSN: "postgres://localhost/shop"},
		},
		{
			name:    "postgres without dsn",
			cfg:     Config{StorageDriver: DriverPostgres},
			wantErr: true,
		},
		{
			name:    "unknown driver",
			cfg:     Config{StorageDriver: "oracle"},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr && err == nil {
				t.Error("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestConfigValidate_UnknownDriverSentinel(t *testing.T) {
	err := Config{StorageDriver: "oracle"}.Validate()
	if !errors.Is(err, ErrUnknownDriver) {
		t.Fatalf("expected ErrUnknownDriver, got %v", err)
	}
}
