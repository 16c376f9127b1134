package app

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/vladislavdragonenkov/shopcrm/internal/domain"
)

func TestNewDependencies_Memory(t *testing.T) {
	cfg := DefaultConfig()

	deps, err := NewDependencies(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("new dependencies: %v", err)
	}
	defer deps.Close()

	if deps.Clients == nil || deps.Products == nil || deps.Orders == nil {
		t.Error("repositories should be initialized")
	}
	if deps.OrderService == nil {
		t.Error("order service should be initialized")
	}
	if deps.ReportEngine == nil {
		t.Error("report engine should be initialized")
	}
	if deps.Metrics == nil {
		t.Error("metrics should be initialized")
	}
	if deps.Health == nil {
		t.Error("health handler should be initialized")
	}
	if deps.Events != nil {
		t.Error("events should be nil without kafka brokers")
	}
}

func TestNewDependencies_SQLite(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StorageDriver = DriverSQLite
	cfg.SQLitePath = filepath.Join(t.TempDir(), "shop.db")

	deps, err := NewDependencies(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("new dependencies: %v", err)
	}
	defer deps.Close()

	// Хранилище должно быть работоспособным сразу после инициализации.
	id, err := deps.Clients.Create(domain.Client{
		FIO: "Иванов Иван", Phone: "9123456789", Email: "ivan@example.com", Address: "Москва",
	})
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	if id != 1 {
		t.Errorf("expected first client id 1, got %d", id)
	}
}

func TestNewDependencies_UnknownDriver(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StorageDriver = "oracle"

	if _, err := NewDependencies(context.Background(), cfg, nil); !errors.Is(err, ErrUnknownDriver) {
		t.Fatalf("expected ErrUnknownDriver, got %v", err)
	}
}

func TestDependencies_CloseIsSafeForMemory(t *testing.T) {
	deps, err := NewDependencies(context.Background(), DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("new dependencies: %v", err)
	}

	// У in-memory хранилища нет ресурсов, Close не должен паниковать.
	deps.Close()
}
