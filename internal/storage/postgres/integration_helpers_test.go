package postgres

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"
)

// openStoreForIntegrationTest подключается к тестовой базе, применяет
// миграции и очищает таблицы. Без SHOP_POSTGRES_TEST_DSN тест пропускается.
func openStoreForIntegrationTest(t *testing.T) *Store {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("SHOP_POSTGRES_TEST_DSN"))
	if dsn == "" {
		t.Skip("SHOP_POSTGRES_TEST_DSN is not set, skipping postgres integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := Open(ctx, dsn)
	if err != nil {
		t.Fatalf("open postgres store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	if err := store.MigrateUp(ctx, 0); err != nil {
		t.Fatalf("migrate up: %v", err)
	}

	if _, err := store.DB().ExecContext(ctx, `
		TRUNCATE order_items, orders, products, clients RESTART IDENTITY CASCADE
	`); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}

	return store
}
