package sqlite_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/vladislavdragonenkov/shopcrm/internal/domain"
	"github.com/vladislavdragonenkov/shopcrm/internal/storage/sqlite"
)

func openTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	store, err := sqlite.Open(filepath.Join(t.TempDir(), "shop.db"))
	if err != nil {
		t.Fatalf("open sqlite store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestOpen_EmptyPath(t *testing.T) {
	if _, err := sqlite.Open(""); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestSQLite_OrderFlow(t *testing.T) {
	store := openTestStore(t)

	clients := sqlite.NewClientRepository(store)
	products := sqlite.NewProductRepository(store)
	orders := sqlite.NewOrderRepository(store)

	clientID, err := clients.Create(domain.Client{
		FIO: "Иванов Иван", Phone: "9123456789", Email: "ivan@example.com", Address: "Москва Ленина 5",
	})
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	if clientID != 1 {
		t.Fatalf("expected first client id 1, got %d", clientID)
	}

	phoneID, err := products.Create(domain.Product{Name: "Телефон", Price: 1000, Unit: "шт"})
	if err != nil {
		t.Fatalf("create phone: %v", err)
	}
	caseID, err := products.Create(domain.Product{Name: "Чехол", Price: 150.5, Unit: "шт"})
	if err != nil {
		t.Fatalf("create case: %v", err)
	}

	orderID, err := orders.Create(clientID, []domain.LineItem{
		{ProductID: phoneID, Quantity: 2},
		{ProductID: caseID, Quantity: 1},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	totals, err := orders.OrderTotals()
	if err != nil {
		t.Fatalf("order totals: %v", err)
	}
	if len(totals) != 1 {
		t.Fatalf("expected 1 order row, got %d", len(totals))
	}
	row := totals[0]
	if row.OrderID != orderID || row.ClientName != "Иванов Иван" {
		t.Fatalf("unexpected row header: %+v", row)
	}
	if row.Items != "Телефон x2, Чехол x1" {
		t.Fatalf("unexpected items summary %q", row.Items)
	}
	if row.Total != 2150.5 {
		t.Fatalf("expected total 2150.5, got %v", row.Total)
	}
}

func TestSQLite_ClientSpendTotalsOrderedByClientCreation(t *testing.T) {
	store := openTestStore(t)

	clients := sqlite.NewClientRepository(store)
	products := sqlite.NewProductRepository(store)
	orders := sqlite.NewOrderRepository(store)

	ivan, _ := clients.Create(domain.Client{FIO: "Иванов Иван", Phone: "9123456789", Email: "ivan@example.com", Address: "Москва"})
	petr, _ := clients.Create(domain.Client{FIO: "Петров Пётр", Phone: "9234567890", Email: "petr@example.com", Address: "Казань"})
	product, _ := products.Create(domain.Product{Name: "Кабель", Price: 100, Unit: "шт"})

	// Заказы создаются в обратном порядке, строки отчёта — по клиентам.
	if _, err := orders.Create(petr, []domain.LineItem{{ProductID: product, Quantity: 3}}); err != nil {
		t.Fatalf("create petr order: %v", err)
	}
	if _, err := orders.Create(ivan, []domain.LineItem{{ProductID: product, Quantity: 2}}); err != nil {
		t.Fatalf("create ivan order: %v", err)
	}

	spend, err := orders.ClientSpendTotals()
	if err != nil {
		t.Fatalf("client spend totals: %v", err)
	}
	if len(spend) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(spend))
	}
	if spend[0].ClientName != "Иванов Иван" || spend[0].Total != 200 {
		t.Fatalf("unexpected first row: %+v", spend[0])
	}
	if spend[1].ClientName != "Петров Пётр" || spend[1].Total != 300 {
		t.Fatalf("unexpected second row: %+v", spend[1])
	}
}

func TestSQLite_CreateOrderRollsBackOnUnknownProduct(t *testing.T) {
	store := openTestStore(t)

	clients := sqlite.NewClientRepository(store)
	orders := sqlite.NewOrderRepository(store)

	clientID, err := clients.Create(domain.Client{
		FIO: "Петров Пётр", Phone: "9234567890", Email: "petr@example.com", Address: "Казань",
	})
	if err != nil {
		t.Fatalf("create client: %v", err)
	}

	_, err = orders.Create(clientID, []domain.LineItem{{ProductID: 424242, Quantity: 1}})
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}

	totals, err := orders.OrderTotals()
	if err != nil {
		t.Fatalf("order totals: %v", err)
	}
	if len(totals) != 0 {
		t.Fatalf("partial orders must not be observable, got %d rows", len(totals))
	}
}

func TestSQLite_CreateOrderUnknownClient(t *testing.T) {
	store := openTestStore(t)
	orders := sqlite.NewOrderRepository(store)

	_, err := orders.Create(99, []domain.LineItem{{ProductID: 1, Quantity: 1}})
	if !errors.Is(err, domain.ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
}

func TestSQLite_IDByName(t *testing.T) {
	store := openTestStore(t)

	clients := sqlite.NewClientRepository(store)
	products := sqlite.NewProductRepository(store)

	if _, err := clients.IDByName("Нет Такого"); !errors.Is(err, domain.ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
	if _, err := products.IDByName("Нет Такого"); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}

	id, err := products.Create(domain.Product{Name: "Телефон", Price: 1000, Unit: "шт"})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	got, err := products.IDByName("Телефон")
	if err != nil {
		t.Fatalf("resolve product: %v", err)
	}
	if got != id {
		t.Fatalf("expected id %d, got %d", id, got)
	}
}
