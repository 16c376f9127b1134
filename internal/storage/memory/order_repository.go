package memory

import (
	"fmt"
	"strings"

	"github.com/vladislavdragonenkov/shopcrm/internal/domain"
)

type orderRepository struct {
	store *Store
}

// Create атомарно сохраняет заказ с позициями. Проверка ссылок на клиента
// и товары выполняется до записи — аналог внешних ключей SQL-хранилищ.
func (r *orderRepository) Create(clientID int64, items []domain.LineItem) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.clientByID(clientID); !ok {
		return 0, domain.ErrClientNotFound
	}
	for _, item := range items {
		if _, ok := s.productByID(item.ProductID); !ok {
			return 0, domain.ErrProductNotFound
		}
	}

	s.nextOrderID++
	order := storedOrder{
		id:       s.nextOrderID,
		clientID: clientID,
		items:    append([]domain.LineItem(nil), items...),
	}
	s.orders = append(s.orders, order)
	return order.id, nil
}

// OrderTotals собирает строки отчёта по каждому заказу в порядке создания.
func (r *orderRepository) OrderTotals() ([]domain.OrderTotal, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.OrderTotal, 0, len(s.orders))
	for _, order := range s.orders {
		client, ok := s.clientByID(order.clientID)
		if !ok {
			return nil, domain.ErrClientNotFound
		}

		var total float64
		parts := make([]string, 0, len(order.items))
		for _, item := range order.items {
			product, ok := s.productByID(item.ProductID)
			if !ok {
				continue
			}
			parts = append(parts, fmt.Sprintf("%s x%d", product.Name, item.Quantity))
			total += float64(item.Quantity) * product.Price
		}

		result = append(result, domain.OrderTotal{
			OrderID:    order.id,
			ClientName: client.FIO,
			Items:      strings.Join(parts, ", "),
			Total:      total,
		})
	}
	return result, nil
}

// ClientSpendTotals суммирует траты по клиентам в порядке создания клиентов.
func (r *orderRepository) ClientSpendTotals() ([]domain.ClientSpend, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	totals := make(map[int64]float64)
	hasOrders := make(map[int64]bool)
	for _, order := range s.orders {
		hasOrders[order.clientID] = true
		for _, item := range order.items {
			product, ok := s.productByID(item.ProductID)
			if !ok {
				continue
			}
			totals[order.clientID] += float64(item.Quantity) * product.Price
		}
	}

	// Клиент с заказами без посчитанных позиций попадает в отчёт с нулём,
	// как и в SQL-реализациях.
	result := make([]domain.ClientSpend, 0, len(hasOrders))
	for _, client := range s.clients {
		if !hasOrders[client.ID] {
			continue
		}
		result = append(result, domain.ClientSpend{ClientName: client.FIO, Total: totals[client.ID]})
	}
	return result, nil
}

var _ domain.OrderRepository = (*orderRepository)(nil)
