package memory

import (
	"sync"

	"github.com/vladislavdragonenkov/shopcrm/internal/domain"
)

// Store — in-memory реализация хранилища для локальной разработки и тестов.
// Все репозитории разделяют одно состояние, чтобы отчётные запросы могли
// соединять клиентов, товары и заказы так же, как SQL-реализации.
type Store struct {
	mu sync.RWMutex

	clients  []domain.Client
	products []domain.Product
	orders   []storedOrder

	nextClientID  int64
	nextProductID int64
	nextOrderID   int64
}

// storedOrder — внутреннее представление сохранённого заказа.
type storedOrder struct {
	id       int64
	clientID int64
	items    []domain.LineItem
}

// NewStore создаёт пустое in-memory хранилище.
func NewStore() *Store {
	return &Store{}
}

// Clients возвращает репозиторий клиентов поверх общего состояния.
func (s *Store) Clients() domain.ClientRepository {
	return &clientRepository{store: s}
}

// Products возвращает репозиторий каталога поверх общего состояния.
func (s *Store) Products() domain.ProductRepository {
	return &productRepository{store: s}
}

// Orders возвращает репозиторий заказов поверх общего состояния.
func (s *Store) Orders() domain.OrderRepository {
	return &orderRepository{store: s}
}

// clientByID ищет клиента под уже взятой блокировкой.
func (s *Store) clientByID(id int64) (domain.Client, bool) {
	for _, client := range s.clients {
		if client.ID == id {
			return client, true
		}
	}
	return domain.Client{}, false
}

// productByID ищет товар под уже взятой блокировкой.
func (s *Store) productByID(id int64) (domain.Product, bool) {
	for _, product := range s.products {
		if product.ID == id {
			return product, true
		}
	}
	return domain.Product{}, false
}
