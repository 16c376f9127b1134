// Package orders реализует оформление заказа: проверку предусловий,
// разрешение ссылок и атомарное сохранение через репозиторий.
package orders

import (
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shopcrm/internal/domain"
)

// ItemRequest — позиция заказа, заданная наименованием товара.
// Так заказ приходит из формы: пользователь выбирает товары по названию.
type ItemRequest struct {
	ProductName string
	Quantity    int
}

// Service оформляет заказы поверх репозиториев хранилища.
type Service struct {
	clients  domain.ClientRepository
	products domain.ProductRepository
	orders   domain.OrderRepository
	events   domain.EventPublisher
	logger   *log.Entry
}

// NewService конструирует сервис заказов. events может быть nil —
// тогда события не публикуются.
func NewService(
	clients domain.ClientRepository,
	products domain.ProductRepository,
	orders domain.OrderRepository,
	events domain.EventPublisher,
	logger *log.Entry,
) *Service {
	if logger == nil {
		logger = log.WithField("component", "orders-service")
	}
	return &Service{
		clients:  clients,
		products: products,
		orders:   orders,
		events:   events,
		logger:   logger,
	}
}

// Create сохраняет заказ клиента clientID с позициями items как единое целое.
// Все предусловия проверяются до первой записи: при ошибке валидации
// хранилище не изменяется. Возвращает идентификатор нового заказа.
func (s *Service) Create(clientID int64, items []domain.LineItem) (int64, error) {
	order := domain.Order{ClientID: clientID, Items: items}
	if err := order.Validate(); err != nil {
		return 0, err
	}

	orderID, err := s.orders.Create(clientID, items)
	if err != nil {
		return 0, err
	}

	s.logger.WithFields(log.Fields{
		"order_id":  orderID,
		"client_id": clientID,
		"items":     len(items),
	}).Info("заказ сохранён")

	s.publishOrderCreated(orderID, clientID, items)
	return orderID, nil
}

// CreateByNames оформляет заказ, разрешая клиента и товары по именам.
// Неизвестное имя останавливает операцию до каких-либо записей.
func (s *Service) CreateByNames(fio string, items []ItemRequest) (int64, error) {
	if fio == "" {
		return 0, domain.ErrClientRequired
	}
	if len(items) == 0 {
		return 0, domain.ErrItemsRequired
	}

	clientID, err := s.clients.IDByName(fio)
	if err != nil {
		return 0, err
	}

	resolved := make([]domain.LineItem, 0, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			return 0, domain.ErrQuantityInvalid
		}
		productID, err := s.products.IDByName(item.ProductName)
		if err != nil {
			return 0, err
		}
		resolved = append(resolved, domain.LineItem{ProductID: productID, Quantity: item.Quantity})
	}

	return s.Create(clientID, resolved)
}

// publishOrderCreated отправляет событие после фиксации заказа.
// Ошибка публикации не отменяет уже сохранённый заказ.
func (s *Service) publishOrderCreated(orderID, clientID int64, items []domain.LineItem) {
	if s.events == nil {
		return
	}
	if err := s.events.OrderCreated(orderID, clientID, items); err != nil {
		s.logger.WithError(err).WithField("order_id", orderID).Warn("не удалось опубликовать событие заказа")
	}
}
