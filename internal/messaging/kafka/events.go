package kafka

import (
	"time"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/shopcrm/internal/domain"
)

// EventType определяет тип доменного события.
type EventType string

const (
	EventTypeClientCreated  EventType = "client.created"
	EventTypeProductCreated EventType = "product.created"
	EventTypeOrderCreated   EventType = "order.created"
)

// Topics для Kafka.
const (
	// TopicEntityEvents — создание клиентов и товаров.
	TopicEntityEvents = "shopcrm.entity.events"
	// TopicOrderEvents — оформление заказов.
	TopicOrderEvents = "shopcrm.order.events"
)

// EntityEvent описывает создание клиента или товара.
type EntityEvent struct {
	EventID   string    `json:"event_id"`
	EventType EventType `json:"event_type"`
	EntityID  int64     `json:"entity_id"`
	Name      string    `json:"name"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderEventItem — позиция заказа в событии.
type OrderEventItem struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// OrderEvent описывает оформленный заказ.
type OrderEvent struct {
	EventID   string           `json:"event_id"`
	EventType EventType        `json:"event_type"`
	OrderID   int64            `json:"order_id"`
	ClientID  int64            `json:"client_id"`
	Items     []OrderEventItem `json:"items"`
	Timestamp time.Time        `json:"timestamp"`
}

// NewEntityEvent создаёт событие о новой сущности.
func NewEntityEvent(eventType EventType, entityID int64, name string) *EntityEvent {
	return &EntityEvent{
		EventID:   uuid.NewString(),
		EventType: eventType,
		EntityID:  entityID,
		Name:      name,
		Timestamp: time.Now().UTC(),
	}
}

// NewOrderEvent создаёт событие об оформленном заказе.
func NewOrderEvent(orderID, clientID int64, items []domain.LineItem) *OrderEvent {
	eventItems := make([]OrderEventItem, 0, len(items))
	for _, item := range items {
		eventItems = append(eventItems, OrderEventItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}
	return &OrderEvent{
		EventID:   uuid.NewString(),
		EventType: EventTypeOrderCreated,
		OrderID:   orderID,
		ClientID:  clientID,
		Items:     eventItems,
		Timestamp: time.Now().UTC(),
	}
}
