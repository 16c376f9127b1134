package kafka

import (
	"strconv"

	"github.com/vladislavdragonenkov/shopcrm/internal/domain"
)

// EventPublisher адаптирует Producer к доменному порту EventPublisher.
// Ключ сообщения — идентификатор сущности: события одной сущности
// попадают в одну партицию и сохраняют порядок.
type EventPublisher struct {
	producer *Producer
}

// NewEventPublisher оборачивает producer доменным портом.
func NewEventPublisher(producer *Producer) *EventPublisher {
	return &EventPublisher{producer: producer}
}

// ClientCreated публикует событие о новом клиенте.
func (p *EventPublisher) ClientCreated(id int64, fio string) error {
	event := NewEntityEvent(EventTypeClientCreated, id, fio)
	return p.producer.PublishEvent(TopicEntityEvents, strconv.FormatInt(id, 10), event)
}

// ProductCreated публикует событие о новом товаре.
func (p *EventPublisher) ProductCreated(id int64, name string) error {
	event := NewEntityEvent(EventTypeProductCreated, id, name)
	return p.producer.PublishEvent(TopicEntityEvents, strconv.FormatInt(id, 10), event)
}

// OrderCreated публикует событие об оформленном заказе.
func (p *EventPublisher) OrderCreated(orderID, clientID int64, items []domain.LineItem) error {
	event := NewOrderEvent(orderID, clientID, items)
	return p.producer.PublishEvent(TopicOrderEvents, strconv.FormatInt(orderID, 10), event)
}

var _ domain.EventPublisher = (*EventPublisher)(nil)
