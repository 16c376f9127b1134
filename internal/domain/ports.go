package domain

// EventPublisher публикует доменные события во внешнюю шину.
// Публикация выполняется после фиксации записи и не влияет на результат
// операции: ошибки публикации только логируются.
type EventPublisher interface {
	ClientCreated(id int64, fio string) error
	ProductCreated(id int64, name string) error
	OrderCreated(orderID, clientID int64, items []LineItem) error
}
