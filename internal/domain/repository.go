package domain

// OrderTotal — строка отчёта по заказам: клиент, перечень позиций
// и сумма заказа по текущим ценам каталога.
type OrderTotal struct {
	// OrderID используется для стабильного порядка строк отчёта.
	OrderID int64
	// ClientName — ФИО клиента, оформившего заказ.
	ClientName string
	// Items — строка вида "Телефон x2, Чехол x1" в порядке добавления позиций.
	Items string
	// Total — сумма заказа до форматирования. Заказ без позиций даёт 0.
	Total float64
}

// ClientSpend — суммарные траты одного клиента по всем его заказам.
type ClientSpend struct {
	ClientName string  `json:"client"`
	Total      float64 `json:"total"`
}

// ClientRepository описывает требования к хранилищу клиентов.
// Записи неизменяемы: обновления и удаления не предусмотрены.
type ClientRepository interface {
	// Create сохраняет клиента и возвращает присвоенный идентификатор.
	Create(client Client) (int64, error)
	// List возвращает всех клиентов в порядке создания.
	List() ([]Client, error)
	// IDByName возвращает идентификатор клиента по ФИО
	// или ErrClientNotFound, если такого клиента нет.
	IDByName(fio string) (int64, error)
}

// ProductRepository описывает требования к хранилищу каталога.
type ProductRepository interface {
	// Create сохраняет товар и возвращает присвоенный идентификатор.
	Create(product Product) (int64, error)
	// List возвращает все товары в порядке создания.
	List() ([]Product, error)
	// IDByName возвращает идентификатор товара по наименованию
	// или ErrProductNotFound.
	IDByName(name string) (int64, error)
}

// OrderRepository описывает требования к хранилищу заказов.
type OrderRepository interface {
	// Create атомарно сохраняет запись заказа и все его позиции:
	// либо появляются все строки, либо ни одной. Ссылочная целостность
	// client/product обеспечивается внешними ключами хранилища.
	Create(clientID int64, items []LineItem) (int64, error)
	// OrderTotals возвращает по одной строке на каждый заказ в порядке
	// создания заказов. Суммы считаются по текущим ценам каталога.
	OrderTotals() ([]OrderTotal, error)
	// ClientSpendTotals возвращает суммарные траты каждого клиента,
	// имеющего заказы, в порядке создания клиентов.
	ClientSpendTotals() ([]ClientSpend, error)
}
