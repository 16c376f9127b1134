package domain

// LineItem — одна позиция заказа: ссылка на товар и количество.
type LineItem struct {
	ProductID int64
	Quantity  int
}

// Order агрегирует позиции заказа одного клиента.
// Заказ собирается в памяти, валидируется и сохраняется атомарно;
// после сохранения он доступен только на чтение.
type Order struct {
	ID       int64
	ClientID int64
	Items    []LineItem
}

// AddItem добавляет позицию в несохранённый заказ.
func (o *Order) AddItem(productID int64, quantity int) {
	o.Items = append(o.Items, LineItem{ProductID: productID, Quantity: quantity})
}

// Validate проверяет предусловия сохранения заказа.
// Порядок проверок фиксирован: сначала клиент, затем наличие позиций,
// затем количества.
func (o Order) Validate() error {
	if o.ClientID <= 0 {
		return ErrClientRequired
	}
	if len(o.Items) == 0 {
		return ErrItemsRequired
	}
	for _, item := range o.Items {
		if item.Quantity <= 0 {
			return ErrQuantityInvalid
		}
	}
	return nil
}
