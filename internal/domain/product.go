package domain

// Product — позиция каталога товаров.
type Product struct {
	// ID присваивается хранилищем при создании.
	ID int64
	// Name — наименование товара.
	Name string
	// Price — цена за единицу. Плавающая точка осознанно: суммы
	// округляются только при форматировании отчётов.
	Price float64
	// Unit — единица измерения ("шт", "кг" и т.п.).
	Unit string
}

// Validate проверяет поля товара перед сохранением.
func (p Product) Validate() error {
	if p.Name == "" || p.Unit == "" {
		return ErrProductFieldsRequired
	}
	if p.Price < 0 {
		return ErrPriceNegative
	}
	return nil
}
