package domain

import "errors"

var (
	// Ошибка незаполненных полей клиента.
	ErrClientFieldsRequired = errors.New("fio, phone, email and address are required")
	// Ошибка формата телефона: десять цифр, первая — 9.
	ErrPhoneFormat = errors.New("phone must start with 9 and contain exactly 10 digits")
	// Ошибка формата электронной почты.
	ErrEmailFormat = errors.New("email must look like local@domain.tld")
	// Ошибка незаполненных полей товара.
	ErrProductFieldsRequired = errors.New("name and unit are required")
	// Ошибка отрицательной цены товара.
	ErrPriceNegative = errors.New("price must be non-negative")
	// Ошибка сохранения заказа без выбранного клиента.
	ErrClientRequired = errors.New("no client selected")
	// Ошибка сохранения заказа без позиций.
	ErrItemsRequired = errors.New("order must contain at least one item")
	// Ошибка неположительного количества в позиции заказа.
	ErrQuantityInvalid = errors.New("quantity must be a positive integer")
	// ErrClientNotFound возвращается при разрешении клиента по имени.
	ErrClientNotFound = errors.New("client not found")
	// ErrProductNotFound возвращается при разрешении товара по имени.
	ErrProductNotFound = errors.New("product not found")
	// ErrOrderNotFound возвращается, если заказ отсутствует в хранилище.
	ErrOrderNotFound = errors.New("order not found")
)

// validationErrors — ошибки, исправимые пользователем повторным вводом.
var validationErrors = []error{
	ErrClientFieldsRequired,
	ErrPhoneFormat,
	ErrEmailFormat,
	ErrProductFieldsRequired,
	ErrPriceNegative,
	ErrClientRequired,
	ErrItemsRequired,
	ErrQuantityInvalid,
}

// notFoundErrors — ошибки разрешения ссылок по имени или идентификатору.
var notFoundErrors = []error{
	ErrClientNotFound,
	ErrProductNotFound,
	ErrOrderNotFound,
}

// IsValidation сообщает, относится ли ошибка к ошибкам валидации ввода.
// Такие ошибки отклоняют одну операцию и не меняют состояние хранилища.
func IsValidation(err error) bool {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsNotFound сообщает, является ли ошибка ошибкой разрешения ссылки.
func IsNotFound(err error) bool {
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
