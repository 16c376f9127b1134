package domain

import (
	"regexp"
	"strings"
)

var (
	// Телефон: ровно десять цифр, первая — девятка, без +7 и 8.
	phonePattern = regexp.MustCompile(`^9\d{9}$`)
	// Почта: локальная часть без @, затем @ и домен с точкой.
	emailPattern = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)
)

// Client описывает покупателя интернет-магазина.
type Client struct {
	// ID присваивается хранилищем при создании.
	ID int64
	// FIO — полное имя клиента.
	FIO string
	// Phone — мобильный телефон в формате 9XXXXXXXXX.
	Phone string
	// Email — адрес электронной почты.
	Email string
	// Address — почтовый адрес; первое слово трактуется как город.
	Address string
}

// Validate проверяет поля клиента перед сохранением.
// Клиент после сохранения не изменяется, поэтому проверка выполняется один раз.
func (c Client) Validate() error {
	if c.FIO == "" || c.Phone == "" || c.Email == "" || c.Address == "" {
		return ErrClientFieldsRequired
	}
	if !phonePattern.MatchString(c.Phone) {
		return ErrPhoneFormat
	}
	if !emailPattern.MatchString(c.Email) {
		return ErrEmailFormat
	}
	return nil
}

// City возвращает первое слово адреса для географических отчётов.
// Для пустого адреса возвращается пустая строка.
func (c Client) City() string {
	fields := strings.Fields(c.Address)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
