package reports

import (
	"sort"
	"strconv"
	"strings"
)

// Column — столбец таблицы заказов, по которому выполняется сортировка.
type Column string

const (
	ColumnClient Column = "client"
	ColumnItems  Column = "items"
	ColumnTotal  Column = "total"
)

// ParseColumn сопоставляет пользовательский ввод столбцу таблицы.
// Неизвестное значение трактуется как сортировка по клиенту.
func ParseColumn(value string) Column {
	switch Column(strings.ToLower(strings.TrimSpace(value))) {
	case ColumnItems:
		return ColumnItems
	case ColumnTotal:
		return ColumnTotal
	default:
		return ColumnClient
	}
}

// SortOrders возвращает копию rows, стабильно отсортированную по столбцу.
// Столбец total сравнивается численно после отбрасывания валютного
// суффикса, остальные — как текст без учёта регистра. Направление задаёт
// вызывающая сторона: движок не хранит состояния переключения.
func SortOrders(rows []OrderRow, column Column, descending bool) []OrderRow {
	sorted := make([]OrderRow, len(rows))
	copy(sorted, rows)

	less := func(i, j int) bool {
		if column == ColumnTotal {
			return parseTotal(sorted[i].Total) < parseTotal(sorted[j].Total)
		}
		return strings.ToLower(cell(sorted[i], column)) < strings.ToLower(cell(sorted[j], column))
	}
	if descending {
		asc := less
		less = func(i, j int) bool { return asc(j, i) }
	}

	sort.SliceStable(sorted, less)
	return sorted
}

func cell(row OrderRow, column Column) string {
	switch column {
	case ColumnItems:
		return row.Items
	case ColumnTotal:
		return row.Total
	default:
		return row.Client
	}
}

// parseTotal извлекает число из отформатированной суммы.
// Нечисловое значение сортируется как ноль.
func parseTotal(value string) float64 {
	trimmed := strings.TrimSpace(strings.TrimSuffix(value, currencySuffix))
	total, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0
	}
	return total
}
