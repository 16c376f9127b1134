// Package reports строит отчётные выборки поверх хранилища:
// суммы заказов, рейтинг клиентов по тратам и географию клиентов.
package reports

import (
	"fmt"
	"sort"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shopcrm/internal/domain"
)

const (
	// currencySuffix добавляется к отформатированным суммам.
	currencySuffix = " руб."
	// cityUnknown — метка для клиентов без адреса.
	cityUnknown = "не определен"
	// DefaultTopClients используется, когда вызывающая сторона не задала n.
	DefaultTopClients = 5
)

// OrderRow — строка таблицы заказов в готовом для отображения виде.
type OrderRow struct {
	Client string `json:"client"`
	Items  string `json:"items"`
	Total  string `json:"total"`
}

// CityCount — количество клиентов в одном городе.
type CityCount struct {
	City  string `json:"city"`
	Count int    `json:"count"`
}

// Engine вычисляет отчёты по данным хранилища. Движок не хранит
// состояния между вызовами: повторный запрос без записей в хранилище
// возвращает тот же результат.
type Engine struct {
	clients domain.ClientRepository
	orders  domain.OrderRepository
	logger  *log.Entry
}

// NewEngine конструирует отчётный движок.
func NewEngine(clients domain.ClientRepository, orders domain.OrderRepository, logger *log.Entry) *Engine {
	if logger == nil {
		logger = log.WithField("component", "report-engine")
	}
	return &Engine{clients: clients, orders: orders, logger: logger}
}

// OrderTotals возвращает строку на каждый заказ: клиент, перечень позиций
// и сумма в формате "1234.56 руб.". Заказ без позиций даёт "0.00 руб.".
func (e *Engine) OrderTotals() ([]OrderRow, error) {
	totals, err := e.orders.OrderTotals()
	if err != nil {
		return nil, fmt.Errorf("load order totals: %w", err)
	}

	rows := make([]OrderRow, 0, len(totals))
	for _, total := range totals {
		rows = append(rows, OrderRow{
			Client: total.ClientName,
			Items:  total.Items,
			Total:  FormatTotal(total.Total),
		})
	}
	return rows, nil
}

// TopClientsBySpend возвращает не более n клиентов, отсортированных по
// убыванию суммарных трат. При равных тратах порядок создания клиентов
// сохраняется (стабильная сортировка). n <= 0 трактуется как значение
// по умолчанию.
func (e *Engine) TopClientsBySpend(n int) ([]domain.ClientSpend, error) {
	if n <= 0 {
		n = DefaultTopClients
	}

	spend, err := e.orders.ClientSpendTotals()
	if err != nil {
		return nil, fmt.Errorf("load client spend totals: %w", err)
	}

	sort.SliceStable(spend, func(i, j int) bool {
		return spend[i].Total > spend[j].Total
	})

	if len(spend) > n {
		spend = spend[:n]
	}

	e.logger.WithFields(log.Fields{"n": n, "rows": len(spend)}).Debug("рейтинг клиентов построен")
	return spend, nil
}

// ClientsByCity группирует клиентов по первому слову адреса.
// Клиенты с пустым адресом попадают в корзину "не определен".
// Результат отсортирован по убыванию счётчика; города с равным
// счётчиком идут в порядке первого появления.
func (e *Engine) ClientsByCity() ([]CityCount, error) {
	clients, err := e.clients.List()
	if err != nil {
		return nil, fmt.Errorf("load clients: %w", err)
	}

	counts := make(map[string]int)
	order := make([]string, 0)
	for _, client := range clients {
		city := client.City()
		if city == "" {
			city = cityUnknown
		}
		if _, seen := counts[city]; !seen {
			order = append(order, city)
		}
		counts[city]++
	}

	result := make([]CityCount, 0, len(order))
	for _, city := range order {
		result = append(result, CityCount{City: city, Count: counts[city]})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})
	return result, nil
}

// FormatTotal форматирует сумму с двумя знаками и валютным суффиксом.
// Округление происходит только здесь, после агрегации.
func FormatTotal(total float64) string {
	return fmt.Sprintf("%.2f%s", total, currencySuffix)
}
