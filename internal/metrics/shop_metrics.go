package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ShopMetrics содержит метрики бизнес-операций магазина.
type ShopMetrics struct {
	// Счётчики созданных сущностей
	clientsCreated  prometheus.Counter
	productsCreated prometheus.Counter
	ordersCreated   prometheus.Counter
	ordersRejected  prometheus.Counter

	// Счётчик запросов отчётов по видам
	reportRequests *prometheus.CounterVec

	// Гистограмма времени оформления заказа
	orderDuration prometheus.Histogram
}

// NewShopMetrics создаёт новый экземпляр метрик магазина.
func NewShopMetrics() *ShopMetrics {
	return newShopMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newShopMetricsWithRegisterer(registerer prometheus.Registerer) *ShopMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &ShopMetrics{
		clientsCreated: registerCounter(registerer, prometheus.CounterOpts{
			Name: "shopcrm_clients_created_total",
			Help: "Total number of clients created",
		}),
		productsCreated: registerCounter(registerer, prometheus.CounterOpts{
			Name: "shopcrm_products_created_total",
			Help: "Total number of products created",
		}),
		ordersCreated: registerCounter(registerer, prometheus.CounterOpts{
			Name: "shopcrm_orders_created_total",
			Help: "Total number of orders created",
		}),
		ordersRejected: registerCounter(registerer, prometheus.CounterOpts{
			Name: "shopcrm_orders_rejected_total",
			Help: "Total number of orders rejected by validation or lookup failures",
		}),
		reportRequests: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "shopcrm_report_requests_total",
			Help: "Total number of report requests by report kind",
		}, []string{"kind"}),
		orderDuration: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "shopcrm_order_create_duration_seconds",
			Help:    "Duration of order creation in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}),
	}
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogram(registerer prometheus.Registerer, opts prometheus.HistogramOpts) prometheus.Histogram {
	collector := prometheus.NewHistogram(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Histogram)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram %q: %v", opts.Name, err))
	}
	return collector
}

// RecordClientCreated увеличивает счётчик созданных клиентов.
func (m *ShopMetrics) RecordClientCreated() {
	m.clientsCreated.Inc()
}

// RecordProductCreated увеличивает счётчик созданных товаров.
func (m *ShopMetrics) RecordProductCreated() {
	m.productsCreated.Inc()
}

// RecordOrderCreated увеличивает счётчик оформленных заказов.
func (m *ShopMetrics) RecordOrderCreated() {
	m.ordersCreated.Inc()
}

// RecordOrderRejected увеличивает счётчик отклонённых заказов.
func (m *ShopMetrics) RecordOrderRejected() {
	m.ordersRejected.Inc()
}

// RecordReportRequest увеличивает счётчик запросов отчёта данного вида.
func (m *ShopMetrics) RecordReportRequest(kind string) {
	m.reportRequests.WithLabelValues(kind).Inc()
}

// RecordOrderDuration записывает время оформления заказа.
func (m *ShopMetrics) RecordOrderDuration(duration time.Duration) {
	m.orderDuration.Observe(duration.Seconds())
}
