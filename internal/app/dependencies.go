package app

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shopcrm/internal/domain"
	"github.com/vladislavdragonenkov/shopcrm/internal/health"
	"github.com/vladislavdragonenkov/shopcrm/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/shopcrm/internal/metrics"
	"github.com/vladislavdragonenkov/shopcrm/internal/service/orders"
	"github.com/vladislavdragonenkov/shopcrm/internal/service/reports"
	"github.com/vladislavdragonenkov/shopcrm/internal/storage/memory"
	"github.com/vladislavdragonenkov/shopcrm/internal/storage/postgres"
	"github.com/vladislavdragonenkov/shopcrm/internal/storage/sqlite"
	"github.com/vladislavdragonenkov/shopcrm/internal/version"
)

// Dependencies содержит все зависимости приложения.
type Dependencies struct {
	Clients  domain.ClientRepository
	Products domain.ProductRepository
	Orders   domain.OrderRepository

	OrderService *orders.Service
	ReportEngine *reports.Engine
	Events       domain.EventPublisher
	Metrics      *metrics.ShopMetrics
	Health       *health.Handler
	Logger       *log.Entry

	producer     *kafka.Producer
	closeStorage func() error
}

// NewDependencies создаёт и инициализирует все зависимости приложения
// согласно конфигурации: хранилище, Kafka producer, сервисы и метрики.
func NewDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*Dependencies, error) {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	deps := &Dependencies{
		Logger:  logger,
		Health:  health.NewHandler(version.String()),
		Metrics: metrics.NewShopMetrics(),
	}

	if err := deps.initStorage(ctx, cfg, logger); err != nil {
		return nil, err
	}
	deps.initKafka(cfg, logger)

	deps.OrderService = orders.NewService(
		deps.Clients,
		deps.Products,
		deps.Orders,
		deps.Events,
		logger.WithField("component", "orders-service"),
	)
	deps.ReportEngine = reports.NewEngine(
		deps.Clients,
		deps.Orders,
		logger.WithField("component", "report-engine"),
	)

	return deps, nil
}

// initStorage подключает хранилище выбранного драйвера и регистрирует
// его health check.
func (d *Dependencies) initStorage(ctx context.Context, cfg Config, logger *log.Entry) error {
	switch cfg.StorageDriver {
	case DriverMemory:
		store := memory.NewStore()
		d.Clients = store.Clients()
		d.Products = store.Products()
		d.Orders = store.Orders()
		logger.Info("используется in-memory хранилище")

	case DriverSQLite:
		store, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return fmt.Errorf("open sqlite storage: %w", err)
		}
		d.Clients = sqlite.NewClientRepository(store)
		d.Products = sqlite.NewProductRepository(store)
		d.Orders = sqlite.NewOrderRepository(store)
		d.closeStorage = store.Close
		d.Health.RegisterCheck("storage", pingCheck(store.Ping))
		logger.WithField("path", cfg.SQLitePath).Info("используется sqlite хранилище")

	case DriverPostgres:
		store, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return fmt.Errorf("open postgres storage: %w", err)
		}
		if cfg.AutoMigrate {
			if err := store.MigrateUp(ctx, 0); err != nil {
				_ = store.Close()
				return fmt.Errorf("apply migrations: %w", err)
			}
		}
		d.Clients = postgres.NewClientRepository(store)
		d.Products = postgres.NewProductRepository(store)
		d.Orders = postgres.NewOrderRepository(store)
		d.closeStorage = store.Close
		d.Health.RegisterCheck("storage", pingCheck(store.Ping))
		logger.Info("используется postgres хранилище")

	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.StorageDriver)
	}
	return nil
}

// initKafka создаёт producer, если заданы брокеры. Недоступный брокер
// не останавливает запуск: сервис работает без публикации событий.
func (d *Dependencies) initKafka(cfg Config, logger *log.Entry) {
	if len(cfg.KafkaBrokers) == 0 {
		return
	}

	producer, err := kafka.NewProducer(cfg.KafkaBrokers)
	if err != nil {
		logger.WithError(err).Warn("failed to create kafka producer, continuing without kafka")
		return
	}

	d.producer = producer
	d.Events = kafka.NewEventPublisher(producer)
	logger.WithField("brokers", cfg.KafkaBrokers).Info("kafka producer initialized")
}

// Close освобождает ресурсы в обратном порядке инициализации.
func (d *Dependencies) Close() {
	if d.producer != nil {
		if err := d.producer.Close(); err != nil {
			d.Logger.WithError(err).Warn("failed to close kafka producer")
		} else {
			d.Logger.Info("kafka producer closed")
		}
	}
	if d.closeStorage != nil {
		if err := d.closeStorage(); err != nil {
			d.Logger.WithError(err).Warn("failed to close storage")
		}
	}
}

// pingCheck превращает Ping хранилища в health check с таймаутом.
func pingCheck(ping func(ctx context.Context) error) health.CheckFunc {
	return func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return ping(ctx)
	}
}
