package app

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/pedidos/internal/domain"
	"github.com/vladislavdragonenkov/pedidos/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/pedidos/internal/metrics"
	"github.com/vladislavdragonenkov/pedidos/internal/service/inventory"
	"github.com/vladislavdragonenkov/pedidos/internal/storage/memory"
	"github.com/vladislavdragonenkov/pedidos/internal/storage/postgres"
)

// Dependencies содержит все зависимости приложения.
type Dependencies struct {
	Repo      domain.OrderRepository
	Inventory domain.InventoryChecker
	Events    domain.EventPublisher
	Metrics   *metrics.OrderMetrics
	Logger    *log.Entry

	store     *postgres.Store
	publisher *kafka.Publisher
}

// NewDependencies создаёт и инициализирует зависимости согласно конфигурации.
// PostgreSQL и Kafka опциональны: без DSN используется in-memory хранилище,
// без брокеров события не публикуются.
func NewDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*Dependencies, error) {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	deps := &Dependencies{
		Metrics: metrics.NewOrderMetrics(),
		Logger:  logger,
	}

	if cfg.PostgresDSN != "" {
		store, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		if err := store.MigrateUp(ctx, 0); err != nil {
			_ = store.Close()
			return nil, err
		}
		deps.store = store
		deps.Repo = postgres.NewOrderRepository(store)
		logger.Info("postgres storage initialized")
	} else {
		deps.Repo = memory.NewOrderRepository()
		logger.Info("using in-memory storage")
	}

	if cfg.InventoryCheckEnabled {
		if cfg.InventoryURL != "" {
			deps.Inventory = inventory.NewHTTPChecker(cfg.InventoryURL, nil, logger.WithField("component", "inventory-checker"))
			logger.WithField("inventory_url", cfg.InventoryURL).Info("inventory check enabled")
		} else {
			deps.Inventory = inventory.NewAlwaysAvailable()
			logger.Info("inventory check enabled with always-available stub")
		}
	}

	if len(cfg.KafkaBrokers) > 0 {
		publisher, err := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			// Публикация событий best-effort: без Kafka сервис продолжает работать.
			logger.WithError(err).Warn("failed to create kafka publisher, continuing without events")
		} else {
			deps.publisher = publisher
			deps.Events = publisher
			logger.WithField("brokers", cfg.KafkaBrokers).Info("kafka publisher initialized")
		}
	}

	return deps, nil
}

// Store возвращает PostgreSQL store или nil для in-memory конфигурации.
func (d *Dependencies) Store() *postgres.Store {
	return d.store
}

// Close освобождает внешние подключения.
func (d *Dependencies) Close() {
	if d.publisher != nil {
		if err := d.publisher.Close(); err != nil {
			d.Logger.WithError(err).Warn("failed to close kafka publisher")
		}
	}
	if d.store != nil {
		if err := d.store.Close(); err != nil {
			d.Logger.WithError(err).Warn("failed to close postgres store")
		}
	}
}
