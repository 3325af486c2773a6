package app

import (
	"os"
	"strings"
)

// Config описывает настройки запуска приложения.
type Config struct {
	// HTTPAddr — адрес REST API.
	HTTPAddr string
	// MetricsAddr — адрес служебного сервера: /metrics и health-пробы.
	MetricsAddr string
	// PostgresDSN включает PostgreSQL-хранилище; пустое значение — in-memory.
	PostgresDSN string
	// KafkaBrokers включает публикацию событий заказов; пустой список — выключено.
	KafkaBrokers []string
	// KafkaTopic переопределяет топик событий.
	KafkaTopic string
	// InventoryURL — базовый адрес складского сервиса.
	InventoryURL string
	// InventoryCheckEnabled включает проверку стока перед сохранением заказа.
	InventoryCheckEnabled bool
}

// DefaultConfig возвращает базовые адреса для API и служебного сервера.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:    ":8080",
		MetricsAddr: ":9090",
	}
}

// ConfigFromEnv формирует конфигурацию из переменных окружения PEDIDOS_*.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("PEDIDOS_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("PEDIDOS_METRICS_ADDR"); v != "" {
		cfg.MetricsAddr = v
	}
	if v := os.Getenv("PEDIDOS_POSTGRES_DSN"); v != "" {
		cfg.PostgresDSN = v
	}
	if v := os.Getenv("PEDIDOS_KAFKA_BROKERS"); v != "" {
		for _, broker := range strings.Split(v, ",") {
			if broker = strings.TrimSpace(broker); broker != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, broker)
			}
		}
	}
	if v := os.Getenv("PEDIDOS_KAFKA_TOPIC"); v != "" {
		cfg.KafkaTopic = v
	}
	if v := os.Getenv("PEDIDOS_INVENTORY_URL"); v != "" {
		cfg.InventoryURL = v
	}
	switch strings.ToLower(strings.TrimSpace(os.Getenv("PEDIDOS_INVENTORY_CHECK"))) {
	case "1", "true", "yes", "on":
		cfg.InventoryCheckEnabled = true
	}

	return cfg
}
