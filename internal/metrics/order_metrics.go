package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// OrderMetrics содержит метрики операций сервиса заказов.
type OrderMetrics struct {
	// Счётчики успешных операций
	ordersCreated prometheus.Counter
	ordersUpdated prometheus.Counter
	statusChanges prometheus.Counter
	ordersDeleted prometheus.Counter

	// Счётчики отказов
	validationFailures prometheus.Counter
	notFoundFailures   prometheus.Counter

	// Гистограмма времени выполнения операций
	operationDuration *prometheus.HistogramVec

	// Количество выполняющихся операций
	inFlight prometheus.Gauge
}

// NewOrderMetrics создаёт и регистрирует метрики в default registry.
func NewOrderMetrics() *OrderMetrics {
	return newOrderMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newOrderMetricsWithRegisterer(registerer prometheus.Registerer) *OrderMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &OrderMetrics{
		ordersCreated: registerCounter(registerer, prometheus.CounterOpts{
			Name: "pedidos_orders_created_total",
			Help: "Total number of orders created",
		}),
		ordersUpdated: registerCounter(registerer, prometheus.CounterOpts{
			Name: "pedidos_orders_updated_total",
			Help: "Total number of full order updates applied",
		}),
		statusChanges: registerCounter(registerer, prometheus.CounterOpts{
			Name: "pedidos_order_status_changes_total",
			Help: "Total number of order status updates applied",
		}),
		ordersDeleted: registerCounter(registerer, prometheus.CounterOpts{
			Name: "pedidos_orders_deleted_total",
			Help: "Total number of orders deleted",
		}),
		validationFailures: registerCounter(registerer, prometheus.CounterOpts{
			Name: "pedidos_validation_failures_total",
			Help: "Total number of requests rejected by validation",
		}),
		notFoundFailures: registerCounter(registerer, prometheus.CounterOpts{
			Name: "pedidos_not_found_total",
			Help: "Total number of lookups for missing orders",
		}),
		operationDuration: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "pedidos_operation_duration_seconds",
			Help:    "Duration of order service operations in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"operation"}),
		inFlight: registerGauge(registerer, prometheus.GaugeOpts{
			Name: "pedidos_operations_in_flight",
			Help: "Number of order service operations currently executing",
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

func registerHistogramVec(registerer prometheus.Registerer, opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	collector := prometheus.NewHistogramVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.HistogramVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerGauge(registerer prometheus.Registerer, opts prometheus.GaugeOpts) prometheus.Gauge {
	collector := prometheus.NewGauge(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Gauge)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register gauge %q: %v", opts.Name, err))
	}
	return collector
}

// RecordOrderCreated увеличивает счётчик созданных заказов.
func (m *OrderMetrics) RecordOrderCreated() {
	m.ordersCreated.Inc()
}

// RecordOrderUpdated увеличивает счётчик полных обновлений.
func (m *OrderMetrics) RecordOrderUpdated() {
	m.ordersUpdated.Inc()
}

// RecordStatusChanged увеличивает счётчик смен статуса.
func (m *OrderMetrics) RecordStatusChanged() {
	m.statusChanges.Inc()
}

// RecordOrderDeleted увеличивает счётчик удалённых заказов.
func (m *OrderMetrics) RecordOrderDeleted() {
	m.ordersDeleted.Inc()
}

// RecordValidationFailure увеличивает счётчик отказов валидации.
func (m *OrderMetrics) RecordValidationFailure() {
	m.validationFailures.Inc()
}

// RecordNotFound увеличивает счётчик обращений к отсутствующим заказам.
func (m *OrderMetrics) RecordNotFound() {
	m.notFoundFailures.Inc()
}

// RecordOperationDuration записывает время выполнения операции сервиса.
func (m *OrderMetrics) RecordOperationDuration(operation string, duration time.Duration) {
	m.operationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordOperationStarted увеличивает число выполняющихся операций.
func (m *OrderMetrics) RecordOperationStarted() {
	m.inFlight.Inc()
}

// RecordOperationFinished уменьшает число выполняющихся операций.
func (m *OrderMetrics) RecordOperationFinished() {
	m.inFlight.Dec()
}
