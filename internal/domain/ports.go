package domain

import (
	"context"
	"time"
)

// InventoryChecker описывает взаимодействие с внешним сервисом склада.
// Интеграция отключаема: сервис заказов полностью работоспособен без неё.
type InventoryChecker interface {
	// CheckAvailability возвращает true, если все позиции доступны на складе.
	// Ошибка вызова трактуется вызывающей стороной как недоступность стока.
	CheckAvailability(ctx context.Context, items []OrderItem) (bool, error)
}

// OrderEventType определяет тип события жизненного цикла заказа.
type OrderEventType string

const (
	OrderEventCreated       OrderEventType = "order.created"
	OrderEventUpdated       OrderEventType = "order.updated"
	OrderEventStatusChanged OrderEventType = "order.status_changed"
	OrderEventDeleted       OrderEventType = "order.deleted"
)

// OrderEvent — публикуемое наружу событие заказа.
type OrderEvent struct {
	EventID    string         `json:"event_id"`
	EventType  OrderEventType `json:"event_type"`
	OrderID    int64          `json:"order_id"`
	CustomerID int64          `json:"customer_id"`
	BranchID   int64          `json:"branch_id"`
	Status     OrderStatus    `json:"status"`
	Total      float64        `json:"total"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// EventPublisher публикует события заказов во внешнюю шину.
// Публикация best-effort: сбой не должен приводить к отказу операции.
type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, event OrderEvent) error
}
