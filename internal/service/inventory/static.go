package inventory

import (
	"context"

	"github.com/vladislavdragonenkov/pedidos/internal/domain"
)

// StaticChecker всегда отвечает одним и тем же результатом.
// Используется, когда удалённая проверка стока выключена, но зависимость
// должна оставаться подключаемой без изменения логики сервиса.
type StaticChecker struct {
	available bool
}

// NewAlwaysAvailable возвращает checker, считающий любой сток доступным.
func NewAlwaysAvailable() *StaticChecker {
	return &StaticChecker{available: true}
}

// CheckAvailability возвращает фиксированный результат.
func (c *StaticChecker) CheckAvailability(context.Context, []domain.OrderItem) (bool, error) {
	return c.available, nil
}

var _ domain.InventoryChecker = (*StaticChecker)(nil)
