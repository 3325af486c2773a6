package inventory

import (
	"context"

	"github.com/vladislavdragonenkov/pedidos/internal/domain"
)

// MockChecker — конфигурируемая заглушка InventoryChecker для тестов.
type MockChecker struct {
	Available bool
	CheckErr  error

	CheckCalls int
	LastItems  []domain.OrderItem
}

// NewMockChecker возвращает mock с успешным сценарием по умолчанию.
func NewMockChecker() *MockChecker {
	return &MockChecker{Available: true}
}

// CheckAvailability возвращает заранее настроенный результат и считает вызовы.
func (m *MockChecker) CheckAvailability(_ context.Context, items []domain.OrderItem) (bool, error) {
	m.CheckCalls++
	m.LastItems = items
	if m.CheckErr != nil {
		return false, m.CheckErr
	}
	return m.Available, nil
}

var _ domain.InventoryChecker = (*MockChecker)(nil)
