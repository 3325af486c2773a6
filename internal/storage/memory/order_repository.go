package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/vladislavdragonenkov/pedidos/internal/domain"
)

// orderRepositoryInMemory — простая in-memory реализация OrderRepository.
type orderRepositoryInMemory struct {
	mu         sync.RWMutex
	items      map[int64]domain.Order
	nextID     int64
	nextItemID int64
}

// NewOrderRepository возвращает in-memory репозиторий для локальной разработки и тестов.
func NewOrderRepository() domain.OrderRepository {
	return &orderRepositoryInMemory{
		items: make(map[int64]domain.Order),
	}
}

// Save вставляет заказ при ID == 0, иначе полностью перезаписывает существующий.
// Новым позициям назначаются идентификаторы так же, как это делает БД.
func (r *orderRepositoryInMemory) Save(_ context.Context, order domain.Order) (domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == 0 {
		r.nextID++
		order.ID = r.nextID
	} else if _, exists := r.items[order.ID]; !exists {
		return domain.Order{}, domain.ErrOrderNotFound
	}

	for i := range order.Items {
		if order.Items[i].ID == 0 {
			r.nextItemID++
			order.Items[i].ID = r.nextItemID
		}
	}

	// Храним копию, чтобы избежать непредсказуемых мутаций извне.
	r.items[order.ID] = cloneOrder(order)
	return cloneOrder(order), nil
}

// FindByID возвращает заказ или ErrOrderNotFound, если его нет.
func (r *orderRepositoryInMemory) FindByID(_ context.Context, id int64) (domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.items[id]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return cloneOrder(order), nil
}

// FindByCustomerID возвращает заказы клиента, отсортированные по времени размещения.
func (r *orderRepositoryInMemory) FindByCustomerID(_ context.Context, customerID int64) ([]domain.Order, error) {
	return r.findBy(func(order domain.Order) bool {
		return order.CustomerID == customerID
	})
}

// FindByBranchID возвращает заказы филиала, отсортированные по времени размещения.
func (r *orderRepositoryInMemory) FindByBranchID(_ context.Context, branchID int64) ([]domain.Order, error) {
	return r.findBy(func(order domain.Order) bool {
		return order.BranchID == branchID
	})
}

// ExistsByID проверяет наличие заказа.
func (r *orderRepositoryInMemory) ExistsByID(_ context.Context, id int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.items[id]
	return ok, nil
}

// DeleteByID удаляет заказ или возвращает ErrOrderNotFound.
func (r *orderRepositoryInMemory) DeleteByID(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return domain.ErrOrderNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *orderRepositoryInMemory) findBy(match func(domain.Order) bool) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Order, 0, len(r.items))
	for _, order := range r.items {
		if !match(order) {
			continue
		}
		result = append(result, cloneOrder(order))
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].PlacedAt.Equal(result[j].PlacedAt) {
			return result[i].PlacedAt.After(result[j].PlacedAt)
		}
		return result[i].ID > result[j].ID
	})

	return result, nil
}

func cloneOrder(order domain.Order) domain.Order {
	clone := order
	if order.EstimatedDeliveryAt != nil {
		estimated := *order.EstimatedDeliveryAt
		clone.EstimatedDeliveryAt = &estimated
	}
	clone.Items = make([]domain.OrderItem, len(order.Items))
	copy(clone.Items, order.Items)
	return clone
}

var _ domain.OrderRepository = (*orderRepositoryInMemory)(nil)
