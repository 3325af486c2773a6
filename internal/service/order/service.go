package order

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/pedidos/internal/domain"
	"github.com/vladislavdragonenkov/pedidos/internal/metrics"
)

// Service реализует жизненный цикл заказа: валидацию входных данных,
// пересчёт суммы и делегирование CRUD-операций хранилищу.
type Service struct {
	repo      domain.OrderRepository
	inventory domain.InventoryChecker
	events    domain.EventPublisher
	metrics   *metrics.OrderMetrics
	logger    *log.Entry
}

// NewService конструирует сервис заказов. inventory, events и m опциональны:
// nil отключает проверку стока, публикацию событий и метрики соответственно.
func NewService(
	repo domain.OrderRepository,
	inventory domain.InventoryChecker,
	events domain.EventPublisher,
	m *metrics.OrderMetrics,
	logger *log.Entry,
) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "order-service")
	}
	return &Service{
		repo:      repo,
		inventory: inventory,
		events:    events,
		metrics:   m,
		logger:    logger,
	}
}

// Create валидирует и сохраняет новый заказ. Статус принудительно PENDING,
// PlacedAt проставляется текущим временем, total пересчитывается из позиций.
func (s *Service) Create(ctx context.Context, order domain.Order) (domain.Order, error) {
	defer s.beginOp("create")()

	if err := validateBasicData(order); err != nil {
		return domain.Order{}, s.reject(err)
	}
	if err := s.checkAvailability(ctx, order.Items); err != nil {
		return domain.Order{}, s.reject(err)
	}

	// Идентификатор назначает хранилище; значение клиента игнорируется.
	order.ID = 0
	for i := range order.Items {
		order.Items[i].ID = 0
	}
	order.PlacedAt = time.Now().UTC()
	order.Status = domain.OrderStatusPending

	if err := recalcTotal(&order); err != nil {
		return domain.Order{}, s.reject(err)
	}

	stored, err := s.repo.Save(ctx, order)
	if err != nil {
		s.logger.WithError(err).Error("failed to create order")
		return domain.Order{}, err
	}

	if s.metrics != nil {
		s.metrics.RecordOrderCreated()
	}
	s.publishEvent(ctx, domain.OrderEventCreated, stored)

	return stored, nil
}

// UpdateFull полностью заменяет данные заказа: базовые поля и весь список
// позиций. Все входящие позиции валидируются до применения, поэтому при
// первой некорректной обновление прерывается целиком и ничего не сохраняется.
// PlacedAt обновлением не затрагивается.
func (s *Service) UpdateFull(ctx context.Context, id int64, details domain.Order) (domain.Order, error) {
	defer s.beginOp("update_full")()

	existing, err := s.loadOrder(ctx, id, "UpdateFull")
	if err != nil {
		return domain.Order{}, err
	}

	if err := validateBasicData(details); err != nil {
		return domain.Order{}, s.reject(err)
	}

	newItems := make([]domain.OrderItem, 0, len(details.Items))
	for _, item := range details.Items {
		if item.ProductID <= 0 || item.Quantity <= 0 || item.UnitPrice < 0 {
			return domain.Order{}, s.reject(domain.ErrInvalidItemDetails)
		}
		// Позиции заменяются целиком, идентификаторы назначит хранилище.
		item.ID = 0
		newItems = append(newItems, item)
	}

	existing.CustomerID = details.CustomerID
	existing.BranchID = details.BranchID
	existing.EstimatedDeliveryAt = details.EstimatedDeliveryAt
	existing.ShippingAddress = details.ShippingAddress
	existing.PaymentMethod = details.PaymentMethod
	if strings.TrimSpace(string(details.Status)) != "" {
		existing.Status = details.Status
	}
	existing.Items = newItems

	if err := s.checkAvailability(ctx, existing.Items); err != nil {
		return domain.Order{}, s.reject(err)
	}
	if err := recalcTotal(&existing); err != nil {
		return domain.Order{}, s.reject(err)
	}

	stored, err := s.repo.Save(ctx, existing)
	if err != nil {
		s.logger.WithError(err).WithField("order_id", id).Error("failed to update order")
		return domain.Order{}, err
	}

	if s.metrics != nil {
		s.metrics.RecordOrderUpdated()
	}
	s.publishEvent(ctx, domain.OrderEventUpdated, stored)

	return stored, nil
}

// UpdateStatus меняет статус заказа. Принимается любое непустое значение:
// граф переходов не ограничивается, в том числе выход из терминальных статусов.
func (s *Service) UpdateStatus(ctx context.Context, id int64, newStatus string) (domain.Order, error) {
	defer s.beginOp("update_status")()

	existing, err := s.loadOrder(ctx, id, "UpdateStatus")
	if err != nil {
		return domain.Order{}, err
	}

	if strings.TrimSpace(newStatus) == "" {
		return domain.Order{}, s.reject(domain.ErrStatusBlank)
	}

	existing.Status = domain.OrderStatus(newStatus)

	stored, err := s.repo.Save(ctx, existing)
	if err != nil {
		s.logger.WithError(err).WithField("order_id", id).Error("failed to update order status")
		return domain.Order{}, err
	}

	if s.metrics != nil {
		s.metrics.RecordStatusChanged()
	}
	s.publishEvent(ctx, domain.OrderEventStatusChanged, stored)

	return stored, nil
}

// GetByCustomer возвращает все заказы клиента; пустой срез — не ошибка.
func (s *Service) GetByCustomer(ctx context.Context, customerID int64) ([]domain.Order, error) {
	defer s.beginOp("get_by_customer")()

	if customerID <= 0 {
		return nil, s.reject(domain.ErrInvalidCustomerID)
	}

	orders, err := s.repo.FindByCustomerID(ctx, customerID)
	if err != nil {
		s.logger.WithError(err).WithField("customer_id", customerID).Error("failed to list orders by customer")
		return nil, err
	}
	return orders, nil
}

// GetByBranch возвращает все заказы филиала; пустой срез — не ошибка.
func (s *Service) GetByBranch(ctx context.Context, branchID int64) ([]domain.Order, error) {
	defer s.beginOp("get_by_branch")()

	if branchID <= 0 {
		return nil, s.reject(domain.ErrInvalidBranchID)
	}

	orders, err := s.repo.FindByBranchID(ctx, branchID)
	if err != nil {
		s.logger.WithError(err).WithField("branch_id", branchID).Error("failed to list orders by branch")
		return nil, err
	}
	return orders, nil
}

// GetByID возвращает заказ по идентификатору.
func (s *Service) GetByID(ctx context.Context, id int64) (domain.Order, error) {
	defer s.beginOp("get_by_id")()

	if id <= 0 {
		return domain.Order{}, s.reject(domain.ErrInvalidOrderID)
	}
	return s.loadOrder(ctx, id, "GetByID")
}

// DeleteByID удаляет заказ. Перед удалением выполняется проверка существования:
// для отсутствующего заказа удаление в хранилище не вызывается.
func (s *Service) DeleteByID(ctx context.Context, id int64) error {
	defer s.beginOp("delete_by_id")()

	if id <= 0 {
		return s.reject(domain.ErrInvalidOrderID)
	}

	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		s.logger.WithError(err).WithField("order_id", id).Error("failed to probe order existence")
		return err
	}
	if !exists {
		return domain.ErrOrderNotFound
	}

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		s.logger.WithError(err).WithField("order_id", id).Error("failed to delete order")
		return err
	}

	if s.metrics != nil {
		s.metrics.RecordOrderDeleted()
	}
	s.publishEvent(ctx, domain.OrderEventDeleted, domain.Order{ID: id})

	return nil
}

// validateBasicData проверяет обязательные поля заказа для create/full update.
func validateBasicData(order domain.Order) error {
	if order.CustomerID <= 0 || order.BranchID <= 0 || len(order.Items) == 0 {
		return domain.ErrBasicOrderDataRequired
	}
	return nil
}

// recalcTotal пересчитывает subtotal каждой позиции и total заказа.
// Единственный источник истины для total: значения от клиента не принимаются.
// Вызов идемпотентен на неизменном списке позиций.
func recalcTotal(order *domain.Order) error {
	if len(order.Items) == 0 {
		order.Total = 0
		return nil
	}

	var total float64
	for i := range order.Items {
		item := &order.Items[i]
		if item.Quantity <= 0 || item.UnitPrice < 0 {
			return domain.ErrItemQtyPriceInvalid
		}
		item.Subtotal = item.UnitPrice * float64(item.Quantity)
		total += item.Subtotal
	}
	order.Total = total

	return nil
}

// checkAvailability опрашивает складской сервис, если интеграция включена.
// Отказ или ошибка удалённого вызова трактуются как недостаток стока.
func (s *Service) checkAvailability(ctx context.Context, items []domain.OrderItem) error {
	if s.inventory == nil {
		return nil
	}

	available, err := s.inventory.CheckAvailability(ctx, items)
	if err != nil {
		s.logger.WithError(err).Warn("inventory availability check failed")
		return domain.ErrInsufficientStock
	}
	if !available {
		return domain.ErrInsufficientStock
	}
	return nil
}

func (s *Service) loadOrder(ctx context.Context, id int64, operation string) (domain.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err == nil {
		return order, nil
	}

	s.logger.WithError(err).WithFields(log.Fields{
		"operation": operation,
		"order_id":  id,
	}).Warn("failed to load order")

	if domain.IsNotFound(err) && s.metrics != nil {
		s.metrics.RecordNotFound()
	}
	return domain.Order{}, err
}

func (s *Service) publishEvent(ctx context.Context, eventType domain.OrderEventType, order domain.Order) {
	if s.events == nil {
		return
	}

	event := domain.OrderEvent{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		BranchID:   order.BranchID,
		Status:     order.Status,
		Total:      order.Total,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.events.PublishOrderEvent(ctx, event); err != nil {
		s.logger.WithError(err).WithFields(log.Fields{
			"order_id": order.ID,
			"event":    string(eventType),
		}).Warn("failed to publish order event")
	}
}

// reject фиксирует метрику отказа валидации и возвращает ошибку без изменений.
func (s *Service) reject(err error) error {
	if s.metrics != nil && domain.IsValidation(err) {
		s.metrics.RecordValidationFailure()
	}
	return err
}

// beginOp отмечает старт операции и возвращает функцию завершения,
// фиксирующую длительность и число выполняющихся операций.
func (s *Service) beginOp(operation string) func() {
	if s.metrics == nil {
		return func() {}
	}

	s.metrics.RecordOperationStarted()
	start := time.Now()
	return func() {
		s.metrics.RecordOperationDuration(operation, time.Since(start))
		s.metrics.RecordOperationFinished()
	}
}
