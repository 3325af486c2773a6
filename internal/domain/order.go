package domain

import "time"

// OrderStatus описывает статус заказа. Набор открытый: любое непустое
// значение допустимо, константы покрывают типовые состояния жизненного цикла.
type OrderStatus string

const (
	// OrderStatusPending — заказ создан и ожидает обработки.
	OrderStatusPending OrderStatus = "PENDING"
	// OrderStatusInTransit — заказ передан в доставку.
	OrderStatusInTransit OrderStatus = "IN_TRANSIT"
	// OrderStatusDelivered — заказ доставлен клиенту.
	OrderStatusDelivered OrderStatus = "DELIVERED"
	// OrderStatusCancelled — заказ отменён.
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// OrderItem представляет одну позицию заказа.
type OrderItem struct {
	// ID назначается хранилищем; 0 для ещё не сохранённых позиций.
	ID int64
	// ProductID — внешний идентификатор товара.
	ProductID int64
	// Quantity — количество единиц товара, строго больше нуля.
	Quantity int32
	// UnitPrice — цена за единицу, неотрицательная.
	UnitPrice float64
	// Subtotal — производное поле: Quantity * UnitPrice.
	// Пересчитывается сервисом, значение от клиента не принимается.
	Subtotal float64
}

// Order агрегирует состояние заказа и его позиции.
type Order struct {
	ID         int64
	CustomerID int64
	BranchID   int64
	Status     OrderStatus
	// PlacedAt фиксируется один раз при создании и обновлениями не меняется.
	PlacedAt            time.Time
	EstimatedDeliveryAt *time.Time
	ShippingAddress     string
	PaymentMethod       string
	// Total всегда пересчитывается как сумма Subtotal позиций.
	Total float64
	Items []OrderItem
}

// ValidateInvariants проверяет базовые инварианты заказа и возвращает список замечаний.
func (o *Order) ValidateInvariants() []error {
	var errs []error

	if o.CustomerID <= 0 {
		errs = append(errs, ErrCustomerRequired)
	}
	if o.BranchID <= 0 {
		errs = append(errs, ErrBranchRequired)
	}
	if o.Status == "" {
		errs = append(errs, ErrStatusRequired)
	}
	if len(o.Items) == 0 {
		errs = append(errs, ErrItemsRequired)
	}

	// Сверяем total заказа с суммой позиций: qty * price.
	var calc float64
	for _, item := range o.Items {
		if item.ProductID <= 0 {
			errs = append(errs, ErrItemProductRequired)
		}
		if item.Quantity <= 0 {
			errs = append(errs, ErrItemQtyInvalid)
		}
		if item.UnitPrice < 0 {
			errs = append(errs, ErrItemPriceInvalid)
		}
		calc += float64(item.Quantity) * item.UnitPrice
	}
	if calc != o.Total {
		errs = append(errs, ErrTotalMismatch)
	}

	return errs
}
