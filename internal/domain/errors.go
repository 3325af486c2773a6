package domain

import (
	"errors"
	"fmt"
)

// Базовые виды ошибок сервиса. Transport-слой различает их через
// IsValidation/IsNotFound, чтобы вернуть клиенту разные HTTP-статусы.
var (
	// ErrValidation — данные запроса нарушают предусловие.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound — запрошенная запись отсутствует в хранилище.
	ErrNotFound = errors.New("not found")
)

var (
	// Ошибка отсутствующих базовых полей заказа при создании/полном обновлении.
	ErrBasicOrderDataRequired = fmt.Errorf("%w: basic order data (customer_id, branch_id, items) is required", ErrValidation)
	// Ошибка некорректной позиции при полном обновлении.
	ErrInvalidItemDetails = fmt.Errorf("%w: item details (product_id, quantity, unit_price) are invalid", ErrValidation)
	// Ошибка пересчёта total при некорректных количестве или цене.
	ErrItemQtyPriceInvalid = fmt.Errorf("%w: quantity and unit price must be positive", ErrValidation)
	// Ошибка пустого нового статуса (пробельные строки считаются пустыми).
	ErrStatusBlank = fmt.Errorf("%w: new status must not be blank", ErrValidation)
	// Ошибки неположительных идентификаторов в запросах.
	ErrInvalidCustomerID = fmt.Errorf("%w: customer id must be positive", ErrValidation)
	ErrInvalidBranchID   = fmt.Errorf("%w: branch id must be positive", ErrValidation)
	ErrInvalidOrderID    = fmt.Errorf("%w: order id must be positive", ErrValidation)
	// Ошибка недостатка стока от складского сервиса.
	ErrInsufficientStock = fmt.Errorf("%w: insufficient stock for one or more items", ErrValidation)

	// Ошибки инвариантов заказа.
	ErrCustomerRequired    = fmt.Errorf("%w: customer_id is required", ErrValidation)
	ErrBranchRequired      = fmt.Errorf("%w: branch_id is required", ErrValidation)
	ErrStatusRequired      = fmt.Errorf("%w: status is required", ErrValidation)
	ErrItemsRequired       = fmt.Errorf("%w: order must contain at least one item", ErrValidation)
	ErrItemProductRequired = fmt.Errorf("%w: item product_id is required", ErrValidation)
	ErrItemQtyInvalid      = fmt.Errorf("%w: item quantity must be greater than zero", ErrValidation)
	ErrItemPriceInvalid    = fmt.Errorf("%w: item unit price must be non-negative", ErrValidation)
	ErrTotalMismatch       = fmt.Errorf("%w: order total does not match items sum", ErrValidation)

	// ErrOrderNotFound возвращается, если заказ не найден в репозитории.
	ErrOrderNotFound = fmt.Errorf("order %w", ErrNotFound)
)

// IsValidation проверяет, относится ли ошибка к нарушению предусловий запроса.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsNotFound проверяет, является ли ошибка отсутствием записи.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
