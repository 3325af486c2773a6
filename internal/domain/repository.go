package domain

import "context"

// OrderRepository описывает требования к хранилищу заказов.
type OrderRepository interface {
	// Save сохраняет заказ: вставка при ID == 0, полная перезапись иначе.
	// Возвращает сохранённый заказ с назначенными идентификаторами.
	Save(ctx context.Context, order Order) (Order, error)
	// FindByID возвращает заказ по идентификатору или ErrOrderNotFound, если его нет.
	FindByID(ctx context.Context, id int64) (Order, error)
	// FindByCustomerID возвращает заказы клиента; пустой срез — валидный результат.
	FindByCustomerID(ctx context.Context, customerID int64) ([]Order, error)
	// FindByBranchID возвращает заказы филиала; пустой срез — валидный результат.
	FindByBranchID(ctx context.Context, branchID int64) ([]Order, error)
	// ExistsByID проверяет наличие заказа без загрузки позиций.
	ExistsByID(ctx context.Context, id int64) (bool, error)
	// DeleteByID удаляет заказ вместе с позициями или возвращает ErrOrderNotFound.
	DeleteByID(ctx context.Context, id int64) error
}
