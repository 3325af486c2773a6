package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vladislavdragonenkov/pedidos/internal/domain"
)

const (
	opTimeout = 5 * time.Second
)

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository создаёт PostgreSQL-реализацию OrderRepository.
func NewOrderRepository(store *Store) domain.OrderRepository {
	return &orderRepository{db: store.DB()}
}

// Save вставляет заказ при ID == 0, иначе перезаписывает существующий вместе
// с позициями. Запись заказа и замена позиций выполняются в одной транзакции.
func (r *orderRepository) Save(ctx context.Context, order domain.Order) (domain.Order, error) {
	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(opCtx, nil)
	if err != nil {
		return domain.Order{}, fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if order.ID == 0 {
		err = tx.QueryRowContext(opCtx, `
			INSERT INTO orders (
				customer_id, branch_id, status, placed_at, estimated_delivery_at,
				shipping_address, payment_method, total
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
			RETURNING id
		`,
			order.CustomerID, order.BranchID, string(order.Status), order.PlacedAt,
			order.EstimatedDeliveryAt, order.ShippingAddress, order.PaymentMethod, order.Total,
		).Scan(&order.ID)
		if err != nil {
			return domain.Order{}, fmt.Errorf("insert order: %w", err)
		}
	} else {
		var res sql.Result
		res, err = tx.ExecContext(opCtx, `
			UPDATE orders
			SET customer_id = $1,
			    branch_id = $2,
			    status = $3,
			    estimated_delivery_at = $4,
			    shipping_address = $5,
			    payment_method = $6,
			    total = $7
			WHERE id = $8
		`,
			order.CustomerID, order.BranchID, string(order.Status), order.EstimatedDeliveryAt,
			order.ShippingAddress, order.PaymentMethod, order.Total, order.ID,
		)
		if err != nil {
			return domain.Order{}, fmt.Errorf("update order: %w", err)
		}

		var affected int64
		affected, err = res.RowsAffected()
		if err != nil {
			return domain.Order{}, fmt.Errorf("rows affected: %w", err)
		}
		if affected == 0 {
			err = domain.ErrOrderNotFound
			return domain.Order{}, err
		}

		// Позиции заменяются целиком при каждом сохранении.
		if _, err = tx.ExecContext(opCtx, `DELETE FROM order_items WHERE order_id = $1`, order.ID); err != nil {
			return domain.Order{}, fmt.Errorf("delete order items: %w", err)
		}
	}

	for i := range order.Items {
		item := &order.Items[i]
		err = tx.QueryRowContext(opCtx, `
			INSERT INTO order_items (order_id, product_id, quantity, unit_price, subtotal)
			VALUES ($1,$2,$3,$4,$5)
			RETURNING id
		`,
			order.ID, item.ProductID, item.Quantity, item.UnitPrice, item.Subtotal,
		).Scan(&item.ID)
		if err != nil {
			return domain.Order{}, fmt.Errorf("insert order item: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return domain.Order{}, fmt.Errorf("commit save order: %w", err)
	}

	return order, nil
}

func (r *orderRepository) FindByID(ctx context.Context, id int64) (domain.Order, error) {
	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var order domain.Order
	var status string

	err := r.db.QueryRowContext(opCtx, `
		SELECT id, customer_id, branch_id, status, placed_at, estimated_delivery_at,
		       shipping_address, payment_method, total
		FROM orders
		WHERE id = $1
	`, id).Scan(
		&order.ID, &order.CustomerID, &order.BranchID, &status, &order.PlacedAt,
		&order.EstimatedDeliveryAt, &order.ShippingAddress, &order.PaymentMethod, &order.Total,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Order{}, domain.ErrOrderNotFound
		}
		return domain.Order{}, fmt.Errorf("select order: %w", err)
	}
	order.Status = domain.OrderStatus(status)

	items, err := r.loadItems(opCtx, order.ID)
	if err != nil {
		return domain.Order{}, err
	}
	order.Items = items

	return order, nil
}

func (r *orderRepository) FindByCustomerID(ctx context.Context, customerID int64) ([]domain.Order, error) {
	return r.findBy(ctx, "customer_id", customerID)
}

func (r *orderRepository) FindByBranchID(ctx context.Context, branchID int64) ([]domain.Order, error) {
	return r.findBy(ctx, "branch_id", branchID)
}

func (r *orderRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var exists bool
	if err := r.db.QueryRowContext(opCtx, `
		SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)
	`, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("check order exists: %w", err)
	}
	return exists, nil
}

func (r *orderRepository) DeleteByID(ctx context.Context, id int64) error {
	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	// Позиции удаляются каскадно по FK.
	res, err := r.db.ExecContext(opCtx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *orderRepository) findBy(ctx context.Context, column string, value int64) ([]domain.Order, error) {
	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	// column подставляется только из фиксированного набора вызовов выше.
	rows, err := r.db.QueryContext(opCtx, fmt.Sprintf(`
		SELECT id, customer_id, branch_id, status, placed_at, estimated_delivery_at,
		       shipping_address, payment_method, total
		FROM orders
		WHERE %s = $1
		ORDER BY placed_at DESC, id DESC
	`, column), value)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		var order domain.Order
		var status string
		if err := rows.Scan(
			&order.ID, &order.CustomerID, &order.BranchID, &status, &order.PlacedAt,
			&order.EstimatedDeliveryAt, &order.ShippingAddress, &order.PaymentMethod, &order.Total,
		); err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		order.Status = domain.OrderStatus(status)

		items, err := r.loadItems(opCtx, order.ID)
		if err != nil {
			return nil, err
		}
		order.Items = items
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}

	return orders, nil
}

func (r *orderRepository) loadItems(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, product_id, quantity, unit_price, subtotal
		FROM order_items
		WHERE order_id = $1
		ORDER BY id ASC
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("load order items: %w", err)
	}
	defer rows.Close()

	items := make([]domain.OrderItem, 0)
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.ProductID, &item.Quantity, &item.UnitPrice, &item.Subtotal); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order items: %w", err)
	}

	return items, nil
}

var _ domain.OrderRepository = (*orderRepository)(nil)
