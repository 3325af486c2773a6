package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/vladislavdragonenkov/pedidos/internal/domain"
	"github.com/vladislavdragonenkov/pedidos/internal/storage/memory"
)

func newOrder(placedAt time.Time) domain.Order {
	return domain.Order{
		CustomerID: 7,
		BranchID:   3,
		Status:     domain.OrderStatusPending,
		PlacedAt:   placedAt,
		Total:      20,
		Items: []domain.OrderItem{
			{ProductID: 100, Quantity: 2, UnitPrice: 10, Subtotal: 20},
		},
	}
}

func TestOrderRepository_SaveAssignsIDs(t *testing.T) {
	repo := memory.NewOrderRepository()

	stored, err := repo.Save(context.Background(), newOrder(time.Now().UTC()))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if stored.ID == 0 {
		t.Fatal("expected order id to be assigned")
	}
	if stored.Items[0].ID == 0 {
		t.Fatal("expected item id to be assigned")
	}

	second, err := repo.Save(context.Background(), newOrder(time.Now().UTC()))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if second.ID == stored.ID {
		t.Fatal("expected distinct ids for distinct orders")
	}
}

func TestOrderRepository_SaveUpdatesExisting(t *testing.T) {
	repo := memory.NewOrderRepository()

	stored, err := repo.Save(context.Background(), newOrder(time.Now().UTC()))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	stored.Status = domain.OrderStatusDelivered
	updated, err := repo.Save(context.Background(), stored)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Status != domain.OrderStatusDelivered {
		t.Fatalf("expected status %s, got %s", domain.OrderStatusDelivered, updated.Status)
	}

	reloaded, err := repo.FindByID(context.Background(), stored.ID)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if reloaded.Status != domain.OrderStatusDelivered {
		t.Fatalf("update was not persisted, status %s", reloaded.Status)
	}
}

func TestOrderRepository_SaveUnknownIDFails(t *testing.T) {
	repo := memory.NewOrderRepository()

	order := newOrder(time.Now().UTC())
	order.ID = 404
	if _, err := repo.Save(context.Background(), order); !domain.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestOrderRepository_FindByIDMissing(t *testing.T) {
	repo := memory.NewOrderRepository()

	if _, err := repo.FindByID(context.Background(), 1); !domain.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestOrderRepository_StoredOrderIsIsolated(t *testing.T) {
	repo := memory.NewOrderRepository()

	stored, err := repo.Save(context.Background(), newOrder(time.Now().UTC()))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	// Мутация возвращённой копии не должна просачиваться в хранилище.
	stored.Items[0].Quantity = 999
	stored.Status = domain.OrderStatusCancelled

	reloaded, err := repo.FindByID(context.Background(), stored.ID)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if reloaded.Items[0].Quantity == 999 || reloaded.Status == domain.OrderStatusCancelled {
		t.Fatal("stored order must not be affected by mutations of returned copies")
	}
}

func TestOrderRepository_FindByCustomerIDSorted(t *testing.T) {
	repo := memory.NewOrderRepository()
	base := time.Now().UTC()

	older := newOrder(base.Add(-time.Hour))
	newer := newOrder(base)

	if _, err := repo.Save(context.Background(), older); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, err := repo.Save(context.Background(), newer); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	orders, err := repo.FindByCustomerID(context.Background(), 7)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(orders))
	}
	if orders[0].PlacedAt.Before(orders[1].PlacedAt) {
		t.Fatal("expected newest order first")
	}
}

func TestOrderRepository_FindByBranchIDFilters(t *testing.T) {
	repo := memory.NewOrderRepository()

	first := newOrder(time.Now().UTC())
	other := newOrder(time.Now().UTC())
	other.BranchID = 99

	if _, err := repo.Save(context.Background(), first); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, err := repo.Save(context.Background(), other); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	orders, err := repo.FindByBranchID(context.Background(), 99)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if len(orders) != 1 || orders[0].BranchID != 99 {
		t.Fatalf("expected exactly one order for branch 99, got %v", orders)
	}
}

func TestOrderRepository_ExistsAndDelete(t *testing.T) {
	repo := memory.NewOrderRepository()

	stored, err := repo.Save(context.Background(), newOrder(time.Now().UTC()))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	exists, err := repo.ExistsByID(context.Background(), stored.ID)
	if err != nil || !exists {
		t.Fatalf("expected order to exist, got %v %v", exists, err)
	}

	if err := repo.DeleteByID(context.Background(), stored.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	exists, err = repo.ExistsByID(context.Background(), stored.ID)
	if err != nil || exists {
		t.Fatalf("expected order to be gone, got %v %v", exists, err)
	}

	if err := repo.DeleteByID(context.Background(), stored.ID); !domain.IsNotFound(err) {
		t.Fatalf("expected not-found error on repeated delete, got %v", err)
	}
}
