package store

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/trendora/storefront-api/models"
)

func TestMemoryTransactionCommit(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	p := models.Product{Name: "Mug", Price: decimal.NewFromFloat(4.50), StockQuantity: 10}
	if err := m.Products().Create(ctx, &p); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	err := m.Transaction(ctx, func(tx Store) error {
		got, err := tx.Products().GetForUpdate(ctx, p.ID)
		if err != nil {
			return err
		}
		got.StockQuantity = 7
		return tx.Products().Save(ctx, &got)
	})
	if err != nil {
		t.Fatalf("Transaction failed: %v", err)
	}

	got, err := m.Products().Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.StockQuantity != 7 {
		t.Fatalf("expected stock 7 after commit, got %d", got.StockQuantity)
	}
}

func TestMemoryTransactionRollback(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	p := models.Product{Name: "Mug", Price: decimal.NewFromFloat(4.50), StockQuantity: 10}
	if err := m.Products().Create(ctx, &p); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	boom := errors.New("boom")
	err := m.Transaction(ctx, func(tx Store) error {
		got, err := tx.Products().GetForUpdate(ctx, p.ID)
		if err != nil {
			return err
		}
		got.StockQuantity = 0
		if err := tx.Products().Save(ctx, &got); err != nil {
			return err
		}
		if err := tx.Carts().CreateItem(ctx, &models.CartItem{UserID: "u1", ProductID: p.ID, Quantity: 1}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	got, err := m.Products().Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.StockQuantity != 10 {
		t.Fatalf("expected stock 10 after rollback, got %d", got.StockQuantity)
	}
	items, err := m.Carts().ItemsForUser(ctx, "u1")
	if err != nil {
		t.Fatalf("ItemsForUser failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected no cart items after rollback, got %d", len(items))
	}
}

func TestMemoryNotFound(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if _, err := m.Products().Get(ctx, 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := m.Products().Delete(ctx, 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := m.Carts().GetItem(ctx, 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := m.Orders().Get(ctx, 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
