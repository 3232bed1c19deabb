package services

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/trendora/storefront-api/store"
)

func TestAddToCartMergesRows(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	svc := NewCartService(st)

	p := seedProduct(t, st, "Mug", "4.50", 10)

	first, created, err := svc.AddToCart(ctx, "u1", p.ID, 2)
	if err != nil {
		t.Fatalf("AddToCart failed: %v", err)
	}
	if !created || first.Quantity != 2 {
		t.Fatalf("expected new row with quantity 2, got created=%v quantity=%d", created, first.Quantity)
	}

	second, created, err := svc.AddToCart(ctx, "u1", p.ID, 3)
	if err != nil {
		t.Fatalf("second AddToCart failed: %v", err)
	}
	if created {
		t.Fatal("expected merge into existing row, got a new one")
	}
	if second.ID != first.ID || second.Quantity != 5 {
		t.Fatalf("expected same row with quantity 5, got id=%d quantity=%d", second.ID, second.Quantity)
	}

	items, err := svc.GetCart(ctx, "u1")
	if err != nil {
		t.Fatalf("GetCart failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected exactly one cart row, got %d", len(items))
	}
}

func TestAddToCartStockChecks(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	svc := NewCartService(st)

	p := seedProduct(t, st, "Lamp", "20.00", 3)

	t.Run("over stock -> StockError", func(t *testing.T) {
		_, _, err := svc.AddToCart(ctx, "u1", p.ID, 4)
		var stockErr *StockError
		if !errors.As(err, &stockErr) {
			t.Fatalf("expected StockError, got %v", err)
		}
		if stockErr.ProductName != "Lamp" || stockErr.Available != 3 {
			t.Fatalf("unexpected StockError: %+v", stockErr)
		}
	})

	t.Run("combined quantity over stock -> StockError", func(t *testing.T) {
		if _, _, err := svc.AddToCart(ctx, "u1", p.ID, 2); err != nil {
			t.Fatalf("AddToCart failed: %v", err)
		}
		_, _, err := svc.AddToCart(ctx, "u1", p.ID, 2)
		var stockErr *StockError
		if !errors.As(err, &stockErr) {
			t.Fatalf("expected StockError for combined quantity, got %v", err)
		}
		if stockErr.Requested != 4 {
			t.Fatalf("expected requested=4 in StockError, got %d", stockErr.Requested)
		}
	})

	t.Run("missing product -> NotFound", func(t *testing.T) {
		_, _, err := svc.AddToCart(ctx, "u1", 999, 1)
		if !errors.Is(err, store.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestUpdateQuantity(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	svc := NewCartService(st)

	p := seedProduct(t, st, "Desk", "150.00", 2)
	item, _, err := svc.AddToCart(ctx, "u1", p.ID, 1)
	if err != nil {
		t.Fatalf("AddToCart failed: %v", err)
	}

	updated, err := svc.UpdateQuantity(ctx, item.ID, 2)
	if err != nil {
		t.Fatalf("UpdateQuantity failed: %v", err)
	}
	if updated.Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", updated.Quantity)
	}

	if _, err := svc.UpdateQuantity(ctx, item.ID, 3); err == nil {
		t.Fatal("expected StockError for quantity over stock")
	}
	if _, err := svc.UpdateQuantity(ctx, 999, 1); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing item, got %v", err)
	}
}

func TestRemoveAndClear(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	svc := NewCartService(st)

	p := seedProduct(t, st, "Chair", "75.00", 10)
	item, _, err := svc.AddToCart(ctx, "u1", p.ID, 1)
	if err != nil {
		t.Fatalf("AddToCart failed: %v", err)
	}

	if err := svc.RemoveItem(ctx, item.ID); err != nil {
		t.Fatalf("RemoveItem failed: %v", err)
	}
	if err := svc.RemoveItem(ctx, item.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second remove, got %v", err)
	}

	// clear is idempotent, including on an already-empty cart
	if err := svc.ClearCart(ctx, "u1"); err != nil {
		t.Fatalf("ClearCart failed: %v", err)
	}
	if err := svc.ClearCart(ctx, "u1"); err != nil {
		t.Fatalf("second ClearCart failed: %v", err)
	}
}

func TestCartTotal(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	svc := NewCartService(st)

	total, err := svc.CartTotal(ctx, "u1")
	if err != nil {
		t.Fatalf("CartTotal failed: %v", err)
	}
	if !total.Equal(decimal.Zero) {
		t.Fatalf("expected 0 for empty cart, got %s", total)
	}

	a := seedProduct(t, st, "A", "10.00", 5)
	b := seedProduct(t, st, "B", "5.00", 5)
	if _, _, err := svc.AddToCart(ctx, "u1", a.ID, 2); err != nil {
		t.Fatalf("AddToCart A failed: %v", err)
	}
	if _, _, err := svc.AddToCart(ctx, "u1", b.ID, 1); err != nil {
		t.Fatalf("AddToCart B failed: %v", err)
	}

	total, err = svc.CartTotal(ctx, "u1")
	if err != nil {
		t.Fatalf("CartTotal failed: %v", err)
	}
	if total.StringFixed(2) != "25.00" {
		t.Fatalf("expected total 25.00, got %s", total.StringFixed(2))
	}
}
