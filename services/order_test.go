package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/trendora/storefront-api/models"
	"github.com/trendora/storefront-api/store"
)

func TestCreateOrderFromEmptyCart(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	svc := NewOrderService(st)

	_, err := svc.CreateOrderFromCart(ctx, "u1")
	if !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
	orders, err := svc.GetUserOrders(ctx, "u1")
	if err != nil {
		t.Fatalf("GetUserOrders failed: %v", err)
	}
	if len(orders) != 0 {
		t.Fatalf("expected no orders, got %d", len(orders))
	}
}

func TestCreateOrderFromCart(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	carts := NewCartService(st)
	svc := NewOrderService(st)

	a := seedProduct(t, st, "A", "10.00", 5)
	b := seedProduct(t, st, "B", "5.00", 1)
	if _, _, err := carts.AddToCart(ctx, "u1", a.ID, 2); err != nil {
		t.Fatalf("AddToCart A failed: %v", err)
	}
	if _, _, err := carts.AddToCart(ctx, "u1", b.ID, 1); err != nil {
		t.Fatalf("AddToCart B failed: %v", err)
	}

	order, err := svc.CreateOrderFromCart(ctx, "u1")
	if err != nil {
		t.Fatalf("CreateOrderFromCart failed: %v", err)
	}

	if order.TotalAmount.StringFixed(2) != "25.00" {
		t.Fatalf("expected total 25.00, got %s", order.TotalAmount.StringFixed(2))
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected 2 order items, got %d", len(order.Items))
	}

	// total equals the sum of item quantity*price
	sum := decimal.Zero
	for _, item := range order.Items {
		sum = sum.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	if !sum.Equal(order.TotalAmount) {
		t.Fatalf("total %s does not match item sum %s", order.TotalAmount, sum)
	}

	// stock decremented by exactly the ordered quantities
	gotA, _ := st.Products().Get(ctx, a.ID)
	gotB, _ := st.Products().Get(ctx, b.ID)
	if gotA.StockQuantity != 3 || gotB.StockQuantity != 0 {
		t.Fatalf("expected stock 3 and 0, got %d and %d", gotA.StockQuantity, gotB.StockQuantity)
	}

	// cart drained
	items, err := carts.GetCart(ctx, "u1")
	if err != nil {
		t.Fatalf("GetCart failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty cart after order, got %d items", len(items))
	}
}

func TestOrderPriceFrozenAfterProductPriceChange(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	carts := NewCartService(st)
	catalog := NewCatalogService(st)
	svc := NewOrderService(st)

	p := seedProduct(t, st, "Vase", "30.00", 5)
	if _, _, err := carts.AddToCart(ctx, "u1", p.ID, 1); err != nil {
		t.Fatalf("AddToCart failed: %v", err)
	}
	order, err := svc.CreateOrderFromCart(ctx, "u1")
	if err != nil {
		t.Fatalf("CreateOrderFromCart failed: %v", err)
	}

	if _, err := catalog.UpdateProduct(ctx, p.ID, models.Product{
		Name:          "Vase",
		Price:         decimal.RequireFromString("45.00"),
		StockQuantity: 4,
	}); err != nil {
		t.Fatalf("UpdateProduct failed: %v", err)
	}

	got, err := svc.GetOrder(ctx, order.ID)
	if err != nil {
		t.Fatalf("GetOrder failed: %v", err)
	}
	if got.Items[0].Price.StringFixed(2) != "30.00" {
		t.Fatalf("expected frozen price 30.00, got %s", got.Items[0].Price.StringFixed(2))
	}
}

func TestCreateOrderStockFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	carts := NewCartService(st)
	svc := NewOrderService(st)

	a := seedProduct(t, st, "A", "10.00", 5)
	b := seedProduct(t, st, "B", "5.00", 2)
	if _, _, err := carts.AddToCart(ctx, "u1", a.ID, 2); err != nil {
		t.Fatalf("AddToCart A failed: %v", err)
	}
	if _, _, err := carts.AddToCart(ctx, "u1", b.ID, 2); err != nil {
		t.Fatalf("AddToCart B failed: %v", err)
	}

	// someone else buys B out from under the cart
	gotB, _ := st.Products().Get(ctx, b.ID)
	gotB.StockQuantity = 1
	if err := st.Products().Save(ctx, &gotB); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	_, err := svc.CreateOrderFromCart(ctx, "u1")
	var stockErr *StockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("expected StockError, got %v", err)
	}
	if stockErr.ProductName != "B" {
		t.Fatalf("expected the offending product to be B, got %q", stockErr.ProductName)
	}

	// nothing from the attempt persisted
	gotA, _ := st.Products().Get(ctx, a.ID)
	gotB, _ = st.Products().Get(ctx, b.ID)
	if gotA.StockQuantity != 5 || gotB.StockQuantity != 1 {
		t.Fatalf("expected stock 5 and 1 after rollback, got %d and %d", gotA.StockQuantity, gotB.StockQuantity)
	}
	items, _ := carts.GetCart(ctx, "u1")
	if len(items) != 2 {
		t.Fatalf("expected cart untouched after rollback, got %d items", len(items))
	}
	orders, _ := svc.GetUserOrders(ctx, "u1")
	if len(orders) != 0 {
		t.Fatalf("expected no orders after rollback, got %d", len(orders))
	}
}

func TestConcurrentOrdersForLastUnit(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	carts := NewCartService(st)
	svc := NewOrderService(st)

	p := seedProduct(t, st, "Last One", "99.00", 1)
	if _, _, err := carts.AddToCart(ctx, "u1", p.ID, 1); err != nil {
		t.Fatalf("AddToCart u1 failed: %v", err)
	}
	if _, _, err := carts.AddToCart(ctx, "u2", p.ID, 1); err != nil {
		t.Fatalf("AddToCart u2 failed: %v", err)
	}

	var succeeded, insufficient atomic.Int32
	g := new(errgroup.Group)
	for _, userID := range []string{"u1", "u2"} {
		userID := userID
		g.Go(func() error {
			_, err := svc.CreateOrderFromCart(ctx, userID)
			if err == nil {
				succeeded.Add(1)
				return nil
			}
			var stockErr *StockError
			if errors.As(err, &stockErr) {
				insufficient.Add(1)
				return nil
			}
			return err
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if succeeded.Load() != 1 || insufficient.Load() != 1 {
		t.Fatalf("expected exactly one success and one StockError, got %d and %d",
			succeeded.Load(), insufficient.Load())
	}
	got, _ := st.Products().Get(ctx, p.ID)
	if got.StockQuantity != 0 {
		t.Fatalf("expected stock 0, got %d", got.StockQuantity)
	}
}
