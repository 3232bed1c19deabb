package services

import (
	"context"
	"errors"
	"os"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/trendora/storefront-api/models"
	"github.com/trendora/storefront-api/store"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// CartService manages a user's pending purchase lines. Stock is checked at
// every mutation against the product's quantity at that moment; the
// authoritative re-check happens later, inside order creation.
type CartService struct {
	store store.Store
}

func NewCartService(s store.Store) *CartService {
	return &CartService{store: s}
}

func (s *CartService) GetCart(ctx context.Context, userID string) ([]models.CartItem, error) {
	return s.store.Carts().ItemsForUser(ctx, userID)
}

// AddToCart adds quantity of a product to the user's cart. An existing row
// for the same product is incremented, with the combined quantity re-checked
// against stock. Returns the resulting item and whether a new row was created.
func (s *CartService) AddToCart(ctx context.Context, userID string, productID uint, quantity int) (models.CartItem, bool, error) {
	product, err := s.store.Products().Get(ctx, productID)
	if err != nil {
		return models.CartItem{}, false, err
	}

	item, err := s.store.Carts().FindItem(ctx, userID, productID)
	switch {
	case err == nil:
		combined := item.Quantity + quantity
		if combined > product.StockQuantity {
			return models.CartItem{}, false, &StockError{
				ProductID:   product.ID,
				ProductName: product.Name,
				Requested:   combined,
				Available:   product.StockQuantity,
			}
		}
		item.Quantity = combined
		if err := s.store.Carts().SaveItem(ctx, &item); err != nil {
			return models.CartItem{}, false, err
		}
		item.Product = product
		return item, false, nil

	case errors.Is(err, store.ErrNotFound):
		if quantity > product.StockQuantity {
			return models.CartItem{}, false, &StockError{
				ProductID:   product.ID,
				ProductName: product.Name,
				Requested:   quantity,
				Available:   product.StockQuantity,
			}
		}
		item = models.CartItem{UserID: userID, ProductID: productID, Quantity: quantity}
		if err := s.store.Carts().CreateItem(ctx, &item); err != nil {
			return models.CartItem{}, false, err
		}
		item.Product = product
		return item, true, nil

	default:
		return models.CartItem{}, false, err
	}
}

// UpdateQuantity replaces an item's quantity in place. The stock check is
// against the product's quantity right now; it is not re-validated against
// later stock movement until the order is created.
func (s *CartService) UpdateQuantity(ctx context.Context, itemID uint, quantity int) (models.CartItem, error) {
	item, err := s.store.Carts().GetItem(ctx, itemID)
	if err != nil {
		return models.CartItem{}, err
	}
	product, err := s.store.Products().Get(ctx, item.ProductID)
	if err != nil {
		return models.CartItem{}, err
	}
	if quantity > product.StockQuantity {
		return models.CartItem{}, &StockError{
			ProductID:   product.ID,
			ProductName: product.Name,
			Requested:   quantity,
			Available:   product.StockQuantity,
		}
	}
	item.Quantity = quantity
	if err := s.store.Carts().SaveItem(ctx, &item); err != nil {
		return models.CartItem{}, err
	}
	item.Product = product
	return item, nil
}

func (s *CartService) RemoveItem(ctx context.Context, itemID uint) error {
	return s.store.Carts().DeleteItem(ctx, itemID)
}

// ClearCart removes every item the user has. Idempotent.
func (s *CartService) ClearCart(ctx context.Context, userID string) error {
	if err := s.store.Carts().ClearUser(ctx, userID); err != nil {
		logger.Error().Err(err).Str("user_id", userID).Msg("failed to clear cart")
		return err
	}
	return nil
}

// CartTotal sums subtotals across the user's items at current prices.
func (s *CartService) CartTotal(ctx context.Context, userID string) (decimal.Decimal, error) {
	items, err := s.store.Carts().ItemsForUser(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total, nil
}
