package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/trendora/storefront-api/models"
	"github.com/trendora/storefront-api/store"
)

// OrderService converts carts into immutable orders and serves the read side.
type OrderService struct {
	store store.Store
}

func NewOrderService(s store.Store) *OrderService {
	return &OrderService{store: s}
}

func newOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// CreateOrderFromCart drains the user's cart into a new order in one
// transaction: every product row is locked and its stock re-checked, the
// current name and price are frozen into order items, stock is decremented
// and the cart cleared. Any failure rolls the whole attempt back, leaving the
// cart untouched. An empty cart returns ErrEmptyCart and creates nothing.
func (s *OrderService) CreateOrderFromCart(ctx context.Context, userID string) (models.Order, error) {
	items, err := s.store.Carts().ItemsForUser(ctx, userID)
	if err != nil {
		return models.Order{}, err
	}
	if len(items) == 0 {
		return models.Order{}, ErrEmptyCart
	}

	var orderID uint
	err = s.store.Transaction(ctx, func(tx store.Store) error {
		total := decimal.Zero
		orderItems := make([]models.OrderItem, 0, len(items))

		for _, item := range items {
			product, err := tx.Products().GetForUpdate(ctx, item.ProductID)
			if err != nil {
				return err
			}
			if product.StockQuantity < item.Quantity {
				return &StockError{
					ProductID:   product.ID,
					ProductName: product.Name,
					Requested:   item.Quantity,
					Available:   product.StockQuantity,
				}
			}

			product.StockQuantity -= item.Quantity
			if err := tx.Products().Save(ctx, &product); err != nil {
				return err
			}

			total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
			orderItems = append(orderItems, models.OrderItem{
				ProductID:   product.ID,
				ProductName: product.Name,
				Price:       product.Price,
				Quantity:    item.Quantity,
			})
		}

		order := models.Order{
			UserID:      userID,
			OrderRef:    newOrderRef(),
			TotalAmount: total,
			Items:       orderItems,
			CreatedAt:   time.Now(),
		}
		if err := tx.Orders().Create(ctx, &order); err != nil {
			return err
		}
		if err := tx.Carts().ClearUser(ctx, userID); err != nil {
			return err
		}
		orderID = order.ID
		return nil
	})
	if err != nil {
		logger.Warn().Err(err).Str("user_id", userID).Msg("order creation aborted")
		return models.Order{}, err
	}

	return s.store.Orders().Get(ctx, orderID)
}

// GetUserOrders lists the user's orders, most recent first, items attached.
func (s *OrderService) GetUserOrders(ctx context.Context, userID string) ([]models.Order, error) {
	return s.store.Orders().ForUser(ctx, userID)
}

func (s *OrderService) GetOrder(ctx context.Context, id uint) (models.Order, error) {
	return s.store.Orders().Get(ctx, id)
}

// OrdersForDay returns the orders created on the given calendar day, in the
// day's location.
func (s *OrderService) OrdersForDay(ctx context.Context, day time.Time) ([]models.Order, error) {
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return s.store.Orders().CreatedBetween(ctx, from, from.Add(24*time.Hour))
}
