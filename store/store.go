package store

import (
	"context"
	"errors"
	"time"

	"github.com/trendora/storefront-api/models"
)

// ErrNotFound is returned by every store when no row matches the given id.
var ErrNotFound = errors.New("record not found")

type ProductStore interface {
	List(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, id uint) (models.Product, error)
	// GetForUpdate locks the product row for the rest of the enclosing
	// transaction. Outside a transaction it behaves like Get.
	GetForUpdate(ctx context.Context, id uint) (models.Product, error)
	Create(ctx context.Context, p *models.Product) error
	Save(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id uint) error
}

type CartStore interface {
	ItemsForUser(ctx context.Context, userID string) ([]models.CartItem, error)
	GetItem(ctx context.Context, id uint) (models.CartItem, error)
	FindItem(ctx context.Context, userID string, productID uint) (models.CartItem, error)
	CreateItem(ctx context.Context, item *models.CartItem) error
	SaveItem(ctx context.Context, item *models.CartItem) error
	DeleteItem(ctx context.Context, id uint) error
	ClearUser(ctx context.Context, userID string) error
}

type OrderStore interface {
	Create(ctx context.Context, o *models.Order) error
	Get(ctx context.Context, id uint) (models.Order, error)
	ForUser(ctx context.Context, userID string) ([]models.Order, error)
	CreatedBetween(ctx context.Context, from, to time.Time) ([]models.Order, error)
}

type UserStore interface {
	Get(ctx context.Context, id string) (models.User, error)
}

// Store is the unit-of-work boundary. Transaction runs fn against a Store
// bound to one atomic transaction: if fn returns an error every write inside
// it is rolled back, otherwise all of them commit together.
type Store interface {
	Products() ProductStore
	Carts() CartStore
	Orders() OrderStore
	Users() UserStore
	Transaction(ctx context.Context, fn func(Store) error) error
}
