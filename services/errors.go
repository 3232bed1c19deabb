package services

import (
	"errors"
	"fmt"
)

// ErrEmptyCart is the defined outcome of creating an order from an empty
// cart: nothing was created, nothing went wrong.
var ErrEmptyCart = errors.New("cart is empty")

// StockError reports a requested quantity exceeding a product's available
// stock, either while mutating the cart or during order creation.
type StockError struct {
	ProductID   uint
	ProductName string
	Requested   int
	Available   int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %q: requested %d, available %d",
		e.ProductName, e.Requested, e.Available)
}
