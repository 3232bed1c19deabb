package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is an immutable snapshot of a completed purchase.
type Order struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	UserID      string          `gorm:"not null;index" json:"user_id"`
	OrderRef    string          `gorm:"uniqueIndex;not null" json:"order_ref"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	Items       []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt   time.Time       `json:"created_at"`
}

// OrderItem freezes the product's name and unit price at purchase time.
// Price never changes after creation, even when the product's price does.
type OrderItem struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	OrderID     uint            `gorm:"index" json:"order_id"`
	ProductID   uint            `gorm:"not null" json:"product_id"`
	ProductName string          `json:"product_name"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	Product     Product         `gorm:"foreignKey:ProductID" json:"product"`
}
