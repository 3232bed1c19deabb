package models

import "time"

// User mirrors the identity supplied by the auth provider. Rows are looked up
// for the daily sales report; they are never created through this API.
type User struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
