package domain

import (
	"errors"
	"time"
)

var ErrSweetNotFound = errors.New("sweet not found")
var ErrOutOfStock = errors.New("sweet is out of stock")
var ErrInvalidAmount = errors.New("amount must be a positive integer")

// Sweet is the core catalog record. Quantity is a non-negative stock
// counter; it may only change through the catalog service, which applies
// every stock movement as a single guarded update against the store.
type Sweet struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Price     float64   `json:"price"`
	Quantity  int64     `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
