package domain

import (
	"errors"
	"time"
)

var ErrSweetNotFound = errors.New("sweet not found")
var ErrOutOfStock = errors.New("sweet is out of stock")
var ErrInvalidInput = errors.New("invalid input")

// Sweet is a catalog item. Quantity is the stock count; it never goes
// negative, and every mutating operation is responsible for keeping it so.
type Sweet struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Price     float64   `json:"price"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
