package ports

import (
	"context"

	"github.com/sweetshop/sweet-shop-api/internal/core/domain"
)

// CreateSweetInput carries all data needed to add a catalog item.
type CreateSweetInput struct {
	Name     string
	Category string
	Price    float64
	Quantity int
}

// SweetService defines use-case operations on the catalog.
type SweetService interface {
	Create(ctx context.Context, in CreateSweetInput) (*domain.Sweet, error)
	List(ctx context.Context) ([]*domain.Sweet, error)
	// Search returns sweets whose name or category contains query,
	// case-insensitively. An empty query returns the full list.
	Search(ctx context.Context, query string) ([]*domain.Sweet, error)
	// Purchase decrements stock by exactly one.
	Purchase(ctx context.Context, id string) (*domain.Sweet, error)
	// Restock adds amount (>= 0) to stock.
	Restock(ctx context.Context, id string, amount int) (*domain.Sweet, error)
	Update(ctx context.Context, id string, patch SweetPatch) (*domain.Sweet, error)
	Delete(ctx context.Context, id string) error
}
