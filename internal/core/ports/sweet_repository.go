package ports

import (
	"context"

	"github.com/sweetshop/sweet-shop-api/internal/core/domain"
)

// SweetPatch carries a partial update. Nil fields are left unchanged;
// a non-nil pointer to a zero value is a real update, so an admin can
// set price or quantity to 0 explicitly.
type SweetPatch struct {
	Name     *string
	Category *string
	Price    *float64
	Quantity *int
}

// IsEmpty reports whether the patch carries no changes at all.
func (p SweetPatch) IsEmpty() bool {
	return p.Name == nil && p.Category == nil && p.Price == nil && p.Quantity == nil
}

// SweetRepository defines persistence operations for catalog items.
type SweetRepository interface {
	Insert(ctx context.Context, s *domain.Sweet) (*domain.Sweet, error)
	FindByID(ctx context.Context, id string) (*domain.Sweet, error)
	FindAll(ctx context.Context) ([]*domain.Sweet, error)
	// DecrementStock atomically decrements quantity by one, but only while
	// quantity is still positive. Returns the updated sweet,
	// domain.ErrOutOfStock when the conditional update matched nothing for a
	// sweet that exists, or domain.ErrSweetNotFound when the id is absent.
	DecrementStock(ctx context.Context, id string) (*domain.Sweet, error)
	// IncrementStock adds amount to quantity and returns the updated sweet.
	IncrementStock(ctx context.Context, id string, amount int) (*domain.Sweet, error)
	// UpdateFields applies only the fields set in patch and returns the
	// updated sweet.
	UpdateFields(ctx context.Context, id string, patch SweetPatch) (*domain.Sweet, error)
	Delete(ctx context.Context, id string) error
}
