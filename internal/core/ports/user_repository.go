package ports

import (
	"context"

	"github.com/sweetshop/sweet-shop-api/internal/core/domain"
)

// UserRepository defines persistence for user credentials.
type UserRepository interface {
	// Create inserts a new user. Returns domain.ErrEmailTaken when the
	// email is already present; the store enforces uniqueness atomically so
	// concurrent registrations cannot race into duplicates.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByEmail looks up a user by normalized email.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}
