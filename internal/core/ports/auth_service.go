package ports

import (
	"context"

	"github.com/sweetshop/sweet-shop-api/internal/core/domain"
)

// RegisterInput carries the fields needed to create an account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// AuthResult is returned by both Register and Login: the user record
// (without its secret) plus a freshly issued bearer token.
type AuthResult struct {
	User  *domain.User
	Token string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
}
