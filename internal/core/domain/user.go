package domain

import (
	"errors"
	"time"
)

var (
	// ErrEmailTaken is returned when a registration reuses an existing email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrUserNotFound is an internal lookup miss. The auth service masks it
	// as ErrInvalidCredentials so callers cannot enumerate accounts.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials covers both unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// User models a registered shopper or administrator.
// PasswordHash holds the bcrypt-derived secret and is never serialized.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"isAdmin"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
