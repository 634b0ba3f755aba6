// Package users manages user accounts and their credentials.
package users

import "errors"

var (
	// ErrUserNotFound is returned when a user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateName is returned when a username is already taken.
	ErrDuplicateName = errors.New("username already taken")

	// ErrIllegalName is returned when a username is empty or malformed.
	ErrIllegalName = errors.New("illegal username")
)

// User is a registered account. PasswordHash holds the salted digest
// produced by HashPassword, never the plain password.
type User struct {
	ID           int64
	Name         string
	PasswordHash string
}

// Store persists user accounts.
type Store interface {
	// Create registers a new user with an already-hashed password.
	Create(name, passwordHash string) (User, error)

	// Get returns a user by ID.
	Get(userID int64) (User, error)

	// GetByName returns a user by username.
	GetByName(name string) (User, error)
}
