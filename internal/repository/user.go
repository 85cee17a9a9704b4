package repository

import (
	"context"
	"errors"

	"labpipe/internal/model"
)

// ErrDuplicateEmail is returned by Create when the email is already taken.
var ErrDuplicateEmail = errors.New("email already registered")

// UserRepository defines data access for lab member accounts using SQL
// queries only. No business logic here, strictly persistence operations.
type UserRepository interface {
	// Create inserts a new user row. A uniqueness violation on email is
	// surfaced as ErrDuplicateEmail.
	Create(ctx context.Context, u *model.User) (*model.User, error)

	// FindByID returns a user by id.
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByEmail returns a user by email.
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}
