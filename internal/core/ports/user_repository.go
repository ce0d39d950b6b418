package ports

import (
	"context"

	"deliveryno/internal/core/domain/model/kernel"
	"deliveryno/internal/core/domain/model/user"
)

// UserRepository is the user directory.
type UserRepository interface {
	// Add persists a new user. A duplicate username or email yields errs.ErrValueIsInvalid.
	Add(ctx context.Context, aggregate *user.User) error
	Update(ctx context.Context, aggregate *user.User) error
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)
}
