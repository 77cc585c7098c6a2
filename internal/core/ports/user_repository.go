package ports

import (
	"context"

	"github.com/smartblog/editor-api/internal/core/domain"
)

// UserRepository persists credentials keyed by username.
type UserRepository interface {
	// Create inserts a new user. Returns domain.ErrDuplicateUsername when the
	// username is taken.
	Create(ctx context.Context, user *domain.User) error
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}
