package ports

import (
	"context"

	"github.com/erosmarket/storefront/internal/core/domain"
)

// UserRepository defines the interface for user account persistence.
// Email lookups are case-sensitive.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}
