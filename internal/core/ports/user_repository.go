package ports

import (
	"context"

	"github.com/sirpyerre/posts-gateway/internal/core/domain"
)

// UserRepository defines the credential store the authenticator depends on.
// The in-memory implementation can later be swapped for a persistent one
// without touching the services or middleware.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
