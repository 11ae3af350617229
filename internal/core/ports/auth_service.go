package ports

import (
	"context"

	"github.com/sirpyerre/posts-gateway/internal/core/domain"
)

// LoginResult carries the public profile fields returned after a successful
// login. The password hash never leaves the service layer.
type LoginResult struct {
	Token    string
	ID       int64
	Username string
	Email    string
	Roles    []domain.Role
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	Register(ctx context.Context, username, password, email string) (*domain.User, error)
}

// TokenCodec issues and verifies signed bearer tokens. Verification is a pure
// computation; concurrent calls need no synchronization.
type TokenCodec interface {
	Issue(username string, roles []domain.Role) (string, error)
	Verify(token string) (domain.Principal, error)
}
