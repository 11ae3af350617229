package ports

import (
	"context"

	"github.com/sirpyerre/posts-gateway/internal/core/domain"
)

// PostService exposes the CRUD proxy operations an admitted request may
// perform against the posts resource.
type PostService interface {
	List(ctx context.Context) ([]domain.Post, error)
	Get(ctx context.Context, id int64) (*domain.Post, error)
	Create(ctx context.Context, post domain.Post) (*domain.Post, error)
	Update(ctx context.Context, id int64, post domain.Post) (*domain.Post, error)
	Delete(ctx context.Context, id int64) error
}

// PostGateway is the raw upstream API client the service forwards to.
type PostGateway interface {
	List(ctx context.Context) ([]domain.Post, error)
	Get(ctx context.Context, id int64) (*domain.Post, error)
	Create(ctx context.Context, post domain.Post) (*domain.Post, error)
	Update(ctx context.Context, id int64, post domain.Post) (*domain.Post, error)
	Delete(ctx context.Context, id int64) error
}

// PostCache is a read-through cache for the upstream post listing. A miss is
// reported via the boolean, not an error; cache failures must never fail the
// proxied request.
type PostCache interface {
	GetList(ctx context.Context) ([]domain.Post, bool, error)
	SetList(ctx context.Context, posts []domain.Post) error
	InvalidateList(ctx context.Context) error
}
