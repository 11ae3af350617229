package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/sirpyerre/posts-gateway/internal/api/metrics"
	"github.com/sirpyerre/posts-gateway/internal/core/domain"
	"github.com/sirpyerre/posts-gateway/internal/core/ports"
)

// PostService forwards CRUD calls to the upstream posts API, adding a
// read-through cache on the list operation. Cache failures are logged and
// ignored; the upstream remains the source of truth.
type PostService struct {
	gateway ports.PostGateway
	cache   ports.PostCache
	log     zerolog.Logger
}

func NewPostService(gateway ports.PostGateway, cache ports.PostCache, log zerolog.Logger) *PostService {
	return &PostService{gateway: gateway, cache: cache, log: log}
}

func (s *PostService) List(ctx context.Context) ([]domain.Post, error) {
	if s.cache != nil {
		posts, hit, err := s.cache.GetList(ctx)
		if err != nil {
			s.log.Warn().Err(err).Msg("post list cache read failed")
		} else if hit {
			metrics.PostCacheTotal.WithLabelValues("hit").Inc()
			return posts, nil
		}
		metrics.PostCacheTotal.WithLabelValues("miss").Inc()
	}

	posts, err := s.gateway.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetList(ctx, posts); err != nil {
			s.log.Warn().Err(err).Msg("post list cache write failed")
		}
	}
	return posts, nil
}

func (s *PostService) Get(ctx context.Context, id int64) (*domain.Post, error) {
	return s.gateway.Get(ctx, id)
}

func (s *PostService) Create(ctx context.Context, post domain.Post) (*domain.Post, error) {
	created, err := s.gateway.Create(ctx, post)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return created, nil
}

func (s *PostService) Update(ctx context.Context, id int64, post domain.Post) (*domain.Post, error) {
	updated, err := s.gateway.Update(ctx, id, post)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return updated, nil
}

func (s *PostService) Delete(ctx context.Context, id int64) error {
	if err := s.gateway.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *PostService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateList(ctx); err != nil {
		s.log.Warn().Err(err).Msg("post list cache invalidation failed")
	}
}
