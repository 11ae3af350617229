package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/sirpyerre/posts-gateway/internal/core/domain"
)

type stubGateway struct {
	posts     []domain.Post
	listCalls int
	deleted   []int64
}

func (g *stubGateway) List(_ context.Context) ([]domain.Post, error) {
	g.listCalls++
	return g.posts, nil
}

func (g *stubGateway) Get(_ context.Context, id int64) (*domain.Post, error) {
	for _, p := range g.posts {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, domain.ErrPostNotFound
}

func (g *stubGateway) Create(_ context.Context, post domain.Post) (*domain.Post, error) {
	post.ID = int64(len(g.posts) + 1)
	g.posts = append(g.posts, post)
	return &post, nil
}

func (g *stubGateway) Update(_ context.Context, id int64, post domain.Post) (*domain.Post, error) {
	post.ID = id
	return &post, nil
}

func (g *stubGateway) Delete(_ context.Context, id int64) error {
	g.deleted = append(g.deleted, id)
	return nil
}

type stubCache struct {
	posts       []domain.Post
	populated   bool
	invalidated int
	err         error
}

func (c *stubCache) GetList(_ context.Context) ([]domain.Post, bool, error) {
	if c.err != nil {
		return nil, false, c.err
	}
	return c.posts, c.populated, nil
}

func (c *stubCache) SetList(_ context.Context, posts []domain.Post) error {
	if c.err != nil {
		return c.err
	}
	c.posts = posts
	c.populated = true
	return nil
}

func (c *stubCache) InvalidateList(_ context.Context) error {
	c.invalidated++
	c.populated = false
	return c.err
}

func TestPostService_ListPopulatesCache(t *testing.T) {
	gateway := &stubGateway{posts: []domain.Post{{ID: 1, Title: "first"}}}
	cache := &stubCache{}
	svc := NewPostService(gateway, cache, zerolog.Nop())

	for i := 0; i < 3; i++ {
		posts, err := svc.List(context.Background())
		if err != nil {
			t.Fatalf("list %d: %v", i, err)
		}
		if len(posts) != 1 || posts[0].Title != "first" {
			t.Fatalf("unexpected posts: %v", posts)
		}
	}

	if gateway.listCalls != 1 {
		t.Fatalf("expected one upstream call, got %d", gateway.listCalls)
	}
}

// A failing cache never fails the proxied request.
func TestPostService_ListToleratesCacheFailure(t *testing.T) {
	gateway := &stubGateway{posts: []domain.Post{{ID: 1}}}
	cache := &stubCache{err: errors.New("redis down")}
	svc := NewPostService(gateway, cache, zerolog.Nop())

	posts, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("unexpected posts: %v", posts)
	}
}

func TestPostService_MutationsInvalidateCache(t *testing.T) {
	gateway := &stubGateway{}
	cache := &stubCache{}
	svc := NewPostService(gateway, cache, zerolog.Nop())

	if _, err := svc.Create(context.Background(), domain.Post{Title: "a"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Update(context.Background(), 1, domain.Post{Title: "b"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := svc.Delete(context.Background(), 1); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if cache.invalidated != 3 {
		t.Fatalf("expected 3 invalidations, got %d", cache.invalidated)
	}
	if len(gateway.deleted) != 1 || gateway.deleted[0] != 1 {
		t.Fatalf("unexpected deletes: %v", gateway.deleted)
	}
}

func TestPostService_GetPassesThroughNotFound(t *testing.T) {
	svc := NewPostService(&stubGateway{}, &stubCache{}, zerolog.Nop())

	if _, err := svc.Get(context.Background(), 42); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestPostService_NilCache(t *testing.T) {
	gateway := &stubGateway{posts: []domain.Post{{ID: 1}}}
	svc := NewPostService(gateway, nil, zerolog.Nop())

	if _, err := svc.List(context.Background()); err != nil {
		t.Fatalf("list: %v", err)
	}
	if _, err := svc.Create(context.Background(), domain.Post{}); err != nil {
		t.Fatalf("create: %v", err)
	}
}
