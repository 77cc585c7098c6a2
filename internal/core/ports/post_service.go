package ports

import (
	"context"
	"encoding/json"
	"time"

	"github.com/smartblog/editor-api/internal/core/domain"
)

// CreatePostInput carries all data needed to create a new post.
type CreatePostInput struct {
	Title          string
	Content        json.RawMessage
	Status         domain.PostStatus
	AuthorUsername string
}

// PostResult is returned by the service after creating a post.
type PostResult struct {
	ID        string
	Status    domain.PostStatus
	CreatedAt time.Time
}

// PostService defines use-case operations for posts.
type PostService interface {
	CreatePost(ctx context.Context, input CreatePostInput) (*PostResult, error)
	ListPosts(ctx context.Context) ([]*domain.Post, error)
	// UpdatePost reports changed=false when the patch was empty and nothing
	// was written.
	UpdatePost(ctx context.Context, id string, patch domain.PostPatch) (changed bool, err error)
	DeletePost(ctx context.Context, id string) error
}
